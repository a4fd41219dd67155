// Package services contains the application services the CLI views call:
// doubts, teams, and the suggestion feed. Each service resolves the current
// auth token from the session manager and delegates transport to the
// collaborator client.
package services

import (
	"context"
	"sort"
	"strings"

	"github.com/smazurs/peerpoint/internal/client/client"
	"github.com/smazurs/peerpoint/internal/client/models"
	"github.com/smazurs/peerpoint/internal/client/session"
	"github.com/smazurs/peerpoint/internal/common"
)

// SortOrder selects how a doubt list is ordered.
type SortOrder string

const (
	SortNewest      SortOrder = "newest"
	SortOldest      SortOrder = "oldest"
	SortMostAnswers SortOrder = "most_answers"
	SortMostViews   SortOrder = "most_views"
	SortUrgent      SortOrder = "urgent"
)

func (o SortOrder) Valid() bool {
	switch o {
	case SortNewest, SortOldest, SortMostAnswers, SortMostViews, SortUrgent:
		return true
	}
	return false
}

// DoubtFilter narrows and orders a doubt list. Zero values mean "all".
// Search matches title, description and tags, case-insensitively.
type DoubtFilter struct {
	Search string
	Domain string
	Status models.DoubtStatus
	SortBy SortOrder
}

// DoubtService defines doubt operations for the CLI.
type DoubtService interface {
	List(ctx context.Context, filter DoubtFilter) ([]models.Doubt, error)
	Get(ctx context.Context, id string) (*models.DoubtDetail, error)
	Post(ctx context.Context, draft models.DoubtDraft) (*models.Doubt, error)
	Answer(ctx context.Context, doubtID, text string) (*models.Answer, error)
	Accept(ctx context.Context, doubtID, answerID string) error
	Upvote(ctx context.Context, doubtID, answerID string) error
}

type doubtService struct {
	client  client.Client
	manager *session.Manager
}

// NewDoubtService constructs a DoubtService bound to the given collaborator
// client and session manager.
func NewDoubtService(c client.Client, m *session.Manager) DoubtService {
	return &doubtService{client: c, manager: m}
}

func (s *doubtService) token() (string, error) {
	sess, state, _ := s.manager.Snapshot()
	if state != session.StateAuthenticated {
		return "", common.ErrNotAuthenticated
	}
	return sess.AuthToken, nil
}

// List fetches the full doubt list and applies filtering and ordering
// locally, the same way the platform's list screen does.
func (s *doubtService) List(ctx context.Context, filter DoubtFilter) ([]models.Doubt, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}

	doubts, err := s.client.ListDoubts(ctx, token)
	if err != nil {
		return nil, err
	}

	return ApplyFilter(doubts, filter), nil
}

func (s *doubtService) Get(ctx context.Context, id string) (*models.DoubtDetail, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.client.GetDoubt(ctx, token, id)
}

func (s *doubtService) Post(ctx context.Context, draft models.DoubtDraft) (*models.Doubt, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.client.CreateDoubt(ctx, token, draft)
}

func (s *doubtService) Answer(ctx context.Context, doubtID, text string) (*models.Answer, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.client.PostAnswer(ctx, token, doubtID, text)
}

func (s *doubtService) Accept(ctx context.Context, doubtID, answerID string) error {
	token, err := s.token()
	if err != nil {
		return err
	}
	return s.client.AcceptAnswer(ctx, token, doubtID, answerID)
}

func (s *doubtService) Upvote(ctx context.Context, doubtID, answerID string) error {
	token, err := s.token()
	if err != nil {
		return err
	}
	return s.client.UpvoteAnswer(ctx, token, doubtID, answerID)
}

// ApplyFilter returns the doubts matching filter, ordered per its SortBy.
// The input slice is not modified.
func ApplyFilter(doubts []models.Doubt, filter DoubtFilter) []models.Doubt {
	result := make([]models.Doubt, 0, len(doubts))

	for _, d := range doubts {
		if filter.Search != "" && !matchesSearch(d, filter.Search) {
			continue
		}
		if filter.Domain != "" && d.Domain != filter.Domain {
			continue
		}
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		result = append(result, d)
	}

	sortDoubts(result, filter.SortBy)
	return result
}

func matchesSearch(d models.Doubt, term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(d.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(d.Description), term) {
		return true
	}
	for _, tag := range d.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func sortDoubts(doubts []models.Doubt, order SortOrder) {
	switch order {
	case SortOldest:
		sort.SliceStable(doubts, func(i, j int) bool {
			return doubts[i].CreatedAt.Before(doubts[j].CreatedAt)
		})
	case SortMostAnswers:
		sort.SliceStable(doubts, func(i, j int) bool {
			return doubts[i].AnswerCount > doubts[j].AnswerCount
		})
	case SortMostViews:
		sort.SliceStable(doubts, func(i, j int) bool {
			return doubts[i].Views > doubts[j].Views
		})
	case SortUrgent:
		sort.SliceStable(doubts, func(i, j int) bool {
			return doubts[i].Urgency.Rank() > doubts[j].Urgency.Rank()
		})
	default: // SortNewest
		sort.SliceStable(doubts, func(i, j int) bool {
			return doubts[i].CreatedAt.After(doubts[j].CreatedAt)
		})
	}
}

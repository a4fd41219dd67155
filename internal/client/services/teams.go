package services

import (
	"context"

	"github.com/smazurs/peerpoint/internal/client/client"
	"github.com/smazurs/peerpoint/internal/client/models"
	"github.com/smazurs/peerpoint/internal/client/session"
	"github.com/smazurs/peerpoint/internal/common"
)

// TeamService defines team-formation operations for the CLI.
type TeamService interface {
	List(ctx context.Context) ([]models.Team, error)
	Create(ctx context.Context, draft models.TeamDraft) (*models.Team, error)
	Suggest(ctx context.Context, skills []string) ([]models.TeammateSuggestion, error)
}

type teamService struct {
	client  client.Client
	manager *session.Manager
}

func NewTeamService(c client.Client, m *session.Manager) TeamService {
	return &teamService{client: c, manager: m}
}

func (s *teamService) token() (string, error) {
	sess, state, _ := s.manager.Snapshot()
	if state != session.StateAuthenticated {
		return "", common.ErrNotAuthenticated
	}
	return sess.AuthToken, nil
}

func (s *teamService) List(ctx context.Context) ([]models.Team, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.client.ListTeams(ctx, token)
}

func (s *teamService) Create(ctx context.Context, draft models.TeamDraft) (*models.Team, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.client.CreateTeam(ctx, token, draft)
}

// Suggest asks the collaborator for teammates matching the given skills,
// ranked by the number of matched skills.
func (s *teamService) Suggest(ctx context.Context, skills []string) ([]models.TeammateSuggestion, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.client.SuggestTeammates(ctx, token, skills)
}

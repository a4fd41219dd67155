package services

import (
	"context"

	"github.com/smazurs/peerpoint/internal/client/client"
	"github.com/smazurs/peerpoint/internal/client/models"
	"github.com/smazurs/peerpoint/internal/client/session"
	"github.com/smazurs/peerpoint/internal/common"
)

// SuggestionService serves the study-suggestion feed. The feed is canned
// content on the platform side; the client just renders it.
type SuggestionService interface {
	Study(ctx context.Context) ([]models.StudySuggestion, error)
}

type suggestionService struct {
	client  client.Client
	manager *session.Manager
}

func NewSuggestionService(c client.Client, m *session.Manager) SuggestionService {
	return &suggestionService{client: c, manager: m}
}

func (s *suggestionService) Study(ctx context.Context) ([]models.StudySuggestion, error) {
	sess, state, _ := s.manager.Snapshot()
	if state != session.StateAuthenticated {
		return nil, common.ErrNotAuthenticated
	}
	return s.client.StudySuggestions(ctx, sess.AuthToken)
}

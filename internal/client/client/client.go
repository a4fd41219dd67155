// Package client defines the collaborator interface the PeerPoint client
// depends on, and its HTTP implementation. The interface exists so services
// can be tested against deterministic fakes; production code supplies the
// network-backed client.
package client

import (
	"context"

	"github.com/smazurs/peerpoint/internal/client/models"
)

// Client is the remote platform API as consumed by the client services.
type Client interface {
	// Auth.
	Authenticate(ctx context.Context, email, password string) (*models.AuthPayload, error)
	Register(ctx context.Context, reg models.Registration) (*models.AuthPayload, error)
	RequestPasswordReset(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, token string, update models.ProfileUpdate) error

	// Doubts.
	ListDoubts(ctx context.Context, token string) ([]models.Doubt, error)
	GetDoubt(ctx context.Context, token, id string) (*models.DoubtDetail, error)
	CreateDoubt(ctx context.Context, token string, draft models.DoubtDraft) (*models.Doubt, error)
	PostAnswer(ctx context.Context, token, doubtID, text string) (*models.Answer, error)
	AcceptAnswer(ctx context.Context, token, doubtID, answerID string) error
	UpvoteAnswer(ctx context.Context, token, doubtID, answerID string) error

	// Teams.
	ListTeams(ctx context.Context, token string) ([]models.Team, error)
	CreateTeam(ctx context.Context, token string, draft models.TeamDraft) (*models.Team, error)
	SuggestTeammates(ctx context.Context, token string, skills []string) ([]models.TeammateSuggestion, error)

	// Suggestions feed.
	StudySuggestions(ctx context.Context, token string) ([]models.StudySuggestion, error)

	// Liveness.
	Ping(ctx context.Context) error

	Close() error
}

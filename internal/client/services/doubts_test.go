package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/smazurs/peerpoint/internal/client/client"
	"github.com/smazurs/peerpoint/internal/client/credstore"
	"github.com/smazurs/peerpoint/internal/client/models"
	"github.com/smazurs/peerpoint/internal/client/notices"
	"github.com/smazurs/peerpoint/internal/client/session"
	"github.com/smazurs/peerpoint/internal/common"
	"github.com/smazurs/peerpoint/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

// fakeClient embeds the interface; only the methods a test exercises are
// implemented.
type fakeClient struct {
	client.Client

	doubts    []models.Doubt
	doubtsErr error
	lastToken string

	detail *models.DoubtDetail

	created   *models.Doubt
	lastDraft models.DoubtDraft

	teams       []models.Team
	suggestions []models.TeammateSuggestion
	lastSkills  []string

	study []models.StudySuggestion
}

func (f *fakeClient) ListDoubts(ctx context.Context, token string) ([]models.Doubt, error) {
	f.lastToken = token
	return f.doubts, f.doubtsErr
}

func (f *fakeClient) GetDoubt(ctx context.Context, token, id string) (*models.DoubtDetail, error) {
	f.lastToken = token
	if f.detail == nil {
		return nil, common.ErrNotFound
	}
	return f.detail, nil
}

func (f *fakeClient) CreateDoubt(ctx context.Context, token string, draft models.DoubtDraft) (*models.Doubt, error) {
	f.lastToken = token
	f.lastDraft = draft
	return f.created, nil
}

func (f *fakeClient) ListTeams(ctx context.Context, token string) ([]models.Team, error) {
	f.lastToken = token
	return f.teams, nil
}

func (f *fakeClient) SuggestTeammates(ctx context.Context, token string, skills []string) ([]models.TeammateSuggestion, error) {
	f.lastToken = token
	f.lastSkills = skills
	return f.suggestions, nil
}

func (f *fakeClient) StudySuggestions(ctx context.Context, token string) ([]models.StudySuggestion, error) {
	f.lastToken = token
	return f.study, nil
}

func newManager(t *testing.T, fc client.Client, authenticated bool) *session.Manager {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE credentials (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)

	store := credstore.New(db)
	ctx := context.Background()
	if authenticated {
		require.NoError(t, store.Save(ctx, "tok-1", models.UserRecord{
			ID: "u1", Email: "jane@example.edu", Name: "Jane", Role: models.RoleJunior,
		}))
	}

	bus := notices.New(clockwork.NewFakeClock(), time.Minute)
	m := session.NewManager(fc, store, bus, logging.NewDefault())
	m.Bootstrap(ctx)
	return m
}

func at(day int) time.Time {
	return time.Date(2024, 1, day, 12, 0, 0, 0, time.UTC)
}

func fixtureDoubts() []models.Doubt {
	return []models.Doubt{
		{
			ID: "d1", Title: "React useState hook not updating state properly",
			Description: "useState is not updating", Domain: "Coding",
			Status: models.DoubtStatusAnswered, AnswerCount: 3, Views: 45,
			Urgency: models.UrgencyMedium, Tags: []string{"React", "Hooks"},
			CreatedAt: at(15),
		},
		{
			ID: "d2", Title: "Machine Learning model overfitting issue",
			Description: "network overfits on training data", Domain: "Machine Learning",
			Status: models.DoubtStatusPending, AnswerCount: 1, Views: 28,
			Urgency: models.UrgencyHigh, Tags: []string{"Python", "TensorFlow"},
			CreatedAt: at(16),
		},
		{
			ID: "d3", Title: "Database normalization question for exam",
			Description: "help understanding 3rd normal form", Domain: "Database",
			Status: models.DoubtStatusAccepted, AnswerCount: 5, Views: 67,
			Urgency: models.UrgencyLow, Tags: []string{"SQL"},
			CreatedAt: at(14),
		},
	}
}

func listIDs(doubts []models.Doubt) []string {
	out := make([]string, 0, len(doubts))
	for _, d := range doubts {
		out = append(out, d.ID)
	}
	return out
}

// ---- tests ----

func TestApplyFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter DoubtFilter
		want   []string
	}{
		{"no filter defaults to newest", DoubtFilter{}, []string{"d2", "d1", "d3"}},
		{"oldest first", DoubtFilter{SortBy: SortOldest}, []string{"d3", "d1", "d2"}},
		{"most answers", DoubtFilter{SortBy: SortMostAnswers}, []string{"d3", "d1", "d2"}},
		{"most views", DoubtFilter{SortBy: SortMostViews}, []string{"d3", "d1", "d2"}},
		{"urgent first", DoubtFilter{SortBy: SortUrgent}, []string{"d2", "d1", "d3"}},
		{"domain filter", DoubtFilter{Domain: "Database"}, []string{"d3"}},
		{"status filter", DoubtFilter{Status: models.DoubtStatusPending}, []string{"d2"}},
		{"search matches title", DoubtFilter{Search: "overfitting"}, []string{"d2"}},
		{"search matches tag case-insensitively", DoubtFilter{Search: "react"}, []string{"d1"}},
		{"search matches description", DoubtFilter{Search: "normal form"}, []string{"d3"}},
		{"combined", DoubtFilter{Domain: "Coding", Status: models.DoubtStatusAnswered}, []string{"d1"}},
		{"no match", DoubtFilter{Search: "quantum"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilter(fixtureDoubts(), tt.filter)
			assert.Equal(t, tt.want, listIDs(got))
		})
	}
}

func TestApplyFilter_DoesNotMutateInput(t *testing.T) {
	doubts := fixtureDoubts()
	_ = ApplyFilter(doubts, DoubtFilter{SortBy: SortOldest})
	assert.Equal(t, []string{"d1", "d2", "d3"}, listIDs(doubts))
}

func TestDoubtService_List_PassesSessionToken(t *testing.T) {
	fc := &fakeClient{doubts: fixtureDoubts()}
	svc := NewDoubtService(fc, newManager(t, fc, true))

	out, err := svc.List(context.Background(), DoubtFilter{Status: models.DoubtStatusPending})
	require.NoError(t, err)
	assert.Equal(t, []string{"d2"}, listIDs(out))
	assert.Equal(t, "tok-1", fc.lastToken)
}

func TestDoubtService_RequiresSession(t *testing.T) {
	fc := &fakeClient{}
	svc := NewDoubtService(fc, newManager(t, fc, false))

	_, err := svc.List(context.Background(), DoubtFilter{})
	require.ErrorIs(t, err, common.ErrNotAuthenticated)

	_, err = svc.Post(context.Background(), models.DoubtDraft{})
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestDoubtService_Post_ForwardsDraft(t *testing.T) {
	fc := &fakeClient{created: &models.Doubt{ID: "d9"}}
	svc := NewDoubtService(fc, newManager(t, fc, true))

	draft := models.DoubtDraft{
		Title:       "Why does my goroutine never stop",
		Description: "I spawn a worker and it leaks on shutdown.",
		Domain:      "Coding",
		Urgency:     models.UrgencyHigh,
	}
	created, err := svc.Post(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "d9", created.ID)
	assert.Equal(t, draft, fc.lastDraft)
}

func TestTeamService_Suggest_ForwardsSkills(t *testing.T) {
	fc := &fakeClient{suggestions: []models.TeammateSuggestion{{ID: "s1", MatchedSkills: 2}}}
	svc := NewTeamService(fc, newManager(t, fc, true))

	out, err := svc.Suggest(context.Background(), []string{"React", "Go"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"React", "Go"}, fc.lastSkills)
}

func TestSuggestionService_RequiresSession(t *testing.T) {
	fc := &fakeClient{study: []models.StudySuggestion{{ID: "t1", Text: "Review spaced repetition."}}}

	authed := NewSuggestionService(fc, newManager(t, fc, true))
	out, err := authed.Study(context.Background())
	require.NoError(t, err)
	assert.Len(t, out, 1)

	anon := NewSuggestionService(fc, newManager(t, fc, false))
	_, err = anon.Study(context.Background())
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
}

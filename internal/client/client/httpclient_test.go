package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smazurs/peerpoint/internal/client/models"
	"github.com/smazurs/peerpoint/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServerClient(t *testing.T, handler http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 2*time.Second)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestAuthenticate_Success(t *testing.T) {
	c := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "jane@example.edu", body["email"])

		writeJSON(t, w, http.StatusOK, authResponse{
			Success: true,
			Token:   "tok-1",
			User:    models.UserRecord{ID: "u1", Email: "jane@example.edu", Role: models.RoleJunior},
		})
	}))

	payload, err := c.Authenticate(context.Background(), "jane@example.edu", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", payload.Token)
	assert.Equal(t, "u1", payload.User.ID)
}

func TestAuthenticate_Rejected(t *testing.T) {
	c := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, authResponse{Success: false, Error: "Invalid credentials"})
	}))

	_, err := c.Authenticate(context.Background(), "jane@example.edu", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_MalformedPayloadIsUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "not JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>oops</html>"))
			},
		},
		{
			name: "success without token",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusOK, authResponse{
					Success: true,
					User:    models.UserRecord{ID: "u1", Email: "a@b.c", Role: models.RoleJunior},
				})
			},
		},
		{
			name: "success with incomplete user",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusOK, authResponse{Success: true, Token: "tok"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newServerClient(t, tt.handler)
			_, err := c.Authenticate(context.Background(), "a@b.c", "pw")
			require.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestAuthenticate_ServerDownIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, time.Second)
	_, err := c.Authenticate(context.Background(), "a@b.c", "pw")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestRegister_SendsProfileFields(t *testing.T) {
	c := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/register", r.URL.Path)

		var reg models.Registration
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reg))
		require.Equal(t, models.RoleSenior, reg.Role)
		require.Equal(t, "MIT", reg.College)

		writeJSON(t, w, http.StatusCreated, authResponse{
			Success: true,
			Token:   "tok-2",
			User:    models.UserRecord{ID: "u2", Email: reg.Email, Role: reg.Role},
		})
	}))

	payload, err := c.Register(context.Background(), models.Registration{
		Name: "Sam", Email: "sam@example.edu", Password: "pw", College: "MIT", Role: models.RoleSenior,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSenior, payload.User.Role)
}

func TestListDoubts_PassesBearerToken(t *testing.T) {
	c := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, []models.Doubt{{ID: "d1", Title: "Why does my loop never end"}})
	}))

	doubts, err := c.ListDoubts(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, doubts, 1)
	assert.Equal(t, "d1", doubts[0].ID)
}

// A large response must decode cleanly even though the per-call context is
// released before the caller reads the body.
func TestListDoubts_LargeResponseDecodesAfterCall(t *testing.T) {
	const n = 5000
	doubts := make([]models.Doubt, n)
	for i := range doubts {
		doubts[i] = models.Doubt{ID: fmt.Sprintf("d%d", i), Title: "A question with a reasonably long title"}
	}

	c := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, doubts)
	}))

	out, err := c.ListDoubts(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, out, n)
	assert.Equal(t, "d4999", out[n-1].ID)
}

func TestGetDoubt_NotFound(t *testing.T) {
	c := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.GetDoubt(context.Background(), "tok", "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestListTeams_UnauthorizedToken(t *testing.T) {
	c := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.ListTeams(context.Background(), "expired")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestSuggestTeammates_EncodesSkillsQuery(t *testing.T) {
	c := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/teams/suggestions", r.URL.Path)
		require.Equal(t, "React,Node.js", r.URL.Query().Get("skills"))
		writeJSON(t, w, http.StatusOK, []models.TeammateSuggestion{{ID: "s1", MatchedSkills: 2}})
	}))

	out, err := c.SuggestTeammates(context.Background(), "tok", []string{"React", "Node.js"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].MatchedSkills)
}

// Only login and register carry inspectable JSON error bodies; a rejected
// reset request must surface as an error, not pass as success.
func TestRequestPasswordReset_BadRequestIsAnError(t *testing.T) {
	c := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/forgot", r.URL.Path)
		writeJSON(t, w, http.StatusBadRequest, map[string]string{"error": "email is required"})
	}))

	err := c.RequestPasswordReset(context.Background(), "")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestPing(t *testing.T) {
	c := newServerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/ping", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	require.NoError(t, c.Ping(context.Background()))
}

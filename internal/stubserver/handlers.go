package stubserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/smazurs/peerpoint/internal/client/models"
)

// authResult is the wire shape of login/register responses. Failures keep
// status 401 but still carry a decodable body with success=false.
type authResult struct {
	Success bool               `json:"success"`
	Token   string             `json:"token,omitempty"`
	User    *models.UserRecord `json:"user,omitempty"`
	Error   string             `json:"error,omitempty"`
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, authResult{Error: "invalid request body"})
		return
	}

	user, ok := s.store.Authenticate(req.Email, req.Password)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, authResult{Error: "Invalid credentials"})
		return
	}

	s.respondAuthed(w, r, user)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeJSON(w, http.StatusBadRequest, authResult{Error: "invalid request body"})
		return
	}
	if reg.Email == "" || reg.Password == "" || reg.Name == "" {
		writeJSON(w, http.StatusBadRequest, authResult{Error: "name, email and password are required"})
		return
	}

	user, err := s.store.CreateAccount(reg)
	if err != nil {
		if errors.Is(err, errEmailTaken) {
			writeJSON(w, http.StatusBadRequest, authResult{Error: "Email already registered"})
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.respondAuthed(w, r, user)
}

func (s *Server) respondAuthed(w http.ResponseWriter, r *http.Request, user models.UserRecord) {
	token, err := s.issueToken(user.ID, s.now())
	if err != nil {
		s.log.Error(r.Context(), "token issue failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, authResult{Success: true, Token: token, User: &user})
}

// handleForgot accepts any address; a real platform would send mail here.
// The response never reveals whether the account exists.
func (s *Server) handleForgot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, authResult{Error: "email is required"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !s.store.UpdateProfile(requestUser(r.Context()).ID, update) {
		http.Error(w, "Unknown user", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDoubts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListDoubts())
}

func (s *Server) handleGetDoubt(w http.ResponseWriter, r *http.Request) {
	detail, ok := s.store.GetDoubt(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "Doubt not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleCreateDoubt(w http.ResponseWriter, r *http.Request) {
	var draft models.DoubtDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if problems := draft.Validate(); len(problems) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, problems)
		return
	}

	created := s.store.CreateDoubt(draft, requestUser(r.Context()), s.now())
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handlePostAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		http.Error(w, "Answer text is required", http.StatusBadRequest)
		return
	}

	ans, ok := s.store.AddAnswer(chi.URLParam(r, "id"), req.Text, requestUser(r.Context()), s.now())
	if !ok {
		http.Error(w, "Doubt not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, ans)
}

func (s *Server) handleAcceptAnswer(w http.ResponseWriter, r *http.Request) {
	err := s.store.AcceptAnswer(chi.URLParam(r, "id"), chi.URLParam(r, "answerID"), requestUser(r.Context()).ID)
	switch {
	case errors.Is(err, errNoSuchDoubt), errors.Is(err, errNoSuchAnswer):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, errNotYourDoubt):
		http.Error(w, "Only the asker can accept an answer", http.StatusForbidden)
	case err != nil:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleUpvoteAnswer(w http.ResponseWriter, r *http.Request) {
	if err := s.store.UpvoteAnswer(chi.URLParam(r, "id"), chi.URLParam(r, "answerID")); err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListTeams())
}

func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var draft models.TeamDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if problems := draft.Validate(); len(problems) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, problems)
		return
	}

	created := s.store.CreateTeam(draft, requestUser(r.Context()), s.now())
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleSuggestTeammates(w http.ResponseWriter, r *http.Request) {
	skills := splitQueryList(r.URL.Query().Get("skills"))
	out := s.store.SuggestTeammates(skills)
	if out == nil {
		out = []models.TeammateSuggestion{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStudySuggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.StudySuggestions())
}

func splitQueryList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

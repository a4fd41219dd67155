package guard

import (
	"testing"

	"github.com/smazurs/peerpoint/internal/client/models"
	"github.com/smazurs/peerpoint/internal/client/session"
	"github.com/stretchr/testify/assert"
)

func TestDecide_UnknownStateAlwaysLoading(t *testing.T) {
	paths := []string{PathLogin, PathDashboard, PathProfile, "/nonsense", ""}

	for _, path := range paths {
		d := Decide(session.StateUnknown, "", path)
		assert.Equal(t, ActionLoading, d.Action, "path %q", path)
	}
}

func TestDecide_AnonymousProtectedPathsRedirectToLogin(t *testing.T) {
	paths := []string{
		PathDashboard, PathProfile, PathProfileEdit, PathDoubts,
		PathDoubtPost, "/doubts/42", PathTeams, PathTeamCreate, PathAISuggestions,
	}

	for _, path := range paths {
		d := Decide(session.StateAnonymous, "", path)
		assert.Equal(t, ActionRedirect, d.Action, "path %q", path)
		assert.Equal(t, PathLogin, d.RedirectTo, "path %q", path)
	}
}

func TestDecide_AnonymousPublicPathsRender(t *testing.T) {
	tests := []struct {
		path string
		view View
	}{
		{PathLogin, ViewLogin},
		{PathSignup, ViewSignup},
		{PathForgotPassword, ViewForgotPassword},
	}

	for _, tt := range tests {
		d := Decide(session.StateAnonymous, "", tt.path)
		assert.Equal(t, ActionRender, d.Action, "path %q", tt.path)
		assert.Equal(t, tt.view, d.View, "path %q", tt.path)
	}
}

func TestDecide_DashboardDispatchesByRole(t *testing.T) {
	junior := Decide(session.StateAuthenticated, models.RoleJunior, PathDashboard)
	assert.Equal(t, ActionRender, junior.Action)
	assert.Equal(t, ViewJuniorDashboard, junior.View)

	senior := Decide(session.StateAuthenticated, models.RoleSenior, PathDashboard)
	assert.Equal(t, ActionRender, senior.Action)
	assert.Equal(t, ViewSeniorDashboard, senior.View)
}

func TestDecide_UnmatchedPaths(t *testing.T) {
	authed := Decide(session.StateAuthenticated, models.RoleJunior, "/no-such-view")
	assert.Equal(t, ActionRedirect, authed.Action)
	assert.Equal(t, PathDashboard, authed.RedirectTo)

	anon := Decide(session.StateAnonymous, "", "/no-such-view")
	assert.Equal(t, ActionRedirect, anon.Action)
	assert.Equal(t, PathLogin, anon.RedirectTo)
}

func TestDecide_DoubtDetailCapturesParam(t *testing.T) {
	d := Decide(session.StateAuthenticated, models.RoleJunior, "/doubts/abc-123")
	assert.Equal(t, ActionRender, d.Action)
	assert.Equal(t, ViewDoubtDetail, d.View)
	assert.Equal(t, "abc-123", d.Param)

	// /doubts/post is the create form, not a detail view
	post := Decide(session.StateAuthenticated, models.RoleJunior, PathDoubtPost)
	assert.Equal(t, ViewDoubtPost, post.View)

	// nested garbage under /doubts/ is unmatched
	deep := Decide(session.StateAuthenticated, models.RoleJunior, "/doubts/1/2")
	assert.Equal(t, ActionRedirect, deep.Action)
	assert.Equal(t, PathDashboard, deep.RedirectTo)
}

func TestDecide_AuthenticatedPublicPathsStillRender(t *testing.T) {
	d := Decide(session.StateAuthenticated, models.RoleJunior, PathLogin)
	assert.Equal(t, ActionRender, d.Action)
	assert.Equal(t, ViewLogin, d.View)
}

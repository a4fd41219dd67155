// Package guard decides, per navigation, whether the current session state
// permits rendering a requested view. Decide is a pure function of its
// inputs so routing policy stays unit-testable independent of rendering.
package guard

import (
	"strings"

	"github.com/smazurs/peerpoint/internal/client/models"
	"github.com/smazurs/peerpoint/internal/client/session"
)

// Navigable paths.
const (
	PathLogin          = "/login"
	PathSignup         = "/signup"
	PathForgotPassword = "/forgot-password"
	PathDashboard      = "/dashboard"
	PathProfile        = "/profile"
	PathProfileEdit    = "/profile/edit"
	PathDoubts         = "/doubts"
	PathDoubtPost      = "/doubts/post"
	PathTeams          = "/teams"
	PathTeamCreate     = "/teams/create"
	PathAISuggestions  = "/ai-suggestions"
)

// View names a renderable screen.
type View string

const (
	ViewLogin           View = "login"
	ViewSignup          View = "signup"
	ViewForgotPassword  View = "forgot-password"
	ViewJuniorDashboard View = "junior-dashboard"
	ViewSeniorDashboard View = "senior-dashboard"
	ViewProfile         View = "profile"
	ViewProfileEdit     View = "profile-edit"
	ViewDoubtList       View = "doubt-list"
	ViewDoubtDetail     View = "doubt-detail"
	ViewDoubtPost       View = "doubt-post"
	ViewTeamList        View = "team-list"
	ViewTeamCreate      View = "team-create"
	ViewAISuggestions   View = "ai-suggestions"
)

// Action is what the router should do with a navigation.
type Action int

const (
	// ActionLoading renders a loading placeholder and nothing else. Used
	// while the session state is still unknown, so no redirect fires
	// before the startup credential check finishes.
	ActionLoading Action = iota
	ActionRedirect
	ActionRender
)

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Action     Action
	View       View   // valid when Action == ActionRender
	RedirectTo string // valid when Action == ActionRedirect
	Param      string // path parameter (doubt id) when present
}

type route struct {
	view         View
	requiresAuth bool
}

var routes = map[string]route{
	PathLogin:          {view: ViewLogin},
	PathSignup:         {view: ViewSignup},
	PathForgotPassword: {view: ViewForgotPassword},
	PathDashboard:      {requiresAuth: true}, // role-dispatched below
	PathProfile:        {view: ViewProfile, requiresAuth: true},
	PathProfileEdit:    {view: ViewProfileEdit, requiresAuth: true},
	PathDoubts:         {view: ViewDoubtList, requiresAuth: true},
	PathDoubtPost:      {view: ViewDoubtPost, requiresAuth: true},
	PathTeams:          {view: ViewTeamList, requiresAuth: true},
	PathTeamCreate:     {view: ViewTeamCreate, requiresAuth: true},
	PathAISuggestions:  {view: ViewAISuggestions, requiresAuth: true},
}

// Decide maps (session state, role, requested path) to a routing decision.
// It has no side effects.
func Decide(state session.State, role models.Role, path string) Decision {
	if state == session.StateUnknown {
		return Decision{Action: ActionLoading}
	}

	r, param, ok := resolve(path)
	if !ok {
		// unmatched paths land on the authenticated default, else login
		if state == session.StateAuthenticated {
			return Decision{Action: ActionRedirect, RedirectTo: PathDashboard}
		}
		return Decision{Action: ActionRedirect, RedirectTo: PathLogin}
	}

	if r.requiresAuth && state != session.StateAuthenticated {
		return Decision{Action: ActionRedirect, RedirectTo: PathLogin}
	}

	view := r.view
	if path == PathDashboard {
		// two variants only; role is nominally extensible but anything
		// that is not junior renders the senior dashboard
		if role == models.RoleJunior {
			view = ViewJuniorDashboard
		} else {
			view = ViewSeniorDashboard
		}
	}

	return Decision{Action: ActionRender, View: view, Param: param}
}

// resolve matches exact routes first, then the one parameterized route,
// /doubts/{id}.
func resolve(path string) (route, string, bool) {
	if r, ok := routes[path]; ok {
		return r, "", true
	}

	if id, ok := strings.CutPrefix(path, PathDoubts+"/"); ok {
		if id != "" && !strings.Contains(id, "/") {
			return route{view: ViewDoubtDetail, requiresAuth: true}, id, true
		}
	}

	return route{}, "", false
}

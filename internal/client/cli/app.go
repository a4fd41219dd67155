package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/smazurs/peerpoint/internal/client/client"
	"github.com/smazurs/peerpoint/internal/client/config"
	"github.com/smazurs/peerpoint/internal/client/credstore"
	"github.com/smazurs/peerpoint/internal/client/guard"
	"github.com/smazurs/peerpoint/internal/client/notices"
	"github.com/smazurs/peerpoint/internal/client/services"
	"github.com/smazurs/peerpoint/internal/client/session"
	"github.com/smazurs/peerpoint/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	api         client.Client
	manager     *session.Manager
	bus         *notices.Bus
	doubts      services.DoubtService
	teams       services.TeamService
	feed        services.SuggestionService
	log         logging.Logger
	reader      *bufio.Reader
	doubtFilter services.DoubtFilter

	// mode is flipped by the connectivity watcher goroutine and read from
	// the REPL goroutine
	modeMu sync.Mutex
	mode   Mode
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := credstore.InitDatabase(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	log := logging.NewDefault()
	api := client.NewHTTPClient(c.EndpointAddr, c.RequestTimeout)
	bus := notices.New(clockwork.NewRealClock(), c.NoticeTTL)
	manager := session.NewManager(api, credstore.New(db), bus, log)

	a := &App{
		config:  c,
		api:     api,
		manager: manager,
		bus:     bus,
		doubts:  services.NewDoubtService(api, manager),
		teams:   services.NewTeamService(api, manager),
		feed:    services.NewSuggestionService(api, manager),
		log:     log,
		mode:    ModeOnline,
		reader:  bufio.NewReader(os.Stdin),
	}

	a.watchNotices()

	return a, nil
}

// watchNotices prints every newly raised notice on the terminal. The bus
// hands listeners the full visible list on each change; tracking the highest
// id seen keeps the backlog from being printed again.
func (a *App) watchNotices() {
	var (
		mu       sync.Mutex
		lastSeen int64
	)
	a.bus.Subscribe(func(list []notices.Notice) {
		mu.Lock()
		defer mu.Unlock()
		for _, n := range list {
			if n.ID <= lastSeen {
				continue
			}
			lastSeen = n.ID
			printlnFn(fmt.Sprintf("[%s] %s", n.Kind, n.Message))
		}
	})
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	if a.mode == mode {
		a.modeMu.Unlock()
		return
	}
	a.mode = mode
	a.modeMu.Unlock()

	if mode == ModeOffline {
		a.bus.Raise("Server unreachable. Working offline; actions will fail until it returns.", notices.KindWarning)
		return
	}
	printlnFn(fmt.Sprintf("Switched to %s mode", mode))
}

func (a *App) currentMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

// Run restores any saved session, starts the connectivity watcher and
// blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.api.Close()

	a.manager.Bootstrap(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	_ = a.Open(ctx, guard.PathDashboard)
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	_, state, _ := a.manager.Snapshot()
	return state == session.StateAuthenticated
}

func (a *App) getStatus() string {
	s := ""
	sess, state, _ := a.manager.Snapshot()
	if state == session.StateAuthenticated {
		s = sess.Email + " "
	}
	if mode := a.currentMode(); mode != "" {
		s = s + string(mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Open navigates to path. The guard decides per navigation; redirects are
// followed until a view renders. The guard never produces a redirect chain
// longer than one hop, so the loop is bounded.
func (a *App) Open(ctx context.Context, path string) error {
	for {
		sess, state, _ := a.manager.Snapshot()
		d := guard.Decide(state, sess.Role, path)

		switch d.Action {
		case guard.ActionLoading:
			printlnFn("Loading...")
			return nil
		case guard.ActionRedirect:
			if d.RedirectTo == guard.PathLogin && path != guard.PathLogin {
				printlnFn("Please log in first.")
			}
			path = d.RedirectTo
		case guard.ActionRender:
			return a.render(ctx, d)
		}
	}
}

func (a *App) render(ctx context.Context, d guard.Decision) error {
	switch d.View {
	case guard.ViewLogin:
		return a.loginForm(ctx)
	case guard.ViewSignup:
		return a.signupForm(ctx)
	case guard.ViewForgotPassword:
		return a.forgotForm(ctx)
	case guard.ViewJuniorDashboard:
		return a.juniorDashboard(ctx)
	case guard.ViewSeniorDashboard:
		return a.seniorDashboard(ctx)
	case guard.ViewProfile:
		return a.profileView(ctx)
	case guard.ViewProfileEdit:
		return a.profileEditForm(ctx)
	case guard.ViewDoubtList:
		return a.doubtListView(ctx)
	case guard.ViewDoubtDetail:
		return a.doubtDetailView(ctx, d.Param)
	case guard.ViewDoubtPost:
		return a.postDoubtForm(ctx)
	case guard.ViewTeamList:
		return a.teamListView(ctx)
	case guard.ViewTeamCreate:
		return a.createTeamForm(ctx)
	case guard.ViewAISuggestions:
		return a.suggestionsView(ctx)
	}
	return fmt.Errorf("no renderer for view %q", d.View)
}

// Notices prints every currently visible notice.
func (a *App) Notices() {
	active := a.bus.Active()
	if len(active) == 0 {
		printlnFn("No notices.")
		return
	}
	for _, n := range active {
		printlnFn(fmt.Sprintf("#%d [%s] %s", n.ID, n.Kind, n.Message))
	}
}

// Logout ends the session. Safe to call when not logged in.
func (a *App) Logout(ctx context.Context) error {
	a.manager.Logout(ctx)
	return nil
}

// StartOnlineStatusWatcher probes server reachability on a fixed interval
// and flips the connectivity mode shown in the prompt.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.api.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

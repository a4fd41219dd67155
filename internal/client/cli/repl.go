package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/smazurs/peerpoint/internal/client/guard"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Open(ctx context.Context, path string) error
	OpenDoubt(ctx context.Context, id string) error
	Answer(ctx context.Context, doubtID string) error
	Accept(ctx context.Context, doubtID, answerID string) error
	Upvote(ctx context.Context, doubtID, answerID string) error
	SetDoubtFilter(field, value string) error
	Teammates(ctx context.Context, skillsCSV string) error
	Notices()
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the PeerPoint client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Navigation commands resolve to
// paths; the access guard decides per navigation whether the view renders,
// so a protected screen requested while anonymous lands on the login form.
// The loop exits on scanner EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                  — show available commands
//	  - signup | register     — create an account
//	  - login                 — authenticate
//	  - forgot                — request a password reset
//	  - exit | quit           — leave the program
//
//	Logged in:
//	  - home                  — role-specific dashboard
//	  - (d)oubts              — list doubts with the active filter
//	  - doubt <id>            — show one doubt with its answers
//	  - post                  — post a new doubt
//	  - answer <id>           — answer a doubt
//	  - accept <id> <aid>     — accept an answer on your doubt
//	  - upvote <id> <aid>     — upvote an answer
//	  - search|domain|status|sort <v> — adjust the doubt filter
//	  - teams / newteam       — browse or create project teams
//	  - teammates <skills>    — teammate suggestions for comma-separated skills
//	  - suggest               — study suggestion feed
//	  - profile / edit        — view or edit your profile
//	  - notices               — show visible notices
//	  - logout                — end the session
//	  - exit | quit           — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pp> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: home, (d)oubts, doubt <id>, post, answer <id>, accept <id> <aid>, upvote <id> <aid>, search/domain/status/sort <v>, teams, newteam, teammates <skills>, suggest, profile, edit, notices, logout, exit")
			} else {
				printlnFn("Available commands: login, signup, forgot, exit")
			}

		case "login":
			_ = a.Open(ctx, guard.PathLogin)

		case "signup", "register":
			_ = a.Open(ctx, guard.PathSignup)

		case "forgot":
			_ = a.Open(ctx, guard.PathForgotPassword)

		case "home", "dashboard":
			_ = a.Open(ctx, guard.PathDashboard)

		case "d", "doubts", "list":
			_ = a.Open(ctx, guard.PathDoubts)

		case "doubt":
			if len(args) == 0 {
				printlnFn("Usage: doubt <id>")
				continue
			}
			_ = a.OpenDoubt(ctx, args[0])

		case "post":
			_ = a.Open(ctx, guard.PathDoubtPost)

		case "answer":
			if len(args) == 0 {
				printlnFn("Usage: answer <doubt-id>")
				continue
			}
			_ = a.Answer(ctx, args[0])

		case "accept":
			if len(args) < 2 {
				printlnFn("Usage: accept <doubt-id> <answer-id>")
				continue
			}
			_ = a.Accept(ctx, args[0], args[1])

		case "upvote":
			if len(args) < 2 {
				printlnFn("Usage: upvote <doubt-id> <answer-id>")
				continue
			}
			_ = a.Upvote(ctx, args[0], args[1])

		case "search", "domain", "status", "sort":
			if err := a.SetDoubtFilter(cmd, strings.Join(args, " ")); err != nil {
				printlnFn(err.Error())
				continue
			}
			_ = a.Open(ctx, guard.PathDoubts)

		case "teams":
			_ = a.Open(ctx, guard.PathTeams)

		case "newteam":
			_ = a.Open(ctx, guard.PathTeamCreate)

		case "teammates":
			if len(args) == 0 {
				printlnFn("Usage: teammates <skill,skill,...>")
				continue
			}
			_ = a.Teammates(ctx, strings.Join(args, " "))

		case "suggest", "ai":
			_ = a.Open(ctx, guard.PathAISuggestions)

		case "profile":
			_ = a.Open(ctx, guard.PathProfile)

		case "edit":
			_ = a.Open(ctx, guard.PathProfileEdit)

		case "notices":
			a.Notices()

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

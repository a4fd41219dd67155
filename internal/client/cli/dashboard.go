package cli

import (
	"context"
	"fmt"

	"github.com/smazurs/peerpoint/internal/client/models"
	"github.com/smazurs/peerpoint/internal/client/notices"
	"github.com/smazurs/peerpoint/internal/client/services"
)

const dashboardRecent = 3

// juniorDashboard greets the user and shows their streak plus the newest
// doubts, mirroring the ask-first experience juniors get.
func (a *App) juniorDashboard(ctx context.Context) error {
	sess, _, _ := a.manager.Snapshot()

	printlnFn(fmt.Sprintf("Welcome back, %s!", sess.DisplayName))
	printlnFn(fmt.Sprintf("Streak: %d days  Reputation: %d", sess.StreakDays, sess.ReputationScore))

	doubts, err := a.doubts.List(ctx, services.DoubtFilter{SortBy: services.SortNewest})
	if err != nil {
		a.log.Warn(ctx, "dashboard doubts failed", "error", err)
		return nil
	}
	if len(doubts) == 0 {
		printlnFn("No recent doubts. Type 'post' to ask one.")
		return nil
	}

	printlnFn("Recent doubts:")
	for i, d := range doubts {
		if i == dashboardRecent {
			break
		}
		printlnFn("  " + formatDoubtLine(d))
	}
	return nil
}

// seniorDashboard leads with unanswered doubts, the answer-first experience
// seniors get.
func (a *App) seniorDashboard(ctx context.Context) error {
	sess, _, _ := a.manager.Snapshot()

	printlnFn(fmt.Sprintf("Welcome back, %s!", sess.DisplayName))
	printlnFn(fmt.Sprintf("Reputation: %d", sess.ReputationScore))

	pending, err := a.doubts.List(ctx, services.DoubtFilter{
		Status: models.DoubtStatusPending,
		SortBy: services.SortUrgent,
	})
	if err != nil {
		a.log.Warn(ctx, "dashboard doubts failed", "error", err)
		return nil
	}
	if len(pending) == 0 {
		printlnFn("Nothing waiting for an answer. Nice.")
		return nil
	}

	printlnFn(fmt.Sprintf("%d doubt(s) waiting for an answer:", len(pending)))
	for i, d := range pending {
		if i == dashboardRecent {
			break
		}
		printlnFn("  " + formatDoubtLine(d))
	}
	return nil
}

// suggestionsView prints the study-suggestion feed.
func (a *App) suggestionsView(ctx context.Context) error {
	feed, err := a.feed.Study(ctx)
	if err != nil {
		a.log.Warn(ctx, "suggestion feed failed", "error", err)
		a.bus.Raise("Could not load suggestions.", notices.KindError)
		return nil
	}

	if len(feed) == 0 {
		printlnFn("No suggestions right now.")
		return nil
	}
	for _, s := range feed {
		printlnFn(fmt.Sprintf("[%s] %s", s.Category, s.Text))
	}
	return nil
}

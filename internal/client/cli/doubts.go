package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/smazurs/peerpoint/internal/client/guard"
	"github.com/smazurs/peerpoint/internal/client/models"
	"github.com/smazurs/peerpoint/internal/client/notices"
	"github.com/smazurs/peerpoint/internal/client/services"
	"github.com/smazurs/peerpoint/internal/common"
)

func (a *App) doubtListView(ctx context.Context) error {
	doubts, err := a.doubts.List(ctx, a.doubtFilter)
	if err != nil {
		a.log.Warn(ctx, "doubt list failed", "error", err)
		a.bus.Raise("Could not load doubts.", notices.KindError)
		return nil
	}

	if f := a.filterSummary(); f != "" {
		printlnFn("Filter: " + f)
	}
	if len(doubts) == 0 {
		printlnFn("No doubts match.")
		return nil
	}
	for _, d := range doubts {
		printlnFn(formatDoubtLine(d))
	}
	return nil
}

func formatDoubtLine(d models.Doubt) string {
	return fmt.Sprintf("%s  [%s/%s/%s]  %s  (%d answers, %d views)",
		d.ID, d.Domain, d.Status, d.Urgency, d.Title, d.AnswerCount, d.Views)
}

func (a *App) filterSummary() string {
	var parts []string
	if a.doubtFilter.Search != "" {
		parts = append(parts, "search="+a.doubtFilter.Search)
	}
	if a.doubtFilter.Domain != "" {
		parts = append(parts, "domain="+a.doubtFilter.Domain)
	}
	if a.doubtFilter.Status != "" {
		parts = append(parts, "status="+string(a.doubtFilter.Status))
	}
	if a.doubtFilter.SortBy != "" && a.doubtFilter.SortBy != services.SortNewest {
		parts = append(parts, "sort="+string(a.doubtFilter.SortBy))
	}
	return strings.Join(parts, " ")
}

// SetDoubtFilter adjusts one dimension of the active doubt filter. An empty
// value clears that dimension.
func (a *App) SetDoubtFilter(field, value string) error {
	switch field {
	case "search":
		a.doubtFilter.Search = value
	case "domain":
		a.doubtFilter.Domain = value
	case "status":
		status := models.DoubtStatus(value)
		if value != "" && !status.Valid() {
			return fmt.Errorf("unknown status %q (pending, answered, accepted, closed)", value)
		}
		a.doubtFilter.Status = status
	case "sort":
		order := services.SortOrder(value)
		if value != "" && !order.Valid() {
			return fmt.Errorf("unknown sort order %q (newest, oldest, most_answers, most_views, urgent)", value)
		}
		a.doubtFilter.SortBy = order
	default:
		return fmt.Errorf("unknown filter %q", field)
	}
	return nil
}

// OpenDoubt navigates to a single doubt's thread.
func (a *App) OpenDoubt(ctx context.Context, id string) error {
	return a.Open(ctx, guard.PathDoubts+"/"+id)
}

func (a *App) doubtDetailView(ctx context.Context, id string) error {
	detail, err := a.doubts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("Doubt not found.")
			return nil
		}
		a.log.Warn(ctx, "doubt fetch failed", "error", err)
		a.bus.Raise("Could not load the doubt.", notices.KindError)
		return nil
	}

	printlnFn(detail.Title)
	printlnFn(fmt.Sprintf("%s | %s | %s | asked by %s", detail.Domain, detail.Status, detail.Urgency, authorName(detail.Doubt)))
	printlnFn(detail.Description)
	if len(detail.Tags) > 0 {
		printlnFn("Tags: " + strings.Join(detail.Tags, ", "))
	}

	if len(detail.Answers) == 0 {
		printlnFn("No answers yet.")
		return nil
	}
	printlnFn(fmt.Sprintf("--- %d answer(s) ---", len(detail.Answers)))
	for _, ans := range detail.Answers {
		mark := ""
		if ans.IsAccepted {
			mark = " [accepted]"
		}
		printlnFn(fmt.Sprintf("%s  %s (+%d)%s", ans.ID, ans.Author.Name, ans.Upvotes, mark))
		printlnFn("  " + ans.Text)
	}
	return nil
}

func authorName(d models.Doubt) string {
	if d.IsAnonymous {
		return "Anonymous"
	}
	return d.Author.Name
}

// postDoubtForm collects and validates a new doubt, then submits it.
// Validation problems stay on the form; nothing is sent until the draft
// passes.
func (a *App) postDoubtForm(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title (at least 10 characters)", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getMultiline(a.reader, "Describe your doubt (at least 20 characters)", os.Stdout)
	if err != nil {
		return err
	}
	domain, err := getSimpleText(a.reader, "Domain ("+strings.Join(models.DoubtDomains, ", ")+")", os.Stdout)
	if err != nil {
		return err
	}
	tags, err := getCSV(a.reader, "Tags", os.Stdout)
	if err != nil {
		return err
	}
	urgency, err := getSimpleText(a.reader, "Urgency (low/medium/high)", os.Stdout)
	if err != nil {
		return err
	}
	if urgency == "" {
		urgency = string(models.UrgencyMedium)
	}
	anon, err := getSimpleText(a.reader, "Post anonymously? (y/N)", os.Stdout)
	if err != nil {
		return err
	}

	draft := models.DoubtDraft{
		Title:       title,
		Description: description,
		Domain:      domain,
		Tags:        tags,
		Urgency:     models.Urgency(urgency),
		IsAnonymous: strings.EqualFold(anon, "y"),
	}

	if problems := draft.Validate(); len(problems) > 0 {
		for field, msg := range problems {
			printlnFn(fmt.Sprintf("%s: %s", field, msg))
		}
		return nil
	}

	created, err := a.doubts.Post(ctx, draft)
	if err != nil {
		a.log.Warn(ctx, "doubt post failed", "error", err)
		a.bus.Raise("Could not post your doubt.", notices.KindError)
		return nil
	}

	a.bus.Raise("Doubt posted.", notices.KindSuccess)
	printlnFn("Posted as " + created.ID)
	return nil
}

// Answer prompts for an answer body and posts it to the given doubt.
func (a *App) Answer(ctx context.Context, doubtID string) error {
	text, err := getMultiline(a.reader, "Your answer", os.Stdout)
	if err != nil {
		return err
	}
	if text == "" {
		printlnFn("Answer text is required.")
		return nil
	}

	if _, err := a.doubts.Answer(ctx, doubtID, text); err != nil {
		a.log.Warn(ctx, "answer post failed", "error", err)
		a.bus.Raise("Could not post your answer.", notices.KindError)
		return nil
	}

	a.bus.Raise("Answer posted.", notices.KindSuccess)
	return nil
}

// Accept marks an answer as accepted on the caller's doubt.
func (a *App) Accept(ctx context.Context, doubtID, answerID string) error {
	if err := a.doubts.Accept(ctx, doubtID, answerID); err != nil {
		a.log.Warn(ctx, "accept failed", "error", err)
		a.bus.Raise("Could not accept the answer.", notices.KindError)
		return nil
	}
	a.bus.Raise("Answer accepted.", notices.KindSuccess)
	return nil
}

// Upvote adds an upvote to an answer.
func (a *App) Upvote(ctx context.Context, doubtID, answerID string) error {
	if err := a.doubts.Upvote(ctx, doubtID, answerID); err != nil {
		a.log.Warn(ctx, "upvote failed", "error", err)
		a.bus.Raise("Could not upvote the answer.", notices.KindError)
		return nil
	}
	a.bus.Raise("Upvoted.", notices.KindSuccess)
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/smazurs/peerpoint/internal/client/models"
	"github.com/smazurs/peerpoint/internal/client/notices"
)

func (a *App) teamListView(ctx context.Context) error {
	teams, err := a.teams.List(ctx)
	if err != nil {
		a.log.Warn(ctx, "team list failed", "error", err)
		a.bus.Raise("Could not load teams.", notices.KindError)
		return nil
	}

	if len(teams) == 0 {
		printlnFn("No open teams right now.")
		return nil
	}
	for _, t := range teams {
		printlnFn(fmt.Sprintf("%s  [%s]  %s — needs %s (team of %d, deadline %s)",
			t.ID, t.ProjectType, t.ProjectName, strings.Join(t.RequiredSkills, ", "), t.TeamSize, t.Deadline))
	}
	return nil
}

// createTeamForm collects and validates a team posting, then submits it.
func (a *App) createTeamForm(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Project name", os.Stdout)
	if err != nil {
		return err
	}
	projectType, err := getSimpleText(a.reader, "Project type (hackathon/internship/research/project/startup/other)", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getMultiline(a.reader, "Describe the project (at least 50 characters)", os.Stdout)
	if err != nil {
		return err
	}
	skills, err := getCSV(a.reader, "Required skills", os.Stdout)
	if err != nil {
		return err
	}
	sizeText, err := getSimpleText(a.reader, "Team size (including you)", os.Stdout)
	if err != nil {
		return err
	}
	size, _ := strconv.Atoi(sizeText)
	deadline, err := getSimpleText(a.reader, "Deadline (free text, optional)", os.Stdout)
	if err != nil {
		return err
	}
	contact, err := getSimpleText(a.reader, "Contact info", os.Stdout)
	if err != nil {
		return err
	}

	draft := models.TeamDraft{
		ProjectName:    name,
		ProjectType:    models.ProjectType(projectType),
		Description:    description,
		RequiredSkills: skills,
		TeamSize:       size,
		Deadline:       deadline,
		ContactInfo:    contact,
	}

	if problems := draft.Validate(); len(problems) > 0 {
		for field, msg := range problems {
			printlnFn(fmt.Sprintf("%s: %s", field, msg))
		}
		return nil
	}

	created, err := a.teams.Create(ctx, draft)
	if err != nil {
		a.log.Warn(ctx, "team create failed", "error", err)
		a.bus.Raise("Could not create the team.", notices.KindError)
		return nil
	}

	a.bus.Raise("Team created.", notices.KindSuccess)
	printlnFn("Created as " + created.ID)
	return nil
}

// Teammates prints teammate suggestions for a comma-separated skill list.
func (a *App) Teammates(ctx context.Context, skillsCSV string) error {
	skills := splitCSV(skillsCSV)
	if len(skills) == 0 {
		printlnFn("Give at least one skill, e.g.: teammates React,Go")
		return nil
	}

	suggestions, err := a.teams.Suggest(ctx, skills)
	if err != nil {
		a.log.Warn(ctx, "teammate suggestions failed", "error", err)
		a.bus.Raise("Could not fetch teammate suggestions.", notices.KindError)
		return nil
	}

	if len(suggestions) == 0 {
		printlnFn("No matches for those skills.")
		return nil
	}
	for _, s := range suggestions {
		printlnFn(fmt.Sprintf("%s  %s (rep %d, responds %s), %d matched skill(s): %s",
			s.ID, s.Name, s.Reputation, s.ResponseRate, s.MatchedSkills, strings.Join(s.Skills, ", ")))
	}
	return nil
}

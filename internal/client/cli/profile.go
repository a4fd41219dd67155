package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/smazurs/peerpoint/internal/client/models"
	"github.com/smazurs/peerpoint/internal/client/notices"
)

func (a *App) profileView(ctx context.Context) error {
	sess, _, _ := a.manager.Snapshot()

	printlnFn(fmt.Sprintf("%s <%s>", sess.DisplayName, sess.Email))
	printlnFn(fmt.Sprintf("Role: %s  College: %s  Department: %s  Year: %s", sess.Role, sess.College, sess.Department, sess.Year))
	printlnFn(fmt.Sprintf("Streak: %d days  Reputation: %d", sess.StreakDays, sess.ReputationScore))
	if len(sess.Interests) > 0 {
		printlnFn("Interests: " + strings.Join(sess.Interests, ", "))
	}
	if len(sess.Skills) > 0 {
		printlnFn("Skills: " + strings.Join(sess.Skills, ", "))
	}
	if sess.Bio != "" {
		printlnFn("Bio: " + sess.Bio)
	}
	return nil
}

// profileEditForm collects a partial profile edit. Empty answers leave the
// field unchanged. The edit is pushed to the platform first and only then
// merged into the local session, so the stored profile never runs ahead of
// the server's copy.
func (a *App) profileEditForm(ctx context.Context) error {
	sess, _, _ := a.manager.Snapshot()
	printlnFn("Leave a field empty to keep its current value.")

	var update models.ProfileUpdate

	name, err := getSimpleText(a.reader, fmt.Sprintf("Name [%s]", sess.DisplayName), os.Stdout)
	if err != nil {
		return err
	}
	if name != "" {
		update.DisplayName = &name
	}

	college, err := getSimpleText(a.reader, fmt.Sprintf("College [%s]", sess.College), os.Stdout)
	if err != nil {
		return err
	}
	if college != "" {
		update.College = &college
	}

	department, err := getSimpleText(a.reader, fmt.Sprintf("Department [%s]", sess.Department), os.Stdout)
	if err != nil {
		return err
	}
	if department != "" {
		update.Department = &department
	}

	year, err := getSimpleText(a.reader, fmt.Sprintf("Year [%s]", sess.Year), os.Stdout)
	if err != nil {
		return err
	}
	if year != "" {
		update.Year = &year
	}

	bio, err := getMultiline(a.reader, "Bio (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if bio != "" {
		update.Bio = &bio
	}

	interests, err := getCSV(a.reader, "Interests", os.Stdout)
	if err != nil {
		return err
	}
	update.Interests = interests

	skills, err := getCSV(a.reader, "Skills", os.Stdout)
	if err != nil {
		return err
	}
	update.Skills = skills

	if err := a.api.UpdateProfile(ctx, sess.AuthToken, update); err != nil {
		a.log.Warn(ctx, "profile update failed", "error", err)
		a.bus.Raise("Could not update your profile. Try again later.", notices.KindError)
		return nil
	}

	return a.manager.UpdateProfile(ctx, update)
}

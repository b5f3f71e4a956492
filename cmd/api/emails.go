package main

import (
	"context"
	"fmt"

	"parcacote/internal/mailer"
	"parcacote/internal/notifications"
)

func (app *application) sendSubmissionReceivedEmail(firstName, email, playgroundName string) error {
	vars := struct {
		Username       string
		PlaygroundName string
	}{
		Username:       firstName,
		PlaygroundName: playgroundName,
	}

	status, err := app.mailer.Send(mailer.SubmissionReceivedTemplate, firstName, email, vars)
	if err != nil {
		return err
	}
	app.logger.Infow("submission email sent", "status code", status)
	return nil
}

func (app *application) sendApprovalEmail(firstName, email, playgroundName, shareCode string) error {
	vars := struct {
		Username       string
		PlaygroundName string
		ShareURL       string
	}{
		Username:       firstName,
		PlaygroundName: playgroundName,
		ShareURL:       fmt.Sprintf("%s/p/%s", app.config.frontendURL, shareCode),
	}

	status, err := app.mailer.Send(mailer.SubmissionApprovedTemplate, firstName, email, vars)
	if err != nil {
		return err
	}
	app.logger.Infow("approval email sent", "status code", status)
	return nil
}

func (app *application) sendRejectionEmail(firstName, email, playgroundName string, reason *string) error {
	vars := struct {
		Username       string
		PlaygroundName string
		Reason         string
	}{
		Username:       firstName,
		PlaygroundName: playgroundName,
	}
	if reason != nil {
		vars.Reason = *reason
	}

	status, err := app.mailer.Send(mailer.SubmissionRejectedTemplate, firstName, email, vars)
	if err != nil {
		return err
	}
	app.logger.Infow("rejection email sent", "status code", status)
	return nil
}

func notifyAdmins(ctx context.Context, app *application, playgroundID int64, playgroundName string) error {
	return notifications.NotifyAdminsOfSubmission(ctx, app.push, app.store, playgroundID, playgroundName)
}

package mailer

import "embed"

const (
	FromName                   = "Parc à Côté"
	maxRetries                 = 3
	SubmissionReceivedTemplate = "submission_received.tmpl"
	SubmissionApprovedTemplate = "submission_approved.tmpl"
	SubmissionRejectedTemplate = "submission_rejected.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}

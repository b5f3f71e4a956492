package notifications

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"parcacote/internal/domain/storage"

	"github.com/9ssi7/exponent"
)

type SubmissionEvent string

const (
	SubmissionCreated  SubmissionEvent = "CREATED"
	SubmissionApproved SubmissionEvent = "APPROVED"
	SubmissionRejected SubmissionEvent = "REJECTED"
)

// NotifyAdminsOfSubmission tells every admin that a new playground is
// waiting for moderation.
func NotifyAdminsOfSubmission(ctx context.Context, push PushSender, store *storage.Container, playgroundID int64, playgroundName string) error {
	admins, err := store.Users.ListAdmins(ctx)
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		return errors.New("no admin users")
	}

	adminIDs := make([]int64, 0, len(admins))
	for _, a := range admins {
		adminIDs = append(adminIDs, a.ID)
	}

	tokensMap, err := store.PushTokens.GetByUserIDs(ctx, adminIDs)
	if err != nil {
		return err
	}

	title := "Nouvelle aire de jeux à valider"
	body := fmt.Sprintf("%q attend votre validation", playgroundName)
	screen := fmt.Sprintf("admin/playgrounds/%s", strconv.FormatInt(playgroundID, 10))

	msgs := make([]*exponent.Message, 0)
	for _, tokens := range tokensMap {
		for _, t := range dedupe(tokens) {
			token := exponent.Token(t)
			msgs = append(msgs, &exponent.Message{
				To:    []*exponent.Token{&token},
				Title: title,
				Body:  body,
				Data: map[string]string{
					"type":          "submission",
					"event":         string(SubmissionCreated),
					"playground_id": strconv.FormatInt(playgroundID, 10),
					"screen":        screen,
				},
			})
		}
	}
	if len(msgs) == 0 {
		return errors.New("no push tokens")
	}

	_, err = push.Publish(ctx, msgs)
	return err
}

// NotifySubmitterOfDecision tells the submitter that their playground
// was approved or rejected.
func NotifySubmitterOfDecision(ctx context.Context, push PushSender, store *storage.Container, userID, playgroundID int64, playgroundName string, event SubmissionEvent) error {
	tokensMap, err := store.PushTokens.GetByUserIDs(ctx, []int64{userID})
	if err != nil {
		return err
	}
	tokens := dedupe(tokensMap[userID])
	if len(tokens) == 0 {
		return errors.New("no push tokens")
	}

	var title, body string
	switch event {
	case SubmissionApproved:
		title = "Aire de jeux publiée !"
		body = fmt.Sprintf("%q est maintenant visible sur la carte 🎉", playgroundName)
	case SubmissionRejected:
		title = "Proposition refusée"
		body = fmt.Sprintf("%q n'a pas pu être publiée", playgroundName)
	default:
		title = "Mise à jour de votre proposition"
		body = fmt.Sprintf("%q a été mise à jour", playgroundName)
	}
	screen := fmt.Sprintf("playgrounds/%s", strconv.FormatInt(playgroundID, 10))

	msgs := make([]*exponent.Message, 0, len(tokens))
	for _, t := range tokens {
		token := exponent.Token(t)
		msgs = append(msgs, &exponent.Message{
			To:    []*exponent.Token{&token},
			Title: title,
			Body:  body,
			Data: map[string]string{
				"type":          "submission",
				"event":         string(event),
				"playground_id": strconv.FormatInt(playgroundID, 10),
				"screen":        screen,
			},
		})
	}

	_, err = push.Publish(ctx, msgs)
	return err
}

func dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

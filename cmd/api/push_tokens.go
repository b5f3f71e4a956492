package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type pushTokenPayload struct {
	Token      string          `json:"token" validate:"required"`
	DeviceInfo json.RawMessage `json:"device_info,omitempty"`
}

// savePushTokenHandler godoc
//
//	@Summary		Register an Expo push token
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		pushTokenPayload	true	"Expo push token"
//	@Success		204		{string}	string				"No Content"
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/users/push-token [post]
func (app *application) savePushTokenHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload pushTokenPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	token := strings.TrimSpace(payload.Token)
	if !strings.HasPrefix(token, "ExponentPushToken[") {
		app.badRequestResponse(w, r, fmt.Errorf("invalid expo push token"))
		return
	}

	if err := app.store.PushTokens.AddOrUpdate(r.Context(), user.ID, token, payload.DeviceInfo); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// removePushTokenHandler godoc
//
//	@Summary		Remove an Expo push token
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		pushTokenPayload	true	"Expo push token"
//	@Success		204		{string}	string				"No Content"
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/users/push-token [delete]
func (app *application) removePushTokenHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload pushTokenPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.PushTokens.Remove(r.Context(), user.ID, strings.TrimSpace(payload.Token)); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

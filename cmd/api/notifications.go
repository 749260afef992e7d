package main

import (
	"net/http"
)

// listNotificationsHandler godoc
//
//	@Summary		Drains pending notifications of the session
//	@Description	Each notification is returned once, oldest first
//	@Tags			notifications
//	@Produce		json
//	@Success		200	{array}	notifications.Notification
//	@Security		ApiKeyAuth
//	@Router			/notifications [get]
func (app *application) listNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	sess := getSessionFromContext(r)
	if err := app.jsonResponse(w, http.StatusOK, sess.Notifications.Drain()); err != nil {
		app.internalServerError(w, r, err)
	}
}

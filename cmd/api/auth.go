package main

import (
	"errors"
	"net/http"
	"time"

	"catalogadmin/internal/auth"
)

type CreateTokenPayload struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// createTokenHandler godoc
//
//	@Summary		Creates an operator session token
//	@Description	Checks the operator credentials and opens a new session with its own view state
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateTokenPayload	true	"Operator credentials"
//	@Success		201		{object}	TokenResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/authentication/token [post]
func (app *application) createTokenHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateTokenPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.operator.Verify(payload.Username, payload.Password); err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			app.unauthorizedErrorResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	sess := app.sessions.Create(payload.Username)
	token, err := app.authenticator.GenerateToken(payload.Username, sess.ID)
	if err != nil {
		app.sessions.Remove(sess.ID)
		app.internalServerError(w, r, err)
		return
	}

	res := TokenResponse{
		Token:     token,
		SessionID: sess.ID,
		ExpiresAt: time.Now().Add(app.config.auth.token.exp),
	}
	if err := app.jsonResponse(w, http.StatusCreated, res); err != nil {
		app.internalServerError(w, r, err)
	}
}

// logoutHandler godoc
//
//	@Summary	Ends the operator session
//	@Tags		authentication
//	@Success	204
//	@Security	ApiKeyAuth
//	@Router		/authentication/logout [post]
func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	sess := getSessionFromContext(r)
	app.sessions.Remove(sess.ID)
	app.logger.Infow("session closed", "session_id", sess.ID, "subject", sess.Subject)
	w.WriteHeader(http.StatusNoContent)
}

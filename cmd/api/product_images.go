package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"catalogadmin/internal/catalogapi"
	"catalogadmin/internal/session"
	"catalogadmin/internal/upload"
)

type OpenUploadPayload struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	VariantID *int64 `json:"variant_id" validate:"omitempty,gt=0"`
}

// UploadResponse is the upload dialog as the UI renders it.
type UploadResponse struct {
	upload.Snapshot
	// CurrentImageURL previews the image the target has now.
	CurrentImageURL *string `json:"current_image_url"`
	// ImageURL is the uploaded image, cache-busted since paths may be reused.
	ImageURL *string `json:"image_url,omitempty"`
}

func (app *application) presentUpload(sess *session.Session) UploadResponse {
	snap := sess.Upload.Status()
	res := UploadResponse{Snapshot: snap}

	if t := snap.Target; t != nil {
		if p, ok := app.catalog.Get(t.ProductID); ok {
			current := p.Image
			if t.IsVariant() {
				if v, ok := p.Variant(*t.VariantID); ok {
					current = v.Image
				}
			}
			res.CurrentImageURL = app.images.Resolve(current)
		}
	}
	if snap.ImagePath != "" && snap.UploadedAt != nil {
		path := snap.ImagePath
		res.ImageURL = app.images.ResolveBusted(&path, strconv.FormatInt(snap.UploadedAt.UnixMilli(), 10))
	}
	return res
}

// openUploadHandler godoc
//
//	@Summary	Opens the upload dialog for a product or one of its variants
//	@Tags		uploads
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		OpenUploadPayload	true	"Upload target"
//	@Success	200		{object}	UploadResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Security	ApiKeyAuth
//	@Router		/uploads/open [post]
func (app *application) openUploadHandler(w http.ResponseWriter, r *http.Request) {
	var payload OpenUploadPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	sess := getSessionFromContext(r)
	err := sess.Upload.Open(upload.Target{ProductID: payload.ProductID, VariantID: payload.VariantID})
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrBusy):
			app.conflictResponse(w, r, err)
		case errors.Is(err, upload.ErrUnknownTarget):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, app.presentUpload(sess)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// submitUploadHandler godoc
//
//	@Summary		Uploads the selected image to the open target
//	@Description	PNG, JPG, GIF up to 10MB. On failure the dialog stays open for a retry
//	@Tags			uploads
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			image	formData	file	true	"Image file"
//	@Success		200		{object}	UploadResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/uploads [post]
func (app *application) submitUploadHandler(w http.ResponseWriter, r *http.Request) {
	const maxBytes = upload.DefaultMaxBytes + 1<<20 // file plus multipart overhead
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			app.payloadTooLargeResponse(w, r, upload.ErrTooLarge)
			return
		}
		app.badRequestResponse(w, r, fmt.Errorf("failed to parse form: %w", err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("image")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("image file is required: %w", err))
		return
	}
	defer file.Close()

	sess := getSessionFromContext(r)
	if err := sess.Upload.Submit(r.Context(), header.Filename, file); err != nil {
		var uploadErr *catalogapi.UploadError
		switch {
		case errors.Is(err, upload.ErrClosed), errors.Is(err, upload.ErrBusy):
			app.conflictResponse(w, r, err)
		case errors.Is(err, upload.ErrNotImage):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, upload.ErrTooLarge):
			app.payloadTooLargeResponse(w, r, err)
		case errors.As(err, &uploadErr):
			app.badGatewayResponse(w, r, err, upload.FailedMessage)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, app.presentUpload(sess)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// uploadStatusHandler godoc
//
//	@Summary	Upload dialog status
//	@Tags		uploads
//	@Produce	json
//	@Success	200	{object}	UploadResponse
//	@Security	ApiKeyAuth
//	@Router		/uploads [get]
func (app *application) uploadStatusHandler(w http.ResponseWriter, r *http.Request) {
	sess := getSessionFromContext(r)
	if err := app.jsonResponse(w, http.StatusOK, app.presentUpload(sess)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// closeUploadHandler godoc
//
//	@Summary	Closes the upload dialog
//	@Tags		uploads
//	@Produce	json
//	@Success	200	{object}	UploadResponse
//	@Security	ApiKeyAuth
//	@Router		/uploads [delete]
func (app *application) closeUploadHandler(w http.ResponseWriter, r *http.Request) {
	sess := getSessionFromContext(r)
	sess.Upload.Close()
	if err := app.jsonResponse(w, http.StatusOK, app.presentUpload(sess)); err != nil {
		app.internalServerError(w, r, err)
	}
}

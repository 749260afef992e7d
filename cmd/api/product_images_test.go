package main

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalogadmin/internal/catalogapi"
	"catalogadmin/internal/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func gifBytes() []byte {
	return append([]byte("GIF89a"), make([]byte, 32)...)
}

func newUploadRequest(t *testing.T, token, filename string, data []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/uploads", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUpload_ProductImage(t *testing.T) {
	client := new(ClientMock)
	client.On("ListProducts", mock.Anything).Return(testCatalog(3), nil).Once()
	client.On("UploadProductImage", mock.Anything, int64(2), mock.Anything).Return("products/2-new.gif", nil).Once()
	app := newTestApplication(t, client, config{})
	mux := app.mount()
	_, token := login(t, app)

	rr := executeRequest(newRequest(t, http.MethodPost, "/v1/uploads/open", token, OpenUploadPayload{ProductID: 2}), mux)
	require.Equal(t, http.StatusOK, rr.Code)
	var opened UploadResponse
	decodeData(t, rr, &opened)
	assert.Equal(t, upload.StatusOpen, opened.Status)
	require.NotNil(t, opened.CurrentImageURL)
	assert.Equal(t, "https://cdn.example.com/storage/products/2.jpg", *opened.CurrentImageURL)

	rr = executeRequest(newUploadRequest(t, token, "new.gif", gifBytes()), mux)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var done UploadResponse
	decodeData(t, rr, &done)
	assert.Equal(t, upload.StatusSucceeded, done.Status)
	require.NotNil(t, done.ImageURL)
	assert.True(t, strings.HasPrefix(*done.ImageURL, "https://cdn.example.com/storage/products/2-new.gif?t="))

	stored, _ := app.catalog.Get(2)
	require.NotNil(t, stored.Image)
	assert.Equal(t, "products/2-new.gif", *stored.Image)
	client.AssertExpectations(t)
}

func TestUpload_VariantUnknownTarget(t *testing.T) {
	client := new(ClientMock)
	client.On("ListProducts", mock.Anything).Return(testCatalog(3), nil).Once()
	app := newTestApplication(t, client, config{})
	_, token := login(t, app)

	variant := int64(999)
	rr := executeRequest(newRequest(t, http.MethodPost, "/v1/uploads/open", token,
		OpenUploadPayload{ProductID: 1, VariantID: &variant}), app.mount())

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpload_SubmitWithoutDialog(t *testing.T) {
	client := new(ClientMock)
	client.On("ListProducts", mock.Anything).Return(testCatalog(3), nil).Once()
	app := newTestApplication(t, client, config{})
	_, token := login(t, app)

	rr := executeRequest(newUploadRequest(t, token, "new.gif", gifBytes()), app.mount())

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestUpload_RejectsNonImage(t *testing.T) {
	client := new(ClientMock)
	client.On("ListProducts", mock.Anything).Return(testCatalog(3), nil).Once()
	app := newTestApplication(t, client, config{})
	mux := app.mount()
	_, token := login(t, app)

	executeRequest(newRequest(t, http.MethodPost, "/v1/uploads/open", token, OpenUploadPayload{ProductID: 1}), mux)
	rr := executeRequest(newUploadRequest(t, token, "notes.png", []byte("just some text")), mux)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	client.AssertNotCalled(t, "UploadProductImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpload_RemoteFailureKeepsDialogOpen(t *testing.T) {
	client := new(ClientMock)
	client.On("ListProducts", mock.Anything).Return(testCatalog(3), nil).Once()
	client.On("UploadProductImage", mock.Anything, int64(1), mock.Anything).
		Return("", &catalogapi.UploadError{Op: "upload product image", ProductID: 1, StatusCode: 500}).Once()
	app := newTestApplication(t, client, config{})
	mux := app.mount()
	_, token := login(t, app)

	executeRequest(newRequest(t, http.MethodPost, "/v1/uploads/open", token, OpenUploadPayload{ProductID: 1}), mux)
	rr := executeRequest(newUploadRequest(t, token, "new.gif", gifBytes()), mux)

	require.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, upload.FailedMessage, decodeError(t, rr).Message)

	rr = executeRequest(newRequest(t, http.MethodGet, "/v1/uploads", token, nil), mux)
	var status UploadResponse
	decodeData(t, rr, &status)
	assert.Equal(t, upload.StatusFailed, status.Status)
	assert.Equal(t, upload.FailedMessage, status.Error)

	rr = executeRequest(newRequest(t, http.MethodDelete, "/v1/uploads", token, nil), mux)
	decodeData(t, rr, &status)
	assert.Equal(t, upload.StatusClosed, status.Status)
}

func TestNotifications_DrainOnce(t *testing.T) {
	client := new(ClientMock)
	client.On("ListProducts", mock.Anything).Return(testCatalog(3), nil).Once()
	app := newTestApplication(t, client, config{})
	mux := app.mount()
	sess, token := login(t, app)
	sess.Notifications.Success("Product hidden")

	rr := executeRequest(newRequest(t, http.MethodGet, "/v1/notifications", token, nil), mux)
	require.Equal(t, http.StatusOK, rr.Code)
	var notes []map[string]any
	decodeData(t, rr, &notes)
	require.Len(t, notes, 1)
	assert.Equal(t, "success", notes[0]["type"])

	rr = executeRequest(newRequest(t, http.MethodGet, "/v1/notifications", token, nil), mux)
	decodeData(t, rr, &notes)
	assert.Empty(t, notes)
}

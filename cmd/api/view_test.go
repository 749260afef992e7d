package main

import (
	"net/http"
	"testing"

	"catalogadmin/internal/navigation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decodeView(t *testing.T, mux http.Handler, req *http.Request) ViewResponse {
	t.Helper()
	rr := executeRequest(req, mux)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var res ViewResponse
	decodeData(t, rr, &res)
	return res
}

func TestView_SelectAndBackRestoresScroll(t *testing.T) {
	client := new(ClientMock)
	client.On("ListProducts", mock.Anything).Return(testCatalog(30), nil).Once()
	app := newTestApplication(t, client, config{})
	mux := app.mount()
	_, token := login(t, app)

	v := decodeView(t, mux, newRequest(t, http.MethodPost, "/v1/view/mount?page=2", token, nil))
	assert.Equal(t, navigation.ModeList, v.Mode)
	require.NotNil(t, v.List)
	assert.Equal(t, 2, v.List.Page)
	assert.Len(t, v.List.Products, 12)
	assert.Equal(t, "page=2", v.Location)

	v = decodeView(t, mux, newRequest(t, http.MethodPost, "/v1/view/select", token, SelectProductPayload{ProductID: 14, ScrollY: 400}))
	assert.Equal(t, navigation.ModeDetail, v.Mode)
	require.NotNil(t, v.Detail)
	assert.Equal(t, int64(14), v.Detail.Product.ID)
	assert.Equal(t, "page=2&product=14", v.Location)

	v = decodeView(t, mux, newRequest(t, http.MethodPost, "/v1/view/back", token, nil))
	assert.Equal(t, navigation.ModeList, v.Mode)
	assert.Equal(t, "page=2", v.Location)

	rr := executeRequest(newRequest(t, http.MethodPost, "/v1/view/frame", token, nil), mux)
	require.Equal(t, http.StatusOK, rr.Code)
	var frame FrameResponse
	decodeData(t, rr, &frame)
	require.NotNil(t, frame.RestoreScroll)
	assert.Equal(t, 400, frame.RestoreScroll.Y)

	// the offset is handed out once
	rr = executeRequest(newRequest(t, http.MethodPost, "/v1/view/frame", token, nil), mux)
	decodeData(t, rr, &frame)
	assert.Nil(t, frame.RestoreScroll)
}

func TestView_DeepLinkOpensDetail(t *testing.T) {
	client := new(ClientMock)
	client.On("ListProducts", mock.Anything).Return(testCatalog(5), nil).Once()
	app := newTestApplication(t, client, config{})
	_, token := login(t, app)

	v := decodeView(t, app.mount(), newRequest(t, http.MethodPost, "/v1/view/mount?product=3", token, nil))

	assert.Equal(t, navigation.ModeDetail, v.Mode)
	require.NotNil(t, v.Detail)
	assert.Equal(t, "Product 3", v.Detail.Product.Name)
}

func TestView_SelectUnknownProduct(t *testing.T) {
	client := new(ClientMock)
	client.On("ListProducts", mock.Anything).Return(testCatalog(5), nil).Once()
	app := newTestApplication(t, client, config{})
	_, token := login(t, app)

	rr := executeRequest(newRequest(t, http.MethodPost, "/v1/view/select", token, SelectProductPayload{ProductID: 42}), app.mount())

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestView_SearchResetsPage(t *testing.T) {
	client := new(ClientMock)
	client.On("ListProducts", mock.Anything).Return(testCatalog(30), nil).Once()
	app := newTestApplication(t, client, config{})
	mux := app.mount()
	_, token := login(t, app)

	decodeView(t, mux, newRequest(t, http.MethodPost, "/v1/view/page", token, PagePayload{Page: 3}))
	v := decodeView(t, mux, newRequest(t, http.MethodPost, "/v1/view/search", token, SearchPayload{Term: "product 1"}))

	require.NotNil(t, v.List)
	assert.Equal(t, 1, v.List.Page)
	// 1 and 10..19
	assert.Equal(t, 11, v.List.Total)
	assert.Equal(t, 30, v.List.TotalProducts)
	assert.Equal(t, "product 1", v.List.Search)
}

func TestView_LanguageSwitch(t *testing.T) {
	client := new(ClientMock)
	client.On("ListProducts", mock.Anything).Return(testCatalog(3), nil).Once()
	app := newTestApplication(t, client, config{})
	mux := app.mount()
	_, token := login(t, app)

	v := decodeView(t, mux, newRequest(t, http.MethodPost, "/v1/view/language", token, LanguagePayload{Language: "fr"}))

	require.NotNil(t, v.List)
	assert.Equal(t, "Produit 1", v.List.Products[0].Name)
	assert.Equal(t, "lang=fr", v.Location)

	rr := executeRequest(newRequest(t, http.MethodPost, "/v1/view/language", token, LanguagePayload{Language: "xx"}), mux)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestView_NotReadyWhileFailed(t *testing.T) {
	client := new(ClientMock)
	client.On("ListProducts", mock.Anything).Return(nil, assert.AnError).Once()
	app := newTestApplication(t, client, config{})
	_, token := login(t, app)

	rr := executeRequest(newRequest(t, http.MethodGet, "/v1/view", token, nil), app.mount())

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

package catalogapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(Config{BaseURL: srv.URL + "/api/", Token: "secret"})
}

func TestListProducts_OK(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "hidden", r.URL.Query().Get("q"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		io.WriteString(w, `{"status":true,"message":"","data":[
			{"id":1,"product_code":"X1","name_translations":{"en":"Tea"},"description_translations":{"en":"Green"},
			 "image":"storage/products/1.jpg","variants":[{"id":10,"product_id":1,"size":"250g","image":null}]}
		]}`)
	})

	list, err := c.ListProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, "Tea", list[0].Name("en"))
	require.NotNil(t, list[0].Image)
	assert.Equal(t, "storage/products/1.jpg", *list[0].Image)
	require.Len(t, list[0].Variants, 1)
	assert.Nil(t, list[0].Variants[0].Image)
}

func TestListProducts_StatusFalse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":false,"message":"Token expired","data":[]}`)
	})

	_, err := c.ListProducts(context.Background())

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Token expired", fe.Message)
	assert.Zero(t, fe.StatusCode)
}

func TestListProducts_StatusFalseDefaultMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":false}`)
	})

	_, err := c.ListProducts(context.Background())

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Failed to fetch products", fe.Message)
}

func TestListProducts_HTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	})

	_, err := c.ListProducts(context.Background())

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusServiceUnavailable, fe.StatusCode)
	assert.True(t, IsRemoteError(err))
}

func TestSetProductHidden_SendsPutOverPost(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/products/5", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "PUT", r.FormValue("_method"))
		assert.Equal(t, "1", r.FormValue("is_hidden"))
		io.WriteString(w, `{"status":true,"message":"updated","data":{"id":5}}`)
	})

	ack, err := c.SetProductHidden(context.Background(), 5, true)

	require.NoError(t, err)
	assert.True(t, ack.Status)
	assert.Equal(t, "updated", ack.Message)
}

func TestSetVariantPackaging_Fields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/5/variants/50", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Carton of 12", r.FormValue("packaging"))
		assert.Equal(t, "PUT", r.FormValue("_method"))
		io.WriteString(w, `{"status":true}`)
	})

	_, err := c.SetVariantPackaging(context.Background(), 5, 50, "Carton of 12")

	require.NoError(t, err)
}

func TestSetVariantHidden_SendsZeroForVisible(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "0", r.FormValue("is_hidden"))
		io.WriteString(w, `{"status":true}`)
	})

	_, err := c.SetVariantHidden(context.Background(), 5, 50, false)

	require.NoError(t, err)
}

func TestSetProductWeightUnit_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"message":"db down"}`)
	})

	_, err := c.SetProductWeightUnit(context.Background(), 5, "kg")

	var ue *UpdateError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "set product weight unit", ue.Op)
	assert.Equal(t, int64(5), ue.ProductID)
	assert.Zero(t, ue.VariantID)
	assert.Equal(t, http.StatusInternalServerError, ue.StatusCode)
	assert.Contains(t, err.Error(), "product=5")
}

func TestUploadProductImage_UsesServerPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/3", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "PUT", r.FormValue("_method"))

		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		body, _ := io.ReadAll(f)
		assert.Equal(t, "photo.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		assert.Equal(t, "pngbytes", string(body))

		io.WriteString(w, `{"status":true,"data":{"image":"storage/products/new.jpg"}}`)
	})

	path, err := c.UploadProductImage(context.Background(), 3, File{
		Name:        "photo.png",
		ContentType: "image/png",
		Body:        strings.NewReader("pngbytes"),
	})

	require.NoError(t, err)
	assert.Equal(t, "storage/products/new.jpg", path)
}

func TestUploadVariantImage_MissingPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/3/variants/30", r.URL.Path)
		io.WriteString(w, `{"status":true,"data":{}}`)
	})

	_, err := c.UploadVariantImage(context.Background(), 3, 30, File{Name: "a.png", Body: strings.NewReader("x")})

	var le *UploadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, int64(30), le.VariantID)
	assert.True(t, errors.Is(err, errNoImagePath))
}

func TestUploadProductImage_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := NewHTTPClient(Config{BaseURL: srv.URL, Token: "secret"})
	srv.Close()

	_, err := c.UploadProductImage(context.Background(), 3, File{Name: "a.png", Body: strings.NewReader("x")})

	var le *UploadError
	require.ErrorAs(t, err, &le)
	assert.Zero(t, le.StatusCode)
}

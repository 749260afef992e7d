package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalogadmin/internal/auth"
	"catalogadmin/internal/catalogapi"
	"catalogadmin/internal/domain/products"
	"catalogadmin/internal/images"
	"catalogadmin/internal/ratelimiter"
	"catalogadmin/internal/session"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	testUser     = "admin"
	testPassword = "s3cret-password"
)

type ClientMock struct{ mock.Mock }

func (m *ClientMock) ListProducts(ctx context.Context) ([]products.Product, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]products.Product)
	return list, args.Error(1)
}

func (m *ClientMock) SetProductHidden(ctx context.Context, productID int64, hidden bool) (*catalogapi.Ack, error) {
	args := m.Called(ctx, productID, hidden)
	ack, _ := args.Get(0).(*catalogapi.Ack)
	return ack, args.Error(1)
}

func (m *ClientMock) SetProductWeightUnit(ctx context.Context, productID int64, unit string) (*catalogapi.Ack, error) {
	args := m.Called(ctx, productID, unit)
	ack, _ := args.Get(0).(*catalogapi.Ack)
	return ack, args.Error(1)
}

func (m *ClientMock) SetVariantHidden(ctx context.Context, productID, variantID int64, hidden bool) (*catalogapi.Ack, error) {
	args := m.Called(ctx, productID, variantID, hidden)
	ack, _ := args.Get(0).(*catalogapi.Ack)
	return ack, args.Error(1)
}

func (m *ClientMock) SetVariantPackaging(ctx context.Context, productID, variantID int64, packaging string) (*catalogapi.Ack, error) {
	args := m.Called(ctx, productID, variantID, packaging)
	ack, _ := args.Get(0).(*catalogapi.Ack)
	return ack, args.Error(1)
}

func (m *ClientMock) UploadProductImage(ctx context.Context, productID int64, file catalogapi.File) (string, error) {
	args := m.Called(ctx, productID, file)
	return args.String(0), args.Error(1)
}

func (m *ClientMock) UploadVariantImage(ctx context.Context, productID, variantID int64, file catalogapi.File) (string, error) {
	args := m.Called(ctx, productID, variantID, file)
	return args.String(0), args.Error(1)
}

var testPassHash = func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}()

func testCatalog(n int) []products.Product {
	list := make([]products.Product, 0, n)
	for i := 1; i <= n; i++ {
		image := fmt.Sprintf("products/%d.jpg", i)
		list = append(list, products.Product{
			ID:                      int64(i),
			ProductCode:             fmt.Sprintf("P%03d", i),
			NameTranslations:        products.Translations{"en": fmt.Sprintf("Product %d", i), "fr": fmt.Sprintf("Produit %d", i)},
			DescriptionTranslations: products.Translations{"en": "A product"},
			WeightUnit:              "kg",
			Image:                   &image,
			Variants: []products.Variant{
				{ID: int64(100 + i), ProductID: int64(i), Size: "L", Packaging: "box"},
			},
		})
	}
	return list
}

// newTestApplication loads the catalog through client, so callers must set
// the ListProducts expectation first.
func newTestApplication(t *testing.T, client *ClientMock, cfg config) *application {
	t.Helper()

	logger := zap.NewNop().Sugar()
	if cfg.pageSize == 0 {
		cfg.pageSize = 12
	}
	if cfg.auth.token.exp == 0 {
		cfg.auth.token.exp = time.Hour
	}
	cfg.auth.token.secret = "test-secret-test-secret-test-secret"
	cfg.auth.token.iss = "catalogadmin"
	cfg.cors.allowedOrigins = []string{"http://*"}

	store := products.NewStore(client, logger)
	_ = store.Load(context.Background())

	var limiter ratelimiter.Limiter = ratelimiter.Noop{}
	if cfg.rateLimiter.enabled {
		limiter = ratelimiter.NewFixedWindowLimiter(cfg.rateLimiter.requestsPerTimeFrame, time.Minute)
	}

	return &application{
		config:        cfg,
		logger:        logger,
		client:        client,
		catalog:       store,
		images:        catalogapi.NewImageResolver("https://cdn.example.com/storage"),
		thumbnails:    images.Passthrough{},
		operator:      auth.NewOperator(testUser, testPassHash),
		authenticator: auth.NewJWTAuthenticator(cfg.auth.token.secret, cfg.auth.token.iss, cfg.auth.token.iss, cfg.auth.token.exp),
		rateLimiter:   limiter,
		sessions: session.NewRegistry(session.Config{
			Catalog:     store,
			Uploader:    client,
			Logger:      logger,
			PageSize:    cfg.pageSize,
			IdleTimeout: cfg.auth.token.exp,
		}),
	}
}

// login opens a session the way the token endpoint does and returns its token.
func login(t *testing.T, app *application) (*session.Session, string) {
	t.Helper()
	sess := app.sessions.Create(testUser)
	token, err := app.authenticator.GenerateToken(testUser, sess.ID)
	require.NoError(t, err)
	return sess, token
}

func executeRequest(req *http.Request, mux http.Handler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func newRequest(t *testing.T, method, target, token string, body any) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// decodeData unwraps the {"data": ...} envelope into dst.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var res ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	return res
}

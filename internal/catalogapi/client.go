package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"catalogadmin/internal/domain/products"
)

// Client is the contract the admin needs from the remote product API.
// Nothing is retried; every failure carries the operation and entity ids.
type Client interface {
	ListProducts(ctx context.Context) ([]products.Product, error)
	SetProductHidden(ctx context.Context, productID int64, hidden bool) (*Ack, error)
	SetProductWeightUnit(ctx context.Context, productID int64, unit string) (*Ack, error)
	SetVariantHidden(ctx context.Context, productID, variantID int64, hidden bool) (*Ack, error)
	SetVariantPackaging(ctx context.Context, productID, variantID int64, packaging string) (*Ack, error)
	UploadProductImage(ctx context.Context, productID int64, file File) (string, error)
	UploadVariantImage(ctx context.Context, productID, variantID int64, file File) (string, error)
}

// Ack is the server's acknowledgement of a mutation.
type Ack struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// File is an image to upload, sent as a single multipart part.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPClient(cfg Config) *HTTPClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient swaps the transport, mostly for tests.
func (c *HTTPClient) WithHTTPClient(hc *http.Client) *HTTPClient {
	c.httpClient = hc
	return c
}

func (c *HTTPClient) productURL(productID int64) string {
	return fmt.Sprintf("%s/products/%d", c.baseURL, productID)
}

func (c *HTTPClient) variantURL(productID, variantID int64) string {
	return fmt.Sprintf("%s/products/%d/variants/%d", c.baseURL, productID, variantID)
}

func (c *HTTPClient) ListProducts(ctx context.Context) ([]products.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products?q=hidden", nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	c.authorize(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}

	var res products.ProductsResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, &FetchError{Err: fmt.Errorf("decode: %w", err)}
	}
	if !res.Status {
		msg := res.Message
		if msg == "" {
			msg = "Failed to fetch products"
		}
		return nil, &FetchError{Message: msg}
	}
	return res.Data, nil
}

func (c *HTTPClient) SetProductHidden(ctx context.Context, productID int64, hidden bool) (*Ack, error) {
	const op = "set product hidden"
	ack, status, err := c.update(ctx, c.productURL(productID), map[string]string{"is_hidden": formBool(hidden)})
	if err != nil {
		return nil, &UpdateError{Op: op, ProductID: productID, StatusCode: status, Err: err}
	}
	return ack, nil
}

func (c *HTTPClient) SetProductWeightUnit(ctx context.Context, productID int64, unit string) (*Ack, error) {
	const op = "set product weight unit"
	ack, status, err := c.update(ctx, c.productURL(productID), map[string]string{"weight_unit": unit})
	if err != nil {
		return nil, &UpdateError{Op: op, ProductID: productID, StatusCode: status, Err: err}
	}
	return ack, nil
}

func (c *HTTPClient) SetVariantHidden(ctx context.Context, productID, variantID int64, hidden bool) (*Ack, error) {
	const op = "set variant hidden"
	ack, status, err := c.update(ctx, c.variantURL(productID, variantID), map[string]string{"is_hidden": formBool(hidden)})
	if err != nil {
		return nil, &UpdateError{Op: op, ProductID: productID, VariantID: variantID, StatusCode: status, Err: err}
	}
	return ack, nil
}

func (c *HTTPClient) SetVariantPackaging(ctx context.Context, productID, variantID int64, packaging string) (*Ack, error) {
	const op = "set variant packaging"
	ack, status, err := c.update(ctx, c.variantURL(productID, variantID), map[string]string{"packaging": packaging})
	if err != nil {
		return nil, &UpdateError{Op: op, ProductID: productID, VariantID: variantID, StatusCode: status, Err: err}
	}
	return ack, nil
}

func (c *HTTPClient) UploadProductImage(ctx context.Context, productID int64, file File) (string, error) {
	const op = "upload product image"
	path, status, err := c.upload(ctx, c.productURL(productID), file)
	if err != nil {
		return "", &UploadError{Op: op, ProductID: productID, StatusCode: status, Err: err}
	}
	return path, nil
}

func (c *HTTPClient) UploadVariantImage(ctx context.Context, productID, variantID int64, file File) (string, error) {
	const op = "upload variant image"
	path, status, err := c.upload(ctx, c.variantURL(productID, variantID), file)
	if err != nil {
		return "", &UploadError{Op: op, ProductID: productID, VariantID: variantID, StatusCode: status, Err: err}
	}
	return path, nil
}

// update sends a PUT-over-POST multipart form and decodes the acknowledgement.
func (c *HTTPClient) update(ctx context.Context, url string, fields map[string]string) (*Ack, int, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, 0, fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := mw.WriteField("_method", http.MethodPut); err != nil {
		return nil, 0, fmt.Errorf("write field _method: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, 0, fmt.Errorf("close form: %w", err)
	}

	raw, status, err := c.post(ctx, url, mw.FormDataContentType(), body)
	if err != nil {
		return nil, status, err
	}

	var ack Ack
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &ack); err != nil {
			return nil, status, fmt.Errorf("decode: %w body=%s", err, string(raw))
		}
	}
	return &ack, status, nil
}

func (c *HTTPClient) upload(ctx context.Context, url string, file File) (string, int, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, file.Name))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return "", 0, fmt.Errorf("create part: %w", err)
	}
	if _, err := io.Copy(part, file.Body); err != nil {
		return "", 0, fmt.Errorf("copy file: %w", err)
	}
	if err := mw.WriteField("_method", http.MethodPut); err != nil {
		return "", 0, fmt.Errorf("write field _method: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", 0, fmt.Errorf("close form: %w", err)
	}

	raw, status, err := c.post(ctx, url, mw.FormDataContentType(), body)
	if err != nil {
		return "", status, err
	}

	var res struct {
		Data struct {
			Image *string `json:"image"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return "", status, fmt.Errorf("decode: %w body=%s", err, string(raw))
	}
	if res.Data.Image == nil || *res.Data.Image == "" {
		return "", status, errNoImagePath
	}
	return *res.Data.Image, status, nil
}

func (c *HTTPClient) post(ctx context.Context, url, contentType string, body io.Reader) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, 0, err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, fmt.Errorf("unexpected status body=%s", strings.TrimSpace(string(raw)))
	}
	return raw, resp.StatusCode, nil
}

func (c *HTTPClient) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
}

func formBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

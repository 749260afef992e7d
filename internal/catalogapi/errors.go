package catalogapi

import (
	"errors"
	"fmt"
)

// errNoImagePath is wrapped by UploadError when the server acknowledged an
// upload without telling us where the file now lives.
var errNoImagePath = errors.New("response carries no image path")

// FetchError reports a failed catalog listing.
type FetchError struct {
	StatusCode int // 0 when the request never got a response
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("list products: http=%d %s", e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("list products: %v", e.Err)
	default:
		return fmt.Sprintf("list products: %s", e.Message)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// UpdateError reports a rejected partial update (hidden flag, weight unit, packaging).
type UpdateError struct {
	Op         string
	ProductID  int64
	VariantID  int64 // 0 for product-level updates
	StatusCode int
	Err        error
}

func (e *UpdateError) Error() string {
	return formatOpError(e.Op, e.ProductID, e.VariantID, e.StatusCode, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }

// UploadError reports a failed image upload.
type UploadError struct {
	Op         string
	ProductID  int64
	VariantID  int64
	StatusCode int
	Err        error
}

func (e *UploadError) Error() string {
	return formatOpError(e.Op, e.ProductID, e.VariantID, e.StatusCode, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

func formatOpError(op string, productID, variantID int64, status int, err error) string {
	target := fmt.Sprintf("product=%d", productID)
	if variantID != 0 {
		target += fmt.Sprintf(" variant=%d", variantID)
	}
	if status != 0 {
		return fmt.Sprintf("%s %s: http=%d: %v", op, target, status, err)
	}
	return fmt.Sprintf("%s %s: %v", op, target, err)
}

// IsRemoteError reports whether err came from the remote catalog API.
func IsRemoteError(err error) bool {
	var fe *FetchError
	var ue *UpdateError
	var le *UploadError
	return errors.As(err, &fe) || errors.As(err, &ue) || errors.As(err, &le)
}

package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"catalogadmin/internal/catalogapi"
	"catalogadmin/internal/domain/products"
	"catalogadmin/internal/notifications"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

const (
	DefaultDismissAfter = 2 * time.Second
	DefaultMaxBytes     = 10 << 20 // PNG, JPG, GIF up to 10MB

	FailedMessage  = "Failed to upload image. Please try again."
	SuccessMessage = "Image uploaded successfully!"
)

var (
	ErrClosed        = errors.New("upload dialog is not open")
	ErrBusy          = errors.New("an upload is already in progress")
	ErrNotImage      = errors.New("file is not an image")
	ErrTooLarge      = errors.New("file is too large")
	ErrUnknownTarget = errors.New("upload target is not in the catalog")
)

type Status string

const (
	StatusClosed    Status = "closed"
	StatusOpen      Status = "open"
	StatusUploading Status = "uploading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Target is a product, or one variant of a product when VariantID is set.
type Target struct {
	ProductID int64  `json:"product_id"`
	VariantID *int64 `json:"variant_id,omitempty"`
}

func (t Target) IsVariant() bool { return t.VariantID != nil }

// Uploader is the slice of the remote client this workflow needs.
type Uploader interface {
	UploadProductImage(ctx context.Context, productID int64, file catalogapi.File) (string, error)
	UploadVariantImage(ctx context.Context, productID, variantID int64, file catalogapi.File) (string, error)
}

// Catalog is where confirmed image paths are written back.
type Catalog interface {
	Get(id int64) (products.Product, bool)
	Patch(id int64, fn func(products.Product) (products.Product, bool)) (bool, error)
}

type Config struct {
	Uploader     Uploader
	Catalog      Catalog
	Notifier     notifications.Sender
	Logger       *zap.SugaredLogger
	DismissAfter time.Duration
	MaxBytes     int64
}

// Snapshot is what the upload dialog renders.
type Snapshot struct {
	Status    Status  `json:"status"`
	Target    *Target `json:"target,omitempty"`
	Error     string  `json:"error,omitempty"`
	ImagePath string  `json:"image_path,omitempty"`
	// UploadedAt is set once the server confirmed the upload.
	UploadedAt *time.Time `json:"uploaded_at,omitempty"`
}

// Workflow drives one upload dialog: Closed -> Open -> Uploading ->
// {Succeeded, Failed}. A success closes the dialog on its own after
// DismissAfter; a failure keeps it open for a manual retry.
type Workflow struct {
	cfg Config

	mu     sync.Mutex
	status Status
	target Target
	errMsg string
	path   string
	at     time.Time
	// gen changes on every Open and Close so that a late upload response or
	// dismiss timer from an earlier dialog does not touch the current one.
	gen   uint64
	timer *time.Timer
}

func NewWorkflow(cfg Config) *Workflow {
	if cfg.DismissAfter <= 0 {
		cfg.DismissAfter = DefaultDismissAfter
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	return &Workflow{cfg: cfg, status: StatusClosed}
}

func (w *Workflow) Open(target Target) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.status == StatusUploading {
		return ErrBusy
	}

	p, ok := w.cfg.Catalog.Get(target.ProductID)
	if !ok {
		return ErrUnknownTarget
	}
	if target.IsVariant() {
		if _, ok := p.Variant(*target.VariantID); !ok {
			return ErrUnknownTarget
		}
	}

	w.reset()
	w.status = StatusOpen
	w.target = target
	return nil
}

// Close dismisses the dialog from any state. An upload still in flight is not
// cancelled; its result will no longer change the dialog.
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
}

func (w *Workflow) reset() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.gen++
	w.status = StatusClosed
	w.target = Target{}
	w.errMsg = ""
	w.path = ""
	w.at = time.Time{}
}

// Submit uploads the selected file to the open target. Only an image is
// accepted, and never while another upload is running.
func (w *Workflow) Submit(ctx context.Context, name string, r io.Reader) error {
	w.mu.Lock()
	switch w.status {
	case StatusClosed:
		w.mu.Unlock()
		return ErrClosed
	case StatusUploading, StatusSucceeded:
		w.mu.Unlock()
		return ErrBusy
	}

	data, err := io.ReadAll(io.LimitReader(r, w.cfg.MaxBytes+1))
	if err != nil {
		w.mu.Unlock()
		return fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > w.cfg.MaxBytes {
		w.mu.Unlock()
		return ErrTooLarge
	}
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		w.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotImage, mtype.String())
	}

	w.status = StatusUploading
	w.errMsg = ""
	target := w.target
	gen := w.gen
	w.mu.Unlock()

	file := catalogapi.File{Name: name, ContentType: mtype.String(), Body: bytes.NewReader(data)}
	var path string
	if target.IsVariant() {
		path, err = w.cfg.Uploader.UploadVariantImage(ctx, target.ProductID, *target.VariantID, file)
	} else {
		path, err = w.cfg.Uploader.UploadProductImage(ctx, target.ProductID, file)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.cfg.Logger.Warnw("image upload failed", "product_id", target.ProductID, "variant_id", target.VariantID, "error", err)
		if gen == w.gen {
			w.status = StatusFailed
			w.errMsg = FailedMessage
		}
		return err
	}

	// the server has the new image regardless of what the dialog did meanwhile
	w.patch(target, path)

	if gen != w.gen {
		return nil
	}
	w.status = StatusSucceeded
	w.path = path
	w.at = time.Now()
	if w.cfg.Notifier != nil {
		w.cfg.Notifier.Success(SuccessMessage)
	}
	w.timer = time.AfterFunc(w.cfg.DismissAfter, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.gen == gen && w.status == StatusSucceeded {
			w.timer = nil
			w.reset()
		}
	})
	return nil
}

// patch writes the server-confirmed path onto the store's latest copy.
func (w *Workflow) patch(target Target, path string) {
	found, err := w.cfg.Catalog.Patch(target.ProductID, func(p products.Product) (products.Product, bool) {
		if target.IsVariant() {
			return p.WithVariantImage(*target.VariantID, path)
		}
		return p.WithImage(path), true
	})
	switch {
	case err != nil:
		w.cfg.Logger.Warnw("could not patch uploaded image into catalog", "product_id", target.ProductID, "error", err)
	case !found:
		w.cfg.Logger.Warnw("uploaded image target no longer in catalog",
			"product_id", target.ProductID, "variant_id", target.VariantID)
	}
}

func (w *Workflow) Status() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := Snapshot{Status: w.status, Error: w.errMsg, ImagePath: w.path}
	if !w.at.IsZero() {
		at := w.at
		s.UploadedAt = &at
	}
	if w.status != StatusClosed {
		t := w.target
		s.Target = &t
	}
	return s
}

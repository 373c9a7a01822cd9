// Package document handles order documents (invoices, delivery notes). Files
// live in object storage; the ledger row only carries the storage key.
package document

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sheetstock/backend/internal/application/trade"
	"github.com/sheetstock/backend/internal/domain/shared"
)

// Order kinds accepted by the service.
const (
	KindPurchase = "purchase"
	KindSales    = "sales"
)

// ObjectStorage is the object-storage backend used for order documents.
// Uploads and downloads go through presigned URLs; the server never proxies
// file bytes.
type ObjectStorage interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
	DeleteObject(ctx context.Context, storageKey string) error
}

// Ledger is the slice of an order service the document flow needs.
type Ledger interface {
	Get(ctx context.Context, orderID string) (*trade.OrderResponse, error)
	AttachDocument(ctx context.Context, orderID, key string) error
}

// allowedContentTypes is the upload whitelist: images, PDF, Office documents
// and plain text.
var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       true,
	"text/plain": true,
	"text/csv":   true,
}

// InitiateUploadRequest starts a document upload for an order.
type InitiateUploadRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// InitiateUploadResponse carries the presigned PUT URL the client uploads to.
type InitiateUploadResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// DownloadResponse carries a presigned GET URL for the order's document.
type DownloadResponse struct {
	StorageKey  string    `json:"storage_key"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Config bounds the lifetime of presigned URLs.
type Config struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultConfig returns the default presign lifetimes.
func DefaultConfig() Config {
	return Config{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: time.Hour,
	}
}

// Service runs the two-step upload flow: initiate (presign) then confirm
// (verify the object landed, record the key on the order row).
type Service struct {
	storage ObjectStorage
	ledgers map[string]Ledger
	config  Config
}

// NewService wires the storage backend to the purchase and sales ledgers.
func NewService(storage ObjectStorage, purchase, sales Ledger) *Service {
	return &Service{
		storage: storage,
		ledgers: map[string]Ledger{
			KindPurchase: purchase,
			KindSales:    sales,
		},
		config: DefaultConfig(),
	}
}

// SetConfig overrides the presign lifetimes.
func (s *Service) SetConfig(config Config) {
	s.config = config
}

// InitiateUpload validates the order and content type and returns a presigned
// upload URL. Nothing is recorded on the order until ConfirmUpload.
func (s *Service) InitiateUpload(ctx context.Context, kind, orderID string, req InitiateUploadRequest) (*InitiateUploadResponse, error) {
	ledger, err := s.ledger(kind)
	if err != nil {
		return nil, err
	}
	if !allowedContentTypes[strings.ToLower(req.ContentType)] {
		return nil, fmt.Errorf("%w: content type %q is not allowed", shared.ErrInvalidInput, req.ContentType)
	}
	if _, err := ledger.Get(ctx, orderID); err != nil {
		return nil, err
	}

	key := storageKey(kind, orderID, req.FileName)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate upload URL: %w", err)
	}
	return &InitiateUploadResponse{StorageKey: key, UploadURL: url, ExpiresAt: expiresAt}, nil
}

// ConfirmUpload verifies the object exists in storage and records its key on
// the order row.
func (s *Service) ConfirmUpload(ctx context.Context, kind, orderID, key string) error {
	ledger, err := s.ledger(kind)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(key, keyPrefix(kind, orderID)) {
		return fmt.Errorf("%w: storage key does not belong to order %s", shared.ErrInvalidInput, orderID)
	}
	exists, err := s.storage.ObjectExists(ctx, key)
	if err != nil {
		return fmt.Errorf("check upload: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: object %s not uploaded", shared.ErrNotFound, key)
	}
	return ledger.AttachDocument(ctx, orderID, key)
}

// Download returns a presigned GET URL for the order's recorded document.
func (s *Service) Download(ctx context.Context, kind, orderID string) (*DownloadResponse, error) {
	ledger, err := s.ledger(kind)
	if err != nil {
		return nil, err
	}
	order, err := ledger.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.DocumentKey == "" {
		return nil, fmt.Errorf("%w: order %s has no document", shared.ErrNotFound, orderID)
	}
	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, order.DocumentKey, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate download URL: %w", err)
	}
	return &DownloadResponse{StorageKey: order.DocumentKey, DownloadURL: url, ExpiresAt: expiresAt}, nil
}

func (s *Service) ledger(kind string) (Ledger, error) {
	ledger, ok := s.ledgers[kind]
	if !ok || ledger == nil {
		return nil, fmt.Errorf("%w: unknown order kind %q", shared.ErrInvalidInput, kind)
	}
	return ledger, nil
}

func keyPrefix(kind, orderID string) string {
	return fmt.Sprintf("orders/%s/%s/", kind, orderID)
}

// storageKey builds a collision-free key; only the original extension of the
// client file name survives.
func storageKey(kind, orderID, fileName string) string {
	return keyPrefix(kind, orderID) + uuid.New().String() + filepath.Ext(fileName)
}

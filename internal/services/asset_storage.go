package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StoredAsset is what the upload endpoint hands back to the caller.
type StoredAsset struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// AssetStorage stores uploaded header and question images. The production
// deployment delegates to a third-party asset host; the local-disk
// implementation keeps development self-contained.
type AssetStorage interface {
	Store(ctx context.Context, reader io.Reader, filename string) (*StoredAsset, error)
	Remove(ctx context.Context, publicID string) error
}

type localDiskStorage struct {
	dir     string
	baseURL string
	logger  *slog.Logger
}

// NewLocalDiskStorage stores assets under dir and serves them from baseURL.
func NewLocalDiskStorage(dir, baseURL string, logger *slog.Logger) (AssetStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &localDiskStorage{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

func (s *localDiskStorage) Store(ctx context.Context, reader io.Reader, filename string) (*StoredAsset, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	publicID := uuid.NewString() + ext

	path := filepath.Join(s.dir, publicID)
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetNotStored, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, reader); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("%w: %v", ErrAssetNotStored, err)
	}

	s.logger.Info("Stored asset", "public_id", publicID)
	return &StoredAsset{
		URL:      s.baseURL + "/" + publicID,
		PublicID: publicID,
	}, nil
}

func (s *localDiskStorage) Remove(ctx context.Context, publicID string) error {
	// publicID is always a uuid-derived basename; reject anything else
	if publicID != filepath.Base(publicID) {
		return fmt.Errorf("invalid public id %q", publicID)
	}
	return os.Remove(filepath.Join(s.dir, publicID))
}

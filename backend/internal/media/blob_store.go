package media

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"social-demo/backend/internal/constants"
	apperrors "social-demo/backend/pkg/errors"
	"social-demo/backend/pkg/logger"
)

// StoredFile describes a blob written to disk and the URL it is served under
type StoredFile struct {
	Filename     string
	OriginalName string
	DiskPath     string
	URL          string
	MimeType     string
	Size         int64
}

// BlobStore writes uploads into a directory that is served under a URL prefix
type BlobStore struct {
	dir       string
	urlPrefix string
	now       func() time.Time
	logger    *zap.Logger
}

// NewBlobStore creates dir if needed
func NewBlobStore(dir, urlPrefix string, log *zap.Logger) (*BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.NewStorageFailed(dir, fmt.Errorf("mkdir: %w", err))
	}
	return &BlobStore{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		now:       time.Now,
		logger:    logger.Named(log, constants.ComponentMedia),
	}, nil
}

// Dir returns the directory blobs are written to
func (b *BlobStore) Dir() string {
	return b.dir
}

// Save streams r to a new file named <prefix><unixmillis>-<short uuid>-<original base name>
// and sniffs its content type.
func (b *BlobStore) Save(prefix, originalName string, r io.Reader) (*StoredFile, error) {
	base := filepath.Base(filepath.Clean("/" + originalName))
	if base == "/" || base == "." {
		base = "upload"
	}
	name := fmt.Sprintf("%s%d-%s-%s", prefix, b.now().UnixMilli(), uuid.New().String()[:8], base)
	diskPath := filepath.Join(b.dir, name)

	f, err := os.OpenFile(diskPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, apperrors.NewStorageFailed(diskPath, err)
	}

	// sniff while copying so the upload is read once
	var sniff bytes.Buffer
	n, err := io.Copy(f, io.TeeReader(r, &limitedWriter{w: &sniff, left: 3072}))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(diskPath)
		b.logger.Error("Failed to write blob", zap.String("path", diskPath), zap.Error(err))
		return nil, apperrors.NewStorageFailed(diskPath, err)
	}

	stored := &StoredFile{
		Filename:     name,
		OriginalName: originalName,
		DiskPath:     diskPath,
		URL:          path.Join(b.urlPrefix, name),
		MimeType:     mimetype.Detect(sniff.Bytes()).String(),
		Size:         n,
	}

	b.logger.Info("Blob stored",
		zap.String("file", name),
		zap.String("mime_type", stored.MimeType),
		zap.Int64("size", n),
	)
	return stored, nil
}

// Remove deletes a previously stored blob
func (b *BlobStore) Remove(file *StoredFile) error {
	if err := os.Remove(file.DiskPath); err != nil && !os.IsNotExist(err) {
		return apperrors.NewStorageFailed(file.DiskPath, err)
	}
	return nil
}

// limitedWriter keeps the first left bytes and silently discards the rest
type limitedWriter struct {
	w    io.Writer
	left int
}

func (l *limitedWriter) Write(p []byte) (int, error) {
	if l.left > 0 {
		chunk := p
		if len(chunk) > l.left {
			chunk = chunk[:l.left]
		}
		n, err := l.w.Write(chunk)
		l.left -= n
		if err != nil {
			return n, err
		}
	}
	return len(p), nil
}

package media

import (
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"social-demo/backend/internal/state"
)

// VideoRegistry is the flat, upload-ordered list of videos
type VideoRegistry struct {
	mu     sync.RWMutex
	videos []state.Video
	blobs  *BlobStore
}

// NewVideoRegistry stores video files through blobs
func NewVideoRegistry(blobs *BlobStore) *VideoRegistry {
	return &VideoRegistry{blobs: blobs}
}

// Upload stores the file and registers it under title
func (v *VideoRegistry) Upload(title, originalName string, r io.Reader) (state.Video, error) {
	stored, err := v.blobs.Save("", originalName, r)
	if err != nil {
		return state.Video{}, err
	}

	video := state.Video{
		ID:           uuid.New().String(),
		Title:        title,
		Filename:     stored.Filename,
		OriginalName: originalName,
		Path:         stored.URL,
		MimeType:     stored.MimeType,
		UploadedAt:   time.Now().UTC(),
	}

	v.mu.Lock()
	v.videos = append(v.videos, video)
	v.mu.Unlock()

	return video, nil
}

// List returns every registered video in upload order
func (v *VideoRegistry) List() []state.Video {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]state.Video, len(v.videos))
	copy(out, v.videos)
	return out
}

package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URL prefix under which stored files are served back.
const mediaURLPrefix = "/media/"

var ErrUnsupportedAudio = errors.New("unsupported audio format: use mp3, wav, or m4a")

var allowedAudioExts = map[string]bool{
	".mp3": true,
	".wav": true,
	".m4a": true,
}

// MediaStore persists uploaded audio notes on the local filesystem.
// Filenames are server-generated UUIDs so client names never reach disk.
type MediaStore struct {
	dir string
}

func NewMediaStore(dir string) *MediaStore {
	return &MediaStore{dir: dir}
}

// Store writes src to the media directory and returns the URL path the
// file is served under. Only the extension of the client filename is kept.
func (m *MediaStore) Store(filename string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedAudioExts[ext] {
		return "", ErrUnsupportedAudio
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir %q: %w", m.dir, err)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(m.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create media file %q: %w", path, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write media file %q: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close media file %q: %w", path, err)
	}

	return mediaURLPrefix + name, nil
}

// Dir returns the directory files are stored in, for static serving.
func (m *MediaStore) Dir() string {
	return m.dir
}

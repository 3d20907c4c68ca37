package media

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrCancelled   = errors.New("media pick cancelled")
	ErrUnsupported = errors.New("unsupported media type")
)

type Kind int

const (
	KindImage Kind = iota
	KindVideo
)

func (k Kind) String() string {
	if k == KindVideo {
		return "video"
	}
	return "image"
}

var extensions = map[Kind][]string{
	KindImage: {".jpg", ".jpeg", ".png", ".gif", ".webp", ".heic"},
	KindVideo: {".mp4", ".mov", ".m4v", ".webm"},
}

// Picker turns a user selection into a media URI.
// An empty selection is a cancellation and returns ErrCancelled.
type Picker interface {
	PickImage(selection string) (string, error)
	PickVideo(selection string) (string, error)
}

// FilePicker accepts local file paths and remote http(s) URLs.
type FilePicker struct {
	BaseDir string
}

func (p FilePicker) PickImage(selection string) (string, error) {
	return p.pick(KindImage, selection)
}

func (p FilePicker) PickVideo(selection string) (string, error) {
	return p.pick(KindVideo, selection)
}

func (p FilePicker) pick(kind Kind, selection string) (string, error) {
	selection = strings.TrimSpace(selection)
	if selection == "" {
		return "", ErrCancelled
	}

	if u, err := url.Parse(selection); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		if !hasExtension(kind, u.Path) {
			return "", fmt.Errorf("%w: %s is not a %s", ErrUnsupported, selection, kind)
		}
		return u.String(), nil
	}

	path := p.expand(strings.TrimPrefix(selection, "file://"))
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !strings.HasPrefix(mtype.String(), kind.String()+"/") {
		return "", fmt.Errorf("%w: %s is %s, not a %s", ErrUnsupported, filepath.Base(path), mtype.String(), kind)
	}

	return (&url.URL{Scheme: "file", Path: path}).String(), nil
}

func (p FilePicker) expand(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, _ := os.UserHomeDir()
		path = filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
	}
	if !filepath.IsAbs(path) && p.BaseDir != "" {
		path = filepath.Join(p.BaseDir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// hasExtension is the only check available for remote URLs, which are not downloaded.
func hasExtension(kind Kind, path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range extensions[kind] {
		if ext == allowed {
			return true
		}
	}
	return false
}

// DisplayName shortens a media URI to its file name for list rendering.
func DisplayName(uri string) string {
	if uri == "" {
		return ""
	}
	if u, err := url.Parse(uri); err == nil && u.Path != "" {
		return filepath.Base(u.Path)
	}
	return filepath.Base(uri)
}

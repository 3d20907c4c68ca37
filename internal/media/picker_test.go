package media

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	mp4Header = []byte("\x00\x00\x00\x18ftypisom\x00\x00\x02\x00isomiso2\x00\x00\x00\x08free")
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPickCancelled(t *testing.T) {
	p := FilePicker{}
	for _, sel := range []string{"", "   "} {
		if _, err := p.PickImage(sel); !errors.Is(err, ErrCancelled) {
			t.Errorf("PickImage(%q): expected ErrCancelled, got %v", sel, err)
		}
	}
}

func TestPickLocalFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "proof.PNG", pngHeader)

	p := FilePicker{BaseDir: dir}
	uri, err := p.PickImage("proof.PNG")
	if err != nil {
		t.Fatalf("PickImage: %v", err)
	}
	if !strings.HasPrefix(uri, "file://") || !strings.HasSuffix(uri, "proof.PNG") {
		t.Errorf("unexpected uri %q", uri)
	}
	if DisplayName(uri) != "proof.PNG" {
		t.Errorf("unexpected display name %q", DisplayName(uri))
	}
}

func TestPickWrongKind(t *testing.T) {
	path := writeFile(t, t.TempDir(), "clip.mp4", mp4Header)

	p := FilePicker{}
	if _, err := p.PickImage(path); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	if _, err := p.PickVideo(path); err != nil {
		t.Errorf("PickVideo: %v", err)
	}
}

func TestPickDetectsContentNotExtension(t *testing.T) {
	dir := t.TempDir()
	p := FilePicker{BaseDir: dir}

	writeFile(t, dir, "notes.jpg", []byte("just some text, not an image"))
	if _, err := p.PickImage("notes.jpg"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("text named .jpg: expected ErrUnsupported, got %v", err)
	}

	writeFile(t, dir, "photo", pngHeader)
	if _, err := p.PickImage("photo"); err != nil {
		t.Errorf("png without extension: %v", err)
	}
}

func TestPickMissingFile(t *testing.T) {
	p := FilePicker{BaseDir: t.TempDir()}
	if _, err := p.PickImage("nope.jpg"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestPickRemoteURL(t *testing.T) {
	p := FilePicker{}
	uri, err := p.PickImage("https://example.com/a/b.jpg?size=2")
	if err != nil {
		t.Fatalf("PickImage: %v", err)
	}
	if uri != "https://example.com/a/b.jpg?size=2" {
		t.Errorf("unexpected uri %q", uri)
	}
	if _, err := p.PickVideo("https://example.com/a/b.jpg"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

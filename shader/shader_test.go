// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const vertexSource = `
@vertex
fn main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}
`

func TestCompileWithOptions(t *testing.T) {
	words, err := CompileWithOptions(vertexSource, Options{Validate: false})
	if err != nil {
		t.Fatalf("CompileWithOptions() error = %v", err)
	}
	if len(words) < 5 {
		t.Fatalf("got %d words, want at least a 5-word header", len(words))
	}
	if words[0] != 0x07230203 {
		t.Errorf("magic = 0x%08x, want 0x07230203", words[0])
	}
}

func TestCompileInvalid(t *testing.T) {
	if _, err := Compile("fn main( {"); err == nil {
		t.Error("Compile() of a syntax error should fail")
	}
}

// TestHTTPFetcher tests fetching over HTTP.
func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/shader.wgsl":
			if !strings.Contains(r.Header.Get("Accept"), "text/wgsl") {
				t.Errorf("Accept = %q", r.Header.Get("Accept"))
			}
			_, _ = w.Write([]byte(vertexSource))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := &HTTPFetcher{Client: srv.Client()}
	src, err := f.Fetch(context.Background(), srv.URL+"/shader.wgsl")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if src != vertexSource {
		t.Errorf("Fetch() = %q", src)
	}

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.wgsl")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		t.Errorf("Fetch(missing) error = %v, want 404 StatusError", err)
	}
}

func TestHTTPFetcherCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(vertexSource))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := &HTTPFetcher{Client: srv.Client()}
	if _, err := f.Fetch(ctx, srv.URL); !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want context.Canceled", err)
	}
}

// TestFileFetcher tests rooted file reads.
func TestFileFetcher(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "shaders"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "shaders", "shader.wgsl"), []byte(vertexSource), 0o644); err != nil {
		t.Fatal(err)
	}

	f := &FileFetcher{Root: dir}
	src, err := f.Fetch(context.Background(), "shaders/shader.wgsl")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if src != vertexSource {
		t.Errorf("Fetch() = %q", src)
	}

	if _, err := f.Fetch(context.Background(), "../outside.wgsl"); err == nil {
		t.Error("Fetch() outside the root should fail")
	}
}

// TestFileFetcherAbsolute tests absolute locations and file URLs.
func TestFileFetcherAbsolute(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "root")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	inside := filepath.Join(root, "shader.wgsl")
	outside := filepath.Join(dir, "outside.wgsl")
	for _, p := range []string{inside, outside} {
		if err := os.WriteFile(p, []byte(vertexSource), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	f := &FileFetcher{Root: root}
	if src, err := f.Fetch(context.Background(), inside); err != nil || src != vertexSource {
		t.Errorf("Fetch(%q) = %q, %v", inside, src, err)
	}
	if _, err := f.Fetch(context.Background(), outside); !errors.Is(err, ErrOutsideRoot) {
		t.Errorf("Fetch(%q) error = %v, want ErrOutsideRoot", outside, err)
	}

	r := NewResolver(nil, root)
	if _, err := r.Fetch(context.Background(), "file://"+filepath.ToSlash(inside)); err != nil {
		t.Errorf("Resolver.Fetch(file URL inside root) error = %v", err)
	}
	if _, err := r.Fetch(context.Background(), "file://"+filepath.ToSlash(outside)); !errors.Is(err, ErrOutsideRoot) {
		t.Errorf("Resolver.Fetch(file URL outside root) error = %v, want ErrOutsideRoot", err)
	}
}

func TestFileFetcherTooLarge(t *testing.T) {
	dir := t.TempDir()
	big := make([]byte, MaxSourceSize+1)
	if err := os.WriteFile(filepath.Join(dir, "big.wgsl"), big, 0o644); err != nil {
		t.Fatal(err)
	}
	f := &FileFetcher{Root: dir}
	if _, err := f.Fetch(context.Background(), "big.wgsl"); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Fetch() error = %v, want ErrTooLarge", err)
	}
}

type staticFetcher struct {
	got string
}

func (f *staticFetcher) Fetch(_ context.Context, location string) (string, error) {
	f.got = location
	return "ok", nil
}

// TestResolver tests scheme dispatch.
func TestResolver(t *testing.T) {
	r := NewResolver(nil, t.TempDir())
	file := &staticFetcher{}
	web := &staticFetcher{}
	r.Register("file", file)
	r.Register("HTTPS", web)

	tests := []struct {
		location string
		fetcher  *staticFetcher
		want     string
	}{
		{"shader.wgsl", file, "shader.wgsl"},
		{"file:///srv/shader.wgsl", file, "/srv/shader.wgsl"},
		{"https://example.com/shader.wgsl", web, "https://example.com/shader.wgsl"},
	}
	for _, tt := range tests {
		if _, err := r.Fetch(context.Background(), tt.location); err != nil {
			t.Fatalf("Fetch(%q) error = %v", tt.location, err)
		}
		if tt.fetcher.got != tt.want {
			t.Errorf("Fetch(%q) passed %q, want %q", tt.location, tt.fetcher.got, tt.want)
		}
	}

	if _, err := r.Fetch(context.Background(), "ftp://example.com/x.wgsl"); err == nil {
		t.Error("Fetch(ftp) should fail")
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// MaxSourceSize is the largest shader source a fetcher accepts.
const MaxSourceSize = 4 << 20

// ErrTooLarge is returned when a source exceeds MaxSourceSize.
var ErrTooLarge = errors.New("shader: source too large")

// ErrOutsideRoot is returned for absolute file locations outside
// FileFetcher.Root.
var ErrOutsideRoot = errors.New("shader: location outside shader root")

// Fetcher loads shader source text from a location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (string, error)
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("shader: GET %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// HTTPFetcher fetches sources over HTTP(S).
type HTTPFetcher struct {
	// Client is the HTTP client. nil means http.DefaultClient.
	Client *http.Client
}

// Fetch issues a GET request for location and returns the body.
func (f *HTTPFetcher) Fetch(ctx context.Context, location string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", fmt.Errorf("shader: %w", err)
	}
	req.Header.Set("Accept", "text/wgsl, text/plain;q=0.9, */*;q=0.1")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("shader: GET %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{URL: location, Code: resp.StatusCode}
	}
	return readLimited(resp.Body, location)
}

// FileFetcher reads sources from the file system below Root.
type FileFetcher struct {
	Root string
}

// Fetch reads location from Root. Relative locations resolve against Root;
// absolute ones must lie inside it. Locations escaping Root are rejected.
func (f *FileFetcher) Fetch(ctx context.Context, location string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	root := f.Root
	if root == "" {
		root = "."
	}
	name, err := rootRelative(root, location)
	if err != nil {
		return "", err
	}
	r, err := os.OpenRoot(root)
	if err != nil {
		return "", fmt.Errorf("shader: %w", err)
	}
	defer r.Close()

	file, err := r.Open(name)
	if err != nil {
		return "", fmt.Errorf("shader: %w", err)
	}
	defer file.Close()
	return readLimited(file, location)
}

// rootRelative returns location as a path relative to root.
func rootRelative(root, location string) (string, error) {
	p := filepath.FromSlash(location)
	if !filepath.IsAbs(p) {
		return p, nil
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("shader: %w", err)
	}
	rel, err := filepath.Rel(absRoot, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, location)
	}
	return rel, nil
}

func readLimited(r io.Reader, location string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSourceSize+1))
	if err != nil {
		return "", fmt.Errorf("shader: read %s: %w", location, err)
	}
	if len(data) > MaxSourceSize {
		return "", fmt.Errorf("%w: %s", ErrTooLarge, location)
	}
	return string(data), nil
}

// Resolver dispatches to a Fetcher by URL scheme.
type Resolver struct {
	fetchers map[string]Fetcher
}

// NewResolver creates a resolver using client for http and https and a
// FileFetcher rooted at root for file URLs and plain paths.
func NewResolver(client *http.Client, root string) *Resolver {
	h := &HTTPFetcher{Client: client}
	return &Resolver{fetchers: map[string]Fetcher{
		"http":  h,
		"https": h,
		"file":  &FileFetcher{Root: root},
	}}
}

// Register sets the fetcher for scheme, replacing any existing one.
func (r *Resolver) Register(scheme string, f Fetcher) {
	r.fetchers[strings.ToLower(scheme)] = f
}

// Fetch loads location with the fetcher registered for its scheme.
// Plain paths and file:// URLs go to the file fetcher; the path of a
// file:// URL is absolute and must lie inside the shader root.
func (r *Resolver) Fetch(ctx context.Context, location string) (string, error) {
	scheme := "file"
	path := location
	if u, err := url.Parse(location); err == nil && len(u.Scheme) > 1 {
		scheme = strings.ToLower(u.Scheme)
		if scheme == "file" {
			path = u.Path
		}
	}
	f, ok := r.fetchers[scheme]
	if !ok {
		return "", fmt.Errorf("shader: unsupported scheme %q", scheme)
	}
	return f.Fetch(ctx, path)
}

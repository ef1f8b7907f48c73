// Package fetch downloads images over HTTP and persists them to a local
// directory.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
)

// Fetcher downloads URLs and writes their bodies to files under Dir. A nil
// Client falls back to http.DefaultClient.
type Fetcher struct {
	Client *http.Client
	Dir    string
}

// Fetch downloads rawURL and writes the response body to a file named after
// the last path segment of the URL, with a ".jpg" suffix. It returns the
// path of the written file.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %q: %w", rawURL, err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %q: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetching %q: unexpected status %s", rawURL, resp.Status)
	}

	dest := filepath.Join(f.Dir, path.Base(parsed.Path)+".jpg")

	file, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating %q: %w", dest, err)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		return "", fmt.Errorf("writing %q: %w", dest, err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %q: %w", dest, err)
	}

	return dest, nil
}

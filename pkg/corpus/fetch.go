package corpus

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// retryBase is the first retry delay; it doubles per attempt.
var retryBase = time.Second

const fetchAttempts = 3

// IsRemote reports whether corpus names an http(s) URL.
func IsRemote(corpus string) bool {
	return strings.HasPrefix(corpus, "http://") || strings.HasPrefix(corpus, "https://")
}

// Fetch downloads url into dir and returns the local corpus path. A ZIP
// archive is extracted and the first entry with one of the given
// extensions (e.g. ".csv") is returned.
func Fetch(ctx context.Context, url, dir string, exts ...string) (string, error) {
	name := path.Base(strings.SplitN(url, "?", 2)[0])
	if name == "" || name == "/" || name == "." {
		name = "corpus"
	}
	dest := filepath.Join(dir, name)
	if err := download(ctx, url, dest); err != nil {
		return "", err
	}
	if !strings.EqualFold(filepath.Ext(dest), ".zip") {
		return dest, nil
	}

	files, err := unzip(dest, dir)
	if err != nil {
		return "", err
	}
	for _, f := range files {
		for _, ext := range exts {
			if strings.EqualFold(filepath.Ext(f), ext) {
				return f, nil
			}
		}
	}
	return "", fmt.Errorf("no %s file in archive %s", strings.Join(exts, "/"), name)
}

// download fetches url to dest, retrying failed attempts with backoff.
func download(ctx context.Context, url, dest string) error {
	client := &http.Client{Timeout: 10 * time.Minute}

	var lastErr error
	for attempt := 0; attempt < fetchAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBase << uint(attempt-1)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			continue
		}

		f, err := os.Create(dest)
		if err != nil {
			resp.Body.Close()
			return fmt.Errorf("create file: %w", err)
		}
		_, copyErr := io.Copy(f, resp.Body)
		resp.Body.Close()
		closeErr := f.Close()
		if copyErr != nil {
			lastErr = copyErr
			continue
		}
		if closeErr != nil {
			return closeErr
		}
		return nil
	}
	return fmt.Errorf("download %s failed after %d attempts: %w", url, fetchAttempts, lastErr)
}

// unzip extracts the regular files of src into destDir, flattening paths.
// Two entries with the same base name, or one named like the archive,
// are rejected rather than overwritten.
func unzip(src, destDir string) ([]string, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer r.Close()

	seen := map[string]string{filepath.Base(src): "(archive)"}
	var paths []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		base := filepath.Base(f.Name)
		if prev, ok := seen[base]; ok {
			return nil, fmt.Errorf("zip entry %s collides with %s", f.Name, prev)
		}
		seen[base] = f.Name
		destPath := filepath.Join(destDir, base)
		if err := extract(f, destPath); err != nil {
			return nil, err
		}
		paths = append(paths, destPath)
	}
	return paths, nil
}

func extract(f *zip.File, destPath string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open zip entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", destPath, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	return out.Close()
}

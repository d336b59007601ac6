package cvs

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
)

// githubRawBase is where the "gh:<ref>" shorthand resolves to.
const githubRawBase = "https://raw.githubusercontent.com/PCMDI/input4MIPs_CVs/"

// RawLoader loads raw CV file content by filename. String describes the
// source well enough to trace CV-version mismatches from error messages.
type RawLoader interface {
	LoadRaw(filename string) (string, error)
	String() string
}

// GetRawCVLoader resolves a CV-source string into a loader.
// "gh:<ref>" resolves to the versioned GitHub raw content for that ref,
// an http(s) URL is used as a base URL, and anything else is a local
// directory.
func GetRawCVLoader(cvSource string) (RawLoader, error) {
	if cvSource == "" {
		return nil, ErrCVLoad.Msg("no CV source supplied")
	}
	if ref, ok := strings.CutPrefix(cvSource, "gh:"); ok {
		return &HTTPRawLoader{BaseURL: githubRawBase + ref + "/"}, nil
	}
	if strings.HasPrefix(cvSource, "http://") || strings.HasPrefix(cvSource, "https://") {
		if !strings.HasSuffix(cvSource, "/") {
			cvSource += "/"
		}
		return &HTTPRawLoader{BaseURL: cvSource}, nil
	}
	return &LocalRawLoader{Dir: cvSource}, nil
}

// LocalRawLoader reads CV files verbatim from a directory.
type LocalRawLoader struct {
	Dir string
}

func (l *LocalRawLoader) LoadRaw(filename string) (string, error) {
	content, err := os.ReadFile(filepath.Join(l.Dir, filename))
	if err != nil {
		return "", ErrCVLoad.MsgErr(fmt.Sprintf("could not read %s from %s", filename, l.Dir), err)
	}
	return string(content), nil
}

func (l *LocalRawLoader) String() string {
	return fmt.Sprintf("LocalRawLoader(dir=%s)", l.Dir)
}

// HTTPRawLoader fetches CV files from a base URL, with retries and an
// optional on-disk cache.
type HTTPRawLoader struct {
	BaseURL string

	// CacheDir, when set, caches fetched files on disk.
	CacheDir string

	// ForceDownload bypasses the cache.
	ForceDownload bool

	// Client overrides the HTTP client. Defaults to one with a
	// 30 second timeout.
	Client *http.Client
}

func (l *HTTPRawLoader) LoadRaw(filename string) (string, error) {
	if l.CacheDir != "" && !l.ForceDownload {
		cached := filepath.Join(l.CacheDir, filename)
		if content, err := os.ReadFile(cached); err == nil {
			log.Debug().Str("file", cached).Msg("using cached CV file")
			return string(content), nil
		}
	}

	url := l.BaseURL + filename
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	content, err := retry.DoWithData(
		func() (string, error) { return fetch(client, url) },
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
	)
	if err != nil {
		return "", ErrCVLoad.MsgErr(fmt.Sprintf("could not fetch %s", url), err)
	}

	if l.CacheDir != "" {
		if err := os.MkdirAll(l.CacheDir, 0o755); err == nil {
			// Cache failures are not fatal, the content is in hand.
			if werr := os.WriteFile(filepath.Join(l.CacheDir, filename), []byte(content), 0o644); werr != nil {
				log.Debug().Err(werr).Str("file", filename).Msg("could not cache CV file")
			}
		}
	}
	return content, nil
}

func fetch(client *http.Client, url string) (string, error) {
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (l *HTTPRawLoader) String() string {
	return fmt.Sprintf("HTTPRawLoader(base_url=%s, cache_dir=%s, force_download=%v)",
		l.BaseURL, l.CacheDir, l.ForceDownload)
}

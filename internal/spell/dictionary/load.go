package dictionary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultSource is the word list fetched when no source is configured.
const DefaultSource = "https://raw.githubusercontent.com/dwyl/english-words/master/words_alpha.txt"

// CacheFileName is the name of the cached word list inside the cache directory.
const CacheFileName = "words.txt"

// ErrUnavailable indicates the word list could not be obtained.
// Startup cannot proceed without a dictionary.
var ErrUnavailable = errors.New("dictionary unavailable")

// Options configures Load.
type Options struct {
	// Source is an http(s) URL or a local file path.
	Source string

	// CacheDir holds the downloaded word list between runs.
	// Empty disables caching.
	CacheDir string

	// Refresh forces a download even when a cached copy exists.
	Refresh bool

	// Timeout bounds the download. Zero means no timeout beyond ctx.
	Timeout time.Duration

	// Client is the HTTP client used for downloads. Defaults to http.DefaultClient.
	Client *http.Client
}

// Load builds a dictionary from opts.Source.
// Every failure wraps ErrUnavailable.
func Load(ctx context.Context, opts Options) (*Dictionary, error) {
	source := opts.Source
	if source == "" {
		source = DefaultSource
	}

	if !isURL(source) {
		d, err := loadFile(source)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return d, nil
	}

	cachePath := ""
	if opts.CacheDir != "" {
		cachePath = filepath.Join(opts.CacheDir, CacheFileName)
		if !opts.Refresh {
			if d, err := loadFile(cachePath); err == nil && d.Len() > 0 {
				return d, nil
			}
		}
	}

	data, err := fetch(ctx, opts, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	d, err := FromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if d.Len() == 0 {
		return nil, fmt.Errorf("%w: %s contains no words", ErrUnavailable, source)
	}

	if cachePath != "" {
		// A failed cache write only costs a download next time.
		_ = writeCache(cachePath, data)
	}
	return d, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func loadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return FromReader(f)
}

func fetch(ctx context.Context, opts Options, url string) ([]byte, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return data, nil
}

// writeCache writes through a temp file so a partial download never
// replaces a good cache.
func writeCache(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".words-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

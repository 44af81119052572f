// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/pdiddy/slide-scorer/internal/httputil"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "slide-scorer/0.1"

	// maxDeckBytes caps downloads; decks larger than this are rejected.
	maxDeckBytes = 256 << 20
)

// fetch downloads a deck and returns its bytes and lowercase extension.
func fetch(ctx context.Context, source string, opts Options) ([]byte, string, error) {
	u, err := url.Parse(source)
	if err != nil {
		return nil, "", fmt.Errorf("parsing URL: %w", err)
	}
	ext := strings.ToLower(path.Ext(u.Path))

	client := opts.Client
	if client == nil {
		timeout := opts.HTTP.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building request: %w", err)
	}
	ua := opts.HTTP.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	if opts.HTTP.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.HTTP.Token)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, opts.HTTP.MaxRetries)
	if err != nil {
		return nil, "", fmt.Errorf("downloading: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("downloading: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDeckBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading response: %w", err)
	}
	if len(data) > maxDeckBytes {
		return nil, "", fmt.Errorf("deck exceeds %d bytes", maxDeckBytes)
	}
	return data, ext, nil
}

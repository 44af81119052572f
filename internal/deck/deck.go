// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deck loads presentations into immutable types.Deck values.
// Supported sources are .pptx files, legacy .ppt files (through a
// Converter), YAML deck descriptions, and http(s) URLs to any of these.
package deck

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

	"go.uber.org/zap"

	"github.com/pdiddy/slide-scorer/pkg/types"
)

// ErrUnsupportedFormat is wrapped by a LoadError when the source extension
// is not a known deck format.
var ErrUnsupportedFormat = errors.New("unsupported deck format")

// ErrNoConverter is wrapped by a LoadError when a legacy .ppt file is given
// and no Converter is configured.
var ErrNoConverter = errors.New("no converter configured for legacy .ppt files")

// LoadError reports a deck that is missing or cannot be parsed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading deck %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Converter turns a legacy .ppt stream into .pptx bytes.
type Converter interface {
	Convert(ctx context.Context, r io.Reader) ([]byte, error)
}

// Options configures Load. The zero value loads local .pptx and YAML files.
type Options struct {
	// HTTP holds download settings for URL sources.
	HTTP types.HTTPConfig

	// Client is used for URL sources; nil uses a client with HTTP.Timeout.
	Client *http.Client

	// Converter handles .ppt sources; nil rejects them.
	Converter Converter

	Logger *zap.Logger
}

// Load reads the deck at source, a file path or http(s) URL. Every failure
// is returned as a *LoadError.
func Load(ctx context.Context, source string, opts Options) (types.Deck, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		data []byte
		ext  string
		err  error
	)
	if isURL(source) {
		data, ext, err = fetch(ctx, source, opts)
	} else {
		ext = strings.ToLower(filepath.Ext(source))
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return types.Deck{}, &LoadError{Source: source, Err: err}
	}

	d, err := decode(ctx, ext, data, opts.Converter)
	if err != nil {
		return types.Deck{}, &LoadError{Source: source, Err: err}
	}
	d.Source = source

	logger.Debug("deck loaded",
		zap.String("source", source), zap.String("format", ext), zap.Int("slides", d.Len()))
	return d, nil
}

func decode(ctx context.Context, ext string, data []byte, conv Converter) (types.Deck, error) {
	switch ext {
	case ".pptx", ".pptm":
		return ParsePPTX(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".ppt":
		if conv == nil {
			return types.Deck{}, ErrNoConverter
		}
		converted, err := conv.Convert(ctx, bytes.NewReader(data))
		if err != nil {
			return types.Deck{}, fmt.Errorf("converting legacy presentation: %w", err)
		}
		return ParsePPTX(converted)
	}
	return types.Deck{}, fmt.Errorf("%w %q: use .pptx, .ppt, .yaml, or .yml", ErrUnsupportedFormat, ext)
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

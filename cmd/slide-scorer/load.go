// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/slide-scorer/internal/container"
	"github.com/pdiddy/slide-scorer/internal/convert"
	"github.com/pdiddy/slide-scorer/internal/deck"
	"github.com/pdiddy/slide-scorer/internal/secrets"
	"github.com/pdiddy/slide-scorer/pkg/types"
)

// loadDeck reads source with the configured HTTP settings. A container
// converter is only set up for legacy .ppt sources.
func loadDeck(ctx context.Context, cmd *cobra.Command, source string) (types.Deck, error) {
	httpCfg := cfg.HTTP
	httpCfg.Token = loadedSecrets.Get(secrets.DeckURLToken)

	opts := deck.Options{
		HTTP:   httpCfg,
		Logger: logger,
	}

	if isLegacy(source) {
		preference, _ := cmd.Flags().GetString("runtime")
		rt, err := container.DetectRuntime(ctx, preference)
		if err != nil {
			return types.Deck{}, &deck.LoadError{Source: source, Err: err}
		}
		conv, err := convert.NewContainerConverter(ctx, rt, cfg.Convert.Image, logger)
		if err != nil {
			return types.Deck{}, &deck.LoadError{Source: source, Err: err}
		}
		opts.Converter = conv
	}

	return deck.Load(ctx, source, opts)
}

func isLegacy(source string) bool {
	if i := strings.IndexAny(source, "?#"); i >= 0 && strings.Contains(source, "://") {
		source = source[:i]
	}
	return strings.EqualFold(path.Ext(source), ".ppt")
}

// addDeckFlags registers flags shared by commands that load a deck.
func addDeckFlags(cmd *cobra.Command) {
	cmd.Flags().String("runtime", container.Auto, "container runtime for legacy .ppt conversion: docker, podman, or auto")
}

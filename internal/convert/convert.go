// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns legacy binary .ppt presentations into .pptx so the
// deck loader can read them.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/slide-scorer/internal/container"
)

// DefaultImage reads a .ppt on stdin and writes a .pptx on stdout.
const DefaultImage = "slide-scorer/unoconv:latest"

// zipMagic is the local file header signature every .pptx starts with.
var zipMagic = []byte("PK\x03\x04")

// ContainerConverter converts presentations by piping them through a
// conversion image. It depends on a container.Runtime injected at
// construction time.
type ContainerConverter struct {
	runtime container.Runtime
	image   string
	logger  *zap.Logger
}

// NewContainerConverter creates a converter that runs image under rt. It
// verifies that the image exists locally before returning. An empty image
// uses DefaultImage.
func NewContainerConverter(ctx context.Context, rt container.Runtime, image string, logger *zap.Logger) (*ContainerConverter, error) {
	if image == "" {
		image = DefaultImage
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("conversion image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerConverter{runtime: rt, image: image, logger: logger}, nil
}

// Convert pipes r through the conversion container and returns the .pptx
// bytes it produced.
func (c *ContainerConverter) Convert(ctx context.Context, r io.Reader) ([]byte, error) {
	c.logger.Debug("converting legacy presentation",
		zap.String("runtime", c.runtime.Name()), zap.String("image", c.image))

	var out bytes.Buffer
	err := c.runtime.Run(ctx, container.RunSpec{
		Image:  c.image,
		Args:   []string{"--format", "pptx"},
		Stdin:  r,
		Stdout: &out,
	})
	if err != nil {
		return nil, fmt.Errorf("converting with %s: %w", c.image, err)
	}

	if out.Len() == 0 {
		return nil, fmt.Errorf("%s produced empty output", c.image)
	}
	if !bytes.HasPrefix(out.Bytes(), zipMagic) {
		return nil, fmt.Errorf("%s produced output that is not a .pptx package", c.image)
	}
	return out.Bytes(), nil
}

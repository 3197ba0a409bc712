package wicore

import (
	"context"
	"io"

	"github.com/disintegration/imaging"
)

// Processor defines the standard interface for streaming image processing.
type Processor interface {
	Process(ctx context.Context, r io.Reader, w io.Writer) error
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFormat sets the encoding used by Process. The default is PNG.
func WithFormat(f imaging.Format) Option {
	return func(p *Pipeline) {
		p.format = f
	}
}

// WithQuality overrides the configured JPEG quality for Process.
func WithQuality(q int) Option {
	return func(p *Pipeline) {
		p.quality = q
	}
}

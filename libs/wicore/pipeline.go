package wicore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

type step struct {
	name string
	run  func(ImageHandle) ImageHandle
}

// Pipeline chains image operations on handles. Each step consumes the
// previous step's handle; intermediates are released as the chain advances.
type Pipeline struct {
	steps   []step
	format  imaging.Format
	quality int
}

// NewPipeline creates an empty pipeline.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{format: imaging.PNG}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) add(name string, run func(ImageHandle) ImageHandle) *Pipeline {
	p.steps = append(p.steps, step{name: name, run: run})
	return p
}

// fail adds a step that turns its input into an error handle.
func (p *Pipeline) fail(name string, err error) *Pipeline {
	return p.add(name, func(h ImageHandle) ImageHandle {
		return apply(Images, h, Images, func(*ColorImage) (*ColorImage, error) {
			return nil, err
		})
	})
}

// viaGray runs a gray operation on the luma of h and converts back.
func viaGray(h ImageHandle, fn func(GrayHandle) GrayHandle) ImageHandle {
	g := ToGray(h)
	defer Grays.Release(g)
	out := fn(g)
	defer Grays.Release(out)
	return GrayToImage(out)
}

// Resize adds an aspect-preserving resize.
func (p *Pipeline) Resize(width, height uint32, filter string) *Pipeline {
	return p.add("resize", func(h ImageHandle) ImageHandle { return Resize(h, width, height, filter) })
}

// ResizeExact adds a resize to exactly width x height.
func (p *Pipeline) ResizeExact(width, height uint32, filter string) *Pipeline {
	return p.add("resize-exact", func(h ImageHandle) ImageHandle { return ResizeExact(h, width, height, filter) })
}

// Thumbnail adds a box-filtered aspect-preserving resize.
func (p *Pipeline) Thumbnail(width, height uint32) *Pipeline {
	return p.add("thumbnail", func(h ImageHandle) ImageHandle { return Thumbnail(h, width, height) })
}

// Crop adds a crop of the w x h region at (x, y).
func (p *Pipeline) Crop(w, h, x, y uint32) *Pipeline {
	return p.add("crop", func(in ImageHandle) ImageHandle { return Crop(in, x, y, w, h) })
}

// Rotate adds a clockwise rotation by 90, 180 or 270 degrees.
func (p *Pipeline) Rotate(degrees int) *Pipeline {
	switch degrees {
	case 90:
		return p.add("rotate", Rotate90)
	case 180:
		return p.add("rotate", Rotate180)
	case 270:
		return p.add("rotate", Rotate270)
	default:
		return p.fail("rotate", fmt.Errorf("unsupported rotation %d (expected 90, 180 or 270)", degrees))
	}
}

// Flip adds a flip around axis "h" or "v".
func (p *Pipeline) Flip(axis string) *Pipeline {
	switch axis {
	case "h":
		return p.add("flip", FlipHorizontal)
	case "v":
		return p.add("flip", FlipVertical)
	default:
		return p.fail("flip", fmt.Errorf("unsupported flip axis %q (expected h or v)", axis))
	}
}

// Blur adds a gaussian blur.
func (p *Pipeline) Blur(sigma float32) *Pipeline {
	return p.add("blur", func(h ImageHandle) ImageHandle { return Blur(h, sigma) })
}

// Unsharpen adds an unsharp mask.
func (p *Pipeline) Unsharpen(sigma float32, threshold int32) *Pipeline {
	return p.add("unsharpen", func(h ImageHandle) ImageHandle { return Unsharpen(h, sigma, threshold) })
}

// Contrast adds a contrast adjustment in percent.
func (p *Pipeline) Contrast(percent float32) *Pipeline {
	return p.add("contrast", func(h ImageHandle) ImageHandle { return AdjustContrast(h, percent) })
}

// Brighten adds a brightness offset.
func (p *Pipeline) Brighten(delta int32) *Pipeline {
	return p.add("brighten", func(h ImageHandle) ImageHandle { return Brighten(h, delta) })
}

// HueRotate adds a hue rotation in degrees.
func (p *Pipeline) HueRotate(degrees int32) *Pipeline {
	return p.add("huerotate", func(h ImageHandle) ImageHandle { return HueRotate(h, degrees) })
}

func (p *Pipeline) Invert() *Pipeline {
	return p.add("invert", Invert)
}

func (p *Pipeline) Grayscale() *Pipeline {
	return p.add("grayscale", Grayscale)
}

// Threshold binarises the luma at level.
func (p *Pipeline) Threshold(level uint8) *Pipeline {
	return p.add("threshold", func(h ImageHandle) ImageHandle {
		return viaGray(h, func(g GrayHandle) GrayHandle { return Threshold(g, level) })
	})
}

// Equalize equalises the luma histogram.
func (p *Pipeline) Equalize() *Pipeline {
	return p.add("equalize", func(h ImageHandle) ImageHandle {
		return viaGray(h, EqualizeHistogram)
	})
}

// Edges replaces the image with its Canny edges.
func (p *Pipeline) Edges(low, high float32) *Pipeline {
	return p.add("edges", func(h ImageHandle) ImageHandle {
		return viaGray(h, func(g GrayHandle) GrayHandle { return Canny(g, low, high) })
	})
}

// Len returns the number of steps.
func (p *Pipeline) Len() int {
	return len(p.steps)
}

// Steps returns the step names in order.
func (p *Pipeline) Steps() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.name
	}
	return names
}

// Apply runs every step on h and returns a new handle owned by the caller.
// h itself is left untouched. Errors propagate through the remaining steps.
func (p *Pipeline) Apply(h ImageHandle) ImageHandle {
	out, _ := p.ApplyContext(context.Background(), h)
	return out
}

// ApplyContext is Apply with cancellation checked between steps.
func (p *Pipeline) ApplyContext(ctx context.Context, h ImageHandle) (ImageHandle, error) {
	if len(p.steps) == 0 {
		return Images.Clone(h), nil
	}
	cur := h
	for _, s := range p.steps {
		if err := ctx.Err(); err != nil {
			if cur != h {
				Images.Release(cur)
			}
			return 0, fmt.Errorf("pipeline interrupted before %s: %w", s.name, err)
		}
		next := s.run(cur)
		if cur != h {
			Images.Release(cur)
		}
		cur = next
	}
	return cur, nil
}

// Process decodes an image from r, runs the pipeline and encodes the result
// to w.
func (p *Pipeline) Process(ctx context.Context, r io.Reader, w io.Writer) error {
	src, err := imaging.Decode(r)
	if err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	in := Images.Wrap(Ok(FromImage(src)))
	defer Images.Release(in)

	out, err := p.ApplyContext(ctx, in)
	if err != nil {
		return err
	}
	defer Images.Release(out)

	res := Images.Lookup(out)
	if res == nil {
		return errors.New("pipeline produced no image")
	}
	img, ok := res.Value()
	if !ok {
		return errors.New(res.Message())
	}

	quality := p.quality
	if quality == 0 {
		quality = CurrentConfig().JPEGQuality
	}
	if err := imaging.Encode(w, img.Image(), p.format, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// ParsePipeline builds a pipeline from a comma-separated list of operations,
// e.g. "resize=640x480:lanczos3,blur=1.5,grayscale,rotate=90".
func ParsePipeline(ops string, opts ...Option) (*Pipeline, error) {
	p := NewPipeline(opts...)
	for _, opStr := range strings.Split(ops, ",") {
		op, val, _ := strings.Cut(opStr, "=")
		op = strings.TrimSpace(op)
		val = strings.TrimSpace(val)
		if op == "" {
			continue
		}
		if err := p.parseStep(op, val); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if p.Len() == 0 {
		return nil, errors.New("pipeline has no operations")
	}
	return p, nil
}

func (p *Pipeline) parseStep(op, val string) error {
	switch op {
	case "resize", "resize-exact":
		dims, filter, ok := strings.Cut(val, ":")
		if !ok {
			filter = "lanczos3"
		}
		wh, err := parseDims(dims, 2)
		if err != nil {
			return err
		}
		if _, ok := ParseFilter(filter); !ok {
			return fmt.Errorf("unknown filter %q", filter)
		}
		if op == "resize" {
			p.Resize(wh[0], wh[1], filter)
		} else {
			p.ResizeExact(wh[0], wh[1], filter)
		}
	case "thumbnail":
		wh, err := parseDims(val, 2)
		if err != nil {
			return err
		}
		p.Thumbnail(wh[0], wh[1])
	case "crop":
		whxy, err := parseDims(val, 4)
		if err != nil {
			return err
		}
		p.Crop(whxy[0], whxy[1], whxy[2], whxy[3])
	case "rotate":
		deg, err := strconv.Atoi(val)
		if err != nil || (deg != 90 && deg != 180 && deg != 270) {
			return fmt.Errorf("invalid rotation %q (expected 90, 180 or 270)", val)
		}
		p.Rotate(deg)
	case "flip":
		if val != "h" && val != "v" {
			return fmt.Errorf("invalid flip axis %q (expected h or v)", val)
		}
		p.Flip(val)
	case "blur":
		sigma, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return fmt.Errorf("invalid sigma %q: %w", val, err)
		}
		p.Blur(float32(sigma))
	case "unsharpen":
		sv, tv, _ := strings.Cut(val, ":")
		sigma, err := strconv.ParseFloat(sv, 32)
		if err != nil {
			return fmt.Errorf("invalid sigma %q: %w", sv, err)
		}
		threshold := int64(0)
		if tv != "" {
			if threshold, err = strconv.ParseInt(tv, 10, 32); err != nil {
				return fmt.Errorf("invalid threshold %q: %w", tv, err)
			}
		}
		p.Unsharpen(float32(sigma), int32(threshold))
	case "contrast":
		pct, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return fmt.Errorf("invalid percentage %q: %w", val, err)
		}
		p.Contrast(float32(pct))
	case "brighten", "huerotate":
		n, err := strconv.ParseInt(val, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", val, err)
		}
		if op == "brighten" {
			p.Brighten(int32(n))
		} else {
			p.HueRotate(int32(n))
		}
	case "invert":
		p.Invert()
	case "grayscale":
		p.Grayscale()
	case "threshold":
		level, err := strconv.ParseUint(val, 10, 8)
		if err != nil {
			return fmt.Errorf("invalid level %q: %w", val, err)
		}
		p.Threshold(uint8(level))
	case "equalize":
		p.Equalize()
	case "edges":
		lv, hv, ok := strings.Cut(val, ":")
		if !ok {
			return fmt.Errorf("invalid thresholds %q (expected LOW:HIGH)", val)
		}
		low, err := strconv.ParseFloat(lv, 32)
		if err != nil {
			return fmt.Errorf("invalid low threshold %q: %w", lv, err)
		}
		high, err := strconv.ParseFloat(hv, 32)
		if err != nil {
			return fmt.Errorf("invalid high threshold %q: %w", hv, err)
		}
		p.Edges(float32(low), float32(high))
	default:
		return errors.New("unknown operation")
	}
	return nil
}

// parseDims parses n 'x'-separated unsigned integers.
func parseDims(val string, n int) ([]uint32, error) {
	parts := strings.Split(val, "x")
	if len(parts) != n {
		return nil, fmt.Errorf("invalid dimensions %q (expected %d values separated by x)", val, n)
	}
	out := make([]uint32, n)
	for i, s := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid dimension %q: %w", s, err)
		}
		out[i] = uint32(v)
	}
	return out, nil
}

package wicore

import (
	"fmt"
	"image"
	"slices"

	"webimages.io/libs/imageproc"
)

// Handle types crossing the C boundary. Zero is the null handle.
type (
	ImageHandle uint64
	GrayHandle  uint64
	LabelHandle uint64
)

// Kind binds a value type to its handle type.
type Kind[T any, H ~uint64] struct {
	name   string
	clone  func(T) T
	bounds func(T) image.Rectangle
}

var (
	Images = &Kind[*ColorImage, ImageHandle]{
		name:   "image",
		clone:  (*ColorImage).Clone,
		bounds: (*ColorImage).Bounds,
	}
	Grays = &Kind[*image.Gray, GrayHandle]{
		name:   "gray",
		clone:  cloneGray,
		bounds: (*image.Gray).Bounds,
	}
	Labels = &Kind[*imageproc.LabelImage, LabelHandle]{
		name:   "labels",
		clone:  (*imageproc.LabelImage).Clone,
		bounds: (*imageproc.LabelImage).Bounds,
	}
)

func cloneGray(g *image.Gray) *image.Gray {
	return &image.Gray{Pix: slices.Clone(g.Pix), Stride: g.Stride, Rect: g.Rect}
}

// Wrap registers r and returns its handle. A nil result yields the null handle.
func (k *Kind[T, H]) Wrap(r *Result[T]) H {
	if r == nil {
		return 0
	}
	h := H(handles.put(r))
	Debug("handle created", "kind", k.name, "handle", uint64(h), "ok", r.ok)
	return h
}

// Lookup returns the result behind h, or nil when h is null, released, or of
// another kind.
func (k *Kind[T, H]) Lookup(h H) *Result[T] {
	if h == 0 {
		return nil
	}
	v, ok := handles.get(uint64(h))
	if !ok {
		return nil
	}
	r, _ := v.(*Result[T])
	return r
}

// Value returns the value behind h when h is an ok handle.
func (k *Kind[T, H]) Value(h H) (T, bool) {
	return k.Lookup(h).Value()
}

func (k *Kind[T, H]) IsOk(h H) bool {
	return k.Lookup(h).IsOk()
}

// IsErr is the complement of IsOk; the null handle counts as failed.
func (k *Kind[T, H]) IsErr(h H) bool {
	return k.Lookup(h).IsErr()
}

// ErrorMessage returns the message of an error handle. Ok and null handles
// have none.
func (k *Kind[T, H]) ErrorMessage(h H) (string, bool) {
	r := k.Lookup(h)
	if r == nil || r.ok {
		return "", false
	}
	return r.msg, true
}

// Width returns the value's width, or -1 for null and error handles.
func (k *Kind[T, H]) Width(h H) int {
	v, ok := k.Value(h)
	if !ok {
		return -1
	}
	return k.bounds(v).Dx()
}

// Height returns the value's height, or -1 for null and error handles.
func (k *Kind[T, H]) Height(h H) int {
	v, ok := k.Value(h)
	if !ok {
		return -1
	}
	return k.bounds(v).Dy()
}

// Clone returns a new handle holding a deep copy of the value, or the same
// error message.
func (k *Kind[T, H]) Clone(h H) H {
	r := k.Lookup(h)
	if r == nil {
		return 0
	}
	if !r.ok {
		return k.Wrap(Err[T](r.msg))
	}
	return k.Wrap(Ok(k.clone(r.value)))
}

// Release frees h. Releasing the null handle does nothing. Releasing an id
// that is unknown or of another kind is reported and otherwise ignored.
func (k *Kind[T, H]) Release(h H) bool {
	if h == 0 {
		return false
	}
	v, ok := handles.get(uint64(h))
	if !ok {
		Warn("release of unknown handle", "kind", k.name, "handle", uint64(h))
		return false
	}
	if _, ok := v.(*Result[T]); !ok {
		Warn("release of handle with another kind", "kind", k.name, "handle", uint64(h))
		return false
	}
	if _, ok := handles.remove(uint64(h)); !ok {
		Warn("release of unknown handle", "kind", k.name, "handle", uint64(h))
		return false
	}
	Debug("handle released", "kind", k.name, "handle", uint64(h))
	return true
}

// apply runs fn on the value behind h and registers the outcome. A null input
// gives a null output and an error input forwards its message unchanged.
func apply[A, B any, HA, HB ~uint64](in *Kind[A, HA], h HA, out *Kind[B, HB], fn func(A) (B, error)) HB {
	r := in.Lookup(h)
	if r == nil {
		return 0
	}
	if !r.ok {
		return out.Wrap(Err[B](r.msg))
	}
	v, err := protect(fn, r.value)
	if err != nil {
		return out.Wrap(Err[B](err.Error()))
	}
	return out.Wrap(Ok(v))
}

// apply2 is apply for two inputs of the same kind. The first input's error
// takes precedence over the second's.
func apply2[A, B any, HA, HB ~uint64](in *Kind[A, HA], h1, h2 HA, out *Kind[B, HB], fn func(A, A) (B, error)) HB {
	r1, r2 := in.Lookup(h1), in.Lookup(h2)
	if r1 == nil || r2 == nil {
		return 0
	}
	if !r1.ok {
		return out.Wrap(Err[B](r1.msg))
	}
	if !r2.ok {
		return out.Wrap(Err[B](r2.msg))
	}
	v, err := protect(func(a A) (B, error) { return fn(a, r2.value) }, r1.value)
	if err != nil {
		return out.Wrap(Err[B](err.Error()))
	}
	return out.Wrap(Ok(v))
}

// construct registers the outcome of a constructor, recovering panics like
// apply does.
func construct[T any, H ~uint64](k *Kind[T, H], fn func() (T, error)) H {
	v, err := protect(func(struct{}) (T, error) { return fn() }, struct{}{})
	if err != nil {
		return k.Wrap(Err[T](err.Error()))
	}
	return k.Wrap(Ok(v))
}

// protect turns a panic inside fn into an error.
func protect[A, B any](fn func(A) (B, error), a A) (b B, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("operation failed: %v", p)
		}
	}()
	return fn(a)
}

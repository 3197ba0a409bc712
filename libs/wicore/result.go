package wicore

const unknownError = "unknown error"

// Result holds either a value or an error message, never both.
//
// A nil *Result stands for a handle that could not be produced at all. It is
// reported as failed but carries no message.
type Result[T any] struct {
	value T
	msg   string
	ok    bool
}

// Ok returns a successful result holding v.
func Ok[T any](v T) *Result[T] {
	return &Result[T]{value: v, ok: true}
}

// Err returns a failed result. An empty message is replaced so that a failed
// result always has readable text.
func Err[T any](msg string) *Result[T] {
	if msg == "" {
		msg = unknownError
	}
	return &Result[T]{msg: msg}
}

func (r *Result[T]) IsOk() bool {
	return r != nil && r.ok
}

func (r *Result[T]) IsErr() bool {
	return !r.IsOk()
}

// Value returns the held value and whether the result is ok.
func (r *Result[T]) Value() (T, bool) {
	if !r.IsOk() {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Message returns the error text, or "" for ok and nil results.
func (r *Result[T]) Message() string {
	if r == nil || r.ok {
		return ""
	}
	return r.msg
}

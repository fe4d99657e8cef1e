package gen

import (
	"fmt"
	"io"

	"golang.org/x/xerrors"
)

// emitter wraps an output stream so long printf runs need no per-call error
// checks: the first write error panics and is recovered into an error at the
// emission entry points.
type emitter struct {
	w io.Writer
}

type emitError struct {
	err error
}

func (e emitter) f(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(e.w, format, args...); err != nil {
		panic(emitError{err})
	}
}

func (e emitter) s(str string) {
	if _, err := io.WriteString(e.w, str); err != nil {
		panic(emitError{err})
	}
}

// recoverEmit converts a panicked emitError back into an error return.
func recoverEmit(err *error) {
	switch r := recover().(type) {
	case nil:
	case emitError:
		*err = xerrors.Errorf("emitting source: %w", r.err)
	default:
		panic(r)
	}
}

package adapters

import (
	"errors"
	"io/fs"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ioError maps a filesystem error onto an error code: missing paths are
// CodeNotFound, permission problems CodePermissionDenied, the rest internal.
func ioError(err error, msg string) error {
	code := errbuilder.CodeInternal
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = errbuilder.CodeNotFound
	case errors.Is(err, fs.ErrPermission):
		code = errbuilder.CodePermissionDenied
	}
	return errbuilder.New().
		WithCode(code).
		WithMsg(msg).
		WithCause(err)
}

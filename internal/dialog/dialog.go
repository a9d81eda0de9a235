// Package dialog abstracts native file dialogs so the viewer can run with
// or without them. Cancellation is reported as ok == false, never as an
// error.
package dialog

import (
	"errors"

	"github.com/philipparndt/stlview/pkg/library"
)

// Provider shows file pickers
type Provider interface {
	OpenFile() (path string, ok bool, err error)
	OpenFolder() (path string, ok bool, err error)
	SaveFile(suggested string) (path string, ok bool, err error)
	Available() bool
}

// None is the provider used when native dialogs are disabled. Every
// picker reports cancellation.
type None struct{}

func (None) OpenFile() (string, bool, error)       { return "", false, nil }
func (None) OpenFolder() (string, bool, error)     { return "", false, nil }
func (None) SaveFile(string) (string, bool, error) { return "", false, nil }
func (None) Available() bool                       { return false }

// ErrInvalidSelection wraps a picked path that failed validation
var ErrInvalidSelection = errors.New("invalid selection")

// checked validates a picked path at the input boundary
func checked(path string, err error) (string, bool, error) {
	if err != nil {
		return "", false, err
	}
	if err := library.ValidatePath(path); err != nil {
		return "", false, errors.Join(ErrInvalidSelection, err)
	}
	return path, true, nil
}

package dialog

import (
	"errors"
	"path/filepath"

	"github.com/sqweek/dialog"
)

// Native uses the platform file pickers
type Native struct{}

// OpenFile asks for one STL file
func (Native) OpenFile() (string, bool, error) {
	path, err := dialog.File().Filter("STL files", "stl").Title("Open STL file").Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", false, nil
	}
	return checked(path, err)
}

// OpenFolder asks for a directory to load STL files from
func (Native) OpenFolder() (string, bool, error) {
	path, err := dialog.Directory().Title("Open folder").Browse()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", false, nil
	}
	return checked(path, err)
}

// SaveFile asks where to write an exported image
func (Native) SaveFile(suggested string) (string, bool, error) {
	path, err := dialog.File().Filter("PNG images", "png").Title("Export image").
		SetStartDir(filepath.Dir(suggested)).
		SetStartFile(filepath.Base(suggested)).
		Save()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", false, nil
	}
	return checked(path, err)
}

// Available reports that native dialogs can be shown
func (Native) Available() bool { return true }

// Choose returns the native provider unless disabled
func Choose(native bool) Provider {
	if native {
		return Native{}
	}
	return None{}
}

package osuenv

import "errors"

var ErrCancelled = errors.New("directory selection cancelled")

// DirectoryPicker asks the user for the osu! directory. The native dialog
// implementation lives in osuenv/dialogpicker so this package stays free of
// GUI dependencies.
type DirectoryPicker interface {
	// PickDirectory returns ErrCancelled when the user gives up.
	PickDirectory() (string, error)
}

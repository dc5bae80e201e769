// Package dialogpicker implements osuenv.DirectoryPicker with a native
// folder dialog. It needs cgo and GTK3 on Linux.
package dialogpicker

import (
	"errors"
	"fmt"

	"github.com/sqweek/dialog"

	"github.com/Shimi9999/goosu/osuenv"
)

// DialogPicker asks with a native folder dialog until the user picks a
// directory holding osu!.exe or cancels.
type DialogPicker struct {
	Title  string
	Notify bool // explain first that auto-detection failed
}

var _ osuenv.DirectoryPicker = DialogPicker{}

func (p DialogPicker) PickDirectory() (string, error) {
	title := p.Title
	if title == "" {
		title = "goosu"
	}
	if p.Notify {
		dialog.Message("%s", "Could not automatically find your osu! installation, please specify it.").Title(title).Info()
	}
	for {
		dir, err := dialog.Directory().Title("Select your osu! installation directory").Browse()
		if errors.Is(err, dialog.ErrCancelled) {
			return "", osuenv.ErrCancelled
		}
		if err != nil {
			return "", fmt.Errorf("directory dialog error: %w", err)
		}
		if osuenv.IsInstallDir(dir) {
			return dir, nil
		}
		dialog.Message("%s is not a valid osu! directory. Does it contain %s?", dir, osuenv.ExecutableName).Title(title).Error()
	}
}

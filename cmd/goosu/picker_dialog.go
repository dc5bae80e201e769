//go:build !nodialog

package main

import (
	"github.com/Shimi9999/goosu/osuenv"
	"github.com/Shimi9999/goosu/osuenv/dialogpicker"
)

func newDirectoryPicker() osuenv.DirectoryPicker {
	return dialogpicker.DialogPicker{Title: "goosu", Notify: true}
}

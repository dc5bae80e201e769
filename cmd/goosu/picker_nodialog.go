//go:build nodialog

package main

import "github.com/Shimi9999/goosu/osuenv"

// Built without GUI support: locate only probes the usual install paths.
func newDirectoryPicker() osuenv.DirectoryPicker {
	return nil
}

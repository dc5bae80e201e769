package osuenv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const ExecutableName = "osu!.exe"

var ErrNotFound = errors.New("osu! installation not found")

// DefaultInstallPaths are probed in order by FindInstall.
var DefaultInstallPaths = []string{
	`C:\Program Files\osu!`,
	`C:\Programme\osu!`,
	`C:\Programme (x86)\osu!`,
	`C:\Program Files (x86)\osu!`,
	`C:\osu!`,
	`C:\Games\osu!`,
	`D:\Games\osu!`,
	`E:\Games\osu!`,
	`C:\Spiele\osu!`,
	`D:\Spiele\osu!`,
	`E:\Spiele\osu!`,
	`D:\osu!`,
	`E:\osu!`,
	`F:\osu!`,
	`G:\osu!`,
	`H:\osu!`,
	".",
	"..",
}

func IsInstallDir(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ExecutableName))
	return err == nil && !info.IsDir()
}

// FindInstall returns the absolute path of the first candidate that holds
// osu!.exe.
func FindInstall(candidates []string) (string, error) {
	for _, dir := range candidates {
		if IsInstallDir(dir) {
			abs, err := filepath.Abs(dir)
			if err != nil {
				return "", fmt.Errorf("install path error: %w", err)
			}
			return abs, nil
		}
	}
	return "", ErrNotFound
}

// Locate probes candidates and falls back to picker when none match. A nil
// picker means no fallback.
func Locate(candidates []string, picker DirectoryPicker) (string, error) {
	dir, err := FindInstall(candidates)
	if err == nil || picker == nil {
		return dir, err
	}
	dir, err = picker.PickDirectory()
	if err != nil {
		return "", err
	}
	if !IsInstallDir(dir) {
		return "", fmt.Errorf("%w: %s has no %s", ErrNotFound, dir, ExecutableName)
	}
	return dir, nil
}

func SongsDir(install string) string {
	return filepath.Join(install, "Songs")
}

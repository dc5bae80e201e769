package osuenv

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
)

var ErrUnsupported = errors.New("process check unsupported on this OS")

type ProcessChecker interface {
	Running(ctx context.Context) (bool, error)
}

// CommandChecker shells out to tasklist on Windows and pgrep elsewhere.
type CommandChecker struct {
	Image string
	GOOS  string
}

func NewCommandChecker() CommandChecker {
	return CommandChecker{Image: ExecutableName, GOOS: runtime.GOOS}
}

func (c CommandChecker) Running(ctx context.Context) (bool, error) {
	switch c.GOOS {
	case "windows":
		out, err := exec.CommandContext(ctx, "tasklist", "/fi", "IMAGENAME eq "+c.Image, "/nh").Output()
		if err != nil {
			return false, fmt.Errorf("tasklist error: %w", err)
		}
		return tasklistHasImage(out, c.Image), nil
	case "linux", "darwin", "freebsd", "openbsd", "netbsd":
		// osu! runs under wine here, so match the whole command line
		err := exec.CommandContext(ctx, "pgrep", "-f", regexp.QuoteMeta(c.Image)).Run()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("pgrep error: %w", err)
		}
		return true, nil
	}
	return false, ErrUnsupported
}

func tasklistHasImage(out []byte, image string) bool {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 && strings.EqualFold(fields[0], image) {
			return true
		}
	}
	return false
}

// Package editor launches the user's text editor on a document.
package editor

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/hsv/internal/errors"
)

// Command returns the editor invocation for path without starting it.
// $EDITOR and $VISUAL may carry arguments, e.g. "code --wait".
func Command(ctx context.Context, path string) *exec.Cmd {
	argv := detectEditor()
	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// Open runs the editor on path and waits for it to exit.
func Open(ctx context.Context, path string) error {
	if err := Command(ctx, path).Run(); err != nil {
		return errors.Wrap(err, "running editor")
	}
	return nil
}

// detectEditor picks $EDITOR, then $VISUAL, then nano, then vi.
func detectEditor() []string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}
	if _, err := exec.LookPath("nano"); err == nil {
		return []string{"nano"}
	}
	return []string{"vi"}
}

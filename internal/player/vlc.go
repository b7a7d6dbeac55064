package player

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// VLC implements the Player interface for VLC media player.
type VLC struct{}

func (v *VLC) Name() string { return "vlc" }

func (v *VLC) Available() bool {
	_, err := exec.LookPath("vlc")
	return err == nil
}

func (v *VLC) args(src Source) []string {
	args := []string{
		src.URL,
		"--meta-title", src.Title,
		"--play-and-exit",
	}
	if src.StartPos > 0 {
		args = append(args, fmt.Sprintf("--start-time=%.0f", src.StartPos))
	}
	return args
}

// Play launches VLC. VLC has no IPC position tracking, so the returned
// position is always 0.
func (v *VLC) Play(ctx context.Context, src Source, _ PositionFunc) (float64, error) {
	cmd := exec.CommandContext(ctx, "vlc", v.args(src)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		// VLC exits non-zero on user close
		if _, ok := err.(*exec.ExitError); ok {
			return 0, nil
		}
		return 0, fmt.Errorf("running vlc: %w", err)
	}

	return 0, nil
}

package player

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Generic implements the Player interface for players like iina and celluloid
// that accept mpv-compatible arguments.
type Generic struct {
	name string
}

func (g *Generic) Name() string { return g.name }

func (g *Generic) Available() bool {
	_, err := exec.LookPath(g.name)
	return err == nil
}

func (g *Generic) args(src Source) []string {
	args := []string{src.URL, "--force-media-title=" + src.Title}
	if src.StartPos > 0 {
		args = append(args, fmt.Sprintf("--start=+%.0f", src.StartPos))
	}
	return args
}

// Play launches the generic player. Position tracking is not supported.
func (g *Generic) Play(ctx context.Context, src Source, _ PositionFunc) (float64, error) {
	cmd := exec.CommandContext(ctx, g.name, g.args(src)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return 0, nil
		}
		return 0, fmt.Errorf("running %s: %w", g.name, err)
	}

	return 0, nil
}

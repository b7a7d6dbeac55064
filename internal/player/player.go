// Package player launches external media players for a title's video.
// Every invocation uses exec.CommandContext with an explicit argument slice.
package player

import (
	"context"
	"fmt"
	"strings"
)

// Source is what to play.
type Source struct {
	URL      string
	Title    string
	StartPos float64 // Seconds
}

// PositionFunc receives the playback position and total duration in
// seconds. Duration is 0 until the player knows it.
type PositionFunc func(pos, duration float64)

// Player is the interface for media player implementations.
type Player interface {
	// Play runs the player until it exits and returns the last known position.
	// onPosition may be nil.
	Play(ctx context.Context, src Source, onPosition PositionFunc) (float64, error)

	// Name returns the player name.
	Name() string

	// Available checks if the player binary exists in PATH.
	Available() bool
}

// New creates a player by name.
func New(name string) (Player, error) {
	switch strings.ToLower(name) {
	case "mpv":
		return &MPV{}, nil
	case "vlc":
		return &VLC{}, nil
	case "iina", "celluloid":
		return &Generic{name: strings.ToLower(name)}, nil
	default:
		return nil, fmt.Errorf("unknown player %q", name)
	}
}

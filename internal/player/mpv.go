package player

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// MPV implements the Player interface for mpv.
// Position is tracked over mpv's JSON IPC on a unix socket at a randomized
// temp path.
type MPV struct{}

func (m *MPV) Name() string { return "mpv" }

func (m *MPV) Available() bool {
	_, err := exec.LookPath("mpv")
	return err == nil
}

func (m *MPV) args(src Source, socketPath string) []string {
	args := []string{
		src.URL,
		"--force-media-title=" + src.Title,
		"--input-ipc-server=" + socketPath,
		"--really-quiet",
	}
	if src.StartPos > 0 {
		args = append(args, fmt.Sprintf("--start=+%.0f", src.StartPos))
	}
	return args
}

// Play launches mpv and reports positions until it exits.
func (m *MPV) Play(ctx context.Context, src Source, onPosition PositionFunc) (float64, error) {
	socketDir, err := os.MkdirTemp("", "starstream-mpv-*")
	if err != nil {
		return 0, fmt.Errorf("creating temp dir for mpv socket: %w", err)
	}
	defer os.RemoveAll(socketDir)

	socketPath := filepath.Join(socketDir, "socket")

	cmd := exec.CommandContext(ctx, "mpv", m.args(src, socketPath)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("starting mpv: %w", err)
	}

	done := make(chan float64, 1)
	go func() {
		done <- m.trackPosition(socketPath, onPosition)
	}()

	// mpv returns non-zero on user quit, which is normal
	_ = cmd.Wait()

	select {
	case pos := <-done:
		return pos, nil
	case <-time.After(2 * time.Second):
		return 0, nil
	}
}

// trackPosition connects to mpv's IPC socket and follows position events.
func (m *MPV) trackPosition(socketPath string, onPosition PositionFunc) float64 {
	// Wait for socket to appear
	for i := 0; i < 50; i++ {
		if _, err := os.Stat(socketPath); err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return 0
	}
	defer conn.Close()

	for i, prop := range []string{"time-pos", "duration"} {
		cmd := map[string]any{
			"command":    []any{"observe_property", i + 1, prop},
			"request_id": 100 + i,
		}
		data, _ := json.Marshal(cmd)
		data = append(data, '\n')
		if _, err := conn.Write(data); err != nil {
			return 0
		}
	}

	return readEvents(conn, onPosition)
}

// readEvents consumes mpv property-change events and returns the last
// position seen.
func readEvents(r io.Reader, onPosition PositionFunc) float64 {
	var pos, duration float64

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		var event struct {
			Event string   `json:"event"`
			Name  string   `json:"name"`
			Data  *float64 `json:"data"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			continue
		}
		if event.Event != "property-change" || event.Data == nil {
			continue
		}
		switch event.Name {
		case "time-pos":
			if *event.Data <= 0 {
				continue
			}
			pos = *event.Data
		case "duration":
			duration = *event.Data
		default:
			continue
		}
		if onPosition != nil && pos > 0 {
			onPosition(pos, duration)
		}
	}

	return pos
}

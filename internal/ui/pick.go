// Package ui holds the terminal front end: fzf pickers, password prompts,
// lipgloss-styled listings and the bubbletea playback screen.
package ui

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"starstream/internal/media"
)

// ErrCancelled is returned when the user aborts a picker.
var ErrCancelled = errors.New("selection cancelled")

// ErrNothingToPick is returned when a picker is given no choices.
var ErrNothingToPick = errors.New("nothing to pick from")

// choice is one picker line. Key comes back from fzf; Label is what the
// user sees.
type choice struct {
	Key   string
	Label string
}

// fzfRun runs fzf with args, feeding input on stdin, and returns stdout.
// Replaced in tests.
var fzfRun = func(args []string, input string) (string, error) {
	fzfPath, err := exec.LookPath("fzf")
	if err != nil {
		return "", fmt.Errorf("fzf not found in PATH: %w", err)
	}

	cmd := exec.Command(fzfPath, args...)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stderr = os.Stderr
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err = cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr) && exitErr.ExitCode() == 130:
		return "", ErrCancelled
	case errors.As(err, &exitErr) && exitErr.ExitCode() == 1:
		// No match. With --print-query the query is still on stdout.
	default:
		return "", fmt.Errorf("fzf failed: %w", err)
	}
	return stdout.String(), nil
}

// choose shows the choices and returns the key of the picked one. Keys are
// sent as a hidden first column so labels never need to be parsed back.
func choose(prompt string, choices []choice) (string, error) {
	if len(choices) == 0 {
		return "", ErrNothingToPick
	}

	var input strings.Builder
	for _, c := range choices {
		fmt.Fprintf(&input, "%s\t%s\n", c.Key, strings.ReplaceAll(c.Label, "\n", " "))
	}

	out, err := fzfRun([]string{
		"--prompt", prompt + " > ",
		"--height", "40%",
		"--reverse",
		"--with-nth", "2..",
		"--delimiter", "\t",
		"--no-multi",
		"--cycle",
	}, input.String())
	if err != nil {
		return "", err
	}
	return parseChoice(out, choices)
}

// parseChoice maps fzf's "<key>\t<label>" line back to a known key.
func parseChoice(out string, choices []choice) (string, error) {
	line := strings.TrimSpace(out)
	if line == "" {
		return "", fmt.Errorf("no selection made")
	}
	key, _, _ := strings.Cut(line, "\t")
	for _, c := range choices {
		if c.Key == key {
			return key, nil
		}
	}
	return "", fmt.Errorf("unknown selection %q", key)
}

// Select picks one of items and returns its index.
func Select(prompt string, items []string) (int, error) {
	choices := make([]choice, len(items))
	for i, item := range items {
		choices[i] = choice{Key: strconv.Itoa(i), Label: item}
	}
	key, err := choose(prompt, choices)
	if err != nil {
		return -1, err
	}
	return strconv.Atoi(key)
}

// PickTitle lets the user pick one of titles.
func PickTitle(prompt string, titles []media.Title) (media.Title, error) {
	choices := make([]choice, len(titles))
	for i, t := range titles {
		choices[i] = choice{Key: t.ID, Label: TitleLabel(t)}
	}
	id, err := choose(prompt, choices)
	if err != nil {
		return media.Title{}, err
	}
	for _, t := range titles {
		if t.ID == id {
			return t, nil
		}
	}
	return media.Title{}, fmt.Errorf("unknown title %q", id)
}

// PickEpisode resolves the episode of a series to play. A non-empty
// episodeID selects directly; a single episode needs no picker.
func PickEpisode(t media.Title, episodeID string) (media.Episode, error) {
	episodes := t.SortedEpisodes()
	if len(episodes) == 0 {
		return media.Episode{}, fmt.Errorf("%s has no episodes", t.Title)
	}

	if episodeID == "" && len(episodes) > 1 {
		choices := make([]choice, len(episodes))
		for i, ep := range episodes {
			choices[i] = choice{Key: ep.ID, Label: ep.Label()}
		}
		var err error
		if episodeID, err = choose("Episode", choices); err != nil {
			return media.Episode{}, err
		}
	}
	if episodeID == "" {
		return episodes[0], nil
	}

	for _, ep := range episodes {
		if ep.ID == episodeID {
			return ep, nil
		}
	}
	return media.Episode{}, fmt.Errorf("%s has no episode %q", t.Title, episodeID)
}

// PickContinue lets the user pick a started title, showing how far along
// each one is. Records whose title is not found by lookup are left out.
func PickContinue(records []media.ProgressRecord, lookup func(id string) (media.Title, bool)) (media.Title, error) {
	titles := []media.Title{}
	choices := []choice{}
	for _, r := range records {
		t, ok := lookup(r.TitleID)
		if !ok {
			continue
		}
		titles = append(titles, t)
		choices = append(choices, choice{
			Key:   t.ID,
			Label: fmt.Sprintf("%s  %d%%", TitleLabel(t), r.Progress),
		})
	}
	id, err := choose("Continue", choices)
	if err != nil {
		return media.Title{}, err
	}
	for _, t := range titles {
		if t.ID == id {
			return t, nil
		}
	}
	return media.Title{}, fmt.Errorf("unknown title %q", id)
}

// Confirm asks a yes/no question.
func Confirm(prompt string) (bool, error) {
	key, err := choose(prompt, []choice{{"y", "Yes"}, {"n", "No"}})
	if err != nil {
		return false, err
	}
	return key == "y", nil
}

// Input reads free text through fzf's query line.
func Input(prompt string) (string, error) {
	out, err := fzfRun([]string{
		"--prompt", prompt + " > ",
		"--height", "10%",
		"--reverse",
		"--print-query",
		"--no-info",
	}, "")
	if err != nil {
		return "", err
	}

	query, _, _ := strings.Cut(out, "\n")
	if query = strings.TrimSpace(query); query == "" {
		return "", fmt.Errorf("no input provided")
	}
	return query, nil
}

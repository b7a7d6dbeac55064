package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	var r Recorder

	_, ok := r.Last()
	assert.False(t, ok)

	r.Notify(Notification{Title: "one", Severity: Info})
	r.Notify(Notification{Title: "two", Severity: Error})

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, "two", last.Title)
	assert.Len(t, r.All(), 2)

	drained := r.Drain()
	assert.Len(t, drained, 2)
	assert.Empty(t, r.All())
}

func TestTerminalWritesTitleAndDescription(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Notify(Notification{Title: "Added", Description: "Saved to favorites", Severity: Success})
	term.Notify(Notification{Title: "Paused", Severity: Info})

	out := buf.String()
	assert.Contains(t, out, "Added")
	assert.Contains(t, out, "Saved to favorites")
	assert.Contains(t, out, "Paused")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "warning", Warning.String())
	text, err := Error.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "error", string(text))
}

func TestFuncAndDiscard(t *testing.T) {
	var got Notification
	Func(func(n Notification) { got = n }).Notify(Notification{Title: "hi"})
	assert.Equal(t, "hi", got.Title)

	Discard.Notify(Notification{Title: "ignored"})
}

package output

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, false)
	l.Debug("hidden")
	l.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	l = newLogger(&buf, true)
	l.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestStatusStyleUnknown(t *testing.T) {
	assert.Equal(t, "x", StatusStyle("unknown").Render("x"))
}

func TestFormatStatusLine(t *testing.T) {
	line := FormatStatusLine("data/foo/function/load.mcfunction", StatusCreated)
	assert.Contains(t, line, "data/foo/function/load.mcfunction")
	assert.Contains(t, line, StatusCreated)
}

func TestRunWithSpinnerWithoutTTY(t *testing.T) {
	// go test does not attach stdout to a terminal.
	want := errors.New("boom")
	err := RunWithSpinner(context.Background(), "Resolving", func() error { return want })
	assert.ErrorIs(t, err, want)
}

package logger

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verbose)
	return &buf
}

func TestSetVerbose(t *testing.T) {
	t.Cleanup(Reset)

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels_WhenVerbose(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("segmented %d block(s)", 3) }, "[DEBUG] segmented 3 block(s)\n"},
		{"info", func() { Info("no_questions: %s", "empty") }, "[INFO] no_questions: empty\n"},
		{"warn", func() { Warn("answer %q ignored", "f") }, "[WARN] answer \"f\" ignored\n"},
		{"section", func() { Section("Parse") }, "\n=== Parse ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLevels_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")

	assert.Zero(t, buf.Len())
}

func TestReset(t *testing.T) {
	buf := capture(t, true)
	Reset()

	Warn("after reset")
	assert.False(t, IsVerbose())
	assert.Zero(t, buf.Len())
}

func TestConcurrentAccess(t *testing.T) {
	t.Cleanup(Reset)
	SetOutput(io.Discard)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetVerbose(true)
			Debug("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
		}()
	}
	wg.Wait()
}

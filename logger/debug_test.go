//go:build !ndebug

package logger

import "testing"

func TestDebug_Enabled(t *testing.T) {
	rec := initRecorder(t)

	Debug().Msg("trace")

	if rec.Len() != 1 {
		t.Errorf("Expected debug record in a normal build, got %d", rec.Len())
	}
}

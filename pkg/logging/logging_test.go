package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("XDG_STATE_HOME", tempDir)

			SetupLogger(tt.verbosity, true)

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("SetupLogger(%d) set level to %v, want %v",
					tt.verbosity, zerolog.GlobalLevel(), tt.wantLevel)
			}

			log.Warn().Msg("written to file")

			logPath := filepath.Join(tempDir, "dotdot", "dotdot.log")
			if _, err := os.Stat(logPath); os.IsNotExist(err) {
				t.Errorf("Log file was not created at %s", logPath)
			}
		})
	}
}

func TestSetupLogger_NoFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tempDir)

	SetupLogger(0, false)
	log.Warn().Msg("console only")

	logPath := filepath.Join(tempDir, "dotdot", "dotdot.log")
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Errorf("Log file should not exist at %s", logPath)
	}
}

func TestGetLogFilePath(t *testing.T) {
	t.Run("with XDG_STATE_HOME", func(t *testing.T) {
		t.Setenv("XDG_STATE_HOME", "/custom/state")
		got := getLogFilePath()
		if !contains(got, "/custom/state/dotdot/dotdot.log") {
			t.Errorf("getLogFilePath() = %s", got)
		}
	})

	t.Run("without XDG_STATE_HOME", func(t *testing.T) {
		t.Setenv("XDG_STATE_HOME", "")
		got := getLogFilePath()
		if !filepath.IsAbs(got) {
			t.Errorf("getLogFilePath() returned relative path: %s", got)
		}
		if !contains(got, "dotdot/dotdot.log") {
			t.Errorf("getLogFilePath() = %s", got)
		}
	})
}

func TestGetLogger(t *testing.T) {
	var buf strings.Builder
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger := GetLogger("reconcile")
	logger.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"component":"reconcile"`) {
		t.Errorf("component field missing from %q", buf.String())
	}
}

func TestWithFields(t *testing.T) {
	var buf strings.Builder
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger := WithFields(map[string]interface{}{"repo": "lib", "count": 2})
	logger.Info().Msg("fields")

	out := buf.String()
	if !strings.Contains(out, `"repo":"lib"`) || !strings.Contains(out, `"count":2`) {
		t.Errorf("fields missing from %q", out)
	}
}

func contains(s, substr string) bool {
	return strings.Contains(filepath.ToSlash(s), filepath.ToSlash(substr))
}

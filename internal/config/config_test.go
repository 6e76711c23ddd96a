package config

import (
	"log/slog"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantErrs int
	}{
		{
			name:   "defaults",
			config: Config{APIURL: "http://localhost:8080/api/search", Seed: "中国", Address: ":3000"},
		},
		{
			name:   "empty seed is allowed",
			config: Config{APIURL: "https://search.example.com/api/search"},
		},
		{
			name:     "missing api url",
			config:   Config{Address: ":3000"},
			wantErrs: 1,
		},
		{
			name:     "unsupported scheme",
			config:   Config{APIURL: "ftp://example.com/search"},
			wantErrs: 1,
		},
		{
			name:     "unknown log level",
			config:   Config{APIURL: "http://localhost:8080/api/search", LogLevel: "verbose"},
			wantErrs: 1,
		},
		{
			name:     "every field invalid",
			config:   Config{APIURL: "/api/search", Address: "nope", LogLevel: "WARN"},
			wantErrs: 3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantErrs == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)

			var merr *multierror.Error
			require.ErrorAs(t, err, &merr)
			assert.Len(t, merr.Errors, tc.wantErrs)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	levels := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}

	for name, expected := range levels {
		level, err := ParseLogLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, level, name)
	}

	_, err := ParseLogLevel("trace")
	assert.ErrorContains(t, err, "unknown log level 'trace'")
}

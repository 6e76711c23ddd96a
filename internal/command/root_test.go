package command

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newTestApp(t *testing.T, ran *bool) (*cli.App, *bytes.Buffer) {
	t.Helper()

	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	app := NewApp("feedsearch", "test", "test", &cli.Command{
		Name: "noop",
		Action: func(ctx *cli.Context) error {
			*ran = true
			return nil
		},
	})

	var stderr bytes.Buffer
	app.Writer = &bytes.Buffer{}
	app.ErrWriter = &stderr

	return app, &stderr
}

func TestAppRejectsUnknownLogLevel(t *testing.T) {
	var ran bool
	app, _ := newTestApp(t, &ran)

	err := app.Run([]string{"feedsearch", "--log-level", "verbose", "noop"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level 'verbose'")
	assert.False(t, ran)
}

func TestAppConfiguresLogLevel(t *testing.T) {
	var ran bool
	app, stderr := newTestApp(t, &ran)

	err := app.Run([]string{"feedsearch", "--log-level", "warn", "noop"})

	require.NoError(t, err)
	assert.True(t, ran)

	ctx := context.Background()
	assert.False(t, slog.Default().Enabled(ctx, slog.LevelInfo))
	assert.True(t, slog.Default().Enabled(ctx, slog.LevelWarn))

	slog.WarnContext(ctx, "written")
	assert.Contains(t, stderr.String(), "msg=written")
}

package serve

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bornholm/feedsearch/internal/command/common"
	"github.com/bornholm/feedsearch/internal/web"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Serve() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the search page",
		Flags: append(common.SearchFlags(),
			&cli.StringFlag{
				Name:    "address",
				Value:   ":3000",
				Aliases: []string{"a"},
				EnvVars: []string{"FEEDSEARCH_ADDRESS"},
				Usage:   "The address to listen on",
			},
			&cli.DurationFlag{
				Name:    "session-idle-timeout",
				Value:   web.DefaultIdleTimeout,
				EnvVars: []string{"FEEDSEARCH_SESSION_IDLE_TIMEOUT"},
				Usage:   "Drop browser sessions not seen for this long",
			},
			&cli.IntFlag{
				Name:    "max-sessions",
				Value:   web.DefaultMaxSessions,
				EnvVars: []string{"FEEDSEARCH_MAX_SESSIONS"},
				Usage:   "Maximum number of live browser sessions",
			},
		),
		Action: func(cliCtx *cli.Context) error {
			conf, err := common.Config(cliCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			client, err := common.NewClient(conf)
			if err != nil {
				return errors.Wrap(err, "could not create search client")
			}

			ctx, stop := signal.NotifyContext(cliCtx.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			sessions := web.NewSessionStore(client,
				web.WithSeed(conf.Seed),
				web.WithIdleTimeout(cliCtx.Duration("session-idle-timeout")),
				web.WithMaxSessions(cliCtx.Int("max-sessions")),
			)

			server := web.NewServer(sessions)

			httpServer := &http.Server{
				Addr:              conf.Address,
				Handler:           server.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errs := make(chan error, 1)
			go func() {
				slog.InfoContext(ctx, "listening", slog.String("address", conf.Address), slog.String("api", conf.APIURL))
				errs <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errs:
				if !errors.Is(err, http.ErrServerClosed) {
					return errors.Wrap(err, "could not serve")
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			slog.InfoContext(shutdownCtx, "shutting down")

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return errors.Wrap(err, "could not shutdown server")
			}

			return nil
		},
	}
}

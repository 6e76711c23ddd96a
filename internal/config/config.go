package config

import (
	"log/slog"
	"net"
	"net/url"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type Config struct {
	APIURL   string
	Seed     string
	Address  string
	LogLevel string
}

// ParseLogLevel maps a level name to its slog level. An empty name means
// info.
func ParseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level '%s', expected one of debug, info, warn or error", level)
	}
}

// Validate reports every invalid field at once. An empty Address is
// accepted for commands that do not serve.
func (c Config) Validate() error {
	var result *multierror.Error

	if strings.TrimSpace(c.APIURL) == "" {
		result = multierror.Append(result, errors.New("api url must not be empty"))
	} else if u, err := url.Parse(c.APIURL); err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "invalid api url '%s'", c.APIURL))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		result = multierror.Append(result, errors.Errorf("api url '%s' must use http or https", c.APIURL))
	} else if u.Host == "" {
		result = multierror.Append(result, errors.Errorf("api url '%s' has no host", c.APIURL))
	}

	if c.Address != "" {
		if _, _, err := net.SplitHostPort(c.Address); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "invalid listening address '%s'", c.Address))
		}
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

package app

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/ochronus/goimgur/internal/config"
	"github.com/ochronus/goimgur/internal/history"
	"github.com/ochronus/goimgur/internal/services/imgur"
	"github.com/sirupsen/logrus"
)

// Container centralizes the core dependencies used across the application.
// It is intentionally small and uses interfaces so callers (and tests) can
// substitute implementations easily.
type Container struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Client  imgur.ClientAPI
	History *history.Log

	// In feeds interactive confirmations; Out receives scriptable output.
	In  *bufio.Reader
	Out io.Writer

	warnings int
}

// Option allows customizing the container during construction.
type Option func(*Container) error

// WithLogger overrides the default logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Container) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.Logger = logger
		return nil
	}
}

// WithClient overrides the default Imgur client.
func WithClient(client imgur.ClientAPI) Option {
	return func(c *Container) error {
		if client == nil {
			return fmt.Errorf("imgur client cannot be nil")
		}
		c.Client = client
		return nil
	}
}

// WithInput overrides stdin for confirmation prompts.
func WithInput(r io.Reader) Option {
	return func(c *Container) error {
		if r == nil {
			return fmt.Errorf("input cannot be nil")
		}
		c.In = bufio.NewReader(r)
		return nil
	}
}

// WithOutput overrides stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Container) error {
		if w == nil {
			return fmt.Errorf("output cannot be nil")
		}
		c.Out = w
		return nil
	}
}

// NewContainer builds a Container with sensible defaults derived from cfg.
// Options can be supplied to override specific dependencies (useful in tests).
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	container := &Container{
		Config:  cfg,
		Logger:  buildDefaultLogger(cfg.Loglevel),
		History: history.NewLog(cfg.History),
		In:      bufio.NewReader(os.Stdin),
		Out:     os.Stdout,
	}

	for _, opt := range opts {
		if err := opt(container); err != nil {
			return nil, err
		}
	}

	if container.Client == nil {
		container.Client = imgur.NewClient(cfg.ClientID,
			imgur.WithBaseURL(cfg.APIURL),
			imgur.WithTimeout(cfg.RequestTimeout()),
		)
	}

	return container, nil
}

// Warnf logs a non-fatal problem and remembers that one happened.
func (c *Container) Warnf(format string, args ...any) {
	c.warnings++
	c.Logger.Warnf(format, args...)
}

// Warnings returns how many warnings were recorded so far.
func (c *Container) Warnings() int {
	return c.warnings
}

func buildDefaultLogger(levelStr string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

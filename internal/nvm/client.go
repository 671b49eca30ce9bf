package nvm

import (
	"context"
	"strings"
	"time"

	"nvm-manager/internal/app"
)

const DefaultBinary = "nvm"

// Client issues commands to the external version manager.
type Client struct {
	runner  app.CommandRunner
	binary  string
	timeout time.Duration
}

func NewClient(r app.CommandRunner, binary string) Client {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	return Client{runner: r, binary: binary}
}

// WithTimeout bounds every command; zero leaves commands unbounded.
func (c Client) WithTimeout(d time.Duration) Client {
	c.timeout = d
	return c
}

func (c Client) Binary() string { return c.binary }

func (c Client) run(ctx context.Context, args ...string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.runner.Run(ctx, c.binary, args...)
}

func (c Client) Install(ctx context.Context, version string) error {
	_, err := c.run(ctx, "install", version)
	return err
}

func (c Client) Uninstall(ctx context.Context, version string) error {
	_, err := c.run(ctx, "uninstall", version)
	return err
}

func (c Client) Use(ctx context.Context, version string) error {
	_, err := c.run(ctx, "use", version)
	return err
}

func (c Client) List(ctx context.Context) ([]InstalledVersion, error) {
	out, err := c.run(ctx, "ls")
	if err != nil {
		return nil, err
	}
	return ParseInstalledList(string(out)), nil
}

func (c Client) ListRemote(ctx context.Context) ([]AvailableVersion, error) {
	out, err := c.run(ctx, "ls-remote")
	if err != nil {
		return nil, err
	}
	return ParseRemoteList(string(out)), nil
}

func (c Client) Version(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

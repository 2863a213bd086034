// Package capture turns URLs into self-contained HTML snapshots by running
// a single-file capture image under docker, and extracts page titles from
// the captured markup.
package capture

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/pagevault/pagevault/internal/clierr"
	"github.com/pagevault/pagevault/internal/config"
)

// containerCookiesPath is where a cookies file is mounted inside the
// capture container.
const containerCookiesPath = "/tmp/cookies.txt"

// Runner executes an external command and returns its stdout. Tests inject
// a fake; production uses execRunner.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%s: %s", name, msg)
	}
	return stdout.Bytes(), nil
}

// Client captures pages through a docker image.
type Client struct {
	image       string
	timeout     time.Duration
	cookiesFile string
	run         Runner
}

// NewClient builds a Client from the capture config. run may be nil, in
// which case commands execute for real.
func NewClient(cfg config.CaptureConfig, timeout time.Duration, run Runner) *Client {
	if run == nil {
		run = execRunner
	}
	return &Client{
		image:       cfg.DockerImage,
		timeout:     timeout,
		cookiesFile: cfg.CookiesFile,
		run:         run,
	}
}

// WithCookiesFile returns a copy of the client using the given cookies file.
func (c *Client) WithCookiesFile(path string) *Client {
	clone := *c
	clone.cookiesFile = path
	return &clone
}

// Ping verifies that the docker daemon is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.run(ctx, "docker", "version", "--format", "{{.Server.Version}}"); err != nil {
		return clierr.Newf(clierr.DockerUnavailable, "docker is not available: %v", err)
	}
	return nil
}

// PullImage fetches the capture image so the first capture does not pay the
// download cost.
func (c *Client) PullImage(ctx context.Context) error {
	if _, err := c.run(ctx, "docker", "pull", c.image); err != nil {
		return clierr.Newf(clierr.DockerUnavailable, "pulling %s: %v", c.image, err)
	}
	return nil
}

// Capture snapshots url and returns the self-contained HTML. The container
// writes the page to stdout and is removed afterwards.
func (c *Client) Capture(ctx context.Context, url string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{"run", "--rm"}
	if c.cookiesFile != "" {
		args = append(args,
			"-v", c.cookiesFile+":"+containerCookiesPath+":ro")
	}
	args = append(args, c.image, url)
	if c.cookiesFile != "" {
		args = append(args, "--browser-cookies-file="+containerCookiesPath)
	}

	html, err := c.run(ctx, "docker", args...)
	if err != nil {
		return nil, clierr.Newf(clierr.CaptureFailed, "capturing %s: %v", url, err)
	}
	if len(bytes.TrimSpace(html)) == 0 {
		return nil, clierr.Newf(clierr.CaptureFailed, "capturing %s: empty page", url)
	}
	return html, nil
}

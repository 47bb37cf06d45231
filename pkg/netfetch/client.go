// Package netfetch performs the shell's HTTP GET requests.
package netfetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	taierrors "thoreinstein.com/tai/pkg/errors"
)

const userAgent = "tai (+https://thoreinstein.com/tai)"

// Client fetches resources over HTTP. Requests carry no timeout; they are
// bounded only by the caller's context.
type Client struct {
	http  *http.Client
	retry taierrors.RetryConfig
}

// New creates a Client. A nil httpClient uses a fresh client with no
// timeout.
func New(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{http: httpClient}
}

// WithRetry makes GetText retry transient failures per cfg. Downloads are
// never retried.
func (c *Client) WithRetry(cfg taierrors.RetryConfig) *Client {
	c.retry = cfg
	return c
}

// GetText fetches rawURL and returns the response body as text.
func (c *Client) GetText(ctx context.Context, rawURL string) (string, error) {
	return taierrors.RetryWithResult(ctx, c.retry, func() (string, error) {
		var sb strings.Builder
		if err := c.fetch(ctx, "fetch", rawURL, &sb); err != nil {
			return "", err
		}
		return sb.String(), nil
	})
}

// Download fetches rawURL and writes the body to filename. The file is
// only created once the server has answered successfully.
func (c *Client) Download(ctx context.Context, rawURL, filename string) error {
	dst := &lazyFile{name: filename}
	if err := c.fetch(ctx, "download", rawURL, dst); err != nil {
		if dst.f != nil {
			_ = dst.f.Close()
		}
		return err
	}
	if err := dst.Close(); err != nil {
		return errors.Wrapf(err, "failed to write %s", filename)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, action, rawURL string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return taierrors.NewNetworkError(action, "invalid URL", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return taierrors.NewNetworkError(action, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return taierrors.NewNetworkErrorWithStatus(action, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return err
		}
		return taierrors.NewNetworkError(action, "failed to read response", err)
	}
	return nil
}

// WeatherURL builds the one-line weather report URL for city on endpoint.
func WeatherURL(endpoint, city string) string {
	return strings.TrimSuffix(endpoint, "/") + "/" +
		url.PathEscape(strings.ReplaceAll(city, " ", "+")) + "?format=3"
}

// lazyFile creates its file on first write.
type lazyFile struct {
	name string
	f    *os.File
}

func (l *lazyFile) Write(p []byte) (int, error) {
	if l.f == nil {
		f, err := os.Create(l.name)
		if err != nil {
			return 0, err
		}
		l.f = f
	}
	return l.f.Write(p)
}

// Close closes the file, creating it empty if nothing was written.
func (l *lazyFile) Close() error {
	if l.f == nil {
		f, err := os.Create(l.name)
		if err != nil {
			return err
		}
		l.f = f
	}
	return l.f.Close()
}

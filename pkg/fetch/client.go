// Package fetch retrieves the SDMX glossary XML and the legacy Turtle model.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout is the per-request timeout.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent identifies glossgen to remote servers.
const DefaultUserAgent = "glossgen/1.0"

var (
	// ErrRetrieval marks transport and file read failures.
	ErrRetrieval = errors.New("retrieval failed")
	// ErrStatus marks a non-2xx HTTP response.
	ErrStatus = errors.New("unexpected status")
)

// Error describes a failed retrieval of one document.
type Error struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: %v: %d", e.URL, e.Err, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPClient matches the Do method of *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client downloads documents over HTTP or reads them from disk.
type Client struct {
	httpClient HTTPClient
	timeout    time.Duration
	userAgent  string
	cache      *DiskCache
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(client *Client) { client.httpClient = httpClient }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) { client.timeout = timeout }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(client *Client) { client.userAgent = userAgent }
}

// WithCache enables the disk cache for HTTP responses.
func WithCache(cache *DiskCache) Option {
	return func(client *Client) { client.cache = cache }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(client *Client) { client.logger = logger }
}

// NewClient returns a Client with the given options applied.
func NewClient(opts ...Option) *Client {
	client := &Client{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}
	if client.logger == nil {
		client.logger = zap.NewNop()
	}
	return client
}

// Get returns the document at location. file:// URLs and plain paths are
// read from disk; http and https URLs are downloaded.
func (client *Client) Get(ctx context.Context, location string) ([]byte, error) {
	if path, ok := localPath(location); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &Error{URL: location, Err: fmt.Errorf("%w: %v", ErrRetrieval, err)}
		}
		return data, nil
	}

	if client.cache != nil {
		if body, found := client.cache.Get(location); found {
			client.logger.Debug("cache hit", zap.String("url", location))
			return body, nil
		}
	}

	body, err := client.download(ctx, location)
	if err != nil {
		return nil, err
	}

	if client.cache != nil {
		if err := client.cache.Set(location, body); err != nil {
			client.logger.Warn("failed to cache document", zap.String("url", location), zap.Error(err))
		}
	}
	return body, nil
}

func (client *Client) download(ctx context.Context, location string) ([]byte, error) {
	if client.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, client.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, &Error{URL: location, Err: fmt.Errorf("%w: %v", ErrRetrieval, err)}
	}
	req.Header.Set("User-Agent", client.userAgent)

	started := time.Now()
	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: location, Err: fmt.Errorf("%w: %v", ErrRetrieval, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{URL: location, StatusCode: resp.StatusCode, Err: ErrStatus}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: location, Err: fmt.Errorf("%w: %v", ErrRetrieval, err)}
	}

	client.logger.Info("downloaded document",
		zap.String("url", location),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(started)))
	return body, nil
}

// Sources holds the two input documents of a run.
type Sources struct {
	GlossaryXML []byte
	LegacyModel []byte
}

// FetchSources downloads the glossary XML and the legacy model concurrently.
func (client *Client) FetchSources(ctx context.Context, xmlURL, oldModelURL string) (*Sources, error) {
	var sources Sources
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		body, err := client.Get(groupCtx, xmlURL)
		if err != nil {
			return err
		}
		sources.GlossaryXML = body
		return nil
	})
	group.Go(func() error {
		body, err := client.Get(groupCtx, oldModelURL)
		if err != nil {
			return err
		}
		sources.LegacyModel = body
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return &sources, nil
}

func localPath(location string) (string, bool) {
	parsed, err := url.Parse(location)
	if err != nil || parsed.Scheme == "" {
		return location, true
	}
	switch strings.ToLower(parsed.Scheme) {
	case "file":
		if parsed.Path != "" {
			return parsed.Path, true
		}
		return parsed.Opaque, true
	case "http", "https":
		return "", false
	}
	// Windows drive letters parse as a one-letter scheme.
	if len(parsed.Scheme) == 1 {
		return location, true
	}
	return "", false
}

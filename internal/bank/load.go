package bank

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/abhisek/biolquiz/internal/logging"
)

// maxDocumentBytes bounds how much of a remote document is read.
const maxDocumentBytes = 64 << 20

//go:embed sample/biol1009.json
var sampleDocument []byte

// Option configures Parse and Load.
type Option func(*options)

type options struct {
	imageBase string
	client    *http.Client
	timeout   time.Duration
}

func newOptions(opts []Option) options {
	o := options{timeout: 15 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithImageBase sets the prefix for rewritten image links.
func WithImageBase(base string) Option {
	return func(o *options) { o.imageBase = base }
}

// WithHTTPClient sets the client used for URL sources.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.client = c }
}

// WithTimeout bounds a URL fetch. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// Load reads the bank from source, which is a file path, an http(s) URL, or empty
// for the bundled sample bank. The fetch is attempted exactly once.
// Every failure wraps ErrNoData.
func Load(ctx context.Context, source string, opts ...Option) (*Bank, error) {
	o := newOptions(opts)

	data, err := read(ctx, source, o)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}

	b, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrNoData, describe(source), err)
	}
	if len(b.quizzes) == 0 {
		return nil, fmt.Errorf("%w: %s contains no quizzes", ErrNoData, describe(source))
	}
	return b, nil
}

// Sample returns the bundled sample bank.
func Sample(opts ...Option) (*Bank, error) {
	return Parse(sampleDocument, opts...)
}

func read(ctx context.Context, source string, o options) ([]byte, error) {
	switch {
	case source == "":
		return sampleDocument, nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return fetch(ctx, source, o)
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", source, err)
		}
		return data, nil
	}
}

func fetch(ctx context.Context, url string, o options) ([]byte, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	client := o.client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	logger := logging.FromContext(ctx)
	logger.Debug().Str("url", url).Dur("timeout", o.timeout).Msg("fetching question bank")

	resp, err := client.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("url", url).Msg("question bank fetch failed")
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn().Str("url", url).Int("status", resp.StatusCode).Msg("question bank fetch failed")
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	logger.Debug().Str("url", url).Int("bytes", len(data)).Msg("question bank fetched")
	return data, nil
}

func describe(source string) string {
	if source == "" {
		return "bundled sample bank"
	}
	return source
}

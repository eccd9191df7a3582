package cmap

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/simonscmap/cmap-go/internal/logging"
)

// DefaultBaseURL is the public Simons CMAP endpoint.
const DefaultBaseURL = "https://simonscmap.com"

// Options configures a Client. The zero value gives a production client
// with file/environment credential resolution and no logging.
type Options struct {
	// APIKey pins a fixed key for this client, bypassing credential
	// resolution. Leave empty to resolve per request (environment, then
	// credentials file).
	APIKey string

	// BaseURL overrides the service endpoint, e.g. to point at a
	// cmaptest fake. Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient replaces the tuned default outbound client.
	HTTPClient *http.Client

	// Timeout caps each request end to end. Zero means no overall cap;
	// long pulls run for minutes and are bounded by the caller's context.
	Timeout time.Duration

	// Logger receives request diagnostics. Nil disables logging.
	Logger *zerolog.Logger

	// Credentials replaces the default provider. Takes precedence over
	// APIKey.
	Credentials CredentialProvider
}

// Client talks to the Simons CMAP data service. It is stateless across
// requests and safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialProvider
	log     zerolog.Logger

	now func() time.Time // for tests
}

// New builds a Client from opts.
func New(opts Options) *Client {
	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    opts.HTTPClient,
		creds:   opts.Credentials,
		log:     zerolog.Nop(),
		now:     time.Now,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.http == nil {
		c.http = newOutbound()
	}
	if opts.Timeout > 0 {
		// copy so a shared caller-owned client is not mutated
		hc := *c.http
		hc.Timeout = opts.Timeout
		c.http = &hc
	}
	if c.creds == nil {
		if opts.APIKey != "" {
			c.creds = StaticCredentials(opts.APIKey)
		} else {
			c.creds = FileCredentials("")
		}
	}
	if opts.Logger != nil {
		c.log = *opts.Logger
	}
	return c
}

type envOptions struct {
	APIKey   string        `envconfig:"CMAP_API_KEY"`
	BaseURL  string        `envconfig:"CMAP_BASE_URL"`
	Timeout  time.Duration `envconfig:"CMAP_TIMEOUT"`
	LogLevel string        `envconfig:"CMAP_LOG_LEVEL"`
}

// NewFromEnv builds a Client from the CMAP_* environment variables:
// CMAP_API_KEY, CMAP_BASE_URL, CMAP_TIMEOUT (Go duration), and
// CMAP_LOG_LEVEL (debug, info, warn, error; unset disables logging).
func NewFromEnv() (*Client, error) {
	var env envOptions
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	opts := Options{
		APIKey:  env.APIKey,
		BaseURL: env.BaseURL,
		Timeout: env.Timeout,
	}
	if env.LogLevel != "" {
		zl := logging.Build(logging.Config{Level: env.LogLevel, Component: "cmap"}, os.Stderr)
		opts.Logger = &zl
	}
	return New(opts), nil
}

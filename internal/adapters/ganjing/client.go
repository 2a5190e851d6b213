package ganjing

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"gjwuploader/internal/core/domain"
)

const (
	defaultAPIBaseURL    = "https://api.ganjingworld.com/v1"
	defaultUploadBaseURL = "https://upload.ganjingworld.com/v1"
	defaultLanguage      = "en"

	// The platform issues upload tokens with a one hour lifetime.
	defaultTokenTTL = 3600 * time.Second
)

// DefaultThumbnailSizes is the resize breakpoint list sent with thumbnail
// uploads when the caller does not pick their own.
var DefaultThumbnailSizes = []int{160, 240, 320, 480, 576, 672, 768, 960, 1280, 1600, 1920}

// ErrMissingAccessToken indicates the client was configured without
// credentials.
var ErrMissingAccessToken = errors.New("ganjing: access token is required")

// Options configures the platform client.
type Options struct {
	AccessToken   string
	APIBaseURL    string
	UploadBaseURL string
	Language      string
	HTTPClient    *http.Client
	Logger        *zerolog.Logger
	TokenTTL      time.Duration
}

// Client performs HTTP calls against the GanjingWorld REST API. It
// implements ports.MediaPlatform. One client may serve concurrent
// workflow invocations; the cached upload token is guarded by a mutex.
type Client struct {
	apiBaseURL    string
	uploadBaseURL string
	language      string
	httpClient    *http.Client
	logger        zerolog.Logger

	mu          sync.Mutex
	accessToken string
	uploadToken domain.UploadToken
	tokenTTL    time.Duration

	now func() time.Time
}

// NewClient constructs a client with sane defaults and injected
// dependencies.
func NewClient(opts Options) (*Client, error) {
	accessToken := strings.TrimSpace(opts.AccessToken)
	if accessToken == "" {
		return nil, ErrMissingAccessToken
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Minute}
	}
	apiBaseURL := strings.TrimRight(opts.APIBaseURL, "/")
	if apiBaseURL == "" {
		apiBaseURL = defaultAPIBaseURL
	}
	uploadBaseURL := strings.TrimRight(opts.UploadBaseURL, "/")
	if uploadBaseURL == "" {
		uploadBaseURL = defaultUploadBaseURL
	}
	language := strings.TrimSpace(opts.Language)
	if language == "" {
		language = defaultLanguage
	}
	tokenTTL := opts.TokenTTL
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	logger := zerolog.New(io.Discard)
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Client{
		apiBaseURL:    apiBaseURL,
		uploadBaseURL: uploadBaseURL,
		language:      language,
		httpClient:    httpClient,
		logger:        logger,
		accessToken:   accessToken,
		tokenTTL:      tokenTTL,
		now:           time.Now,
	}, nil
}

// send executes the request and returns the response body, converting
// network failures and non-2xx statuses into TransportError.
func (c *Client) send(req *http.Request, op string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn().Str("op", op).Int("status", resp.StatusCode).Msg("request rejected")
		return nil, &domain.TransportError{Op: op, StatusCode: resp.StatusCode}
	}
	return body, nil
}

func (c *Client) currentAccessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

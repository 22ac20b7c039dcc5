// Package socrata implements the Socrata bulk export client: authenticated
// HTTP access, dataset metadata lookup and the streaming CSV download.
package socrata

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	appConfig "socrataexport/config"
)

const (
	// DefaultChunkSize is the read size for the streaming download loop.
	DefaultChunkSize = 1 << 20 // 1 MiB

	outputTemplate = "311_all_%s.csv"
	stampLayout    = "200601021504"

	metadataTimeout = 30 * time.Second
	connectTimeout  = 10 * time.Second
	readTimeout     = 5 * time.Minute
)

// ErrMissingToken is returned by New when no API token is configured.
// This is a fatal configuration error and is raised before any network call.
var ErrMissingToken = errors.New("missing API token: set the APP_TOKEN environment variable")

// StatusError reports a non-success HTTP status from the Socrata service.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	datasetID  string
}

func New(cfg *appConfig.Config) (*Client, error) {
	if cfg.AppToken == "" {
		return nil, ErrMissingToken
	}

	proxy, err := proxyFunc(cfg)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		Proxy: proxy,
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
	}

	return &Client{
		httpClient: &http.Client{
			Transport: &authTransport{
				token: cfg.AppToken,
				base:  transport,
			},
		},
		baseURL:   "https://" + cfg.Domain,
		datasetID: cfg.DatasetID,
	}, nil
}

// authTransport stamps the Socrata application token on every request.
type authTransport struct {
	token string
	base  http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("X-App-Token", t.token)
	return t.base.RoundTrip(clone)
}

// proxyFunc builds the per-scheme proxy selector. Schemes without a
// configured proxy use direct connections; with no proxies at all the
// returned function is nil, which http.Transport treats as direct.
func proxyFunc(cfg *appConfig.Config) (func(*http.Request) (*url.URL, error), error) {
	proxies := make(map[string]*url.URL)
	for scheme, raw := range map[string]string{"http": cfg.HTTPProxy, "https": cfg.HTTPSProxy} {
		if raw == "" {
			continue
		}
		proxyURL, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s proxy URL %q: %w", scheme, raw, err)
		}
		proxies[scheme] = proxyURL
	}

	if len(proxies) == 0 {
		return nil, nil
	}

	return func(req *http.Request) (*url.URL, error) {
		return proxies[req.URL.Scheme], nil
	}, nil
}

func (c *Client) metadataURL() string {
	return fmt.Sprintf("%s/api/views/%s.json", c.baseURL, c.datasetID)
}

func (c *Client) exportURL() string {
	return fmt.Sprintf("%s/api/views/%s/rows.csv?accessType=DOWNLOAD", c.baseURL, c.datasetID)
}

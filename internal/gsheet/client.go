package gsheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/proxy"
)

// Client defaults.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultUserAgent   = "signboard/1.0 (+https://github.com/nao1215/signboard)"
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// Client fetches gviz query responses.
// A Client is safe for concurrent use.
type Client struct {
	// httpClient performs the GET. Built by NewClient unless WithHTTPClient is used.
	httpClient *http.Client

	// baseURL is the origin the query path is appended to.
	baseURL string

	// userAgent is sent with every request.
	userAgent string

	// maxBodySize limits the response body size.
	maxBodySize int64

	// timeout bounds each request.
	timeout time.Duration

	// proxyAddress is an optional SOCKS5 proxy in "host:port" form.
	proxyAddress string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
// Zero or negative keeps the default.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithBaseURL overrides the Google Docs origin. Used by tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = base
	}
}

// WithProxy routes requests through a SOCKS5 proxy at "host:port".
// An empty address means a direct connection.
func WithProxy(address string) Option {
	return func(c *Client) {
		c.proxyAddress = address
	}
}

// WithHTTPClient uses an existing http.Client. WithProxy is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client. It returns ErrInvalidProxyAddress when a
// proxy is configured with a bad address.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:     DefaultBaseURL,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		hc, err := c.newHTTPClient()
		if err != nil {
			return nil, err
		}
		c.httpClient = hc
	}
	return c, nil
}

// newHTTPClient builds the transport, optionally dialing through SOCKS5.
func (c *Client) newHTTPClient() (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if c.proxyAddress != "" {
		if !IsValidProxyAddress(c.proxyAddress) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidProxyAddress, c.proxyAddress)
		}
		dialer, err := proxy.SOCKS5("tcp", c.proxyAddress, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		transport.Proxy = nil
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   c.timeout,
	}, nil
}

// IsValidProxyAddress reports whether address is "host:port" with a port
// between 1 and 65535.
func IsValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" || port == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return n >= 1 && n <= 65535
}

// URL returns the query URL of src for this client.
func (c *Client) URL(src Source) string {
	return BuildURL(c.baseURL, src)
}

// Fetch performs one GET for src and returns the raw body.
// All errors wrap ErrTransport.
func (c *Client) Fetch(ctx context.Context, src Source) ([]byte, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(src), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrTransport, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/javascript, */*;q=0.1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %w: %s", ErrTransport, ErrUnexpectedStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %w", ErrTransport, err)
	}
	if int64(len(body)) > c.maxBodySize {
		return nil, fmt.Errorf("%w: %w: limit is %d bytes", ErrTransport, ErrBodyTooLarge, c.maxBodySize)
	}
	if isHTMLResponse(resp.Header.Get("Content-Type"), body) {
		if title := pageTitle(body); title != "" {
			return nil, fmt.Errorf("%w: %w: got page %q", ErrTransport, ErrNotPublic, title)
		}
		return nil, fmt.Errorf("%w: %w", ErrTransport, ErrNotPublic)
	}
	return body, nil
}

// IsTimeout reports whether err was caused by a deadline or client timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

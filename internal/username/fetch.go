package username

import (
	"compress/gzip"
	"compress/zlib"
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
)

// DefaultUserAgent identifies probe traffic to server operators. The trailing
// product token is deliberate: operators must be able to tell automated
// probing apart from organic browser traffic.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36 iPhoenix-OSINT/1.0"

// DefaultTimeout bounds each probe request.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a profile page is read for classification.
const maxBodyBytes = 1 << 20

// tlsConfig mirrors a current browser handshake so probes are served the same
// pages a person would see.
var tlsConfig = &tls.Config{
	MinVersion: tls.VersionTLS12,
	CipherSuites: []uint16{
		tls.TLS_AES_128_GCM_SHA256,
		tls.TLS_AES_256_GCM_SHA384,
		tls.TLS_CHACHA20_POLY1305_SHA256,
		tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
		tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
		tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
		tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
		tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256,
		tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256,
	},
	CurvePreferences: []tls.CurveID{tls.X25519, tls.CurveP256, tls.CurveP384},
	NextProtos:       []string{"http/1.1"},
}

// Failure discriminates the non-Ok variants of a FetchResult.
type Failure int

const (
	FailureNone Failure = iota
	FailureTimeout
	FailureConnection
	FailureOther
)

// FetchResult is the outcome of a single probe request. Failure == FailureNone
// means the Ok variant: Status, Body and FinalURL are populated. Any other
// Failure carries only Err.
type FetchResult struct {
	Failure  Failure
	Status   int
	Body     string
	FinalURL string
	Err      string
}

// Fetcher issues one bounded GET per (platform, identifier) pair. A single
// failed attempt is reported as-is; there are no retries.
type Fetcher struct {
	Timeout   time.Duration
	UserAgent string
}

// NewFetcher returns a Fetcher with the default timeout and client agent.
func NewFetcher() *Fetcher {
	return &Fetcher{Timeout: DefaultTimeout, UserAgent: DefaultUserAgent}
}

// Fetch performs the GET for one platform. Network failures never escape as
// errors; they come back as the corresponding FetchResult variant so the
// caller can turn them into verdicts.
func (f *Fetcher) Fetch(ctx context.Context, spec PlatformSpec, rawURL string) FetchResult {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: tlsConfig,
			Proxy:           http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   timeout,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
	if !spec.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return FetchResult{Failure: FailureOther, Err: err.Error()}
	}

	userAgent := f.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if spec.UserAgent != "" {
		userAgent = spec.UserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	res, err := client.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer res.Body.Close()

	body, err := readBody(res)
	if err != nil {
		return FetchResult{Failure: FailureOther, Err: err.Error()}
	}

	return FetchResult{
		Status:   res.StatusCode,
		Body:     body,
		FinalURL: res.Request.URL.String(),
	}
}

// classifyTransportError maps a client error onto the timeout / connection /
// other variants so classification stays a pure function downstream.
func classifyTransportError(err error) FetchResult {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FetchResult{Failure: FailureTimeout, Err: err.Error()}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FetchResult{Failure: FailureTimeout, Err: err.Error()}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return FetchResult{Failure: FailureConnection, Err: err.Error()}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return FetchResult{Failure: FailureConnection, Err: err.Error()}
	}

	return FetchResult{Failure: FailureOther, Err: err.Error()}
}

// readBody decodes the response body, honoring the content encodings the
// probe advertises.
func readBody(res *http.Response) (string, error) {
	var reader io.Reader
	switch res.Header.Get("Content-Encoding") {
	case "gzip":
		gzReader, err := gzip.NewReader(res.Body)
		if err != nil {
			return "", err
		}
		defer gzReader.Close()
		reader = gzReader
	case "deflate":
		zlibReader, err := zlib.NewReader(res.Body)
		if err != nil {
			return "", err
		}
		defer zlibReader.Close()
		reader = zlibReader
	case "br":
		reader = brotli.NewReader(res.Body)
	default:
		reader = res.Body
	}

	body, err := io.ReadAll(io.LimitReader(reader, maxBodyBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

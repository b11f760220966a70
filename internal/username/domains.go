package username

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// commonTLDs are appended to the identifier when scanning for personal
// domains registered under the same name.
var commonTLDs = []string{
	".com", ".net", ".org", ".biz", ".info", ".name", ".pro", ".cat",
	".co", ".me", ".io", ".tech", ".dev", ".app", ".shop", ".fail",
	".xyz", ".blog", ".portfolio", ".store", ".online", ".about",
	".space", ".lol", ".fun", ".social",
}

// DomainVariants generates candidate domains from the identifier and the
// common TLD list.
func DomainVariants(identifier string) []string {
	variants := make([]string, 0, len(commonTLDs))
	for _, tld := range commonTLDs {
		variants = append(variants, identifier+tld)
	}
	return variants
}

// DomainHit records a domain that answered with 200 OK.
type DomainHit struct {
	Domain    string  `json:"domain"`
	ElapsedMS float64 `json:"response_time_ms"`
}

// DomainScanner checks candidate domains sequentially, pacing requests with a
// limiter so the scan stays polite. Unresolvable hosts and timeouts are
// expected and silently skipped; only live domains are reported.
type DomainScanner struct {
	Timeout   time.Duration
	UserAgent string
	Limiter   *rate.Limiter
}

// NewDomainScanner returns a scanner that issues at most one request every
// two seconds.
func NewDomainScanner() *DomainScanner {
	return &DomainScanner{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		Limiter:   rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

// Scan probes every domain variant for the identifier and returns the ones
// that exist. Cancelling ctx ends the scan early with the hits collected so
// far.
func (d *DomainScanner) Scan(ctx context.Context, identifier string) []DomainHit {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := &http.Client{Timeout: timeout}

	var hits []DomainHit
	for _, domain := range DomainVariants(identifier) {
		if d.Limiter != nil {
			if err := d.Limiter.Wait(ctx); err != nil {
				break
			}
		} else if ctx.Err() != nil {
			break
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+domain, nil)
		if err != nil {
			continue
		}
		req.Header.Set("User-Agent", d.UserAgent)

		start := time.Now()
		res, err := client.Do(req)
		if err != nil {
			// Nonexistent domains surface as DNS failures; that is the
			// common case, not a problem worth reporting.
			continue
		}
		res.Body.Close()

		if res.StatusCode == http.StatusOK {
			hits = append(hits, DomainHit{
				Domain:    domain,
				ElapsedMS: float64(time.Since(start).Microseconds()) / 1000,
			})
		}
	}
	return hits
}

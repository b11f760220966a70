package emailintel

import (
	"fmt"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// Resolver answers the DNS questions the analyzer asks. It is an interface so
// tests can run without network access.
type Resolver interface {
	LookupMX(domain string) ([]string, error)
	LookupTXT(name string) ([]string, error)
}

const fallbackDNSServer = "8.8.8.8:53"

type dnsResolver struct {
	server string
	client *dns.Client
}

// NewResolver returns a resolver backed by the system's configured
// nameserver, falling back to a public one when resolv.conf is unreadable.
func NewResolver() Resolver {
	server := fallbackDNSServer
	if conf, err := dns.ClientConfigFromFile("/etc/resolv.conf"); err == nil && len(conf.Servers) > 0 {
		server = conf.Servers[0] + ":" + conf.Port
	}
	return &dnsResolver{
		server: server,
		client: &dns.Client{Timeout: 5 * time.Second},
	}
}

func (r *dnsResolver) query(name string, qtype uint16) (*dns.Msg, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), qtype)
	m.RecursionDesired = true

	in, _, err := r.client.Exchange(m, r.server)
	if err != nil {
		return nil, fmt.Errorf("dns query %s: %w", name, err)
	}
	return in, nil
}

func (r *dnsResolver) LookupMX(domain string) ([]string, error) {
	in, err := r.query(domain, dns.TypeMX)
	if err != nil {
		return nil, err
	}
	var hosts []string
	for _, rr := range in.Answer {
		if mx, ok := rr.(*dns.MX); ok {
			hosts = append(hosts, strings.TrimSuffix(mx.Mx, "."))
		}
	}
	return hosts, nil
}

func (r *dnsResolver) LookupTXT(name string) ([]string, error) {
	in, err := r.query(name, dns.TypeTXT)
	if err != nil {
		return nil, err
	}
	var records []string
	for _, rr := range in.Answer {
		if txt, ok := rr.(*dns.TXT); ok {
			records = append(records, strings.Join(txt.Txt, ""))
		}
	}
	return records, nil
}

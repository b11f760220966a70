// Package emailintel analyzes an email address for public footprints: format
// validation, mail-infrastructure DNS records, the domain's public website,
// Gravatar presence, and optional breach-database lookups.
package emailintel

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/bytedance/sonic"
	"github.com/ibnaleem/gobreach"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// freeProviders are well-known free mailbox domains.
var freeProviders = map[string]bool{
	"gmail.com": true, "yahoo.com": true, "hotmail.com": true,
	"outlook.com": true, "aol.com": true, "protonmail.com": true,
	"zoho.com": true, "yandex.com": true, "mail.com": true,
	"gmx.com": true, "icloud.com": true,
}

// disposableProviders are throwaway mailbox services.
var disposableProviders = map[string]bool{
	"tempmail.com": true, "10minutemail.com": true, "guerrillamail.com": true,
	"mailinator.com": true, "throwawaymail.com": true, "temp-mail.org": true,
}

var analyzerWarnings = []string{
	"Email analysis shows PUBLIC information only",
	"Does not verify ownership or identity",
	"Do not use for harassment or spam",
}

// Validation is the outcome of the format check.
type Validation struct {
	IsValid     bool   `json:"is_valid"`
	FormatCheck string `json:"format_check"`
	LocalPart   string `json:"local_part,omitempty"`
	Domain      string `json:"domain,omitempty"`
}

// DomainAnalysis covers the mail domain's public posture.
type DomainAnalysis struct {
	Domain       string   `json:"domain"`
	MXRecords    []string `json:"mx_records"`
	HasWebsite   bool     `json:"has_website"`
	WebsiteTitle string   `json:"website_title,omitempty"`
	SPF          bool     `json:"spf"`
	DMARC        bool     `json:"dmarc"`
	FreeProvider bool     `json:"free_email_provider"`
	Disposable   bool     `json:"disposable_email"`
	Notes        []string `json:"notes,omitempty"`
}

// GravatarResult reports whether the address has a Gravatar, and whether a
// public profile rides along with it.
type GravatarResult struct {
	Exists     bool   `json:"exists"`
	HasProfile bool   `json:"has_profile"`
	Note       string `json:"note"`
	Error      string `json:"error,omitempty"`
}

// BreachResult summarizes a BreachDirectory lookup. Passwords are never
// carried into the report, only counts and sources.
type BreachResult struct {
	Found   int      `json:"found"`
	Sources []string `json:"sources,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Report is the email module's serializable finding.
type Report struct {
	Email      string          `json:"email"`
	Validation Validation      `json:"validation"`
	Domain     *DomainAnalysis `json:"domain_analysis,omitempty"`
	Gravatar   *GravatarResult `json:"gravatar,omitempty"`
	Breaches   *BreachResult   `json:"breach_check,omitempty"`
	Warnings   []string        `json:"warnings"`
}

// Analyzer holds the collaborators for one analysis run. Zero-value fields
// get sensible defaults from NewAnalyzer.
type Analyzer struct {
	Client       *http.Client
	Resolver     Resolver
	GravatarBase string
	UserAgent    string
	BreachAPIKey string
}

// NewAnalyzer returns an analyzer with live DNS and HTTP collaborators.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		Client:       &http.Client{Timeout: 5 * time.Second},
		Resolver:     NewResolver(),
		GravatarBase: "https://www.gravatar.com",
	}
}

// Analyze inspects the address. An invalid format short-circuits: no network
// traffic is generated for garbage input.
func (a *Analyzer) Analyze(ctx context.Context, email string) *Report {
	report := &Report{
		Email:      email,
		Validation: ValidateFormat(email),
		Warnings:   analyzerWarnings,
	}
	if !report.Validation.IsValid {
		return report
	}

	domain := report.Validation.Domain
	report.Domain = a.analyzeDomain(ctx, domain)
	report.Gravatar = a.checkGravatar(ctx, email)

	if a.BreachAPIKey != "" {
		report.Breaches = a.checkBreaches(email)
	}
	return report
}

// ValidateFormat checks the address shape without touching the network.
func ValidateFormat(email string) Validation {
	if !emailPattern.MatchString(email) {
		return Validation{IsValid: false, FormatCheck: "Invalid format"}
	}
	at := strings.LastIndex(email, "@")
	return Validation{
		IsValid:     true,
		FormatCheck: "RFC 5322 compliant",
		LocalPart:   email[:at],
		Domain:      email[at+1:],
	}
}

func (a *Analyzer) analyzeDomain(ctx context.Context, domain string) *DomainAnalysis {
	analysis := &DomainAnalysis{
		Domain:       domain,
		FreeProvider: freeProviders[strings.ToLower(domain)],
		Disposable:   disposableProviders[strings.ToLower(domain)],
	}
	if analysis.FreeProvider {
		analysis.Notes = append(analysis.Notes, "Domain is from free email provider")
	}
	if analysis.Disposable {
		analysis.Notes = append(analysis.Notes, "Domain may be disposable/temporary email")
	}

	if a.Resolver != nil {
		if mx, err := a.Resolver.LookupMX(domain); err == nil && len(mx) > 0 {
			analysis.MXRecords = mx
		} else {
			analysis.MXRecords = []string{"No MX records found"}
		}

		if txt, err := a.Resolver.LookupTXT(domain); err == nil {
			for _, record := range txt {
				if strings.Contains(record, "v=spf1") {
					analysis.SPF = true
				}
			}
		}
		if txt, err := a.Resolver.LookupTXT("_dmarc." + domain); err == nil {
			for _, record := range txt {
				if strings.Contains(record, "v=DMARC1") {
					analysis.DMARC = true
				}
			}
		}
	}

	a.checkWebsite(ctx, domain, analysis)
	return analysis
}

// checkWebsite probes the domain's web root and pulls the page title when one
// is served.
func (a *Analyzer) checkWebsite(ctx context.Context, domain string, analysis *DomainAnalysis) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+domain, nil)
	if err != nil {
		return
	}
	if a.UserAgent != "" {
		req.Header.Set("User-Agent", a.UserAgent)
	}

	res, err := a.Client.Do(req)
	if err != nil {
		return
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return
	}
	analysis.HasWebsite = true

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if len(title) > 100 {
		title = title[:100]
	}
	analysis.WebsiteTitle = title
}

// GravatarHash is the MD5 of the trimmed, lowercased address, per the
// Gravatar API contract.
func GravatarHash(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}

func (a *Analyzer) checkGravatar(ctx context.Context, email string) *GravatarResult {
	hash := GravatarHash(email)

	// d=404 makes Gravatar answer 404 instead of serving a default avatar,
	// which is what turns the avatar endpoint into an existence check.
	avatarURL := fmt.Sprintf("%s/avatar/%s?d=404", a.GravatarBase, hash)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, avatarURL, nil)
	if err != nil {
		return &GravatarResult{Error: err.Error()}
	}
	res, err := a.Client.Do(req)
	if err != nil {
		return &GravatarResult{Error: err.Error()}
	}
	res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return &GravatarResult{Exists: false, Note: "No Gravatar found"}
	}

	result := &GravatarResult{Exists: true, Note: "Gravatar exists but no public profile"}

	profileURL := fmt.Sprintf("%s/%s.json", a.GravatarBase, hash)
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, profileURL, nil)
	if err != nil {
		return result
	}
	profileRes, err := a.Client.Do(req)
	if err != nil {
		return result
	}
	defer profileRes.Body.Close()

	if profileRes.StatusCode != http.StatusOK {
		return result
	}

	var profile struct {
		Entry []struct {
			PreferredUsername string `json:"preferredUsername"`
		} `json:"entry"`
	}
	if err := sonic.ConfigDefault.NewDecoder(profileRes.Body).Decode(&profile); err != nil {
		return result
	}
	if len(profile.Entry) > 0 {
		result.HasProfile = true
		result.Note = "Public Gravatar profile found"
	}
	return result
}

// checkBreaches queries BreachDirectory. Only counts and source names make it
// into the report.
func (a *Analyzer) checkBreaches(email string) *BreachResult {
	client, err := gobreach.NewBreachDirectoryClient(a.BreachAPIKey)
	if err != nil {
		return &BreachResult{Error: err.Error()}
	}

	response, err := client.Search(email)
	if err != nil {
		return &BreachResult{Error: err.Error()}
	}

	result := &BreachResult{Found: response.Found}
	seen := make(map[string]bool)
	for _, entry := range response.Result {
		if entry.Sources != "" && !seen[entry.Sources] {
			seen[entry.Sources] = true
			result.Sources = append(result.Sources, entry.Sources)
		}
	}
	return result
}

package emailintel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type fakeResolver struct {
	mx  map[string][]string
	txt map[string][]string
}

func (f *fakeResolver) LookupMX(domain string) ([]string, error) {
	return f.mx[domain], nil
}

func (f *fakeResolver) LookupTXT(name string) ([]string, error) {
	return f.txt[name], nil
}

func testAnalyzer() *Analyzer {
	return &Analyzer{
		Client:   &http.Client{Timeout: time.Second},
		Resolver: &fakeResolver{},
	}
}

// TestValidateFormat covers the accept/reject boundary of the format check.
func TestValidateFormat(t *testing.T) {
	valid := []string{"alice@example.com", "a.b+tag@sub.example.co.uk", "x_1@example.io"}
	for _, email := range valid {
		v := ValidateFormat(email)
		if !v.IsValid {
			t.Errorf("ValidateFormat(%q).IsValid = false; want true", email)
		}
	}

	invalid := []string{"not-an-email", "@example.com", "alice@", "alice@localhost", "a b@example.com"}
	for _, email := range invalid {
		if ValidateFormat(email).IsValid {
			t.Errorf("ValidateFormat(%q).IsValid = true; want false", email)
		}
	}

	v := ValidateFormat("alice@example.com")
	if v.LocalPart != "alice" || v.Domain != "example.com" {
		t.Errorf("ValidateFormat() parts = %q@%q; want alice@example.com", v.LocalPart, v.Domain)
	}
}

// TestAnalyzeInvalidShortCircuits verifies garbage input produces no domain
// or footprint sections.
func TestAnalyzeInvalidShortCircuits(t *testing.T) {
	report := testAnalyzer().Analyze(context.Background(), "not-an-email")
	if report.Validation.IsValid {
		t.Fatal("expected invalid validation")
	}
	if report.Domain != nil || report.Gravatar != nil {
		t.Error("invalid email should not trigger domain or gravatar analysis")
	}
}

// TestGravatarHash checks the hash matches the Gravatar contract: MD5 of the
// trimmed, lowercased address.
func TestGravatarHash(t *testing.T) {
	// Reference hash from the Gravatar documentation.
	want := "0bc83cb571cd1c50ba6f3e8a78ef1346"
	if got := GravatarHash("MyEmailAddress@example.com "); got != want {
		t.Errorf("GravatarHash() = %s; want %s", got, want)
	}
}

// TestCheckGravatarFound simulates an address with both avatar and public
// profile.
func TestCheckGravatarFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/avatar/") {
			w.WriteHeader(200)
			return
		}
		if strings.HasSuffix(r.URL.Path, ".json") {
			w.WriteHeader(200)
			w.Write([]byte(`{"entry":[{"preferredUsername":"alice"}]}`))
			return
		}
		w.WriteHeader(404)
	}))
	defer ts.Close()

	a := testAnalyzer()
	a.GravatarBase = ts.URL
	result := a.checkGravatar(context.Background(), "alice@example.com")
	if !result.Exists {
		t.Error("Exists = false; want true")
	}
	if !result.HasProfile {
		t.Error("HasProfile = false; want true")
	}
}

// TestCheckGravatarAbsent simulates an address with no Gravatar.
func TestCheckGravatarAbsent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
	}))
	defer ts.Close()

	a := testAnalyzer()
	a.GravatarBase = ts.URL
	result := a.checkGravatar(context.Background(), "nobody@example.com")
	if result.Exists {
		t.Error("Exists = true; want false")
	}
}

// TestAnalyzeDomainDNS verifies MX and SPF/DMARC detection against a stub
// resolver.
func TestAnalyzeDomainDNS(t *testing.T) {
	a := testAnalyzer()
	a.Resolver = &fakeResolver{
		mx: map[string][]string{"example.com": {"mx1.example.com", "mx2.example.com"}},
		txt: map[string][]string{
			"example.com":        {"v=spf1 include:_spf.example.com ~all"},
			"_dmarc.example.com": {"v=DMARC1; p=reject"},
		},
	}

	analysis := a.analyzeDomain(context.Background(), "example.com")
	if len(analysis.MXRecords) != 2 {
		t.Errorf("MXRecords = %v; want 2 hosts", analysis.MXRecords)
	}
	if !analysis.SPF {
		t.Error("SPF = false; want true")
	}
	if !analysis.DMARC {
		t.Error("DMARC = false; want true")
	}
}

// TestAnalyzeDomainNoMX verifies the no-records placeholder.
func TestAnalyzeDomainNoMX(t *testing.T) {
	analysis := testAnalyzer().analyzeDomain(context.Background(), "no-mail.example")
	if len(analysis.MXRecords) != 1 || analysis.MXRecords[0] != "No MX records found" {
		t.Errorf("MXRecords = %v; want placeholder", analysis.MXRecords)
	}
}

// TestReputationTables verifies the free/disposable provider classification.
func TestReputationTables(t *testing.T) {
	a := testAnalyzer()

	free := a.analyzeDomain(context.Background(), "gmail.com")
	if !free.FreeProvider {
		t.Error("gmail.com not flagged as free provider")
	}

	disposable := a.analyzeDomain(context.Background(), "mailinator.com")
	if !disposable.Disposable {
		t.Error("mailinator.com not flagged as disposable")
	}

	corp := a.analyzeDomain(context.Background(), "corp.example")
	if corp.FreeProvider || corp.Disposable {
		t.Error("corp.example wrongly flagged")
	}
}

// TestWebsiteTitle verifies title extraction from a live domain page.
func TestWebsiteTitle(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("<html><head><title>  Example Corp  </title></head><body></body></html>"))
	}))
	defer ts.Close()

	a := testAnalyzer()
	analysis := &DomainAnalysis{}
	a.checkWebsite(context.Background(), strings.TrimPrefix(ts.URL, "http://"), analysis)
	if !analysis.HasWebsite {
		t.Fatal("HasWebsite = false; want true")
	}
	if analysis.WebsiteTitle != "Example Corp" {
		t.Errorf("WebsiteTitle = %q; want %q", analysis.WebsiteTitle, "Example Corp")
	}
}

package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/Phoenix-code14/iPhoenix/internal/username"
)

// TestNewCaseFile checks the identity fields of a fresh case.
func TestNewCaseFile(t *testing.T) {
	c := NewCaseFile("username", "alice")

	if c.Tool != "iPhoenix" || c.Version != "1.0.0" {
		t.Errorf("tool identity = %s/%s; want iPhoenix/1.0.0", c.Tool, c.Version)
	}
	if c.CaseID == "" {
		t.Error("CaseID empty; want a UUID")
	}
	if c.Input.Type != "username" || c.Input.Value != "alice" {
		t.Errorf("Input = %+v; want username/alice", c.Input)
	}
	if c.Disclaimer == "" {
		t.Error("Disclaimer empty")
	}

	other := NewCaseFile("email", "a@b.com")
	if other.CaseID == c.CaseID {
		t.Error("case IDs collide across cases")
	}
}

// TestCaseFileSave round-trips a saved case through the filesystem and checks
// the JSON shape.
func TestCaseFileSave(t *testing.T) {
	dir := t.TempDir()

	c := NewCaseFile("phone", "+14155552671")
	c.AddFinding("phone", map[string]string{"e164_format": "+14155552671"})

	path, err := c.Save(dir, "investigation-1")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if filepath.Base(path) != "investigation-1.json" {
		t.Errorf("path = %s; want .json suffix appended", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := sonic.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("saved case is not valid JSON: %v", err)
	}
	for _, key := range []string{"tool", "version", "case_id", "timestamp", "input", "findings", "disclaimer"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("saved case missing %q", key)
		}
	}
	findings := decoded["findings"].(map[string]interface{})
	if _, ok := findings["phone"]; !ok {
		t.Error("saved case missing phone finding")
	}
}

// TestDisableColor verifies plain output after the switch.
func TestDisableColor(t *testing.T) {
	defer func() { CurrentTheme = detectTheme() }()

	DisableColor()
	if got := Red("danger").String(); got != "danger" {
		t.Errorf("Red() with colors off = %q; want bare text", got)
	}

	CurrentTheme = DarkTheme
	if got := Red("danger").String(); !strings.Contains(got, "\033[") {
		t.Errorf("Red() with dark theme = %q; want ANSI codes", got)
	}
}

// TestRenderProbeSummary smoke-tests table rendering and presentation order.
func TestRenderProbeSummary(t *testing.T) {
	defer func() { CurrentTheme = detectTheme() }()
	DisableColor()

	summary := &username.ProbeSummary{
		Identifier: "alice",
		Total:      3,
		Counts: map[username.Verdict]int{
			username.VerdictFound:    1,
			username.VerdictNotFound: 1,
			username.VerdictTimeout:  1,
		},
		Outcomes: map[string]username.ProbeOutcome{
			"Zulu":   {Platform: "Zulu", Verdict: username.VerdictFound, URL: "https://zulu.example/alice", HTTPStatus: 200},
			"Alpha":  {Platform: "Alpha", Verdict: username.VerdictNotFound, HTTPStatus: 404},
			"Medium": {Platform: "Medium", Verdict: username.VerdictTimeout},
		},
		Warnings: []string{"Presence does not imply ownership"},
	}

	var buf bytes.Buffer
	RenderProbeSummary(&buf, summary)
	out := buf.String()

	if !strings.Contains(out, "https://zulu.example/alice") {
		t.Error("found profile URL missing from output")
	}
	if strings.Index(out, "Zulu") > strings.Index(out, "Alpha") {
		t.Error("found platform should render before not-found platforms")
	}
	if !strings.Contains(out, "Presence does not imply ownership") {
		t.Error("warnings missing from output")
	}
}

// TestRenderDomainHitsEmpty verifies the no-hits message.
func TestRenderDomainHitsEmpty(t *testing.T) {
	defer func() { CurrentTheme = detectTheme() }()
	DisableColor()

	var buf bytes.Buffer
	RenderDomainHits(&buf, "alice", nil)
	if !strings.Contains(buf.String(), "No live domains") {
		t.Errorf("output = %q; want no-hits message", buf.String())
	}
}

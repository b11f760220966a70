// Package report holds the investigation's output side: the JSON case file,
// console rendering with ANSI theming, and the ethical-use banner.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

const (
	// ToolName and ToolVersion identify the tool in case files.
	ToolName    = "iPhoenix"
	ToolVersion = "1.0.0"

	// DefaultCaseDir is where case files land unless overridden.
	DefaultCaseDir = "cases"
)

const caseDisclaimer = "This report contains publicly available information only. " +
	"It does not claim identity, ownership, or location of any individual."

// Input records what the investigation was asked to analyze.
type Input struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// CaseFile is the persisted investigation record. Findings are keyed by
// module name (username, email, phone, image, domains).
type CaseFile struct {
	Tool       string                 `json:"tool"`
	Version    string                 `json:"version"`
	CaseID     string                 `json:"case_id"`
	Timestamp  string                 `json:"timestamp"`
	Input      Input                  `json:"input"`
	Findings   map[string]interface{} `json:"findings"`
	Disclaimer string                 `json:"disclaimer"`
}

// NewCaseFile starts a case for the given input with a fresh case ID and
// current timestamp.
func NewCaseFile(inputType, value string) *CaseFile {
	return &CaseFile{
		Tool:       ToolName,
		Version:    ToolVersion,
		CaseID:     uuid.NewString(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Input:      Input{Type: inputType, Value: value},
		Findings:   make(map[string]interface{}),
		Disclaimer: caseDisclaimer,
	}
}

// AddFinding attaches a module's result to the case.
func (c *CaseFile) AddFinding(module string, result interface{}) {
	c.Findings[module] = result
}

// Save writes the case as indented JSON under dir, appending .json to the
// filename when missing. It returns the written path.
func (c *CaseFile) Save(dir, filename string) (string, error) {
	if dir == "" {
		dir = DefaultCaseDir
	}
	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating case directory: %w", err)
	}

	data, err := sonic.ConfigDefault.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding case file: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing case file: %w", err)
	}
	return path, nil
}

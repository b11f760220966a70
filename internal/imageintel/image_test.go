package imageintel

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG renders a small gradient PNG and returns its path.
func writeTestPNG(t *testing.T, name string, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return path
}

// TestAnalyzeBasics verifies file info, digests and perceptual hashes for a
// decodable image.
func TestAnalyzeBasics(t *testing.T) {
	path := writeTestPNG(t, "sample.png", 640, 480)

	report, err := Analyze(path)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if report.File.Filename != "sample.png" {
		t.Errorf("Filename = %s; want sample.png", report.File.Filename)
	}
	if report.File.SizeBytes <= 0 {
		t.Error("SizeBytes = 0; want > 0")
	}
	if report.Hashes == nil {
		t.Fatal("Hashes = nil")
	}
	if len(report.Hashes.MD5) != 32 {
		t.Errorf("MD5 = %q; want 32 hex chars", report.Hashes.MD5)
	}
	if len(report.Hashes.SHA256) != 64 {
		t.Errorf("SHA256 = %q; want 64 hex chars", report.Hashes.SHA256)
	}
	if report.Hashes.DHash == "" || report.Hashes.PHash == "" {
		t.Error("perceptual hashes empty; want dhash and phash")
	}
	if report.Analysis == nil || report.Analysis.Dimensions != "640x480" {
		t.Errorf("Analysis = %+v; want dimensions 640x480", report.Analysis)
	}
}

// TestAnalyzeHashesStable verifies identical content yields identical hashes.
func TestAnalyzeHashesStable(t *testing.T) {
	path := writeTestPNG(t, "stable.png", 320, 320)

	first, err := Analyze(path)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	second, err := Analyze(path)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if first.Hashes.MD5 != second.Hashes.MD5 || first.Hashes.PHash != second.Hashes.PHash {
		t.Error("hashes differ across runs for identical content")
	}
}

// TestAnalyzeReuseIndicators verifies the stock-dimension and low-resolution
// heuristics.
func TestAnalyzeReuseIndicators(t *testing.T) {
	stock := writeTestPNG(t, "stock.png", 1280, 720)
	report, err := Analyze(stock)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !containsIndicator(report.Analysis.ReuseIndicators, "stock photo") {
		t.Errorf("ReuseIndicators = %v; want stock-dimension hint", report.Analysis.ReuseIndicators)
	}

	tiny := writeTestPNG(t, "tiny.png", 100, 100)
	report, err = Analyze(tiny)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !containsIndicator(report.Analysis.ReuseIndicators, "Low resolution") {
		t.Errorf("ReuseIndicators = %v; want low-resolution hint", report.Analysis.ReuseIndicators)
	}
}

func containsIndicator(indicators []string, fragment string) bool {
	for _, s := range indicators {
		if len(s) >= len(fragment) && contains(s, fragment) {
			return true
		}
	}
	return false
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

// TestAnalyzeMissingFile verifies the not-found error path.
func TestAnalyzeMissingFile(t *testing.T) {
	if _, err := Analyze(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("Analyze() = nil error; want not-found")
	}
}

// TestAnalyzeUnsupportedExtension verifies non-image files are rejected
// before any reading happens.
func TestAnalyzeUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "document.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Analyze(path); err == nil {
		t.Fatal("Analyze() = nil error; want unsupported format")
	}
}

// TestAnalyzeCorruptPixels verifies a supported extension with undecodable
// bytes still yields digests plus a recorded issue.
func TestAnalyzeCorruptPixels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.png")
	if err := os.WriteFile(path, []byte("not a real png"), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := Analyze(path)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if report.Hashes == nil || report.Hashes.MD5 == "" {
		t.Error("digests missing for corrupt image")
	}
	if len(report.Issues) == 0 {
		t.Error("Issues empty; want decode failure recorded")
	}
	if report.Analysis != nil {
		t.Error("Analysis present for undecodable image")
	}
}

// Package imageintel analyzes a local image file: content digests, perceptual
// hashes for similarity lookups, EXIF metadata with location and serial
// fields withheld, and reuse heuristics. It never uploads the image anywhere;
// reverse-search engines are suggested, not contacted.
package imageintel

import (
	"bytes"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/corona10/goimagehash"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

var supportedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".bmp": true, ".tiff": true,
}

// stockDimensions are sizes common to stock photography; a match hints the
// image may be a reused asset rather than an original.
var stockDimensions = map[[2]int]bool{
	{1200, 800}:  true,
	{1920, 1080}: true,
	{1280, 720}:  true,
	{800, 600}:   true,
}

var reverseSearchEngines = []string{
	"TinEye (tineye.com)",
	"Yandex Images (yandex.com/images)",
	"Bing Visual Search",
}

var analyzerWarnings = []string{
	"Image analysis shows PUBLIC information only",
	"Hashes identify content, never people",
	"Reverse searches must be run manually",
}

// FileInfo is the stat section of the report.
type FileInfo struct {
	Filename  string  `json:"filename"`
	SizeBytes int64   `json:"size_bytes"`
	SizeMB    float64 `json:"size_mb"`
	Modified  string  `json:"modified"`
	Extension string  `json:"extension"`
}

// Hashes carries exact and perceptual digests of the image.
type Hashes struct {
	MD5    string `json:"md5"`
	SHA256 string `json:"sha256"`
	DHash  string `json:"dhash,omitempty"`
	PHash  string `json:"phash,omitempty"`
	Note   string `json:"note"`
}

// Analysis holds the reuse heuristics derived from the pixels and metadata.
type Analysis struct {
	Dimensions         string   `json:"dimensions"`
	Format             string   `json:"format"`
	ReuseIndicators    []string `json:"possible_reuse_indicators"`
	InvestigationNotes []string `json:"investigation_notes"`
}

// Report is the image module's serializable finding.
type Report struct {
	File          FileInfo          `json:"file_info"`
	Hashes        *Hashes           `json:"hashes,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	MetadataNote  string            `json:"metadata_note,omitempty"`
	Analysis      *Analysis         `json:"analysis,omitempty"`
	ReverseSearch []string          `json:"reverse_search_suggestions"`
	Warnings      []string          `json:"warnings"`
	Issues        []string          `json:"issues,omitempty"`
}

// Analyze inspects the file at path. The only hard error is an unreadable or
// unsupported file; partial failures (undecodable pixels, absent EXIF) are
// recorded as issues on the report.
func Analyze(path string) (*Report, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("image file not found: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return nil, fmt.Errorf("unsupported image format %q", ext)
	}

	report := &Report{
		File: FileInfo{
			Filename:  filepath.Base(path),
			SizeBytes: stat.Size(),
			SizeMB:    math.Round(float64(stat.Size())/(1024*1024)*100) / 100,
			Modified:  stat.ModTime().UTC().Format("2006-01-02T15:04:05Z"),
			Extension: ext,
		},
		ReverseSearch: reverseSearchEngines,
		Warnings:      analyzerWarnings,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	md5Sum := md5.Sum(raw)
	shaSum := sha256.Sum256(raw)
	report.Hashes = &Hashes{
		MD5:    hex.EncodeToString(md5Sum[:]),
		SHA256: hex.EncodeToString(shaSum[:]),
		Note:   "Use these hashes to check for similar images across public platforms",
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		report.Issues = append(report.Issues, fmt.Sprintf("could not decode pixels: %v", err))
	} else {
		if dhash, err := goimagehash.DifferenceHash(img); err == nil {
			report.Hashes.DHash = dhash.ToString()
		}
		if phash, err := goimagehash.PerceptionHash(img); err == nil {
			report.Hashes.PHash = phash.ToString()
		}
		report.Analysis = analyzePixels(img, format)
	}

	report.Metadata, report.MetadataNote = extractMetadata(raw)
	if report.Analysis != nil {
		if software, ok := report.Metadata["Software"]; ok {
			report.Analysis.ReuseIndicators = append(report.Analysis.ReuseIndicators,
				"Created/edited with: "+software)
		}
	}
	return report, nil
}

func analyzePixels(img image.Image, format string) *Analysis {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	analysis := &Analysis{
		Dimensions: fmt.Sprintf("%dx%d", width, height),
		Format:     format,
		InvestigationNotes: []string{
			"Compare hashes on reverse image search engines",
			"Check if image appears on stock photo websites",
			"Look for watermarks or editing artifacts",
		},
	}

	if stockDimensions[[2]int{width, height}] {
		analysis.ReuseIndicators = append(analysis.ReuseIndicators,
			"Common stock photo dimensions detected")
	}
	if width < 300 || height < 300 {
		analysis.ReuseIndicators = append(analysis.ReuseIndicators,
			"Low resolution - may be thumbnail or compressed copy")
	}
	return analysis
}

// extractMetadata reads EXIF fields, withholding GPS data and device serial
// numbers.
func extractMetadata(raw []byte) (map[string]string, string) {
	x, err := exif.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ""
	}

	walker := &exifWalker{fields: make(map[string]string)}
	if err := x.Walk(walker); err != nil {
		return walker.fields, walker.note
	}
	return walker.fields, walker.note
}

type exifWalker struct {
	fields map[string]string
	note   string
}

func (w *exifWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	field := string(name)
	if strings.Contains(field, "GPS") {
		w.note = "GPS data removed for privacy"
		return nil
	}
	if strings.Contains(field, "Serial") {
		return nil
	}

	value := strings.Trim(tag.String(), `"`)
	if len(value) > 200 {
		value = value[:200]
	}
	w.fields[field] = value
	return nil
}

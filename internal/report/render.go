package report

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/Phoenix-code14/iPhoenix/internal/emailintel"
	"github.com/Phoenix-code14/iPhoenix/internal/imageintel"
	"github.com/Phoenix-code14/iPhoenix/internal/phoneintel"
	"github.com/Phoenix-code14/iPhoenix/internal/username"
)

// verdictLabel maps a verdict to a colored console tag.
func verdictLabel(v username.Verdict) Color {
	switch v {
	case username.VerdictFound:
		return Green("FOUND")
	case username.VerdictNotFound:
		return Gray("not found")
	case username.VerdictTimeout:
		return Yellow("timeout")
	case username.VerdictConnectionError:
		return Yellow("connection error")
	case username.VerdictError:
		return Red("error")
	default:
		return Gray("unknown")
	}
}

// OutcomeLine formats one probe outcome the way the verbose stream prints it.
func OutcomeLine(out username.ProbeOutcome) string {
	line := fmt.Sprintf("[%s] %s", verdictLabel(out.Verdict), Bold("%s", out.Platform))
	if out.Verdict == username.VerdictFound {
		line += " " + Cyan(out.URL).String()
	}
	return line
}

// RenderProbeSummary prints the full username run: per-platform table in
// presentation order, then the verdict counts.
func RenderProbeSummary(w io.Writer, summary *username.ProbeSummary) {
	Bold("\nResults for %q across %d platforms\n", summary.Identifier, summary.Total).Fprintln(w)

	table := tablewriter.NewTable(w, tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{Borders: tw.BorderNone})))
	table.Header("Platform", "Status", "HTTP", "Time (ms)", "URL")
	for _, out := range summary.Grouped() {
		url := ""
		if out.Verdict == username.VerdictFound {
			url = out.URL
		}
		httpStatus := ""
		if out.HTTPStatus != 0 {
			httpStatus = fmt.Sprintf("%d", out.HTTPStatus)
		}
		table.Append(out.Platform, verdictLabel(out.Verdict).String(), httpStatus,
			fmt.Sprintf("%.2f", out.ElapsedMS), url)
	}
	if err := table.Render(); err != nil {
		log.Printf("table render failed: %v", err)
	}

	fmt.Fprintln(w)
	counts := tablewriter.NewTable(w, tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{Borders: tw.BorderNone})))
	counts.Append(Bold("Profiles found").String(), Green(summary.Counts[username.VerdictFound]).String())
	counts.Append(Bold("Not found").String(), fmt.Sprint(summary.Counts[username.VerdictNotFound]))
	counts.Append(Bold("Checks performed").String(), fmt.Sprint(summary.Total))
	if err := counts.Render(); err != nil {
		log.Printf("table render failed: %v", err)
	}

	renderWarnings(w, summary.Warnings)
}

// RenderDomainHits prints live domain variants found for the identifier.
func RenderDomainHits(w io.Writer, identifier string, hits []username.DomainHit) {
	Bold("\nDomains registered under %q\n", identifier).Fprintln(w)
	if len(hits) == 0 {
		Gray("No live domains found").Fprintln(w)
		return
	}
	table := tablewriter.NewTable(w, tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{Borders: tw.BorderNone})))
	table.Header("Domain", "Time (ms)")
	for _, hit := range hits {
		table.Append(Green(hit.Domain).String(), fmt.Sprintf("%.2f", hit.ElapsedMS))
	}
	if err := table.Render(); err != nil {
		log.Printf("table render failed: %v", err)
	}
}

// RenderEmailReport prints the email module's finding.
func RenderEmailReport(w io.Writer, rep *emailintel.Report) {
	Bold("\nEmail analysis for %s\n", rep.Email).Fprintln(w)

	table := tablewriter.NewTable(w, tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{Borders: tw.BorderNone})))
	table.Append(Bold("Valid format").String(), yesNo(rep.Validation.IsValid))
	if !rep.Validation.IsValid {
		if err := table.Render(); err != nil {
			log.Printf("table render failed: %v", err)
		}
		Red("Address failed format validation; nothing further to check").Fprintln(w)
		return
	}

	if d := rep.Domain; d != nil {
		table.Append(Bold("Mail domain").String(), d.Domain)
		table.Append(Bold("MX records").String(), strings.Join(d.MXRecords, ", "))
		table.Append(Bold("SPF / DMARC").String(), yesNo(d.SPF)+" / "+yesNo(d.DMARC))
		table.Append(Bold("Free provider").String(), yesNo(d.FreeProvider))
		table.Append(Bold("Disposable").String(), yesNo(d.Disposable))
		if d.HasWebsite {
			table.Append(Bold("Website").String(), d.WebsiteTitle)
		}
	}
	if g := rep.Gravatar; g != nil {
		table.Append(Bold("Gravatar").String(), yesNo(g.Exists))
		if g.HasProfile {
			table.Append(Bold("Gravatar profile").String(), "public profile present")
		}
	}
	if b := rep.Breaches; b != nil {
		if b.Error != "" {
			table.Append(Bold("Breach check").String(), Yellow(b.Error).String())
		} else {
			table.Append(Bold("Known breaches").String(), fmt.Sprint(b.Found))
			if len(b.Sources) > 0 {
				table.Append(Bold("Breach sources").String(), strings.Join(b.Sources, ", "))
			}
		}
	}
	if err := table.Render(); err != nil {
		log.Printf("table render failed: %v", err)
	}
	renderWarnings(w, rep.Warnings)
}

// RenderPhoneReport prints the phone module's finding.
func RenderPhoneReport(w io.Writer, rep *phoneintel.Report) {
	Bold("\nPhone analysis for %s\n", rep.Number).Fprintln(w)

	table := tablewriter.NewTable(w, tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{Borders: tw.BorderNone})))
	table.Append(Bold("Valid").String(), yesNo(rep.Validation.IsValid))
	if !rep.Validation.IsValid {
		if rep.Validation.Error != "" {
			table.Append(Bold("Parse error").String(), rep.Validation.Error)
		}
		if err := table.Render(); err != nil {
			log.Printf("table render failed: %v", err)
		}
		return
	}

	table.Append(Bold("E.164").String(), rep.Validation.E164)
	table.Append(Bold("International").String(), rep.Validation.International)
	if c := rep.Carrier; c != nil {
		table.Append(Bold("Carrier").String(), c.Carrier)
		table.Append(Bold("Type").String(), c.NumberType)
	}
	if g := rep.Geographic; g != nil {
		table.Append(Bold("Region").String(), g.RegionCode)
		table.Append(Bold("Location").String(), g.Description)
		table.Append(Bold("Timezones").String(), strings.Join(g.Timezones, ", "))
	}
	if m := rep.Messaging; m != nil {
		table.Append(Bold("WhatsApp check").String(), m.WhatsAppURL)
	}
	if err := table.Render(); err != nil {
		log.Printf("table render failed: %v", err)
	}
	renderWarnings(w, rep.Warnings)
}

// RenderImageReport prints the image module's finding.
func RenderImageReport(w io.Writer, rep *imageintel.Report) {
	Bold("\nImage analysis for %s\n", rep.File.Filename).Fprintln(w)

	table := tablewriter.NewTable(w, tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{Borders: tw.BorderNone})))
	table.Append(Bold("Size").String(), fmt.Sprintf("%.2f MB", rep.File.SizeMB))
	if h := rep.Hashes; h != nil {
		table.Append(Bold("MD5").String(), h.MD5)
		table.Append(Bold("SHA-256").String(), h.SHA256)
		if h.DHash != "" {
			table.Append(Bold("dHash").String(), h.DHash)
		}
		if h.PHash != "" {
			table.Append(Bold("pHash").String(), h.PHash)
		}
	}
	if a := rep.Analysis; a != nil {
		table.Append(Bold("Dimensions").String(), a.Dimensions)
		table.Append(Bold("Format").String(), a.Format)
		for _, hint := range a.ReuseIndicators {
			table.Append(Bold("Reuse hint").String(), Yellow(hint).String())
		}
	}
	if rep.MetadataNote != "" {
		table.Append(Bold("Metadata note").String(), rep.MetadataNote)
	}
	if err := table.Render(); err != nil {
		log.Printf("table render failed: %v", err)
	}

	if len(rep.Metadata) > 0 {
		Bold("\nEXIF metadata (%d fields)\n", len(rep.Metadata)).Fprintln(w)
	}
	for _, issue := range rep.Issues {
		Yellow("[!] " + issue).Fprintln(w)
	}
	Gray("Reverse search manually: " + strings.Join(rep.ReverseSearch, "; ")).Fprintln(w)
	renderWarnings(w, rep.Warnings)
}

func renderWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		Grayf(":: %s", warning).Fprintln(w)
	}
}

func yesNo(b bool) string {
	if b {
		return Green("yes").String()
	}
	return Gray("no").String()
}

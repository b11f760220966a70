// iphoenix is an ethical OSINT investigation tool. It checks where a public
// identifier (username, email, phone number, or image) appears across public
// platforms and records findings in a JSON case file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inancgumus/screen"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Phoenix-code14/iPhoenix/internal/config"
	"github.com/Phoenix-code14/iPhoenix/internal/emailintel"
	"github.com/Phoenix-code14/iPhoenix/internal/imageintel"
	"github.com/Phoenix-code14/iPhoenix/internal/phoneintel"
	"github.com/Phoenix-code14/iPhoenix/internal/report"
	"github.com/Phoenix-code14/iPhoenix/internal/username"
)

var (
	flagUsername string
	flagEmail    string
	flagPhone    string
	flagImage    string

	flagCase        string
	flagConfig      string
	flagOutput      string
	flagTimeout     int
	flagConcurrency int
	flagBreachKey   string
	flagDomains     bool
	flagVerbose     bool
	flagNoColor     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "iphoenix",
		Short: "Ethical OSINT investigation tool",
		Long: `iPhoenix checks where a public identifier appears across public platforms:
username presence probing, email footprint analysis, phone number metadata,
and local image fingerprinting. It analyzes publicly available information
only and never bypasses authentication.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVarP(&flagUsername, "username", "u", "", "Check username across public platforms")
	rootCmd.Flags().StringVarP(&flagEmail, "email", "e", "", "Analyze email address for public footprints")
	rootCmd.Flags().StringVarP(&flagPhone, "phone", "p", "", "Check phone number metadata (E.164, e.g. +14155552671)")
	rootCmd.Flags().StringVarP(&flagImage, "image", "i", "", "Analyze local image file")
	rootCmd.MarkFlagsOneRequired("username", "email", "phone", "image")
	rootCmd.MarkFlagsMutuallyExclusive("username", "email", "phone", "image")

	rootCmd.Flags().StringVar(&flagCase, "case", "", "Save results to a named case file (JSON)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to config file (default config.yaml when present)")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Directory for case files (overrides config)")
	rootCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "Per-request timeout in seconds (overrides config)")
	rootCmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "Probe worker count (overrides config)")
	rootCmd.Flags().StringVar(&flagBreachKey, "breach-directory", "", "BreachDirectory API key for email breach lookups")
	rootCmd.Flags().BoolVar(&flagDomains, "domains", false, "Also scan for domains registered under the username")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print each probe outcome as it arrives")
	rootCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	if err := rootCmd.Execute(); err != nil {
		report.Red("[-] " + err.Error()).Println()
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if flagNoColor {
		report.DisableColor()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	screen.Clear()
	screen.MoveTopLeft()
	report.PrintDisclaimer(os.Stdout)

	var caseFile *report.CaseFile
	switch {
	case flagUsername != "":
		caseFile = report.NewCaseFile("username", flagUsername)
		err = investigateUsername(ctx, cfg, caseFile)
	case flagEmail != "":
		caseFile = report.NewCaseFile("email", flagEmail)
		err = investigateEmail(ctx, cfg, caseFile)
	case flagPhone != "":
		caseFile = report.NewCaseFile("phone", flagPhone)
		err = investigatePhone(caseFile)
	case flagImage != "":
		caseFile = report.NewCaseFile("image", flagImage)
		err = investigateImage(caseFile)
	}
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			report.Yellow("\n[!] Interrupted").Println()
			return nil
		}
		return err
	}

	if flagCase != "" {
		path, err := caseFile.Save(cfg.Output.CaseDir, flagCase)
		if err != nil {
			return err
		}
		report.Greenf("\n[✓] Case saved to: %s", path).Println()
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		return config.Load(flagConfig)
	}
	// Without an explicit --config, an absent default file is not an error.
	if _, err := os.Stat(config.DefaultPath); err != nil {
		return config.Default(), nil
	}
	return config.Load(config.DefaultPath)
}

func applyFlagOverrides(cfg *config.Config) {
	if flagTimeout > 0 {
		cfg.Probe.TimeoutSeconds = flagTimeout
	}
	if flagConcurrency > 0 {
		cfg.Probe.Concurrency = flagConcurrency
	}
	if flagOutput != "" {
		cfg.Output.CaseDir = flagOutput
	}
	if flagBreachKey != "" {
		cfg.APIKeys.BreachDirectory = flagBreachKey
	}
}

func investigateUsername(ctx context.Context, cfg *config.Config, caseFile *report.CaseFile) error {
	platforms := username.Registry()
	if cfg.Probe.PlatformsFile != "" {
		loaded, err := username.LoadRegistry(cfg.Probe.PlatformsFile)
		if err != nil {
			return err
		}
		platforms = loaded
	}

	prober := &username.Prober{
		Fetcher: &username.Fetcher{
			Timeout:   time.Duration(cfg.Probe.TimeoutSeconds) * time.Second,
			UserAgent: cfg.Probe.UserAgent,
		},
		Concurrency: cfg.Probe.Concurrency,
	}

	var bar *progressbar.ProgressBar
	if flagVerbose {
		prober.OnOutcome = func(out username.ProbeOutcome) {
			fmt.Println(report.OutcomeLine(out))
		}
	} else {
		bar = progressbar.NewOptions(len(platforms),
			progressbar.OptionSetDescription("Probing platforms"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish(),
		)
		prober.OnOutcome = func(username.ProbeOutcome) {
			bar.Add(1)
		}
	}

	start := time.Now()
	summary, err := prober.ProbeAll(ctx, flagUsername, platforms)
	if err != nil {
		return err
	}
	if bar != nil {
		bar.Finish()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	report.RenderProbeSummary(os.Stdout, summary)
	report.Grayf(":: Total time taken: %s", time.Since(start).Round(time.Millisecond)).Println()
	caseFile.AddFinding("username", summary)

	if flagDomains {
		scanner := username.NewDomainScanner()
		scanner.UserAgent = cfg.Probe.UserAgent
		hits := scanner.Scan(ctx, flagUsername)
		report.RenderDomainHits(os.Stdout, flagUsername, hits)
		caseFile.AddFinding("domains", hits)
	}
	return ctx.Err()
}

func investigateEmail(ctx context.Context, cfg *config.Config, caseFile *report.CaseFile) error {
	analyzer := emailintel.NewAnalyzer()
	analyzer.UserAgent = cfg.Probe.UserAgent
	analyzer.BreachAPIKey = cfg.APIKeys.BreachDirectory

	rep := analyzer.Analyze(ctx, flagEmail)
	report.RenderEmailReport(os.Stdout, rep)
	caseFile.AddFinding("email", rep)
	return ctx.Err()
}

func investigatePhone(caseFile *report.CaseFile) error {
	rep := phoneintel.Analyze(flagPhone)
	report.RenderPhoneReport(os.Stdout, rep)
	caseFile.AddFinding("phone", rep)
	return nil
}

func investigateImage(caseFile *report.CaseFile) error {
	rep, err := imageintel.Analyze(flagImage)
	if err != nil {
		return err
	}
	report.RenderImageReport(os.Stdout, rep)
	caseFile.AddFinding("image", rep)
	return nil
}

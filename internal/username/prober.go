// Package username implements the concurrent username-existence prober: a
// static platform registry, a bounded-timeout fetcher, a fixed-order verdict
// classifier, and a worker-pool orchestrator that fans probes out across
// platforms and collects one outcome per platform.
package username

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"
)

// DefaultConcurrency is the worker-pool width for a probing run.
const DefaultConcurrency = 10

// proberWarnings ship with every summary; presence on a platform never
// implies ownership.
var proberWarnings = []string{
	"Presence does not imply ownership",
	"Accounts may be impersonations",
	"Always verify through official channels",
}

// ProbeTask pairs one platform with the identifier under investigation. Each
// task is consumed exactly once by a worker.
type ProbeTask struct {
	Platform   PlatformSpec
	Identifier string
}

// ProbeOutcome is the immutable result of one probe. Every scheduled platform
// yields exactly one of these, whether the fetch succeeded or not.
type ProbeOutcome struct {
	Platform   string  `json:"platform"`
	URL        string  `json:"url"`
	Verdict    Verdict `json:"status"`
	HTTPStatus int     `json:"http_status,omitempty"`
	ElapsedMS  float64 `json:"response_time_ms"`
	FinalURL   string  `json:"final_url,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// ProbeSummary aggregates a full probing run. It is plain data: order-stable,
// serializable, and free of any console or file concerns.
type ProbeSummary struct {
	Identifier string                  `json:"username"`
	Total      int                     `json:"checks_performed"`
	Counts     map[Verdict]int         `json:"summary"`
	Outcomes   map[string]ProbeOutcome `json:"platforms_checked"`
	Warnings   []string                `json:"warnings"`
}

// Grouped returns the outcomes ordered for presentation: found first, then
// not found, then everything else, alphabetical within each group. Arrival
// order during the run is irrelevant here.
func (s *ProbeSummary) Grouped() []ProbeOutcome {
	rank := map[Verdict]int{
		VerdictFound:           0,
		VerdictNotFound:        1,
		VerdictTimeout:         2,
		VerdictConnectionError: 2,
		VerdictError:           2,
		VerdictUnknown:         2,
	}

	grouped := make([]ProbeOutcome, 0, len(s.Outcomes))
	for _, out := range s.Outcomes {
		grouped = append(grouped, out)
	}
	sort.Slice(grouped, func(i, j int) bool {
		ri, rj := rank[grouped[i].Verdict], rank[grouped[j].Verdict]
		if ri != rj {
			return ri < rj
		}
		return grouped[i].Platform < grouped[j].Platform
	})
	return grouped
}

// Prober fans one fetch+classify task per platform across a bounded worker
// pool and aggregates outcomes as they complete.
type Prober struct {
	Fetcher     *Fetcher
	Concurrency int

	// OnOutcome, when set, receives each outcome as it arrives. It is called
	// from the collector only, never concurrently, and must not block for
	// long; it is informational and cannot alter scheduling or results.
	OnOutcome func(ProbeOutcome)
}

// NewProber returns a Prober with default fetcher and pool width.
func NewProber() *Prober {
	return &Prober{Fetcher: NewFetcher(), Concurrency: DefaultConcurrency}
}

// ProbeAll schedules one task per platform, waits for every outcome, and
// returns the aggregate. Per-platform failures are data, never errors; the
// only error path is a registry defect. All workers are joined before
// ProbeAll returns, so no task outlives the call.
//
// Cancelling ctx stops the run promptly: in-flight requests are aborted and
// still-queued tasks are recorded as error outcomes, preserving the
// one-outcome-per-platform invariant.
func (p *Prober) ProbeAll(ctx context.Context, identifier string, platforms []PlatformSpec) (*ProbeSummary, error) {
	if err := Validate(platforms); err != nil {
		return nil, err
	}

	width := p.Concurrency
	if width <= 0 {
		width = DefaultConcurrency
	}
	fetcher := p.Fetcher
	if fetcher == nil {
		fetcher = NewFetcher()
	}

	tasks := make(chan ProbeTask)
	results := make(chan ProbeOutcome)

	var wg sync.WaitGroup
	wg.Add(width)
	for i := 0; i < width; i++ {
		go func() {
			defer wg.Done()
			for task := range tasks {
				results <- p.runTask(ctx, fetcher, task)
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, spec := range platforms {
			tasks <- ProbeTask{Platform: spec, Identifier: identifier}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	summary := &ProbeSummary{
		Identifier: identifier,
		Total:      len(platforms),
		Counts:     make(map[Verdict]int),
		Outcomes:   make(map[string]ProbeOutcome, len(platforms)),
		Warnings:   proberWarnings,
	}
	for out := range results {
		summary.Outcomes[out.Platform] = out
		summary.Counts[out.Verdict]++
		if p.OnOutcome != nil {
			p.OnOutcome(out)
		}
	}
	return summary, nil
}

// runTask executes one probe end to end. A cancelled context short-circuits
// the fetch but still produces an outcome.
func (p *Prober) runTask(ctx context.Context, fetcher *Fetcher, task ProbeTask) ProbeOutcome {
	probeURL := BuildURL(task.Platform.URLTemplate, task.Identifier)

	if err := ctx.Err(); err != nil {
		return ProbeOutcome{
			Platform: task.Platform.Name,
			URL:      probeURL,
			Verdict:  VerdictError,
			Error:    err.Error(),
		}
	}

	start := time.Now()
	res := fetcher.Fetch(ctx, task.Platform, probeURL)
	elapsed := math.Round(float64(time.Since(start).Microseconds())/10) / 100

	return ProbeOutcome{
		Platform:   task.Platform.Name,
		URL:        probeURL,
		Verdict:    Classify(task.Platform.Name, res),
		HTTPStatus: res.Status,
		ElapsedMS:  elapsed,
		FinalURL:   res.FinalURL,
		Error:      res.Err,
	}
}

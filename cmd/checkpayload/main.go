// Command checkpayload runs a captured model response through the same
// decode, validate, and sanitize stages the service uses, then re-checks the
// sanitized report. It is meant for triaging responses that failed in
// production.
//
// Usage:
//
//	go run ./cmd/checkpayload -payload response.json -location "Jaipur"
//	go run ./cmd/checkpayload -payload - -lat 26.91 -lon 75.79 -print < response.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/couchcryptid/groundwater-forecast-service/internal/domain"
	"github.com/couchcryptid/groundwater-forecast-service/internal/forecast"
)

// phase tracks pass/fail for a check stage.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

type options struct {
	payload  string
	location string
	lat, lon float64
	coords   bool
	print    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.payload, "payload", "", "path to the raw model response, or - for stdin")
	flag.StringVar(&opts.location, "location", "", "location text the request was addressed by")
	flag.Float64Var(&opts.lat, "lat", 0, "latitude the request was addressed by")
	flag.Float64Var(&opts.lon, "lon", 0, "longitude the request was addressed by")
	flag.BoolVar(&opts.print, "print", false, "print the sanitized report as JSON")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "lat" || f.Name == "lon" {
			opts.coords = true
		}
	})

	if opts.payload == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(opts, os.Stdin, os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

func run(opts options, stdin io.Reader, stdout, stderr io.Writer) int {
	text, err := readPayload(opts.payload, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "FATAL: read payload: %v\n", err)
		return 1
	}

	req := domain.LocationRequest(opts.location, domain.Advisory{})
	if opts.coords {
		req = domain.CoordinateRequest(opts.lat, opts.lon, domain.Advisory{})
	}

	fmt.Fprintln(stdout, "=== Forecast Payload Check ===")
	fmt.Fprintln(stdout)

	// ── Run stages ──
	var (
		phases    []*phase
		report    domain.PredictionReport
		candidate domain.RawCandidate
	)
	stage := func(name string, fn func() error) bool {
		p := &phase{name: name}
		if err := fn(); err != nil {
			kind := domain.KindOf(err)
			p.errorf("%s: %v", kind, err)
			p.errorf("user message: %s", forecast.UserMessage(kind))
		}
		phases = append(phases, p)
		return p.passed()
	}

	ok := stage("Decode", func() error {
		candidate, err = domain.DecodeCandidate(text)
		return err
	}) && stage("Validate", func() error {
		return domain.Validate(candidate)
	}) && stage("Sanitize", func() error {
		report, err = domain.Sanitize(candidate, req)
		return err
	})
	if ok {
		phases = append(phases, checkReport(report))
	}

	// ── Report results ──
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(stdout, "  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(stdout, "\n--- %s ---\n", p.name)
		for _, e := range p.errors {
			fmt.Fprintf(stdout, "  %s\n", e)
		}
	}

	if ok {
		fmt.Fprintln(stdout)
		fmt.Fprintf(stdout, "Location: %s\n", report.LocationName)
		fmt.Fprintf(stdout, "Series: %d historical, %d predicted, %d rainfall\n",
			len(report.HistoricalWaterLevels), len(report.PredictedWaterLevels), len(report.RainfallData))
		for _, field := range domain.KeyMetricFields {
			m := metricByField(report.KeyMetrics, field)
			fmt.Fprintf(stdout, "  %-12s %-20s %5.1f\n", domain.KeyMetricDisplayNames[field], m.Value, m.Score)
		}
	}

	if opts.print && ok {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(stderr, "FATAL: encode report: %v\n", err)
			return 1
		}
	}

	if !allPassed {
		return 2
	}
	return 0
}

func readPayload(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

// checkReport re-verifies the report invariants on sanitized output.
func checkReport(r domain.PredictionReport) *phase {
	p := &phase{name: "Report invariants"}

	score := func(name string, v float64) {
		if v < 0 || v > 100 {
			p.errorf("%s = %g outside [0, 100]", name, v)
		}
	}
	score("currentWaterLevelIndex.score", r.CurrentWaterLevelIndex.Score)
	for _, field := range domain.KeyMetricFields {
		score("keyMetrics."+field+".score", metricByField(r.KeyMetrics, field).Score)
	}
	score("report.shortTerm.confidenceScore", r.Report.ShortTerm.ConfidenceScore)
	score("report.longTerm.confidenceScore", r.Report.LongTerm.ConfidenceScore)

	years := func(pts []domain.WaterLevelPoint) []int {
		out := make([]int, len(pts))
		for i, pt := range pts {
			out[i] = pt.Year
		}
		return out
	}
	hist, pred := years(r.HistoricalWaterLevels), years(r.PredictedWaterLevels)
	if !slices.IsSorted(hist) {
		p.errorf("historicalWaterLevels not sorted: %v", hist)
	}
	if !slices.IsSorted(pred) {
		p.errorf("predictedWaterLevels not sorted: %v", pred)
	}
	if len(hist) > 0 && len(pred) > 0 && pred[0] != hist[len(hist)-1]+1 {
		p.errorf("prediction starts in %d, history ends in %d", pred[0], hist[len(hist)-1])
	}
	for _, rf := range r.RainfallData {
		if !slices.Contains(hist, rf.Year) {
			p.errorf("rainfall year %d has no historical entry", rf.Year)
		}
	}
	if r.LocationName == "" {
		p.errorf("locationName is empty")
	}
	return p
}

func metricByField(k domain.KeyMetrics, field string) domain.Metric {
	switch field {
	case domain.FieldAvgAnnualRainfall:
		return k.AvgAnnualRainfall
	case domain.FieldDominantSoilType:
		return k.DominantSoilType
	case domain.FieldPopulationDensity:
		return k.PopulationDensity
	default:
		return k.KeyGeologicalFormation
	}
}

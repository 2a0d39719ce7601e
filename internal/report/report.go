// Package report renders and persists investigation reports.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/handy-recon/internal/domain"
)

// WriteJSON writes report as indented JSON.
func WriteJSON(w io.Writer, report *domain.InvestigationReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// TextOptions controls RenderText.
type TextOptions struct {
	// Color enables ANSI colors. Callers enable it only for terminals.
	Color bool
}

type palette struct {
	reset, bold, green, yellow, red, gray string
}

func newPalette(color bool) palette {
	if !color {
		return palette{}
	}
	return palette{
		reset:  "\033[0m",
		bold:   "\033[1m",
		green:  "\033[32m",
		yellow: "\033[33m",
		red:    "\033[31m",
		gray:   "\033[90m",
	}
}

// RenderText writes a human-readable summary of report.
// Platforms are listed in name order.
func RenderText(w io.Writer, report *domain.InvestigationReport, opts TextOptions) error {
	p := newPalette(opts.Color)
	sep := strings.Repeat("─", 60)

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s%s\n", p.gray, sep, p.reset)
	fmt.Fprintf(&b, "%sInvestigation:%s %s\n", p.bold, p.reset, report.Username)
	fmt.Fprintf(&b, "Operation ID:  %s\n", report.OperationID)
	fmt.Fprintf(&b, "Duration:      %.2fs\n", report.TotalDuration)
	fmt.Fprintf(&b, "Pattern:       %s (%.0f%% confidence)\n",
		report.Pattern.PatternType, report.Pattern.Confidence*100)
	fmt.Fprintf(&b, "%s%s%s\n", p.gray, sep, p.reset)

	fmt.Fprintf(&b, "%sPlatforms%s (%d checked)\n", p.bold, p.reset, report.Scan.TotalChecked)
	names := make([]string, 0, len(report.Scan.Outcomes))
	for name := range report.Scan.Outcomes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		o := report.Scan.Outcomes[name]
		switch o.Status {
		case domain.ProbeFound:
			fmt.Fprintf(&b, "  %s✓%s %-12s %s\n", p.green, p.reset, name, o.URL)
		case domain.ProbeNotFound:
			fmt.Fprintf(&b, "  %s✗%s %-12s not found\n", p.gray, p.reset, name)
		default:
			fmt.Fprintf(&b, "  %s!%s %-12s %s\n", p.yellow, p.reset, name, o.Error)
		}
	}

	intel := report.Intelligence
	fmt.Fprintf(&b, "%sIntelligence%s\n", p.bold, p.reset)
	fmt.Fprintf(&b, "  Breaches:    %d\n", intel.Breach.BreachesFound)
	for _, br := range intel.Breach.BreachDetails {
		fmt.Fprintf(&b, "    - %s (%s): %s\n", br.Name, br.Date, br.CompromisedFields)
	}
	fmt.Fprintf(&b, "  Activity:    %s, %d months, influence %.1f\n",
		intel.Social.ActivityLevel, intel.Social.AccountAgeMonths, intel.Social.InfluenceScore)
	fmt.Fprintf(&b, "  Reputation:  %.2f\n", intel.ReputationScore)

	risk := report.Risk
	fmt.Fprintf(&b, "%sRisk%s %s%s%s (score %.2f, %.0f%% confidence)\n",
		p.bold, p.reset, levelColor(p, risk.Level), strings.ToUpper(string(risk.Level)), p.reset,
		risk.Score, risk.Confidence*100)
	if len(risk.Factors) > 0 {
		fmt.Fprintf(&b, "  Factors: %s\n", strings.Join(risk.Factors, ", "))
	}
	for _, rec := range risk.Recommendations {
		fmt.Fprintf(&b, "  • %s\n", rec)
	}
	fmt.Fprintf(&b, "%s%s%s\n", p.gray, sep, p.reset)

	_, err := io.WriteString(w, b.String())
	return err
}

func levelColor(p palette, level domain.RiskLevel) string {
	switch level {
	case domain.RiskHigh:
		return p.red
	case domain.RiskMedium:
		return p.yellow
	default:
		return p.green
	}
}

// FileName returns the file name Save uses for report.
func FileName(report *domain.InvestigationReport) string {
	return fmt.Sprintf("%s_%s.json", report.Username, report.OperationID)
}

// Save writes report as JSON into dir, creating dir if needed.
// It returns the path of the written file.
func Save(dir string, report *domain.InvestigationReport) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}

	path := filepath.Join(dir, FileName(report))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}

	if err := WriteJSON(f, report); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report file: %w", err)
	}
	return path, nil
}

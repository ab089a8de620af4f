package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/analysis"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/api"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/history"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	detailLabelWidth = 14
	detailIndent     = "  "
)

// renderResultBlock prints one verdict, service-produced or locally
// estimated, with the candidate parameter echo underneath.
func renderResultBlock(out io.Writer, result *analysis.Result) {
	if result == nil {
		return
	}
	colorize := shouldColorize(out)

	for _, line := range renderSectionHeader("Verdict for "+result.ObjectID, colorize) {
		fmt.Fprintln(out, line)
	}

	probability := fmt.Sprintf("%.3f (%.1f%%)", result.Probability, result.Percent)
	if colorize {
		probability = probabilityColor(result.Probability) + probability + ansiReset
	}
	fmt.Fprintln(out, detailLine("Probability", probability))
	fmt.Fprintln(out, detailLine("Source", sourceLabel(string(result.Source))))
	fmt.Fprintln(out, detailLine("Summary", result.Summary))
	if result.Timestamp != "" {
		fmt.Fprintln(out, detailLine("Reported at", result.Timestamp))
	}
	if len(result.DataComments) > 0 {
		fmt.Fprintf(out, "%sCandidate parameters:\n", detailIndent)
		for _, comment := range result.DataComments {
			fmt.Fprintf(out, "%s%s%s\n", detailIndent, detailIndent, comment)
		}
	}
}

// renderSubmission prints one history entry with its stored verdict, if any.
func renderSubmission(out io.Writer, sub api.Submission) {
	colorize := shouldColorize(out)

	for _, line := range renderSectionHeader("Submission "+sub.ObjectID, colorize) {
		fmt.Fprintln(out, line)
	}

	status := titleStatus(sub.Status)
	if colorize {
		if color := statusColor(sub.Status); color != "" {
			status = color + status + ansiReset
		}
	}
	fmt.Fprintln(out, detailLine("Status", status))
	if sub.CreatedAt != "" {
		fmt.Fprintln(out, detailLine("Created", sub.CreatedAt))
	}
	if sub.UpdatedAt != "" {
		fmt.Fprintln(out, detailLine("Updated", sub.UpdatedAt))
	}
	if sub.CompletedAt != "" {
		fmt.Fprintln(out, detailLine("Completed", sub.CompletedAt))
	}
	if sub.ErrorMessage != "" {
		fmt.Fprintln(out, detailLine("Error", sub.ErrorMessage))
	}

	if sub.Result != nil {
		fmt.Fprintln(out)
		renderResultBlock(out, &analysis.Result{
			ObjectID:     sub.Result.ObjectID,
			Probability:  sub.Result.Probability,
			Percent:      sub.Result.Percent,
			Summary:      sub.Result.Summary,
			DataComments: sub.Result.DataComments,
			Timestamp:    sub.Result.Timestamp,
			Source:       analysis.Source(sub.Result.Source),
		})
	}
}

func detailLine(label, value string) string {
	return fmt.Sprintf("%s%-*s %s", detailIndent, detailLabelWidth, label+":", value)
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

// titleStatus turns a stored status into a display label, for example
// "timed_out" becomes "Timed Out".
func titleStatus(status string) string {
	spaced := strings.ReplaceAll(strings.TrimSpace(status), "_", " ")
	return cases.Title(language.Und).String(spaced)
}

func sourceLabel(source string) string {
	switch source {
	case string(analysis.SourceService):
		return "Analysis service"
	case string(analysis.SourceEstimate):
		return "Local estimate"
	default:
		return source
	}
}

func statusColor(status string) string {
	switch history.Status(status) {
	case history.StatusCompleted:
		return ansiGreen
	case history.StatusEstimated:
		return ansiBlue
	case history.StatusSubmitted:
		return ansiYellow
	case history.StatusCanceled:
		return ansiYellow
	case history.StatusTimedOut, history.StatusFailed:
		return ansiRed
	default:
		return ""
	}
}

func probabilityColor(probability float64) string {
	switch {
	case probability >= 0.8:
		return ansiGreen
	case probability >= 0.5:
		return ansiYellow
	default:
		return ansiRed
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

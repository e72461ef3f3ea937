package main

import (
	"fmt"
	"io"
	"strconv"

	"albumcheck/internal/matching"
	"albumcheck/internal/reconcile"
)

// consoleReporter prints one block per listing line in the order resolved.
// Exact lines are silent unless showExact is set or the catalog write failed.
type consoleReporter struct {
	out       io.Writer
	colorize  bool
	showExact bool
}

func (r *consoleReporter) Line(display string, outcome matching.Outcome, writeErr error) {
	switch outcome.Kind {
	case matching.KindExact:
		if writeErr != nil {
			fmt.Fprintln(r.out, paint(fmt.Sprintf("%s ✓ (catalog update failed: %v)", display, writeErr), ansiRed, r.colorize))
			return
		}
		if r.showExact {
			fmt.Fprintln(r.out, paint(display+" ✓", ansiGreen, r.colorize))
		}
	case matching.KindCandidates:
		fmt.Fprintln(r.out, paint(display, ansiYellow, r.colorize))
		for _, c := range outcome.Candidates {
			fmt.Fprintf(r.out, " → DB: %s - %s (%s)\n", c.Artist, c.Album, c.Reason)
		}
	default:
		fmt.Fprintln(r.out, paint(display+" ✗", ansiRed, r.colorize))
	}
}

func (r *consoleReporter) Summary(tally reconcile.Tally) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Done.")
	counts := newTable(leftColumn("Outcome"), rightColumn("Count"))
	counts.row(paint("Exact Matches", ansiGreen, r.colorize), strconv.Itoa(tally.Exact))
	counts.row(paint("Fuzzy Matches", ansiYellow, r.colorize), strconv.Itoa(tally.Fuzzy))
	counts.row(paint("No Matches", ansiRed, r.colorize), strconv.Itoa(tally.None))
	if tally.WriteFailures > 0 {
		counts.row(paint("Write Failures", ansiRed, r.colorize), strconv.Itoa(tally.WriteFailures))
	}
	fmt.Fprintln(r.out, counts.render())
}

type jsonCandidate struct {
	Artist  string `json:"artist"`
	Album   string `json:"album"`
	GroupID string `json:"group_id"`
	Reason  string `json:"reason"`
}

type jsonLine struct {
	Line       string          `json:"line"`
	Outcome    string          `json:"outcome"`
	GroupIDs   []string        `json:"group_ids,omitempty"`
	Candidates []jsonCandidate `json:"candidates,omitempty"`
	WriteError string          `json:"write_error,omitempty"`
}

type jsonReport struct {
	RunID  string          `json:"run_id"`
	DryRun bool            `json:"dry_run"`
	Lines  []jsonLine      `json:"lines"`
	Tally  reconcile.Tally `json:"tally"`
}

// jsonReporter buffers the run; the command encodes it once the run id is known.
type jsonReporter struct {
	report jsonReport
}

func (r *jsonReporter) Line(display string, outcome matching.Outcome, writeErr error) {
	line := jsonLine{
		Line:     display,
		Outcome:  outcome.Kind.String(),
		GroupIDs: outcome.GroupIDs,
	}
	for _, c := range outcome.Candidates {
		line.Candidates = append(line.Candidates, jsonCandidate(c))
	}
	if writeErr != nil {
		line.WriteError = writeErr.Error()
	}
	r.report.Lines = append(r.report.Lines, line)
}

func (r *jsonReporter) Summary(tally reconcile.Tally) {
	r.report.Tally = tally
}

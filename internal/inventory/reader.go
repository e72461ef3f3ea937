package inventory

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"albumcheck/internal/services"
	"albumcheck/internal/textutil"
)

const (
	// DefaultTimeout bounds the stabilization wait.
	DefaultTimeout = 10 * time.Second
	// DefaultPollInterval is the delay between size checks.
	DefaultPollInterval = 100 * time.Millisecond
)

// Pair is one observed folder: the text before and after the first '/'.
type Pair struct {
	Artist string
	Album  string
}

// Display renders the pair the way it appears in the listing.
func (p Pair) Display() string {
	return p.Artist + "/" + p.Album
}

// Reader waits for the listing at Path to stabilize and parses it.
type Reader struct {
	Path         string
	Timeout      time.Duration
	PollInterval time.Duration

	stat func(string) (fs.FileInfo, error)
}

// Read blocks until the listing exists with a non-zero size that did not
// change between two consecutive polls, then returns its pairs. When the file
// never stabilizes within Timeout the error wraps
// services.ErrInventoryNotReady. Cancelling ctx aborts the wait.
func (r Reader) Read(ctx context.Context) ([]Pair, error) {
	if err := r.waitStable(ctx); err != nil {
		return nil, err
	}
	return Load(r.Path)
}

func (r Reader) waitStable(ctx context.Context) error {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	interval := r.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	stat := r.stat
	if stat == nil {
		stat = os.Stat
	}

	attempts := int(timeout / interval)
	if attempts < 1 {
		attempts = 1
	}

	lastSize := int64(-1)
	for attempt := 0; attempt < attempts; attempt++ {
		if info, err := stat(r.Path); err == nil && !info.IsDir() {
			size := info.Size()
			if size > 0 && size == lastSize {
				return nil
			}
			lastSize = size
		}
		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return services.Wrap(
		services.ErrInventoryNotReady,
		"inventory",
		"wait",
		fmt.Sprintf("%s did not stabilize within %s", r.Path, timeout),
		nil,
	)
}

// Load parses the listing at path without waiting.
func Load(path string) ([]Pair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrInventoryNotReady, "inventory", "read", fmt.Sprintf("%s does not exist", path), nil)
		}
		return nil, fmt.Errorf("read listing: %w", err)
	}
	return Parse(string(data)), nil
}

// Parse extracts pairs from listing text. Lines without '/' are dropped, the
// rest are trimmed and stably sorted by their case-folded text before being
// split on the first '/'.
func Parse(content string) []Pair {
	content = strings.TrimPrefix(content, "\ufeff")

	type entry struct {
		line   string
		folded string
	}
	var entries []entry
	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, "/") {
			continue
		}
		line = strings.TrimSpace(line)
		entries = append(entries, entry{line: line, folded: textutil.Fold(line)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].folded < entries[j].folded
	})

	pairs := make([]Pair, 0, len(entries))
	for _, e := range entries {
		pair, _ := ParseLine(e.line)
		pairs = append(pairs, pair)
	}
	return pairs
}

// ParseLine splits a single "artist/album" line. It reports false when the
// line has no '/'.
func ParseLine(line string) (Pair, bool) {
	artist, album, found := strings.Cut(strings.TrimSpace(line), "/")
	if !found {
		return Pair{}, false
	}
	return Pair{Artist: strings.TrimSpace(artist), Album: strings.TrimSpace(album)}, true
}

package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dpgen-labs/dpgen/internal/catalog"
	"github.com/dpgen-labs/dpgen/internal/vars"
)

// DefaultTimeout bounds one remote source's listing and downloads.
const DefaultTimeout = 30 * time.Second

// ErrDownloadTimeout is returned when a fetch does not finish in time.
var ErrDownloadTimeout = errors.New("download timed out")

// ProgressFunc receives the number of entries fetched so far and the total.
type ProgressFunc func(done, total int)

// Fetcher turns remote sources into file records.
type Fetcher struct {
	lister  Lister
	timeout time.Duration
}

// NewFetcher creates a Fetcher. A non-positive timeout disables the timer.
func NewFetcher(lister Lister, timeout time.Duration) *Fetcher {
	return &Fetcher{lister: lister, timeout: timeout}
}

type fetchResult struct {
	records []catalog.Record
	err     error
}

// Fetch resolves src.Ref against c, lists src.Path and downloads every entry.
// Each entry becomes a file record at src.TargetFor(entry) holding the entry
// content as lines. If the timer fires first, ErrDownloadTimeout is returned
// and the in-flight work is left to finish on its own; its progress is no
// longer reported.
func (f *Fetcher) Fetch(ctx context.Context, src catalog.RemoteSource, c *vars.Container, onProgress ProgressFunc) ([]catalog.Record, error) {
	loc := Location{
		Owner: src.Owner,
		Repo:  src.Repo,
		Ref:   vars.Resolve(src.Ref, c),
		Path:  src.Path,
	}

	var (
		mu        sync.Mutex
		abandoned bool
	)
	report := func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		if !abandoned && onProgress != nil {
			onProgress(done, total)
		}
	}

	ch := make(chan fetchResult, 1)
	go func() {
		records, err := f.fetch(ctx, src, loc, report)
		ch <- fetchResult{records: records, err: err}
	}()

	var timer <-chan time.Time
	if f.timeout > 0 {
		t := time.NewTimer(f.timeout)
		defer t.Stop()
		timer = t.C
	}

	abandon := func() {
		mu.Lock()
		abandoned = true
		mu.Unlock()
	}

	select {
	case res := <-ch:
		return res.records, res.err
	case <-timer:
		abandon()
		return nil, fmt.Errorf("fetching %s: %w", loc, ErrDownloadTimeout)
	case <-ctx.Done():
		abandon()
		return nil, ctx.Err()
	}
}

func (f *Fetcher) fetch(ctx context.Context, src catalog.RemoteSource, loc Location, report ProgressFunc) ([]catalog.Record, error) {
	items, err := f.lister.List(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", loc, err)
	}

	records := make([]catalog.Record, 0, len(items))
	for i, item := range items {
		data, err := f.lister.Download(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("downloading %s: %w", item.Path, err)
		}
		entry := catalog.RemoteEntry{Path: item.Path, Name: item.Name, Content: data}
		records = append(records, catalog.File(src.TargetFor(entry), catalog.Lines(SplitLines(data)...)))
		report(i+1, len(items))
	}
	return records, nil
}

// SplitLines splits data on LF or CRLF. A single trailing line terminator
// does not produce an empty last line.
func SplitLines(data []byte) []string {
	s := strings.ReplaceAll(string(data), "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

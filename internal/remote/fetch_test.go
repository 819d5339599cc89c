package remote

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dpgen-labs/dpgen/internal/catalog"
	"github.com/dpgen-labs/dpgen/internal/vars"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	items   []Item
	content map[string]string
	listErr error
	block   chan struct{}

	mu     sync.Mutex
	listed []Location
}

func (f *fakeLister) List(ctx context.Context, loc Location) ([]Item, error) {
	f.mu.Lock()
	f.listed = append(f.listed, loc)
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	return f.items, f.listErr
}

func (f *fakeLister) Download(ctx context.Context, item Item) ([]byte, error) {
	c, ok := f.content[item.Path]
	if !ok {
		return nil, &FetchError{URL: item.Path, Err: ErrNotFound}
	}
	return []byte(c), nil
}

func vanillaSource() catalog.RemoteSource {
	return catalog.RemoteSource{Owner: "misode", Repo: "mcmeta", Ref: "%version%-data", Path: "data/minecraft/tags/block"}
}

func TestFetch(t *testing.T) {
	lister := &fakeLister{
		items: []Item{
			{Path: "data/minecraft/tags/block/logs.json", Name: "logs.json"},
			{Path: "data/minecraft/tags/block/leaves.json", Name: "leaves.json"},
		},
		content: map[string]string{
			"data/minecraft/tags/block/logs.json":   "{\r\n  \"values\": []\r\n}\r\n",
			"data/minecraft/tags/block/leaves.json": "{}",
		},
	}
	c := vars.Empty().With(vars.Version, "1.21")

	var progress [][2]int
	records, err := NewFetcher(lister, time.Second).Fetch(context.Background(), vanillaSource(), c, func(done, total int) {
		progress = append(progress, [2]int{done, total})
	})
	require.NoError(t, err)

	require.Len(t, lister.listed, 1)
	assert.Equal(t, "1.21-data", lister.listed[0].Ref)

	require.Len(t, records, 2)
	assert.Equal(t, catalog.KindFile, records[0].Kind)
	assert.Equal(t, "data/minecraft/tags/block/logs.json", records[0].Rel)
	assert.Equal(t, []string{"{", "  \"values\": []", "}"}, records[0].Content.Lines)
	assert.Equal(t, []string{"{}"}, records[1].Content.Lines)

	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, progress)
}

func TestFetchUsesTarget(t *testing.T) {
	lister := &fakeLister{
		items:   []Item{{Path: "data/minecraft/recipe/stick.json", Name: "stick.json"}},
		content: map[string]string{"data/minecraft/recipe/stick.json": "{}"},
	}
	src := vanillaSource()
	src.Target = func(e catalog.RemoteEntry) string { return "data/%namespace%/recipe/" + e.Name }

	records, err := NewFetcher(lister, 0).Fetch(context.Background(), src, vars.Empty(), nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "data/%namespace%/recipe/stick.json", records[0].Rel)
}

func TestFetchTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	lister := &fakeLister{block: block}

	called := false
	_, err := NewFetcher(lister, 10*time.Millisecond).Fetch(context.Background(), vanillaSource(), vars.Empty(), func(int, int) {
		called = true
	})
	assert.ErrorIs(t, err, ErrDownloadTimeout)
	assert.False(t, called)
}

func TestFetchContextCancelled(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	lister := &fakeLister{block: block}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher(lister, time.Minute).Fetch(ctx, vanillaSource(), vars.Empty(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchErrors(t *testing.T) {
	listErr := &FetchError{URL: "u", Status: 403, Err: ErrRateLimited}
	_, err := NewFetcher(&fakeLister{listErr: listErr}, time.Second).Fetch(context.Background(), vanillaSource(), vars.Empty(), nil)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.False(t, errors.Is(err, ErrDownloadTimeout))

	lister := &fakeLister{items: []Item{{Path: "gone.json"}}}
	_, err = NewFetcher(lister, time.Second).Fetch(context.Background(), vanillaSource(), vars.Empty(), nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\r\nb\r\n", []string{"a", "b"}},
		{"a\n\nb", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitLines([]byte(tt.in)), "input %q", tt.in)
	}
}

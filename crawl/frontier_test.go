package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/askdocs/askdocs"
	"github.com/askdocs/askdocs/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFrontier_PushPop(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	assert.True(t, f.Push(askdocs.Link{URL: "https://docs.example.com/a", Depth: 0}))
	assert.True(t, f.Push(askdocs.Link{URL: "https://docs.example.com/b", Depth: 1}))
	assert.Equal(t, 2, f.Len())

	link, ok := f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://docs.example.com/a", link.URL)

	link, ok = f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://docs.example.com/b", link.URL)

	_, ok = f.Pop()
	assert.False(t, ok)
}

func TestFrontier_FIFOOrder(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	for i := range 10 {
		f.Push(askdocs.Link{URL: fmt.Sprintf("https://docs.example.com/page/%d", i), Depth: i})
	}

	for i := range 10 {
		link, ok := f.Pop()
		assert.True(t, ok)
		assert.Equal(t, fmt.Sprintf("https://docs.example.com/page/%d", i), link.URL)
	}
}

func TestFrontier_Dedup(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	assert.True(t, f.Push(askdocs.Link{URL: "https://docs.example.com/a"}))
	assert.False(t, f.Push(askdocs.Link{URL: "https://docs.example.com/a"}))
	assert.Equal(t, 1, f.Len())
}

func TestFrontier_Seen(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	assert.False(t, f.Seen("https://docs.example.com/a"))
	f.Push(askdocs.Link{URL: "https://docs.example.com/a"})
	assert.True(t, f.Seen("https://docs.example.com/a"))

	// Popping does not forget the URL.
	f.Pop()
	assert.True(t, f.Seen("https://docs.example.com/a"))
}

func TestFrontier_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(10000, 0.01)

	var wg sync.WaitGroup
	for g := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				f.Push(askdocs.Link{URL: fmt.Sprintf("https://docs.example.com/%d/%d", g, i)})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000, f.Len())
}

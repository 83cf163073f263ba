package bloom_test

import (
	"fmt"
	"testing"

	"github.com/askdocs/askdocs/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://docs.example.com/guide/intro"))

	f.Add("https://docs.example.com/guide/intro")

	assert.True(t, f.Test("https://docs.example.com/guide/intro"))
	assert.False(t, f.Test("https://docs.example.com/guide/setup"))
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	url := "https://docs.example.com/guide/intro"

	f.Add(url)
	countAfterFirst := f.EstimatedCount()

	f.Add(url)
	f.Add(url)

	assert.Equal(t, countAfterFirst, f.EstimatedCount())
	assert.True(t, f.Test(url))
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Add(fmt.Sprintf("https://docs.example.com/added/%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("https://docs.example.com/notadded/%d", i)) {
			falsePositives++
		}
	}

	// Allow generous headroom over the configured 1% rate.
	observed := float64(falsePositives) / float64(testProbes)
	assert.Less(t, observed, fpRate*3, "false positive rate too high: %f", observed)
}

package goquery_test

import (
	"testing"

	"github.com/askdocs/askdocs/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Links(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative links in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/guide/intro">Intro</a>
			<a href="setup">Setup</a>
			<a href="https://docs.example.com/guide/api">API</a>
		</body></html>`

		p := goquery.NewParser()
		links, err := p.Links(html, "https://docs.example.com/guide/")
		require.NoError(t, err)

		assert.Equal(t, []string{
			"https://docs.example.com/guide/intro",
			"https://docs.example.com/guide/setup",
			"https://docs.example.com/guide/api",
		}, links)
	})

	t.Run("filters external hosts", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/local">Local</a>
			<a href="https://github.com/example/repo">GitHub</a>
			<a href="https://other.example.com/page">Other</a>
		</body></html>`

		p := goquery.NewParser()
		links, err := p.Links(html, "https://docs.example.com/")
		require.NoError(t, err)

		assert.Equal(t, []string{"https://docs.example.com/local"}, links)
	})

	t.Run("skips non-http and fragment-only hrefs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="javascript:void(0)">JS</a>
			<a href="mailto:team@example.com">Mail</a>
			<a href="tel:+1234567890">Call</a>
			<a href="#section">Anchor</a>
			<a href="/real">Real</a>
		</body></html>`

		p := goquery.NewParser()
		links, err := p.Links(html, "https://docs.example.com/")
		require.NoError(t, err)

		assert.Equal(t, []string{"https://docs.example.com/real"}, links)
	})

	t.Run("deduplicates keeping first occurrence", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/a">First</a>
			<a href="/b">Second</a>
			<a href="/a">Again</a>
		</body></html>`

		p := goquery.NewParser()
		links, err := p.Links(html, "https://docs.example.com/")
		require.NoError(t, err)

		assert.Equal(t, []string{
			"https://docs.example.com/a",
			"https://docs.example.com/b",
		}, links)
	})

	t.Run("no anchors yields empty result", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewParser()
		links, err := p.Links("<html><body><p>text</p></body></html>", "https://docs.example.com/")
		require.NoError(t, err)
		assert.Empty(t, links)
	})
}

func TestParser_Title(t *testing.T) {
	t.Parallel()

	p := goquery.NewParser()

	title, err := p.Title("<html><head><title> Getting Started </title></head><body></body></html>")
	require.NoError(t, err)
	assert.Equal(t, "Getting Started", title)

	title, err = p.Title("<html><body><p>no title</p></body></html>")
	require.NoError(t, err)
	assert.Equal(t, "", title)
}

package askdocs

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// Chunk is a bounded contiguous slice of a document's text, the unit of
// embedding and retrieval.
type Chunk struct {
	// ID is deterministic: a stable hash of (DocumentURL, Index).
	// Re-splitting unchanged content yields identical IDs, which is
	// what makes re-ingestion idempotent.
	ID string

	// DocumentURL is the normalized URL of the source document.
	DocumentURL string

	// Index is the 0-based, contiguous position of the chunk within
	// its document.
	Index int

	// Text is the chunk content, a verbatim slice of the document text.
	Text string

	// Start and End are the byte offsets of Text within the document,
	// with Start < End. Consecutive chunks of the same document overlap:
	// chunk i+1 starts before chunk i ends whenever overlap > 0.
	Start int
	End   int
}

// ChunkID returns the deterministic identifier for the chunk of url at
// the given sequence index. It is a pure function: identical inputs
// always yield identical IDs across runs.
func ChunkID(url string, index int) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(fmt.Sprintf("%s#%d", url, index)))
}

// boundaryLookback is how far back from the target cut position the
// splitter searches for a natural break before falling back to a hard
// cut.
const boundaryLookback = 200

// boundarySeparators are tried in order; the first one found within the
// lookback window wins. Paragraph breaks are preferred over sentence
// ends, sentence ends over clause punctuation.
var boundarySeparators = []string{"\n\n", "\n", ". ", "! ", "? ", "; ", ": "}

// Splitter produces overlapping fixed-size chunks from documents.
type Splitter struct {
	size    int
	overlap int
}

// NewSplitter returns a Splitter for the given chunk size and overlap,
// both in bytes of UTF-8 text. The configuration is validated once
// here; an overlap that is not strictly smaller than the size can make
// no forward progress and is rejected.
func NewSplitter(size, overlap int) (*Splitter, error) {
	if size <= 0 {
		return nil, Errorf(EINVALID, "chunk size must be positive, got %d", size)
	}
	if overlap < 0 {
		return nil, Errorf(EINVALID, "chunk overlap cannot be negative, got %d", overlap)
	}
	if overlap >= size {
		return nil, Errorf(EINVALID, "chunk overlap (%d) must be smaller than chunk size (%d)", overlap, size)
	}
	return &Splitter{size: size, overlap: overlap}, nil
}

// Size returns the configured chunk size.
func (s *Splitter) Size() int { return s.size }

// Overlap returns the configured chunk overlap.
func (s *Splitter) Overlap() int { return s.overlap }

// Split divides the document text into an ordered sequence of chunks
// covering the full text. Each chunk except the last is at most size
// bytes, cut preferably at a whitespace or sentence boundary within the
// lookback window; chunk i+1 begins overlap bytes before chunk i ends,
// shifted forward if that position falls inside a multi-byte rune.
// The final chunk may be shorter than size and is never dropped.
//
// Chunk texts are verbatim slices: concatenating the first chunk with
// every subsequent chunk minus its leading overlap reconstructs the
// document text exactly.
func (s *Splitter) Split(doc *Document) []Chunk {
	text := doc.Text
	if text == "" {
		return nil
	}

	var chunks []Chunk
	start := 0
	for index := 0; ; index++ {
		end := start + s.size
		if end >= len(text) {
			end = len(text)
		} else {
			end = s.cut(text, start, end)
		}

		chunks = append(chunks, Chunk{
			ID:          ChunkID(doc.URL, index),
			DocumentURL: doc.URL,
			Index:       index,
			Text:        text[start:end],
			Start:       start,
			End:         end,
		})

		if end == len(text) {
			break
		}
		start = end - s.overlap
		for start < end && !utf8.RuneStart(text[start]) {
			start++
		}
	}
	return chunks
}

// cut picks the actual end position for a chunk starting at start with
// target end position end. It searches the lookback window for a
// natural boundary; if none is found it hard-cuts at the target,
// backing up to a rune boundary so multi-byte characters are never
// split. The returned position always exceeds start+overlap so the
// next chunk makes forward progress.
func (s *Splitter) cut(text string, start, end int) int {
	lo := end - boundaryLookback
	if min := start + s.overlap + 1; lo < min {
		lo = min
	}
	if lo >= end {
		return end
	}

	window := text[lo:end]
	for _, sep := range boundarySeparators {
		if pos := strings.LastIndex(window, sep); pos != -1 {
			return lo + pos + len(sep)
		}
	}
	if pos := strings.LastIndex(window, " "); pos != -1 {
		return lo + pos + 1
	}

	// Hard cut: back up to a rune boundary.
	for end > lo && !utf8.RuneStart(text[end]) {
		end--
	}
	return end
}

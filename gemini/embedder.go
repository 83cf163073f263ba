// Package gemini implements embedding and answer generation using the
// Google Gemini API.
package gemini

import (
	"context"

	"github.com/askdocs/askdocs"
	"google.golang.org/genai"
)

// DefaultEmbedModel is the embedding model used when none is configured.
const DefaultEmbedModel = "text-embedding-004"

// DefaultEmbedDimension is the vector size produced by DefaultEmbedModel.
const DefaultEmbedDimension = 768

// Ensure Embedder implements askdocs.Embedder at compile time.
var _ askdocs.Embedder = (*Embedder)(nil)

// Embedder produces document and query embeddings via the Gemini
// embedding API.
type Embedder struct {
	client    *genai.Client
	model     string
	dimension int
}

// NewEmbedder creates a new Embedder. Empty model or non-positive
// dimension fall back to the defaults.
func NewEmbedder(client *genai.Client, model string, dimension int) *Embedder {
	if model == "" {
		model = DefaultEmbedModel
	}
	if dimension <= 0 {
		dimension = DefaultEmbedDimension
	}
	return &Embedder{client: client, model: model, dimension: dimension}
}

// Embed returns one embedding vector per input text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = &genai.Content{
			Parts: []*genai.Part{{Text: text}},
		}
	}

	dim := int32(e.dimension)
	res, err := e.client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
		TaskType:             "RETRIEVAL_DOCUMENT",
		OutputDimensionality: &dim,
	})
	if err != nil {
		return nil, askdocs.Errorf(askdocs.EUNAVAILABLE, "embedding request failed: %v", err)
	}
	if res == nil || len(res.Embeddings) != len(texts) {
		return nil, askdocs.Errorf(askdocs.EINTERNAL, "embedding service returned %d embeddings for %d texts", embeddingCount(res), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for i, emb := range res.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, askdocs.Errorf(askdocs.EINTERNAL, "empty embedding at index %d", i)
		}
		vectors[i] = emb.Values
	}
	return vectors, nil
}

// Dimension returns the size of the vectors Embed produces.
func (e *Embedder) Dimension() int {
	return e.dimension
}

func embeddingCount(res *genai.EmbedContentResponse) int {
	if res == nil {
		return 0
	}
	return len(res.Embeddings)
}

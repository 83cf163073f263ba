package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/askdocs/askdocs"
)

// systemPrompt constrains the model to the retrieved context. The
// citation instruction matters: answers without sources are useless
// for documentation lookups.
const systemPrompt = `You are a helpful assistant that answers questions based ONLY on the provided context from documentation pages.
If the context does not contain the information needed to answer the question, say so explicitly.
Always cite the sources you used in your answer.`

// highQualityScore is the similarity above which a match counts as a
// strong grounding signal when scoring confidence.
const highQualityScore = float32(0.7)

// Generator turns retrieved chunks into a grounded answer.
type Generator struct {
	LLM askdocs.LLM
}

// Generate produces an answer from the retrieval result. When nothing
// relevant was retrieved it returns the no-answer response without
// consulting the model at all.
func (g *Generator) Generate(ctx context.Context, query string, retrieved *Retrieved) (*askdocs.Answer, error) {
	if len(retrieved.Matches) == 0 {
		return &askdocs.Answer{
			Text:       askdocs.NoAnswerText,
			Sources:    []askdocs.Source{},
			Confidence: 0,
		}, nil
	}

	user := fmt.Sprintf("Question: %s\n\nContext:\n%s\n\nAnswer:", query, retrieved.Context)
	text, err := g.LLM.Complete(ctx, systemPrompt, user)
	if err != nil {
		return nil, askdocs.Errorf(askdocs.EUNAVAILABLE, "generating answer: %v", askdocs.ErrorMessage(err))
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, askdocs.Errorf(askdocs.EINTERNAL, "model returned an empty answer")
	}

	return &askdocs.Answer{
		Text:       text,
		Sources:    retrieved.Sources,
		Confidence: confidence(retrieved.Matches),
	}, nil
}

// confidence blends the average similarity of the matches with the
// share of matches above the high quality threshold. Average score
// alone over-rewards a single lucky hit; the ratio term rewards broad
// agreement across chunks.
func confidence(matches []askdocs.Match) float64 {
	if len(matches) == 0 {
		return 0
	}
	var sum float64
	var high int
	for _, m := range matches {
		sum += float64(m.Score)
		if m.Score >= highQualityScore {
			high++
		}
	}
	avg := sum / float64(len(matches))
	ratio := float64(high) / float64(len(matches))
	c := avg*0.6 + ratio*0.4
	if c > 1 {
		c = 1
	}
	return c
}

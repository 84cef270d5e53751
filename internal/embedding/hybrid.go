// Package embedding pairs the dense provider with the lexical sparse
// encoder into one hybrid representation per text.
package embedding

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_dense_embedder.go -package=mocks klinik-ai/internal/embedding DenseEmbedder

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"klinik-ai/internal/sparse"
)

// maxChars caps the text sent to the dense provider.
const maxChars = 8000

// truncationMarker is appended when the text is cut.
const truncationMarker = "..."

// DenseEmbedder is the dense embedding provider contract.
// llm.EmbeddingsClient satisfies it.
type DenseEmbedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Hybrid pairs a dense and a sparse vector for the same text.
type Hybrid struct {
	Dense  []float32
	Sparse sparse.Vector
}

// Builder produces hybrid embeddings validated against the vector store's
// declared collection dimension.
type Builder struct {
	dense   DenseEmbedder
	encoder *sparse.Encoder
	dim     int
}

// NewBuilder creates a Builder. dim is the dense dimension the target
// collections were created with.
func NewBuilder(dense DenseEmbedder, encoder *sparse.Encoder, dim int) *Builder {
	return &Builder{dense: dense, encoder: encoder, dim: dim}
}

// Build normalizes and truncates text, requests the dense vector and pairs
// it with the sparse encoding. Provider failures propagate; callers may fall
// back to a sparse-only search.
func (b *Builder) Build(ctx context.Context, text string) (Hybrid, error) {
	prepared := prepare(text)

	embeddings, err := b.dense.EmbedTexts(ctx, []string{prepared})
	if err != nil {
		return Hybrid{}, fmt.Errorf("dense embedding failed: %w", err)
	}
	if len(embeddings) == 0 || len(embeddings[0]) == 0 {
		return Hybrid{}, fmt.Errorf("dense provider returned an empty vector")
	}
	if len(embeddings[0]) != b.dim {
		return Hybrid{}, fmt.Errorf("dense vector size %d does not match collection dimension %d", len(embeddings[0]), b.dim)
	}

	return Hybrid{
		Dense:  embeddings[0],
		Sparse: b.encoder.Encode(prepared),
	}, nil
}

// BuildSparse encodes only the lexical side, for degraded operation when the
// dense provider is unavailable.
func (b *Builder) BuildSparse(text string) sparse.Vector {
	return b.encoder.Encode(prepare(text))
}

// prepare lowercases, restricts punctuation to a small safe set, collapses
// whitespace and truncates to the provider's character budget.
func prepare(text string) string {
	lowered := strings.ToLower(text)

	var builder strings.Builder
	builder.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			builder.WriteRune(r)
		case r == '.' || r == ',' || r == '-' || r == '/' || r == ':':
			builder.WriteRune(r)
		default:
			builder.WriteRune(' ')
		}
	}

	normalized := strings.Join(strings.Fields(builder.String()), " ")
	if len(normalized) > maxChars {
		// Back the cut off to a rune boundary so a multi-byte rune at the
		// budget edge is dropped whole, not split into invalid UTF-8.
		cut := maxChars
		for cut > 0 && !utf8.RuneStart(normalized[cut]) {
			cut--
		}
		normalized = normalized[:cut] + truncationMarker
	}
	return normalized
}

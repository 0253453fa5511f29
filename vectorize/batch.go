package vectorize

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/lexorient/ai"
)

// BatchProcessor embeds batches of terms.
type BatchProcessor struct {
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of attempts for each embedding API call
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process embeds terms and returns one unit-length row per term, in order.
func (bp *BatchProcessor) Process(ctx context.Context, terms []string) ([][]float64, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, terms)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(terms) {
		return nil, fmt.Errorf("%w: expected %d vectors, got %d", ErrEmbeddingMismatch, len(terms), len(embeddings))
	}

	rows := make([][]float64, len(terms))
	for i := range embeddings {
		rows[i] = NormalizeVector(embeddings[i])
	}
	return rows, nil
}

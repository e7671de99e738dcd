package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/docchat-ai/docchat/internal/observability/metrics"
	"github.com/docchat-ai/docchat/pkg/logging"
)

// LLM is the completion side of the answer path.
type LLM interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Retriever is the lookup side of the answer path.
type Retriever interface {
	Query(ctx context.Context, query string, topK int) ([]string, error)
}

// Ingestor accepts pre-split chunks for indexing.
type Ingestor interface {
	AddDocuments(ctx context.Context, chunks []string) error
}

const answerPromptTemplate = `Answer the question using only the context below. If the context does not contain the answer, say you don't know.

Context:
%s

Question: %s`

// Service answers document questions: retrieve the closest chunks, build a
// grounded prompt, and complete it.
type Service struct {
	retriever Retriever
	llm       LLM
	splitter  *Splitter
	ingestor  Ingestor
	topK      int
	metrics   *metrics.DialogueMetrics
	logger    *logging.Logger
}

// NewService wires the answer path. topK <= 0 falls back to 4.
func NewService(retriever Retriever, llm LLM, splitter *Splitter, ingestor Ingestor, topK int, m *metrics.DialogueMetrics, logger *logging.Logger) *Service {
	if topK <= 0 {
		topK = 4
	}
	if splitter == nil {
		splitter = NewSplitter(0, 0)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		retriever: retriever,
		llm:       llm,
		splitter:  splitter,
		ingestor:  ingestor,
		topK:      topK,
		metrics:   m,
		logger:    logger,
	}
}

// Ingest splits raw document text and indexes the chunks. Returns the chunk
// count.
func (s *Service) Ingest(ctx context.Context, text string) (int, error) {
	chunks := s.splitter.Split(text)
	if len(chunks) == 0 {
		return 0, nil
	}
	if err := s.ingestor.AddDocuments(ctx, chunks); err != nil {
		return 0, fmt.Errorf("rag: ingest failed: %w", err)
	}
	s.metrics.ObserveIngest(len(chunks))
	return len(chunks), nil
}

// Answer retrieves context for the query and asks the model.
func (s *Service) Answer(ctx context.Context, query string) (string, error) {
	chunks, err := s.retriever.Query(ctx, query, s.topK)
	if err != nil {
		return "", fmt.Errorf("rag: retrieval failed: %w", err)
	}
	if len(chunks) == 0 {
		return "I don't have any document loaded yet. Please upload one first.", nil
	}

	prompt := fmt.Sprintf(answerPromptTemplate, strings.Join(chunks, "\n\n---\n\n"), query)
	answer, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("rag: completion failed: %w", err)
	}
	return answer, nil
}

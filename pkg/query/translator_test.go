package query

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lexgraph/pkg/ai"
)

type fakeClient struct {
	completion string
	err        error
}

func (f *fakeClient) GenerateCompletion(_ context.Context, _ string, _ ...ai.GenerateOption) (string, error) {
	return f.completion, f.err
}

func (f *fakeClient) GenerateCompletionWithFormat(_ context.Context, _, _, _ string, _ any, _ ...ai.GenerateOption) error {
	return errors.New("not used")
}

func (f *fakeClient) ResetMetrics() {}

func (f *fakeClient) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }

type fakeStore struct {
	queries []string
	rows    []map[string]any
	err     error
}

func (f *fakeStore) ReadRows(_ context.Context, query string, _ map[string]any) ([]map[string]any, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func TestRetrieveUsesGeneratedQuery(t *testing.T) {
	store := &fakeStore{rows: []map[string]any{{"title": "License Agreement"}}}
	client := &fakeClient{completion: "MATCH (c:Contract) RETURN c.title AS title LIMIT 10"}

	rows, err := NewTranslator(store, client).Retrieve(context.Background(), "what licenses exist?")
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if len(store.queries) != 1 || !strings.HasPrefix(store.queries[0], "MATCH (c:Contract)") {
		t.Fatalf("generated query not executed, ran: %v", store.queries)
	}
}

func TestRetrieveFallsBackOnGenerationFailure(t *testing.T) {
	store := &fakeStore{rows: []map[string]any{{"title": "A"}}}
	client := &fakeClient{err: errors.New("model unavailable")}

	rows, err := NewTranslator(store, client).Retrieve(context.Background(), "anything")
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if len(store.queries) != 1 || store.queries[0] != FallbackCypher(DefaultLimit) {
		t.Fatalf("fallback query not executed, ran: %v", store.queries)
	}
}

func TestRetrieveFallsBackOnExecutionFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("syntax error")}
	client := &fakeClient{completion: "MATCH (c:Contract) RETURN c LIMIT 10"}

	_, err := NewTranslator(store, client).Retrieve(context.Background(), "anything")
	if err == nil {
		t.Fatalf("expected error when fallback also fails")
	}
	if len(store.queries) != 2 {
		t.Fatalf("expected generated then fallback query, ran %d", len(store.queries))
	}
	if store.queries[1] != FallbackCypher(DefaultLimit) {
		t.Fatalf("second query must be the fallback, got:\n%s", store.queries[1])
	}
}

func TestAnswerNeverErrors(t *testing.T) {
	store := &fakeStore{err: errors.New("down")}
	client := &fakeClient{err: errors.New("down")}

	got := NewTranslator(store, client).Answer(context.Background(), "anything")
	if got == "" {
		t.Fatalf("answer must always return text")
	}
}

func TestAnswerNarratesRows(t *testing.T) {
	store := &fakeStore{rows: []map[string]any{{"title": "License Agreement"}}}
	client := &fakeClient{completion: "MATCH (c:Contract) RETURN c.title AS title"}

	got := NewTranslator(store, client).Answer(context.Background(), "what licenses exist?")
	if !strings.Contains(got, "MATCH") && !strings.Contains(got, "License Agreement") {
		t.Fatalf("unexpected answer: %q", got)
	}
}

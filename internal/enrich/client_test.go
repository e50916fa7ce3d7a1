package enrich

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/podhaven/backend/internal/models"
)

func candidateResponse(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"parts": []map[string]string{{"text": text}},
			},
		}},
	})
	return string(b)
}

func TestGenerateSuccess(t *testing.T) {
	var gotBody generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(candidateResponse(`{"title":"T","summary":"S","tags":["a","b"]}`)))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "")
	meta, err := c.Generate(context.Background(), []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if meta.Title != "T" || meta.Summary != "S" || len(meta.Tags) != 2 {
		t.Errorf("meta = %+v", meta)
	}

	// The request must carry the instruction, the audio payload, and the
	// declared response schema.
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 2 {
		t.Fatalf("unexpected request shape: %+v", gotBody)
	}
	if gotBody.Contents[0].Parts[0].Text == "" {
		t.Error("instruction text missing")
	}
	audio := gotBody.Contents[0].Parts[1].InlineData
	if audio == nil {
		t.Fatal("inline audio missing")
	}
	decoded, err := base64.StdEncoding.DecodeString(audio.Data)
	if err != nil || len(decoded) != 3 {
		t.Errorf("audio payload = %q (%v)", audio.Data, err)
	}
	if gotBody.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Error("response mime type not declared")
	}
	if len(gotBody.GenerationConfig.ResponseSchema) == 0 {
		t.Error("response schema not declared")
	}
}

func TestGenerateMissingCredential(t *testing.T) {
	c := NewClient("http://localhost:0", "", "")
	_, err := c.Generate(context.Background(), []byte{1})
	if !errors.Is(err, ErrEnrichment) {
		t.Fatalf("error = %v, want ErrEnrichment", err)
	}
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "")
	if _, err := c.Generate(context.Background(), []byte{1}); !errors.Is(err, ErrEnrichment) {
		t.Fatalf("error = %v, want ErrEnrichment", err)
	}
}

func TestGenerateMalformedMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateResponse("not json at all")))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "")
	if _, err := c.Generate(context.Background(), []byte{1}); !errors.Is(err, ErrEnrichment) {
		t.Fatalf("error = %v, want ErrEnrichment", err)
	}
}

func TestGenerateEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "")
	if _, err := c.Generate(context.Background(), []byte{1}); !errors.Is(err, ErrEnrichment) {
		t.Fatalf("error = %v, want ErrEnrichment", err)
	}
}

type blockingGenerator struct {
	release chan struct{}
}

func (g *blockingGenerator) Generate(ctx context.Context, audio []byte) (*models.GeneratedMetadata, error) {
	<-g.release
	return &models.GeneratedMetadata{Title: "done", Tags: []string{}}, nil
}

func TestEnricherRejectsConcurrentTrigger(t *testing.T) {
	gen := &blockingGenerator{release: make(chan struct{})}
	e := NewEnricher(gen, nil)
	clip := &models.Clip{ID: uuid.New(), AudioData: []byte{1}}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := e.Enrich(context.Background(), clip); err != nil {
			t.Errorf("first Enrich: %v", err)
		}
	}()

	deadline := time.Now().Add(time.Second)
	for !e.Busy() {
		if time.Now().After(deadline) {
			t.Fatal("enricher never became busy")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := e.Enrich(context.Background(), clip); !errors.Is(err, ErrInFlight) {
		t.Fatalf("duplicate trigger error = %v, want ErrInFlight", err)
	}

	close(gen.release)
	wg.Wait()

	// After resolution the trigger is available again.
	gen.release = make(chan struct{})
	close(gen.release)
	if _, err := e.Enrich(context.Background(), clip); err != nil {
		t.Fatalf("Enrich after resolution: %v", err)
	}
}

type failingGenerator struct{}

func (failingGenerator) Generate(ctx context.Context, audio []byte) (*models.GeneratedMetadata, error) {
	return nil, ErrEnrichment
}

func TestEnricherFailurePropagates(t *testing.T) {
	e := NewEnricher(failingGenerator{}, nil)
	clip := &models.Clip{ID: uuid.New(), AudioData: []byte{1}}
	if _, err := e.Enrich(context.Background(), clip); !errors.Is(err, ErrEnrichment) {
		t.Fatalf("error = %v, want ErrEnrichment", err)
	}
	if e.Busy() {
		t.Error("enricher stuck busy after failure")
	}
}

package studio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/podhaven/backend/internal/capture"
	"github.com/podhaven/backend/internal/models"
)

type grantingStream struct{}

func (grantingStream) Close() error { return nil }

type grantingDevice struct{}

func (grantingDevice) Acquire(ctx context.Context) (capture.Stream, error) {
	return grantingStream{}, nil
}

// record drives a full capture so the studio has a finished clip.
func record(t *testing.T, s *Studio, data []byte) *models.Clip {
	t.Helper()
	if err := s.Session().Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Session().AppendFragment(data)
	clip := s.Session().Stop()
	if clip == nil {
		t.Fatal("no clip after Stop")
	}
	return clip
}

func newTestStudio() *Studio {
	sess := capture.NewSession(grantingDevice{}, capture.Config{Bins: 8}, nil, nil)
	return New(sess, nil)
}

func TestSaveWithoutClip(t *testing.T) {
	s := newTestStudio()
	if _, _, err := s.Save(time.Now()); !errors.Is(err, ErrNoClip) {
		t.Fatalf("Save error = %v, want ErrNoClip", err)
	}
}

func TestSaveDefaultsWhenMetadataAbsent(t *testing.T) {
	s := newTestStudio()
	record(t, s, []byte{1, 2, 3})

	now := time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC)
	rec, audio, err := s.Save(now)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.Title != "Recording 10/1/2023" {
		t.Errorf("Title = %q, want default with date", rec.Title)
	}
	if rec.Description != "No description." {
		t.Errorf("Description = %q, want default", rec.Description)
	}
	if len(rec.Tags) != 0 {
		t.Errorf("Tags = %v, want empty set", rec.Tags)
	}
	if len(audio) != 3 {
		t.Errorf("audio bytes = %d, want 3", len(audio))
	}
	if rec.SourceURL == "" {
		t.Error("SourceURL not set")
	}
}

func TestSaveUsesGeneratedMetadata(t *testing.T) {
	s := newTestStudio()
	record(t, s, []byte{1})
	s.SetMetadata(models.GeneratedMetadata{
		Title:   "Morning Thoughts",
		Summary: "Two sentences about mornings.",
		Tags:    []string{"mornings", "life"},
	})

	rec, _, err := s.Save(time.Now())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.Title != "Morning Thoughts" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Description != "Two sentences about mornings." {
		t.Errorf("Description = %q", rec.Description)
	}
	if len(rec.Tags) != 2 {
		t.Errorf("Tags = %v", rec.Tags)
	}
}

func TestSaveResolvesTrimBounds(t *testing.T) {
	s := newTestStudio()
	clip := record(t, s, []byte{1})
	clip.DurationSeconds = 100 // deterministic duration for resolution

	start, end := 20.0, 80.0
	s.AdjustTrim(&start, &end)

	rec, _, err := s.Save(time.Now())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.TrimStart != 20 || rec.TrimEnd != 80 {
		t.Errorf("trim bounds = (%v, %v), want (20, 80)", rec.TrimStart, rec.TrimEnd)
	}
}

func TestSaveResetsDraftState(t *testing.T) {
	s := newTestStudio()
	record(t, s, []byte{1})
	start := 30.0
	s.AdjustTrim(&start, nil)
	s.SetMetadata(models.GeneratedMetadata{Title: "x"})

	if _, _, err := s.Save(time.Now()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if s.Clip() != nil {
		t.Error("clip survived save")
	}
	if s.Metadata() != nil {
		t.Error("metadata survived save")
	}
	if w := s.Trim(); w != NewTrimWindow() {
		t.Errorf("trim window not reset: %+v", w)
	}
}

func TestDiscard(t *testing.T) {
	s := newTestStudio()
	record(t, s, []byte{1})
	s.SetMetadata(models.GeneratedMetadata{Title: "x"})

	s.Discard()
	if s.Clip() != nil || s.Metadata() != nil {
		t.Error("Discard left draft state behind")
	}
	if _, _, err := s.Save(time.Now()); !errors.Is(err, ErrNoClip) {
		t.Fatalf("Save after Discard = %v, want ErrNoClip", err)
	}
}

func TestAdjustTrimClampsThroughStudio(t *testing.T) {
	s := newTestStudio()
	end := 50.0
	s.AdjustTrim(nil, &end)
	start := 99.0
	w := s.AdjustTrim(&start, nil)
	if w.StartFraction != 45 {
		t.Errorf("StartFraction = %v, want clamped 45", w.StartFraction)
	}
}

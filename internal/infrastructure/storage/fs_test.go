package storage

import (
	"context"
	"os"
	"testing"

	"svw.info/pips/internal/ports"
)

const storedPuzzle = "AB\n\nA 3\nB 4\n\n34"

func TestFSSaveLoadList(t *testing.T) {
	s := NewFS(t.TempDir())
	ctx := context.Background()

	rec := &ports.PuzzleRecord{ID: "p1", Name: "warmup", Text: storedPuzzle, CreatedAt: 1234}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Load(ctx, "p1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.ID != "p1" || got.Name != "warmup" || got.Text != storedPuzzle || got.CreatedAt != 1234 {
		t.Fatalf("Load = %+v", got)
	}

	if err := s.Save(ctx, &ports.PuzzleRecord{ID: "p2", Text: storedPuzzle, CreatedAt: 5678}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	metas, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(metas) != 2 || metas[0].ID != "p1" || metas[1].ID != "p2" {
		t.Fatalf("List = %+v", metas)
	}
}

func TestFSSaveRejectsBadRecords(t *testing.T) {
	s := NewFS(t.TempDir())
	ctx := context.Background()

	if err := s.Save(ctx, nil); err == nil {
		t.Error("nil record must be rejected")
	}
	if err := s.Save(ctx, &ports.PuzzleRecord{ID: "", Text: storedPuzzle}); err == nil {
		t.Error("empty ID must be rejected")
	}
	if err := s.Save(ctx, &ports.PuzzleRecord{ID: "../escape", Text: storedPuzzle}); err == nil {
		t.Error("path-traversal ID must be rejected")
	}
	if err := s.Save(ctx, &ports.PuzzleRecord{ID: "p1", Text: "not a puzzle"}); err == nil {
		t.Error("unparseable text must be rejected")
	}
}

func TestFSLoadMissing(t *testing.T) {
	s := NewFS(t.TempDir())
	if _, err := s.Load(context.Background(), "nope"); !os.IsNotExist(err) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestFSListEmptyDir(t *testing.T) {
	s := NewFS(t.TempDir() + "/never-created")
	metas, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(metas) != 0 {
		t.Fatalf("List = %+v, want empty", metas)
	}
}

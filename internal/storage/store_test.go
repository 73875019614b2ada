package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStoreSaveLoad(t *testing.T) {
	st := newStore(t)

	created := time.Unix(1700000000, 0)
	id, err := st.Save(Record{
		Preset: "hero", Effect: "wave", Theme: "dark",
		Width: 800, Height: 600, Frames: 60,
		Format: "gif", Output: "hero.gif",
		Elapsed: 1500 * time.Millisecond, CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id == "" {
		t.Error("expected non-empty render id")
	}

	rec, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if rec.Preset != "hero" || rec.Width != 800 || rec.Frames != 60 || rec.Format != "gif" {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.Elapsed != 1500*time.Millisecond {
		t.Errorf("expected elapsed 1.5s, got %v", rec.Elapsed)
	}
	if !rec.CreatedAt.Equal(created) {
		t.Errorf("expected created %v, got %v", created, rec.CreatedAt)
	}
}

func TestStoreLoad_NotFound(t *testing.T) {
	st := newStore(t)
	if _, err := st.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreList(t *testing.T) {
	if runs, err := New(t.TempDir()).List(); err != nil || len(runs) != 0 {
		t.Errorf("uninitialized store should list nothing, got %v %v", runs, err)
	}

	st := newStore(t)
	base := time.Unix(1700000000, 0)
	for i, preset := range []string{"hero", "about", "dots"} {
		_, err := st.Save(Record{Preset: preset, Effect: "wave", Theme: "dark", Format: "svg", CreatedAt: base.Add(time.Duration(i) * time.Minute)})
		if err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 renders, got %d", len(runs))
	}
	if runs[0].Preset != "dots" || runs[2].Preset != "hero" {
		t.Errorf("expected newest first, got %s..%s", runs[0].Preset, runs[2].Preset)
	}
}

func TestStoreSave_NotInitialized(t *testing.T) {
	if _, err := New(t.TempDir()).Save(Record{Preset: "hero"}); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestStoreTimings(t *testing.T) {
	st := newStore(t)
	timings := []time.Duration{250 * time.Microsecond, 1200 * time.Microsecond, 900 * time.Microsecond}

	if err := st.SaveTimings("hero_1", timings); err != nil {
		t.Fatalf("save timings failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(st.baseDir, "hero_1", "timings.csv")); err != nil {
		t.Errorf("timings.csv not created: %v", err)
	}

	got, err := st.LoadTimings("hero_1")
	if err != nil {
		t.Fatalf("load timings failed: %v", err)
	}
	if len(got) != len(timings) {
		t.Fatalf("expected %d timings, got %d", len(timings), len(got))
	}
	for i := range got {
		if got[i] != timings[i] {
			t.Errorf("timing %d: got %v, want %v", i, got[i], timings[i])
		}
	}

	if _, err := st.LoadTimings("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	recs := []Record{{ID: "a", Preset: "hero"}, {ID: "b", Preset: "dots"}}
	if err := ExportJSON(&buf, recs); err != nil {
		t.Fatal(err)
	}
	var out []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[1]["preset"] != "dots" {
		t.Errorf("unexpected export %v", out)
	}
}

package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ShapeFill/internal/collision"
	"github.com/piwi3910/ShapeFill/internal/model"
)

func buildScene() *model.Scene {
	tri := model.ShapeDef{Name: "tri", Outline: model.Outline{{X: 0, Y: 5}, {X: -5, Y: -5}, {X: 5, Y: -5}}}
	scene := model.NewScene()
	for i, color := range []string{"green", "blue", "pink"} {
		s := model.NewShape(tri, color, 2, 1)
		s.MoveTo(float64(i*30), -10)
		scene.Add(s)
	}
	return scene
}

func TestSaveAndLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "scene.json")
	cfg := model.DefaultAppConfig()
	cfg.Seed = 5
	scene := buildScene()

	if err := SaveScene(path, cfg, scene); err != nil {
		t.Fatalf("SaveScene failed: %v", err)
	}

	loaded, loadedCfg, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	if loadedCfg.Seed != 5 {
		t.Errorf("expected seed 5, got %d", loadedCfg.Seed)
	}
	if loaded.Len() != scene.Len() {
		t.Fatalf("expected %d shapes, got %d", scene.Len(), loaded.Len())
	}

	for i, want := range scene.Shapes() {
		got := loaded.Shapes()[i]
		if got.ID != want.ID || got.Label != want.Label || got.Color != want.Color {
			t.Errorf("shape %d: identity mismatch %s/%s/%s", i, got.ID, got.Label, got.Color)
		}
		if got.Bounds() != want.Bounds() {
			t.Errorf("shape %d: expected bounds %+v, got %+v", i, want.Bounds(), got.Bounds())
		}
	}
}

func TestLoadedSceneAnswersQueries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := SaveScene(path, model.DefaultAppConfig(), buildScene()); err != nil {
		t.Fatalf("SaveScene failed: %v", err)
	}
	loaded, _, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}

	first := loaded.Shapes()[0]
	if !collision.MayPlace(first, loaded) {
		t.Error("a loaded member must not collide with itself")
	}

	tri := model.ShapeDef{Name: "tri", Outline: first.Base}
	candidate := model.NewShape(tri, "red", 2, 1)
	candidate.MoveTo(1, -10)
	if collision.MayPlace(candidate, loaded) {
		t.Error("candidate overlapping a loaded shape must be rejected")
	}
}

func TestSaveEmptyScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := SaveScene(path, model.DefaultAppConfig(), model.NewScene()); err != nil {
		t.Fatalf("SaveScene failed: %v", err)
	}
	loaded, _, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	if loaded.Len() != 0 {
		t.Errorf("expected empty scene, got %d shapes", loaded.Len())
	}
}

func TestLoadSceneMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"shapes": []}`), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, _, err := LoadScene(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestLoadSceneNullShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "null.json")
	if err := os.WriteFile(path, []byte(`{"version": "1.0.0", "shapes": [null]}`), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, _, err := LoadScene(path); err == nil {
		t.Fatal("expected error for null shape")
	}
}

func TestLoadSceneMissingFile(t *testing.T) {
	if _, _, err := LoadScene(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

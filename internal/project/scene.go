package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/ShapeFill/internal/model"
)

// SceneFormatVersion is written to every saved scene.
const SceneFormatVersion = "1.0.0"

// SceneFile is the on-disk form of a filled scene and the config that produced it.
type SceneFile struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Shapes    []*model.Shape  `json:"shapes"`
}

// SaveScene writes the scene and its config to a JSON file at path.
func SaveScene(path string, config model.AppConfig, scene *model.Scene) error {
	file := SceneFile{
		Version:   SceneFormatVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Shapes:    scene.Shapes(),
	}
	if file.Shapes == nil {
		file.Shapes = []*model.Shape{}
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scene: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create scene directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scene file: %w", err)
	}
	return nil
}

// LoadScene reads a scene file written by SaveScene and rebuilds the scene
// in its original placement order.
func LoadScene(path string) (*model.Scene, model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.AppConfig{}, fmt.Errorf("failed to read scene file: %w", err)
	}
	var file SceneFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, model.AppConfig{}, fmt.Errorf("failed to parse scene file: %w", err)
	}
	if file.Version == "" {
		return nil, model.AppConfig{}, fmt.Errorf("invalid scene file: missing version field")
	}

	scene := model.NewScene()
	for i, s := range file.Shapes {
		if s == nil {
			return nil, model.AppConfig{}, fmt.Errorf("invalid scene file: shape %d is null", i)
		}
		scene.Add(s)
	}
	return scene, file.Config, nil
}

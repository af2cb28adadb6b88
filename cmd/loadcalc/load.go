package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"Ampere/internal/calc/electrical"
	"Ampere/internal/calc/importer"

	"gopkg.in/yaml.v3"
)

// loadProject reads a project from a JSON, YAML or xlsx file. An xlsx file
// holds circuits only and the project is named after the file.
func loadProject(path string) (electrical.Project, error) {
	var p electrical.Project

	f, err := os.Open(path)
	if err != nil {
		return p, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.NewDecoder(f).Decode(&p); err != nil {
			return p, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(f).Decode(&p); err != nil {
			return p, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".xlsx":
		circuits, err := importer.ParseCircuits(f)
		if err != nil {
			return p, fmt.Errorf("import %s: %w", path, err)
		}
		p.ProjectInfo.ProjectName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		p.Circuits = circuits
	default:
		return p, fmt.Errorf("unsupported project file type %q", ext)
	}
	return p, nil
}

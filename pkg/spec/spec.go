package spec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/simpar"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/uwgpar"
)

// ProjectFiles are the file names LoadProject looks for, in order.
var ProjectFiles = []string{"district.yaml", "district.yml", "district.toml", "district.json"}

// Load reads a project from a YAML, TOML or JSON file, chosen by extension.
// Parameters absent from the file keep their defaults.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes a project in the format named by ext (".yaml", ".yml",
// ".toml" or ".json").
func Parse(data []byte, ext string) (*Project, error) {
	p := newProject()
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("parsing spec YAML: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("parsing spec TOML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("parsing spec JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported spec format %q", ext)
	}
	return p, nil
}

func newProject() *Project {
	return &Project{
		District: DistrictDef{
			Vegetation: uwgpar.DefaultVegetation(),
			Pavement:   uwgpar.DefaultPavement(),
		},
		Simulation: simpar.Default(),
	}
}

// LoadProject loads the first project file found in projectDir.
func LoadProject(projectDir string) (*Project, error) {
	for _, name := range ProjectFiles {
		path := filepath.Join(projectDir, name)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return Load(path)
	}
	return nil, fmt.Errorf("no project file (%s) in %s: %w",
		strings.Join(ProjectFiles, ", "), projectDir, fs.ErrNotExist)
}

// Resolve loads a project from a file path or a project directory.
func Resolve(path string) (*Project, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}
	if info.IsDir() {
		return LoadProject(path)
	}
	return Load(path)
}

package profiles

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a profiles overlay:
//
//	functions:
//	  - id: translation_aramaic
//	    name: תרגום לארמית
//	    model: claude-sonnet-4-20250514
//	    maxTokens: 3000
//	    temperature: 0.3
//	    systemPrompt: ...
type File struct {
	Functions []Profile `yaml:"functions"`
}

// Load returns a registry of the built-in profiles overlaid with the
// profiles in path. Overlay entries replace a built-in with the same id in
// place; new ids are appended in file order. An empty path yields the
// built-ins alone.
func Load(path string) (*Registry, error) {
	base := Builtin()
	if path == "" {
		return New(base...), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}

	overlay, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return New(append(base, overlay...)...), nil
}

// Parse decodes and validates an overlay document.
func Parse(data []byte) ([]Profile, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}

	seen := make(map[string]bool, len(f.Functions))
	var errs []error
	for i := range f.Functions {
		p := &f.Functions[i]
		p.ID = strings.TrimSpace(p.ID)
		if err := p.validate(); err != nil {
			errs = append(errs, fmt.Errorf("functions[%d]: %w", i, err))
			continue
		}
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("functions[%d]: duplicate id %q", i, p.ID))
			continue
		}
		seen[p.ID] = true
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return f.Functions, nil
}

func (p Profile) validate() error {
	switch {
	case p.ID == "":
		return errors.New("id is required")
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%s: name is required", p.ID)
	case strings.TrimSpace(p.Model) == "":
		return fmt.Errorf("%s: model is required", p.ID)
	case p.MaxTokens <= 0:
		return fmt.Errorf("%s: maxTokens must be positive, got %d", p.ID, p.MaxTokens)
	case p.Temperature < 0 || p.Temperature > 1:
		return fmt.Errorf("%s: temperature must be within 0-1, got %g", p.ID, p.Temperature)
	case strings.TrimSpace(p.SystemPrompt) == "":
		return fmt.Errorf("%s: systemPrompt is required", p.ID)
	}
	return nil
}

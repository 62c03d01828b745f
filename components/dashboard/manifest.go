package dashboard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ReadLayout loads a layout manifest from disk without validating widgets
// against a registry.
func ReadLayout(path string) (*Layout, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open layout %s: %w", path, err)
	}
	defer f.Close()
	layout, err := DecodeLayout(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode layout %s: %w", path, err)
	}
	layout.Source = path
	return layout, nil
}

// DecodeLayout reads a YAML (or JSON) layout manifest from any reader.
func DecodeLayout(r io.Reader) (*Layout, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var layout Layout
	if err := decoder.Decode(&layout); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dashboard: layout is empty")
		}
		return nil, fmt.Errorf("dashboard: parse layout: %w", err)
	}
	if layout.Version == "" {
		layout.Version = LayoutVersion
	}
	if err := layout.validateShape(); err != nil {
		return nil, err
	}
	return &layout, nil
}

// EncodeLayout writes the layout as YAML.
func EncodeLayout(w io.Writer, layout *Layout) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(layout); err != nil {
		return fmt.Errorf("dashboard: encode layout: %w", err)
	}
	return encoder.Close()
}

// Validate checks the layout shape, then that every widget is registered and
// its configuration satisfies the definition schema.
func (l *Layout) Validate(reg *Registry, validator ConfigValidator) error {
	if err := l.validateShape(); err != nil {
		return err
	}
	if validator == nil {
		validator = noopConfigValidator{}
	}
	for _, page := range l.Pages {
		for idx, placement := range page.Widgets {
			def, ok := reg.Definition(placement.Code)
			if !ok {
				return fmt.Errorf("dashboard: page %s widget %d: unknown widget %q", page.Code, idx, placement.Code)
			}
			if err := validator.Validate(def, placement.Configuration); err != nil {
				return fmt.Errorf("dashboard: page %s: %w", page.Code, err)
			}
		}
	}
	return nil
}

func (l *Layout) validateShape() error {
	if l.Version != LayoutVersion {
		return fmt.Errorf("dashboard: unsupported layout version %q", l.Version)
	}
	if len(l.Pages) == 0 {
		return fmt.Errorf("dashboard: layout has no pages")
	}
	seen := make(map[string]struct{}, len(l.Pages))
	for idx, page := range l.Pages {
		if page.Code == "" {
			return fmt.Errorf("dashboard: layout page at index %d is missing code", idx)
		}
		if _, exists := seen[page.Code]; exists {
			return fmt.Errorf("dashboard: layout duplicates page code %s", page.Code)
		}
		seen[page.Code] = struct{}{}
		placed := make(map[string]struct{}, len(page.Widgets))
		for widx, placement := range page.Widgets {
			if placement.Code == "" {
				return fmt.Errorf("dashboard: page %s widget at index %d is missing code", page.Code, widx)
			}
			// Element ids, chart ids and snapshot fragments are keyed by code.
			if _, exists := placed[placement.Code]; exists {
				return fmt.Errorf("dashboard: page %s places widget %s more than once", page.Code, placement.Code)
			}
			placed[placement.Code] = struct{}{}
		}
	}
	return nil
}

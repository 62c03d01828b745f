package dashboard

import (
	"fmt"
	"sync"
)

// WidgetDefinition describes a widget type that layouts can place.
type WidgetDefinition struct {
	Code        string         `json:"code" yaml:"code"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string         `json:"category,omitempty" yaml:"category,omitempty"`
	Scope       AdapterScope   `json:"scope" yaml:"scope"`
	Schema      map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
	Defaults    WidgetConfig   `json:"-" yaml:"-"`
}

// AdapterDeps are the repositories adapter factories draw from.
type AdapterDeps struct {
	Sellers  SellerMetricsRepository
	Platform PlatformMetricsRepository
}

// AdapterFactory builds the fetch func for a placed widget.
type AdapterFactory func(deps AdapterDeps, cfg WidgetConfig) FetchFunc

// Registry maps widget codes to definitions and adapter factories.
type Registry struct {
	mu          sync.RWMutex
	order       []string
	definitions map[string]WidgetDefinition
	factories   map[string]AdapterFactory
}

// NewRegistry builds a registry holding the built-in widgets.
func NewRegistry() *Registry {
	reg := NewEmptyRegistry()
	for _, widget := range builtinWidgets() {
		_ = reg.Register(widget.definition, widget.factory)
	}
	return reg
}

// NewEmptyRegistry builds a registry with no widgets.
func NewEmptyRegistry() *Registry {
	return &Registry{
		definitions: map[string]WidgetDefinition{},
		factories:   map[string]AdapterFactory{},
	}
}

// Register stores a definition with its factory, replacing any previous
// registration under the same code.
func (r *Registry) Register(def WidgetDefinition, factory AdapterFactory) error {
	if def.Code == "" {
		return fmt.Errorf("dashboard: widget definition code is required")
	}
	if factory == nil {
		return fmt.Errorf("dashboard: widget %s needs an adapter factory", def.Code)
	}
	if def.Scope == "" {
		def.Scope = ScopeSeller
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.definitions[def.Code]; !exists {
		r.order = append(r.order, def.Code)
	}
	r.definitions[def.Code] = def
	r.factories[def.Code] = factory
	return nil
}

// Definition fetches a widget definition by code.
func (r *Registry) Definition(code string) (WidgetDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[code]
	return def, ok
}

// Factory fetches the adapter factory for a code.
func (r *Registry) Factory(code string) (AdapterFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[code]
	return factory, ok
}

// Definitions returns all definitions in registration order.
func (r *Registry) Definitions() []WidgetDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]WidgetDefinition, 0, len(r.order))
	for _, code := range r.order {
		defs = append(defs, r.definitions[code])
	}
	return defs
}

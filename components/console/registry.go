package console

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores section definitions and optional per-section data sources.
type Registry struct {
	mu          sync.RWMutex
	definitions map[SectionID]SectionDefinition
	sources     map[SectionID]DataSource
}

// NewRegistry builds a registry seeded with the default catalog.
func NewRegistry() *Registry {
	reg := &Registry{
		definitions: map[SectionID]SectionDefinition{},
		sources:     map[SectionID]DataSource{},
	}
	for _, def := range DefaultSectionDefinitions() {
		_ = reg.RegisterDefinition(def)
	}
	return reg
}

// RegisterDefinition stores or replaces a section definition.
func (r *Registry) RegisterDefinition(def SectionDefinition) error {
	if !def.ID.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSection, def.ID)
	}
	if def.PrimarySlice != "" {
		slice, ok := def.Slice(def.PrimarySlice)
		if !ok {
			return fmt.Errorf("console: section %s primary slice %s not declared", def.ID, def.PrimarySlice)
		}
		if slice.Kind != SliceRecords {
			return fmt.Errorf("console: section %s primary slice %s must hold records", def.ID, def.PrimarySlice)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.ID] = def
	return nil
}

// RegisterSource overrides the data source used for one section.
func (r *Registry) RegisterSource(id SectionID, source DataSource) error {
	if source == nil {
		return fmt.Errorf("console: data source cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.definitions[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	r.sources[id] = source
	return nil
}

// Definition fetches a section definition.
func (r *Registry) Definition(id SectionID) (SectionDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[id]
	return def, ok
}

// Source fetches a section's data source override.
func (r *Registry) Source(id SectionID) (DataSource, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	source, ok := r.sources[id]
	return source, ok
}

// Definitions returns all definitions in sidebar order.
func (r *Registry) Definitions() []SectionDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]SectionDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	sort.SliceStable(defs, func(i, j int) bool {
		return sectionRank(defs[i].ID) < sectionRank(defs[j].ID)
	})
	return defs
}

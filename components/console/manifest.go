package console

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// SectionManifestDocument models a YAML manifest overriding section definitions.
type SectionManifestDocument struct {
	Version  string              `json:"version" yaml:"version"`
	Name     string              `json:"name,omitempty" yaml:"name,omitempty"`
	Sections []SectionDefinition `json:"sections" yaml:"sections"`
	Source   string              `json:"-" yaml:"-"`
}

// LoadManifestFile reads a manifest from disk and registers its sections.
func (r *Registry) LoadManifestFile(path string) (*SectionManifestDocument, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument registers definitions from a decoded manifest.
func (r *Registry) LoadManifestDocument(doc *SectionManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("console: manifest document is nil")
	}
	for _, def := range doc.Sections {
		if err := r.RegisterDefinition(def); err != nil {
			return fmt.Errorf("console: register section %s from %s: %w", def.ID, doc.Source, err)
		}
	}
	return nil
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*SectionManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("console: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("console: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*SectionManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc SectionManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("console: manifest is empty")
		}
		return nil, fmt.Errorf("console: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures every section entry is well formed.
func (doc *SectionManifestDocument) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("console: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[SectionID]struct{}, len(doc.Sections))
	for idx, def := range doc.Sections {
		if def.ID == "" {
			return fmt.Errorf("console: manifest section at index %d is missing id", idx)
		}
		if !def.ID.Valid() {
			return fmt.Errorf("console: manifest section %q is not a known section", def.ID)
		}
		if def.Label == "" {
			return fmt.Errorf("console: manifest section %s missing label", def.ID)
		}
		if _, exists := seen[def.ID]; exists {
			return fmt.Errorf("console: manifest duplicates section %s", def.ID)
		}
		seen[def.ID] = struct{}{}
		if err := validateSlices(def); err != nil {
			return err
		}
		for _, f := range def.Filters {
			if f.Name == "" {
				return fmt.Errorf("console: manifest section %s has a filter without name", def.ID)
			}
			switch f.Normalize {
			case NormalizeNone, NormalizeFold, NormalizeBool:
			default:
				return fmt.Errorf("console: manifest section %s filter %s has unknown normalize %q", def.ID, f.Name, f.Normalize)
			}
		}
	}
	return nil
}

func validateSlices(def SectionDefinition) error {
	names := make(map[string]struct{}, len(def.Slices))
	for _, slice := range def.Slices {
		if slice.Name == "" {
			return fmt.Errorf("console: manifest section %s has a slice without name", def.ID)
		}
		if _, dup := names[slice.Name]; dup {
			return fmt.Errorf("console: manifest section %s duplicates slice %s", def.ID, slice.Name)
		}
		names[slice.Name] = struct{}{}
		if slice.Kind != SliceRecords && slice.Kind != SliceAggregate {
			return fmt.Errorf("console: manifest slice %s/%s has unknown kind %q", def.ID, slice.Name, slice.Kind)
		}
		if slice.Endpoint.Service != ServiceAuth && slice.Endpoint.Service != ServiceInventory {
			return fmt.Errorf("console: manifest slice %s/%s has unknown service %q", def.ID, slice.Name, slice.Endpoint.Service)
		}
		if slice.Endpoint.Path == "" {
			return fmt.Errorf("console: manifest slice %s/%s missing endpoint path", def.ID, slice.Name)
		}
	}
	if def.PrimarySlice != "" {
		if _, ok := names[def.PrimarySlice]; !ok {
			return fmt.Errorf("console: manifest section %s primary slice %s not declared", def.ID, def.PrimarySlice)
		}
	}
	return nil
}

func (doc *SectionManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	for i := range doc.Sections {
		for j := range doc.Sections[i].Slices {
			if doc.Sections[i].Slices[j].Kind == "" {
				doc.Sections[i].Slices[j].Kind = SliceRecords
			}
		}
	}
}

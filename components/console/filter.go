package console

import (
	"sort"
	"strings"
)

// AllValue is the sentinel meaning "no constraint" for a categorical filter.
const AllValue = "All"

// Normalization controls how a categorical value is compared.
type Normalization string

const (
	// NormalizeNone compares values exactly.
	NormalizeNone Normalization = ""
	// NormalizeFold compares values case-insensitively.
	NormalizeFold Normalization = "fold"
	// NormalizeBool compares the boolean derived from both sides.
	NormalizeBool Normalization = "bool"
)

// FilterField declares a categorical filter. Path defaults to Name.
type FilterField struct {
	Name      string        `json:"name" yaml:"name"`
	Path      string        `json:"path,omitempty" yaml:"path,omitempty"`
	Normalize Normalization `json:"normalize,omitempty" yaml:"normalize,omitempty"`
	Values    []string      `json:"values,omitempty" yaml:"values,omitempty"`
}

func (f FilterField) path() string {
	if f.Path != "" {
		return f.Path
	}
	return f.Name
}

// FilterSpec is the per-section filter configuration.
type FilterSpec struct {
	Search []string
	Fields []FilterField
}

func (s FilterSpec) field(name string) (FilterField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FilterField{}, false
}

// FilterCriteria is the user's current search and filter selection.
type FilterCriteria struct {
	SearchTerm string            `json:"searchTerm"`
	Fields     map[string]string `json:"fields,omitempty"`
}

// DefaultCriteria matches every record.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{}
}

// IsAll reports whether a categorical value is the no-constraint sentinel.
func IsAll(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || strings.EqualFold(value, AllValue)
}

// IsDefault reports whether the criteria constrain nothing.
func (c FilterCriteria) IsDefault() bool {
	if strings.TrimSpace(c.SearchTerm) != "" {
		return false
	}
	for _, v := range c.Fields {
		if !IsAll(v) {
			return false
		}
	}
	return true
}

// Clone copies the criteria.
func (c FilterCriteria) Clone() FilterCriteria {
	out := FilterCriteria{SearchTerm: c.SearchTerm}
	if c.Fields != nil {
		out.Fields = make(map[string]string, len(c.Fields))
		for k, v := range c.Fields {
			out.Fields[k] = v
		}
	}
	return out
}

type fieldRule struct {
	path      string
	normalize Normalization
	want      string
}

// Filter returns the records matching criteria, in input order. Default
// criteria return the input unchanged.
func Filter(records []Record, spec FilterSpec, criteria FilterCriteria) []Record {
	if criteria.IsDefault() {
		return records
	}
	term := strings.ToLower(strings.TrimSpace(criteria.SearchTerm))
	rules := compileRules(spec, criteria)
	out := make([]Record, 0, len(records))
	for _, record := range records {
		if term != "" && !matchesSearch(record, spec.Search, term) {
			continue
		}
		if !matchesRules(record, rules) {
			continue
		}
		out = append(out, record)
	}
	return out
}

func compileRules(spec FilterSpec, criteria FilterCriteria) []fieldRule {
	names := make([]string, 0, len(criteria.Fields))
	for name, value := range criteria.Fields {
		if IsAll(value) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	rules := make([]fieldRule, 0, len(names))
	for _, name := range names {
		rule := fieldRule{path: name, want: criteria.Fields[name]}
		if field, ok := spec.field(name); ok {
			rule.path = field.path()
			rule.normalize = field.Normalize
		}
		rules = append(rules, rule)
	}
	return rules
}

func matchesSearch(record Record, fields []string, term string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(record.Text(field)), term) {
			return true
		}
	}
	return false
}

func matchesRules(record Record, rules []fieldRule) bool {
	for _, rule := range rules {
		value, ok := record.Lookup(rule.path)
		if !ok || !matchValue(value, rule.want, rule.normalize) {
			return false
		}
	}
	return true
}

func matchValue(value any, want string, normalize Normalization) bool {
	switch normalize {
	case NormalizeFold:
		return strings.EqualFold(strings.TrimSpace(stringify(value)), strings.TrimSpace(want))
	case NormalizeBool:
		got, ok := asBool(value)
		if !ok {
			return false
		}
		expected, ok := asBool(want)
		return ok && got == expected
	default:
		return stringify(value) == want
	}
}

func asBool(value any) (bool, bool) {
	if b, ok := value.(bool); ok {
		return b, true
	}
	switch strings.ToLower(strings.TrimSpace(stringify(value))) {
	case "true", "active", "yes", "1", "on":
		return true, true
	case "false", "inactive", "no", "0", "off":
		return false, true
	}
	return false, false
}

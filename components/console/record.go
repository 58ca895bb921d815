package console

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ettle/strcase"
	"github.com/shopspring/decimal"
)

// Record is a decoded entity (clinic, order, product, vendor, doctor).
type Record map[string]any

// Lookup resolves a field by name or dotted path. Snake case names fall back
// to their lowerCamel form so manifests may use either spelling.
func (r Record) Lookup(path string) (any, bool) {
	if r == nil || path == "" {
		return nil, false
	}
	var current any = map[string]any(r)
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		value, ok := m[part]
		if !ok {
			value, ok = m[strcase.ToCamel(part)]
		}
		if !ok {
			return nil, false
		}
		current = value
	}
	return current, true
}

// Text renders a field as text, "" when missing.
func (r Record) Text(path string) string {
	value, ok := r.Lookup(path)
	if !ok {
		return ""
	}
	return stringify(value)
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	}
	return nil, false
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case fmt.Stringer:
		return val.String()
	}
	return fmt.Sprint(v)
}

// Aggregate holds section-level stats such as counts and revenue.
type Aggregate map[string]any

// Int reads a numeric stat, 0 when missing or not numeric.
func (a Aggregate) Int(key string) int64 {
	d, ok := a.decimal(key)
	if !ok {
		return 0
	}
	return d.IntPart()
}

// Decimal reads a money or percentage stat. Numeric strings are accepted.
func (a Aggregate) Decimal(key string) decimal.Decimal {
	d, _ := a.decimal(key)
	return d
}

// String reads a stat as text.
func (a Aggregate) String(key string) string {
	return Record(a).Text(key)
}

func (a Aggregate) decimal(key string) (decimal.Decimal, bool) {
	value, ok := Record(a).Lookup(key)
	if !ok {
		return decimal.Zero, false
	}
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		return d, err == nil
	}
	return decimal.Zero, false
}

func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneRecords(in []Record) []Record {
	if in == nil {
		return nil
	}
	out := make([]Record, len(in))
	copy(out, in)
	return out
}

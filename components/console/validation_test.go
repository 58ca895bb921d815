package console

import (
	"errors"
	"testing"
)

func TestJSONSchemaValidatorAcceptsDeclaredValues(t *testing.T) {
	v := NewJSONSchemaValidator()
	def, _ := NewRegistry().Definition(SectionOrders)
	err := v.Validate(def, FilterCriteria{SearchTerm: "ORD", Fields: map[string]string{"status": "SHIPPED", "priority": "high"}})
	if err != nil {
		t.Fatalf("expected criteria to validate: %v", err)
	}
}

func TestJSONSchemaValidatorRejectsUndeclaredValue(t *testing.T) {
	v := NewJSONSchemaValidator()
	def, _ := NewRegistry().Definition(SectionOrders)
	err := v.Validate(def, FilterCriteria{Fields: map[string]string{"status": "shipped"}})
	if !errors.Is(err, ErrInvalidCriteria) {
		t.Fatalf("expected invalid criteria, got %v", err)
	}
}

func TestJSONSchemaValidatorOpenSections(t *testing.T) {
	v := NewJSONSchemaValidator()
	def, _ := NewRegistry().Definition(SectionMarketplace)
	if err := v.Validate(def, FilterCriteria{Fields: map[string]string{"brand": "3M"}}); err != nil {
		t.Fatalf("sections without declared filters accept any field: %v", err)
	}
}

func TestJSONSchemaValidatorCachesSchemas(t *testing.T) {
	v := NewJSONSchemaValidator()
	def, _ := NewRegistry().Definition(SectionDoctors)
	for i := 0; i < 3; i++ {
		if err := v.Validate(def, DefaultCriteria()); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}
	if len(v.compiled) != 1 {
		t.Fatalf("expected one compiled schema, got %d", len(v.compiled))
	}
	v.Forget(SectionDoctors)
	if len(v.compiled) != 0 {
		t.Fatalf("expected cache cleared")
	}
}

func TestJSONSchemaValidatorAcceptsAnySentinelSpelling(t *testing.T) {
	v := NewJSONSchemaValidator()
	def, _ := NewRegistry().Definition(SectionClinics)
	for _, value := range []string{"All", "all", "ALL", " All ", "", "   "} {
		criteria := FilterCriteria{Fields: map[string]string{"status": value}}
		if !IsAll(value) {
			t.Fatalf("expected %q to be the sentinel", value)
		}
		if err := v.Validate(def, criteria); err != nil {
			t.Fatalf("sentinel %q rejected: %v", value, err)
		}
		if criteria.Fields["status"] != value {
			t.Fatalf("validation must not mutate the caller's criteria")
		}
	}
}

func TestJSONSchemaValidatorRejectsSentinelOnUndeclaredField(t *testing.T) {
	v := NewJSONSchemaValidator()
	def, _ := NewRegistry().Definition(SectionClinics)
	err := v.Validate(def, FilterCriteria{Fields: map[string]string{"region": "ALL"}})
	if !errors.Is(err, ErrInvalidCriteria) {
		t.Fatalf("expected invalid criteria, got %v", err)
	}
}

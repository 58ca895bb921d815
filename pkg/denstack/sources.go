package denstack

import (
	"context"
	"errors"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

// NewFallbackSource serves slices from primary and switches to fallback only
// for endpoints the primary does not serve. Auth and transport failures are
// returned as-is so the console degrades instead of masking outages.
func NewFallbackSource(primary, fallback console.DataSource) console.DataSource {
	return &fallbackSource{primary: primary, fallback: fallback}
}

type fallbackSource struct {
	primary  console.DataSource
	fallback console.DataSource
}

func (s *fallbackSource) Fetch(ctx context.Context, req console.FetchRequest) (console.SliceData, error) {
	data, err := s.primary.Fetch(ctx, req)
	if err == nil || s.fallback == nil || !errors.Is(err, ErrNotFound) {
		return data, err
	}
	return s.fallback.Fetch(ctx, req)
}

// RegisterSources routes the given sections through source.
func RegisterSources(reg *console.Registry, source console.DataSource, sections ...console.SectionID) error {
	for _, id := range sections {
		if err := reg.RegisterSource(id, source); err != nil {
			return err
		}
	}
	return nil
}

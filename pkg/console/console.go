package console

import (
	core "github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

// Shell exposes the underlying components/console.Shell type.
type Shell = core.Shell

// Options re-export for convenience.
type Options = core.Options

// SectionView, Session and NavigationState are the read models front-ends
// render.
type (
	SectionView     = core.SectionView
	Session         = core.Session
	NavigationState = core.NavigationState
	SectionID       = core.SectionID
	Credentials     = core.Credentials
	FilterCriteria  = core.FilterCriteria
)

// NewShell proxies to the internal constructor.
func NewShell(opts Options) (*Shell, error) {
	return core.NewShell(opts)
}

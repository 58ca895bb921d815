package denstack

import "github.com/adharshSciPy/DenStack-Superadmin/components/console"

// Client is the union of the collaborator calls the console needs.
type Client interface {
	console.AuthClient
	console.DataSource
}

var (
	_ Client = (*HTTPClient)(nil)
	_ Client = (*MockClient)(nil)
)

package denstack

import (
	"context"
	"errors"
	"testing"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

func TestMockClientLoginAndFetch(t *testing.T) {
	client := NewMockClient(DemoData())
	ctx := context.Background()

	if _, err := client.Login(ctx, console.Credentials{Email: DemoEmail, Password: "wrong"}); err == nil {
		t.Fatalf("expected wrong password to fail")
	}
	result, err := client.Login(ctx, console.Credentials{Email: DemoEmail, Password: DemoPassword})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	def, _ := console.NewRegistry().Definition(console.SectionClinics)
	slice, _ := def.Slice("clinics")
	data, err := client.Fetch(ctx, console.FetchRequest{Section: def.ID, Slice: slice, Token: result.Token})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(data.Records) != 4 {
		t.Fatalf("expected demo clinics, got %d", len(data.Records))
	}
	data.Records[0]["name"] = "mutated"
	again, _ := client.Fetch(ctx, console.FetchRequest{Section: def.ID, Slice: slice, Token: result.Token})
	if again.Records[0].Text("name") == "mutated" {
		t.Fatalf("fixtures must be cloned")
	}
}

func TestMockClientRevokeTokens(t *testing.T) {
	client := NewMockClient(DemoData())
	client.RevokeTokens()
	_, err := client.Fetch(context.Background(), console.FetchRequest{Section: console.SectionOrders, Slice: console.SliceDefinition{Name: "orders"}, Token: DemoToken})
	if !console.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestFallbackSourceOnlyCoversMissingEndpoints(t *testing.T) {
	fixtures := NewMockClient(DemoData()).Fixtures()
	primaryErr := errors.New("connection refused")
	primary := console.DataSourceFunc(func(_ context.Context, req console.FetchRequest) (console.SliceData, error) {
		if req.Slice.Name == "clinics" {
			return console.SliceData{}, ErrNotFound
		}
		return console.SliceData{}, primaryErr
	})
	source := NewFallbackSource(primary, fixtures)

	data, err := source.Fetch(context.Background(), console.FetchRequest{Section: console.SectionClinics, Slice: console.SliceDefinition{Name: "clinics"}, Token: "live"})
	if err != nil || len(data.Records) != 4 {
		t.Fatalf("expected fixture clinics, got %v %v", data, err)
	}
	_, err = source.Fetch(context.Background(), console.FetchRequest{Section: console.SectionClinics, Slice: console.SliceDefinition{Name: "counts"}, Token: "live"})
	if !errors.Is(err, primaryErr) {
		t.Fatalf("transport errors must not be masked, got %v", err)
	}
}

func TestRegisterSources(t *testing.T) {
	reg := console.NewRegistry()
	source := NewMockClient(DemoData())
	if err := RegisterSources(reg, source, console.SectionClinics, console.SectionOrders); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, ok := reg.Source(console.SectionOrders); !ok {
		t.Fatalf("expected orders source registered")
	}
	if _, ok := reg.Source(console.SectionVendors); ok {
		t.Fatalf("vendors should use the default source")
	}
}

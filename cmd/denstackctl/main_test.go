package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
	"github.com/adharshSciPy/DenStack-Superadmin/pkg/denstack"
)

func demoConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "denstack.yaml")
	body := "demo: true\n" +
		"session:\n  path: " + filepath.Join(dir, "session") + "\n" +
		"log:\n  output: discard\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	prev := stdout
	stdout = &out
	t.Cleanup(func() { stdout = prev })

	var c cli
	parser, err := kong.New(&c,
		kong.Name("denstackctl"),
		kong.Exit(func(int) { t.Fatalf("unexpected exit") }),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
		kong.Bind(&c.Globals),
	)
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	err = kctx.Run()
	return out.String(), err
}

func login(t *testing.T, cfg string) {
	t.Helper()
	out, err := run(t, "--config", cfg, "login", "--email", denstack.DemoEmail, "--password", denstack.DemoPassword)
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Super Admin")
}

func TestLoginWhoamiLogout(t *testing.T) {
	cfg := demoConfig(t)

	_, err := run(t, "--config", cfg, "whoami")
	require.ErrorIs(t, err, errNotSignedIn)

	_, err = run(t, "--config", cfg, "login", "--email", denstack.DemoEmail, "--password", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid email or password")

	login(t, cfg)
	out, err := run(t, "--config", cfg, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, denstack.DemoEmail)
	assert.Contains(t, out, "superadmin")
	assert.NotContains(t, out, denstack.DemoToken)

	out, err = run(t, "--config", cfg, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")
	_, err = run(t, "--config", cfg, "whoami")
	require.ErrorIs(t, err, errNotSignedIn)
}

func TestSectionsListsSidebarOrder(t *testing.T) {
	out, err := run(t, "--config", demoConfig(t), "sections")
	require.NoError(t, err)
	dashboard := strings.Index(out, "dashboard")
	clinics := strings.Index(out, "clinics")
	settings := strings.Index(out, "settings")
	require.True(t, dashboard >= 0 && clinics >= 0 && settings >= 0, out)
	assert.Less(t, dashboard, clinics)
	assert.Less(t, clinics, settings)
}

func TestListFiltersRecords(t *testing.T) {
	cfg := demoConfig(t)

	_, err := run(t, "--config", cfg, "list", "clinics")
	require.ErrorIs(t, err, errNotSignedIn)

	login(t, cfg)
	out, err := run(t, "--config", cfg, "list", "clinics", "--search", "dental")
	require.NoError(t, err)
	assert.Contains(t, out, "SmileCare Dental Center")
	assert.Contains(t, out, "Dental Care Plus")
	assert.NotContains(t, out, "Bright Smile Clinic")
	assert.Contains(t, out, "2 of 4 records")

	out, err = run(t, "--config", cfg, "list", "clinics", "-f", "status=Trial")
	require.NoError(t, err)
	assert.Contains(t, out, "Family Orthodontics")
	assert.Contains(t, out, "1 of 4 records")

	_, err = run(t, "--config", cfg, "list", "billing")
	require.ErrorIs(t, err, console.ErrUnknownSection)
}

func TestListJSONRedactsToken(t *testing.T) {
	cfg := demoConfig(t)
	login(t, cfg)

	out, err := run(t, "--config", cfg, "list", "orders", "--json")
	require.NoError(t, err)
	var view console.SectionView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, console.SectionOrders, view.Section)
	assert.Len(t, view.Records, 3)
	assert.Empty(t, view.Session.Token)
	assert.True(t, view.Session.IsAuthenticated)
}

func TestManifestExportAndValidate(t *testing.T) {
	cfg := demoConfig(t)
	out := filepath.Join(t.TempDir(), "manifests", "sections.yaml")

	msg, err := run(t, "--config", cfg, "manifest", "export", "--section", "clinics", "--section", "orders", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, msg, "Exported 2 sections")

	doc, err := console.ReadManifest(out)
	require.NoError(t, err)
	assert.Equal(t, "denstack-superadmin", doc.Name)
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, console.SectionClinics, doc.Sections[0].ID)

	_, err = run(t, "--config", cfg, "manifest", "export", "--out", out)
	require.Error(t, err)

	msg, err = run(t, "manifest", "validate", out)
	require.NoError(t, err)
	assert.Contains(t, msg, "2 sections")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("version: 2\nsections: []\n"), 0o600))
	_, err = run(t, "manifest", "validate", out, bad)
	require.Error(t, err)
}

func TestManifestExportToStdout(t *testing.T) {
	out, err := run(t, "--config", demoConfig(t), "manifest", "export", "--section", "vendors")
	require.NoError(t, err)
	doc, err := console.DecodeManifest(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "Vendors", doc.Sections[0].Label)
}

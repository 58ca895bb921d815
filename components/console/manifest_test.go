package console

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeManifest(t *testing.T) {
	const payload = `
version: 1
name: regional
sections:
  - id: vendors
    label: Suppliers
    group: ecommerce
    search: [name, city]
    filters:
      - name: status
        normalize: fold
    primary_slice: vendors
    slices:
      - name: vendors
        endpoint:
          service: inventory
          path: api/v2/vendor/list
          envelope: items
`
	doc, err := DecodeManifest(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)

	def := doc.Sections[0]
	assert.Equal(t, SectionVendors, def.ID)
	assert.Equal(t, "Suppliers", def.Label)
	assert.Equal(t, []string{"name", "city"}, def.Search)
	require.Len(t, def.Slices, 1)
	assert.Equal(t, SliceRecords, def.Slices[0].Kind, "kind defaults to records")
	assert.Equal(t, "items", def.Slices[0].Endpoint.Envelope)
}

func TestRegistryLoadManifestDocumentOverridesDefaults(t *testing.T) {
	doc := &SectionManifestDocument{
		Version: manifestVersionV1,
		Sections: []SectionDefinition{
			{ID: SectionSettings, Label: "Platform Settings", Group: GroupSystem},
		},
	}
	reg := NewRegistry()
	require.NoError(t, reg.LoadManifestDocument(doc))

	def, ok := reg.Definition(SectionSettings)
	require.True(t, ok)
	assert.Equal(t, "Platform Settings", def.Label)
	assert.Len(t, reg.Definitions(), len(SectionIDs()))
}

func TestManifestRejectsUnknownSection(t *testing.T) {
	const payload = `
sections:
  - id: billing
    label: Billing
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a known section")
}

func TestManifestDuplicateSections(t *testing.T) {
	const payload = `
sections:
  - id: audit
    label: First
  - id: audit
    label: Second
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicates section")
}

func TestManifestRejectsUnknownFields(t *testing.T) {
	const payload = `
sections:
  - id: audit
    label: Audit
    colour: red
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
}

func TestManifestRejectsBadSlices(t *testing.T) {
	const payload = `
sections:
  - id: sales
    label: Sales
    slices:
      - name: metrics
        kind: chart
        endpoint: {service: auth, path: x}
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}

func TestDocsManifestsAreValid(t *testing.T) {
	dir := filepath.Join("..", "..", "docs", "manifests")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	reg := NewRegistry()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		doc, err := ReadManifest(path)
		require.NoErrorf(t, err, "manifest %s should parse", path)
		require.NoErrorf(t, reg.LoadManifestDocument(doc), "manifest %s should register", path)
	}
}

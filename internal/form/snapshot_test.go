package form

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	fh, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(fh, img))
	require.NoError(t, fh.Close())
}

func TestParseSnapshot_FieldsFilesAndLists(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "hull.png"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("plain text"), 0o644))

	data := []byte(`
fields:
  vesselName: MV Example
  grossTonnage: 25000
  operatingSpeed: 14.5
  includeSignatureBlock: "yes-not-a-bool"
  madeUpField: ignored
files:
  diagramFiles: [hull.png, notes.txt, missing.png]
  coverPhoto: hull.png
afc:
  - productName: Coating A
    type: Biocidal
  - ProductName: Coating B
    serviceLife: 5
mgps:
  - model: X-100
`)
	st, err := ParseSnapshot(data, dir, PlanSchema())
	require.NoError(t, err)

	acc := NewAccessor(st, PlanSchema())
	assert.Equal(t, "MV Example", acc.Text(FieldVesselName))
	assert.Equal(t, "25000", acc.Text(FieldGrossTonnage))
	assert.Equal(t, "14.5", acc.Text(FieldOperatingSpeed))
	assert.False(t, acc.Checked(FieldIncludeSignatureBlock))
	_, ok := st.Value("madeUpField")
	assert.False(t, ok)

	assert.Equal(t, []string{FileURL(filepath.Join(dir, "hull.png"))}, acc.Images(FieldDiagramFiles))
	assert.Equal(t, FileURL(filepath.Join(dir, "hull.png")), acc.Image(FieldCoverPhoto))

	assert.Equal(t, 2, acc.Items(ListAFC))
	assert.Equal(t, "Coating A", acc.ItemText(ListAFC, ItemProductName, 1))
	assert.Equal(t, "Biocidal", acc.ItemText(ListAFC, ItemType, 1))
	assert.Equal(t, "Coating B", acc.ItemText(ListAFC, ItemProductName, 2))
	assert.Equal(t, "5", acc.ItemText(ListAFC, ItemServiceLife, 2))
	assert.Equal(t, 1, acc.Items(ListMGPS))
	assert.Equal(t, "X-100", acc.ItemText(ListMGPS, ItemModel, 1))
}

func TestParseSnapshot_KeepsScalarText(t *testing.T) {
	data := []byte(`
fields:
  documentNumber: 0123456
  documentRevision: 1.10
  grossTonnage: 0x1F
  vesselName: ~
  imoNumber:
afc:
  - productName: 007
    serviceLife: 5.0
`)
	st, err := ParseSnapshot(data, t.TempDir(), PlanSchema())
	require.NoError(t, err)

	acc := NewAccessor(st, PlanSchema())
	assert.Equal(t, "0123456", acc.Text(FieldDocumentNumber))
	assert.Equal(t, "1.10", acc.Text(FieldDocumentRevision))
	assert.Equal(t, "0x1F", acc.Text(FieldGrossTonnage))
	assert.Equal(t, "", acc.Text(FieldVesselName))
	assert.Equal(t, "", acc.Text(FieldIMONumber))
	assert.Equal(t, "007", acc.ItemText(ListAFC, ItemProductName, 1))
	assert.Equal(t, "5.0", acc.ItemText(ListAFC, ItemServiceLife, 1))
}

func TestParseSnapshot_CheckboxValues(t *testing.T) {
	for _, raw := range []string{"true", `"true"`, `"1"`} {
		st, err := ParseSnapshot([]byte("fields:\n  includeSignatureBlock: "+raw+"\n"), t.TempDir(), PlanSchema())
		require.NoError(t, err, raw)
		assert.True(t, NewAccessor(st, PlanSchema()).Checked(FieldIncludeSignatureBlock), raw)
	}
}

func TestParseSnapshot_JSONInput(t *testing.T) {
	st, err := ParseSnapshot([]byte(`{"fields": {"vesselName": "MV Json"}, "afc": null}`), "", PlanSchema())
	require.NoError(t, err)
	assert.Equal(t, "MV Json", NewAccessor(st, PlanSchema()).Text(FieldVesselName))
	assert.Equal(t, 1, st.Items(ListAFC))
}

func TestValidateSnapshot_RejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "unknown top-level key", data: "vessel:\n  name: x\n"},
		{name: "nested field value", data: "fields:\n  vesselName:\n    first: x\n"},
		{name: "numeric file", data: "files:\n  coverPhoto: 12\n"},
		{name: "afc not a list", data: "afc:\n  productName: x\n"},
		{name: "afc item with list value", data: "afc:\n  - productName: [a, b]\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSnapshot([]byte(tc.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validating snapshot")
		})
	}
}

func TestValidateSnapshot_EmptyDocumentIsValid(t *testing.T) {
	assert.NoError(t, ValidateSnapshot(nil))
	assert.NoError(t, ValidateSnapshot([]byte("{}")))
}

func TestParseSnapshot_MalformedYAML(t *testing.T) {
	_, err := ParseSnapshot([]byte("fields: [unclosed"), "", PlanSchema())
	assert.Error(t, err)
}

func TestLoadSnapshot_ResolvesRelativeToFile(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "logo.png"))
	path := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("files:\n  companyLogo: logo.png\n"), 0o644))

	st, err := LoadSnapshot(path, PlanSchema())
	require.NoError(t, err)
	assert.Equal(t, FileURL(filepath.Join(dir, "logo.png")), NewAccessor(st, PlanSchema()).Image(FieldCompanyLogo))

	_, err = LoadSnapshot(filepath.Join(dir, "absent.yaml"), PlanSchema())
	assert.ErrorContains(t, err, "reading snapshot")
}

func TestEncodeSnapshot_BlankTemplateParses(t *testing.T) {
	schema := PlanSchema()
	out, err := EncodeSnapshot(NewBuilder(schema).State(), schema)
	require.NoError(t, err)
	assert.Contains(t, string(out), "vesselName: \"\"")
	assert.Contains(t, string(out), "includeSignatureBlock: false")

	st, err := ParseSnapshot(out, t.TempDir(), schema)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Items(ListAFC))
	assert.Equal(t, "", NewAccessor(st, schema).Text(FieldVesselName))
}

func TestEncodeSnapshot_RoundTripsValues(t *testing.T) {
	dir := t.TempDir()
	logo := filepath.Join(dir, "logo.png")
	writePNG(t, logo)

	schema := PlanSchema()
	b := NewBuilder(schema)
	b.SetText(FieldVesselName, "MV Round Trip")
	b.SetChecked(FieldIncludeSignatureBlock, true)
	b.SetFiles(FieldCompanyLogo, InspectFile(logo))
	_, _ = b.AppendItem(ListMGPS)
	require.NoError(t, b.SetItemText(ListMGPS, 2, ItemModel, "X-200"))

	out, err := EncodeSnapshot(b.State(), schema)
	require.NoError(t, err)

	st, err := ParseSnapshot(out, dir, schema)
	require.NoError(t, err)
	acc := NewAccessor(st, schema)
	assert.Equal(t, "MV Round Trip", acc.Text(FieldVesselName))
	assert.True(t, acc.Checked(FieldIncludeSignatureBlock))
	assert.Equal(t, FileURL(logo), acc.Image(FieldCompanyLogo))
	assert.Equal(t, 2, acc.Items(ListMGPS))
	assert.Equal(t, "X-200", acc.ItemText(ListMGPS, ItemModel, 2))
}

func TestInspectFile(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "photo.png")
	writePNG(t, img)

	f := InspectFile(img)
	assert.True(t, f.Loaded)
	assert.Equal(t, "image/png", f.MediaType)
	assert.Equal(t, "photo.png", f.Name)

	missing := InspectFile(filepath.Join(dir, "gone.jpg"))
	assert.False(t, missing.Loaded)
	assert.Equal(t, "image/jpeg", missing.MediaType)

	fake := filepath.Join(dir, "fake.png")
	require.NoError(t, os.WriteFile(fake, []byte("not really a png"), 0o644))
	bad := InspectFile(fake)
	assert.False(t, bad.Loaded)
	assert.False(t, bad.IsImage())
}

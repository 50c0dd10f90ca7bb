package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testAccessor(build func(b *Builder)) Accessor {
	b := NewBuilder(PlanSchema())
	build(b)
	return NewAccessor(b.State(), PlanSchema())
}

func TestAccessor_ReadsByKind(t *testing.T) {
	acc := testAccessor(func(b *Builder) {
		b.SetText(FieldVesselName, "MV Example")
		b.SetChecked(FieldIncludeSignatureBlock, true)
		b.SetFiles(FieldCoverPhoto, File{Name: "c.jpg", MediaType: "image/jpeg", Locator: "file:///c.jpg", Loaded: true})
		b.SetFiles(FieldDiagramFiles,
			File{Name: "a.png", MediaType: "image/png", Locator: "file:///a.png", Loaded: true},
			File{Name: "b.png", MediaType: "image/png", Locator: "file:///b.png"},
		)
	})

	assert.Equal(t, "MV Example", acc.Text(FieldVesselName))
	assert.True(t, acc.Checked(FieldIncludeSignatureBlock))
	assert.Equal(t, "file:///c.jpg", acc.Image(FieldCoverPhoto))
	assert.Equal(t, "file:///c.jpg", acc.Text(FieldCoverPhoto))
	assert.Equal(t, []string{"file:///a.png"}, acc.Images(FieldDiagramFiles))
	assert.Equal(t, "", acc.Text(FieldIncludeSignatureBlock))
}

func TestAccessor_EmptySentinels(t *testing.T) {
	acc := testAccessor(func(*Builder) {})

	assert.Equal(t, "", acc.Text(FieldVesselName))
	assert.False(t, acc.Checked(FieldIncludeSignatureBlock))
	assert.Equal(t, "", acc.Image(FieldCoverPhoto))
	assert.Nil(t, acc.Images(FieldDiagramFiles))
	assert.Equal(t, "", acc.Text("notAField"))
	assert.False(t, acc.Checked("notAField"))
	assert.Equal(t, "", acc.Image("notAField"))
}

func TestAccessor_NonImageFileIsNone(t *testing.T) {
	acc := testAccessor(func(b *Builder) {
		b.SetFiles(FieldIAFSFile, File{Name: "cert.pdf", MediaType: "application/pdf", Locator: "file:///cert.pdf", Loaded: false})
	})
	assert.Equal(t, "", acc.Image(FieldIAFSFile))
}

func TestAccessor_SingleFileUsesFirstImage(t *testing.T) {
	acc := testAccessor(func(b *Builder) {
		b.SetFiles(FieldCompanyLogo,
			File{Name: "logo.svg", MediaType: "image/svg+xml", Locator: "file:///logo.svg"},
			File{Name: "logo.png", MediaType: "image/png", Locator: "file:///logo.png"},
		)
	})
	assert.Equal(t, "file:///logo.svg", acc.Image(FieldCompanyLogo))
}

func TestAccessor_TextIsNFC(t *testing.T) {
	acc := testAccessor(func(b *Builder) {
		b.SetText(FieldFlag, "Curac\u0327ao")
	})
	assert.Equal(t, "Cura\u00e7ao", acc.Text(FieldFlag))
}

func TestAccessor_ItemText(t *testing.T) {
	acc := testAccessor(func(b *Builder) {
		_, _ = b.AppendItem(ListAFC)
		_ = b.SetItemText(ListAFC, 2, ItemProductName, "Coating B")
	})
	assert.Equal(t, 2, acc.Items(ListAFC))
	assert.Equal(t, "Coating B", acc.ItemText(ListAFC, ItemProductName, 2))
	assert.Equal(t, "", acc.ItemText(ListAFC, ItemProductName, 1))
	assert.Equal(t, "", acc.ItemText(ListAFC, ItemProductName, 9))
}

func TestAccessor_CheckboxTextIsEmpty(t *testing.T) {
	acc := testAccessor(func(b *Builder) {
		b.SetChecked(FieldIncludeSignatureBlock, true)
	})
	assert.Equal(t, "", acc.Text(FieldIncludeSignatureBlock))
	assert.False(t, acc.Checked(FieldVesselName))
}

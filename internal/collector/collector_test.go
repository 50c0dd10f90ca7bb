package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/bfmp/internal/domain"
	"github.com/alexanderramin/bfmp/internal/form"
	"github.com/alexanderramin/bfmp/internal/presence"
	"github.com/alexanderramin/bfmp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotOf(st form.State) domain.PlanData {
	return Snapshot(form.NewAccessor(st, form.PlanSchema()))
}

func TestSnapshot_EmptyFormYieldsEmptySentinels(t *testing.T) {
	p := snapshotOf(testutil.NewEmptyPlanState())

	assert.Equal(t, "", p.Vessel.Name)
	assert.Equal(t, "", p.Document.CoverPhoto)
	assert.False(t, p.Document.IncludeSignatureBlock)
	assert.Equal(t, domain.FormatFullPlan, p.Document.Format)
	assert.Empty(t, p.Coatings, "blank protected item is not a coating")
	assert.Empty(t, p.GrowthSystems)
	assert.Empty(t, p.Niche.Diagrams)
}

func TestSnapshot_ReadsScalarsAndLists(t *testing.T) {
	st := testutil.NewCompletePlanState(
		testutil.WithText(form.FieldPlanFormat, "BFRB Only"),
		testutil.WithChecked(form.FieldIncludeSignatureBlock, true),
		testutil.WithText(form.FieldAdditionalReferences, "Company SMS Chapter 7"),
		testutil.WithCoating(map[string]string{form.ItemProductName: "Coating B"}),
		testutil.WithGrowthSystem(map[string]string{form.ItemModel: "X-100", form.ItemManual: "Yes"}),
	)
	p := snapshotOf(st)

	assert.Equal(t, "MV Example", p.Vessel.Name)
	assert.Equal(t, "1234567", p.Vessel.IMO)
	assert.Equal(t, "Jane Smith", p.Revision.ResponsiblePerson)
	assert.Equal(t, domain.FormatBFRBOnly, p.Document.Format)
	assert.True(t, p.Document.IncludeSignatureBlock)
	assert.Equal(t, "Company SMS Chapter 7", p.References)

	require.Len(t, p.Coatings, 2)
	assert.Equal(t, "Intersmooth 7460HS", p.Coatings[0].ProductName)
	assert.Equal(t, "Coating B", p.Coatings[1].ProductName)
	assert.Equal(t, "", p.Coatings[1].Type)
	require.Len(t, p.GrowthSystems, 1)
	assert.Equal(t, domain.MGPSEntry{Model: "X-100", Manual: "Yes"}, p.GrowthSystems[0])
}

func TestSnapshot_BlankItemsKeepTheirPosition(t *testing.T) {
	b := form.NewBuilder(form.PlanSchema())
	_, _ = b.AppendItem(form.ListAFC)
	_, _ = b.AppendItem(form.ListAFC)
	require.NoError(t, b.SetItemText(form.ListAFC, 1, form.ItemProductName, "  "))
	require.NoError(t, b.SetItemText(form.ListAFC, 2, form.ItemProductName, "Coating B"))
	require.NoError(t, b.SetItemText(form.ListAFC, 3, form.ItemManufacturer, "Third Co"))

	p := snapshotOf(b.State())
	require.Len(t, p.Coatings, 3)
	assert.True(t, p.Coatings[0].IsEmpty())
	assert.Equal(t, "Coating B", p.Coatings[1].ProductName)
	assert.Equal(t, "Third Co", p.Coatings[2].Manufacturer)
}

func TestSnapshot_BlankGrowthSystemKeepsPosition(t *testing.T) {
	b := form.NewBuilder(form.PlanSchema())
	_, _ = b.AppendItem(form.ListMGPS)
	require.NoError(t, b.SetItemText(form.ListMGPS, 2, form.ItemModel, "X-100"))

	p := snapshotOf(b.State())
	require.Len(t, p.GrowthSystems, 2)
	assert.True(t, p.GrowthSystems[0].IsEmpty())
	assert.Equal(t, "X-100", p.GrowthSystems[1].Model)
}

func TestSnapshot_ImagesOnlyFromLoadedFiles(t *testing.T) {
	st := testutil.NewEmptyPlanState(
		testutil.WithFiles(form.FieldDiagramFiles,
			form.File{Name: "a.png", MediaType: "image/png", Locator: "file:///a.png", Loaded: true},
			form.File{Name: "b.png", MediaType: "image/png", Locator: "file:///b.png"},
		),
		testutil.WithFiles(form.FieldIAFSFile, form.File{Name: "iafs.pdf", MediaType: "application/pdf", Locator: "file:///iafs.pdf"}),
		testutil.WithFiles(form.FieldCoverPhoto, form.File{Name: "c.jpg", MediaType: "image/jpeg", Locator: "file:///c.jpg", Loaded: true}),
	)
	p := snapshotOf(st)
	assert.Equal(t, []string{"file:///a.png"}, p.Niche.Diagrams)
	assert.Equal(t, "", p.Certification.IAFSFile)
	assert.Equal(t, "file:///c.jpg", p.Document.CoverPhoto)
}

func TestSnapshot_IsRepeatable(t *testing.T) {
	st := testutil.NewCompletePlanState()
	assert.Equal(t, snapshotOf(st), snapshotOf(st))
}

func TestCollect_ValidSkipsPolicy(t *testing.T) {
	called := false
	policy := presence.PolicyFunc(func(context.Context, presence.Result) (bool, error) {
		called = true
		return false, nil
	})

	p, res, err := Collect(context.Background(), testutil.NewCompletePlanState(), form.PlanSchema(), policy)
	require.NoError(t, err)
	assert.True(t, res.Valid())
	assert.False(t, called)
	assert.Equal(t, "MV Example", p.Vessel.Name)
}

func TestCollect_IncompleteAsksPolicy(t *testing.T) {
	st := testutil.NewCompletePlanState(testutil.WithText(form.FieldVesselName, ""))

	var asked presence.Result
	proceed := presence.PolicyFunc(func(_ context.Context, r presence.Result) (bool, error) {
		asked = r
		return true, nil
	})
	p, res, err := Collect(context.Background(), st, form.PlanSchema(), proceed)
	require.NoError(t, err)
	assert.Equal(t, []string{"Vessel Details"}, asked.Missing)
	assert.Equal(t, asked, res)
	assert.Equal(t, "1234567", p.Vessel.IMO)

	p, res, err = Collect(context.Background(), st, form.PlanSchema(), presence.NeverProceed)
	assert.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, domain.PlanData{}, p)
	assert.Equal(t, []string{"Vessel Details"}, res.Missing)
}

func TestCollect_NilPolicyAborts(t *testing.T) {
	_, _, err := Collect(context.Background(), testutil.NewEmptyPlanState(), form.PlanSchema(), nil)
	assert.ErrorIs(t, err, ErrAborted)
}

func TestCollect_PolicyErrorWrapped(t *testing.T) {
	boom := errors.New("terminal closed")
	policy := presence.PolicyFunc(func(context.Context, presence.Result) (bool, error) { return false, boom })

	_, _, err := Collect(context.Background(), testutil.NewEmptyPlanState(), form.PlanSchema(), policy)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrAborted)
	assert.Contains(t, err.Error(), "confirming missing fields")
}

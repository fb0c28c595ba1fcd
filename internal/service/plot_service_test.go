package service

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"turftrack/internal/model"
	"turftrack/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	return db
}

func newPlotService(t *testing.T) (PlotService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewPlotService(repository.NewPlotRepository(db)), db
}

func centerInput(name string, parentID *uint) PlotInput {
	lat, lng := 40.42, -86.91
	return PlotInput{
		Name:         name,
		ParentPlotID: parentID,
		CenterLat:    &lat,
		CenterLng:    &lng,
	}
}

func mustCreatePlot(t *testing.T, svc PlotService, name string, parentID *uint) *model.Plot {
	t.Helper()
	plot, err := svc.Create(centerInput(name, parentID), nil)
	require.NoError(t, err)
	return plot
}

func TestCreatePlot_GeometryInvariant(t *testing.T) {
	svc, _ := newPlotService(t)

	_, err := svc.Create(PlotInput{Name: "NoGeometry"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))

	lat, lng := 40.42, -86.91
	_, err = svc.Create(PlotInput{Name: "CenterOnly", CenterLat: &lat, CenterLng: &lng}, nil)
	assert.NoError(t, err)

	_, err = svc.Create(PlotInput{
		Name: "PolygonOnly",
		PolygonCoordinates: model.Polygon{
			{Lat: 40.42, Lng: -86.91},
			{Lat: 40.43, Lng: -86.91},
			{Lat: 40.43, Lng: -86.90},
		},
	}, nil)
	assert.NoError(t, err)

	// An incomplete center pair does not satisfy the invariant.
	_, err = svc.Create(PlotInput{Name: "LatOnly", CenterLat: &lat}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestCreatePlot_DuplicateName(t *testing.T) {
	svc, _ := newPlotService(t)

	mustCreatePlot(t, svc, "Plot1", nil)
	_, err := svc.Create(centerInput("Plot1", nil), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestCreatePlot_MissingParent(t *testing.T) {
	svc, _ := newPlotService(t)

	missing := uint(9999)
	_, err := svc.Create(centerInput("Orphan", &missing), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestCreatePlot_RecordsOwner(t *testing.T) {
	svc, db := newPlotService(t)

	user := model.User{Email: "owner@example.edu"}
	require.NoError(t, db.Create(&user).Error)

	plot, err := svc.Create(centerInput("Owned", nil), &user.ID)
	require.NoError(t, err)
	require.NotNil(t, plot.CreatedByID)
	assert.Equal(t, user.ID, *plot.CreatedByID)
}

func TestDisplayPath(t *testing.T) {
	svc, _ := newPlotService(t)

	a := mustCreatePlot(t, svc, "A", nil)
	b := mustCreatePlot(t, svc, "B", &a.ID)
	c := mustCreatePlot(t, svc, "C", &b.ID)

	path, err := svc.DisplayPath(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "A > B > C", path)

	path, err = svc.DisplayPath(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", path)
}

func TestAncestorChain_RootFirst(t *testing.T) {
	svc, _ := newPlotService(t)

	a := mustCreatePlot(t, svc, "A", nil)
	b := mustCreatePlot(t, svc, "B", &a.ID)
	c := mustCreatePlot(t, svc, "C", &b.ID)

	chain, err := svc.AncestorChain(c.ID)
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, "A", chain[0].Name)
	assert.Equal(t, "B", chain[1].Name)

	// The chain never contains the plot itself.
	for _, ancestor := range chain {
		assert.NotEqual(t, c.ID, ancestor.ID)
	}

	chain, err = svc.AncestorChain(a.ID)
	require.NoError(t, err)
	assert.Empty(t, chain)
}

func TestSetParent_RejectsCycles(t *testing.T) {
	svc, _ := newPlotService(t)

	a := mustCreatePlot(t, svc, "A", nil)
	b := mustCreatePlot(t, svc, "B", &a.ID)
	c := mustCreatePlot(t, svc, "C", &b.ID)

	// Self-parent.
	_, err := svc.SetParent(a.ID, &a.ID)
	assert.True(t, errors.Is(err, model.ErrCircularHierarchy))

	// Direct child.
	_, err = svc.SetParent(a.ID, &b.ID)
	assert.True(t, errors.Is(err, model.ErrCircularHierarchy))

	// Deeper descendant.
	_, err = svc.SetParent(a.ID, &c.ID)
	assert.True(t, errors.Is(err, model.ErrCircularHierarchy))

	// Legal move: reattach C directly under A.
	plot, err := svc.SetParent(c.ID, &a.ID)
	require.NoError(t, err)
	require.NotNil(t, plot.ParentPlotID)
	assert.Equal(t, a.ID, *plot.ParentPlotID)

	// Detach.
	plot, err = svc.SetParent(c.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, plot.ParentPlotID)
}

func TestSetParent_MissingParent(t *testing.T) {
	svc, _ := newPlotService(t)

	a := mustCreatePlot(t, svc, "A", nil)
	missing := uint(9999)
	_, err := svc.SetParent(a.ID, &missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestDescendants_CompleteAndUnique(t *testing.T) {
	svc, _ := newPlotService(t)

	root := mustCreatePlot(t, svc, "Root", nil)
	left := mustCreatePlot(t, svc, "Left", &root.ID)
	right := mustCreatePlot(t, svc, "Right", &root.ID)
	leaf := mustCreatePlot(t, svc, "Leaf", &left.ID)
	mustCreatePlot(t, svc, "Unrelated", nil)

	descendants, err := svc.Descendants(root.ID)
	require.NoError(t, err)

	seen := map[uint]int{}
	for _, d := range descendants {
		seen[d.ID]++
	}
	assert.Len(t, seen, 3)
	assert.Equal(t, 1, seen[left.ID])
	assert.Equal(t, 1, seen[right.ID])
	assert.Equal(t, 1, seen[leaf.ID])
}

func TestFullHierarchy(t *testing.T) {
	svc, _ := newPlotService(t)

	a := mustCreatePlot(t, svc, "A", nil)
	b := mustCreatePlot(t, svc, "B", &a.ID)
	c := mustCreatePlot(t, svc, "C", &b.ID)

	h, err := svc.FullHierarchy(b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, h.Current.ID)
	require.Len(t, h.Ancestors, 1)
	assert.Equal(t, a.ID, h.Ancestors[0].ID)
	require.Len(t, h.DirectChildren, 1)
	assert.Equal(t, c.ID, h.DirectChildren[0].ID)
	require.Len(t, h.AllDescendants, 1)
	assert.Equal(t, c.ID, h.AllDescendants[0].ID)
}

func TestHierarchyScenario(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlotService(repository.NewPlotRepository(db))

	require.NoError(t, db.Create(&model.Location{Name: "North Farm"}).Error)

	plot1 := mustCreatePlot(t, svc, "Plot1", nil)
	path, err := svc.DisplayPath(plot1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plot1", path)

	plot1A := mustCreatePlot(t, svc, "Plot1-A", &plot1.ID)
	path, err = svc.DisplayPath(plot1A.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plot1 > Plot1-A", path)

	_, err = svc.SetParent(plot1.ID, &plot1A.ID)
	assert.True(t, errors.Is(err, model.ErrCircularHierarchy))
}

func TestDeletePlot_CascadesSubtree(t *testing.T) {
	db := newTestDB(t)
	plotRepo := repository.NewPlotRepository(db)
	plotSvc := NewPlotService(plotRepo)
	treatmentSvc := NewTreatmentService(repository.NewTreatmentRepository(db), plotRepo)

	p := mustCreatePlot(t, plotSvc, "P", nil)
	d1 := mustCreatePlot(t, plotSvc, "D1", &p.ID)
	d2 := mustCreatePlot(t, plotSvc, "D2", &d1.ID)
	x := mustCreatePlot(t, plotSvc, "X", nil)

	height := 2.0
	onlyP, err := treatmentSvc.Create(TreatmentInput{
		TreatmentType: model.TreatmentMowing,
		PlotIDs:       []uint{p.ID},
		Date:          model.NewDate(2024, 5, 1),
		MowingDetails: &MowingDetailInput{HeightInches: &height},
	}, nil)
	require.NoError(t, err)

	pAndX, err := treatmentSvc.Create(TreatmentInput{
		TreatmentType: model.TreatmentMowing,
		PlotIDs:       []uint{p.ID, x.ID},
		Date:          model.NewDate(2024, 5, 2),
		MowingDetails: &MowingDetailInput{HeightInches: &height},
	}, nil)
	require.NoError(t, err)

	require.NoError(t, plotSvc.Delete(p.ID))

	for _, id := range []uint{p.ID, d1.ID, d2.ID} {
		_, err := plotSvc.Get(id)
		assert.True(t, errors.Is(err, model.ErrNotFound), "plot %d should be gone", id)
	}
	_, err = plotSvc.Get(x.ID)
	assert.NoError(t, err)

	// Treatments survive the cascade; they just lose the deleted plots.
	got, err := treatmentSvc.Get(onlyP.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Plots)

	got, err = treatmentSvc.Get(pAndX.ID)
	require.NoError(t, err)
	require.Len(t, got.Plots, 1)
	assert.Equal(t, x.ID, got.Plots[0].ID)
}

func TestUpdatePlot_GeometryStaysRequired(t *testing.T) {
	svc, _ := newPlotService(t)

	plot := mustCreatePlot(t, svc, "P", nil)

	notes := "updated"
	updated, err := svc.Update(plot.ID, PlotPatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Notes)
	assert.True(t, updated.HasGeometry())
}

func TestGetPlot_NotFound(t *testing.T) {
	svc, _ := newPlotService(t)

	_, err := svc.Get(42)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"turftrack/internal/model"
	"turftrack/internal/repository"
)

func newTreatmentFixture(t *testing.T) (TreatmentService, PlotService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	plotRepo := repository.NewPlotRepository(db)
	return NewTreatmentService(repository.NewTreatmentRepository(db), plotRepo),
		NewPlotService(plotRepo), db
}

func TestCreateTreatment_MowingScenario(t *testing.T) {
	treatments, plots, db := newTreatmentFixture(t)

	plot1 := mustCreatePlot(t, plots, "Plot1", nil)

	height := 2.5
	created, err := treatments.Create(TreatmentInput{
		TreatmentType: model.TreatmentMowing,
		PlotIDs:       []uint{plot1.ID},
		Date:          model.NewDate(2024, 5, 1),
		MowingDetails: &MowingDetailInput{
			HeightInches:     &height,
			ClippingsRemoved: true,
		},
	}, nil)
	require.NoError(t, err)

	got, err := treatments.Get(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.MowingDetails)
	assert.Equal(t, 2.5, got.MowingDetails.HeightInches)
	assert.True(t, got.MowingDetails.ClippingsRemoved)
	assert.Nil(t, got.WaterDetails)
	assert.Nil(t, got.FertilizerDetails)
	assert.Nil(t, got.ChemicalDetails)
	assert.True(t, got.DetailMatchesType())
	assert.Equal(t, "2024-05-01", got.Date.String())
	require.Len(t, got.Plots, 1)
	assert.Equal(t, plot1.ID, got.Plots[0].ID)

	// Exactly one detail row exists across the four variant tables.
	var count int64
	require.NoError(t, db.Model(&model.MowingTreatment{}).Where("treatment_id = ?", created.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateTreatment_EmptyPlotSet(t *testing.T) {
	treatments, _, _ := newTreatmentFixture(t)

	height := 2.5
	_, err := treatments.Create(TreatmentInput{
		TreatmentType: model.TreatmentMowing,
		Date:          model.NewDate(2024, 5, 1),
		MowingDetails: &MowingDetailInput{HeightInches: &height},
	}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestCreateTreatment_UnknownPlot(t *testing.T) {
	treatments, _, _ := newTreatmentFixture(t)

	height := 2.5
	_, err := treatments.Create(TreatmentInput{
		TreatmentType: model.TreatmentMowing,
		PlotIDs:       []uint{9999},
		Date:          model.NewDate(2024, 5, 1),
		MowingDetails: &MowingDetailInput{HeightInches: &height},
	}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestCreateTreatment_MismatchedPayload(t *testing.T) {
	treatments, plots, _ := newTreatmentFixture(t)

	plot := mustCreatePlot(t, plots, "Plot1", nil)
	amount := 10.0
	height := 2.5

	// Wrong variant supplied.
	_, err := treatments.Create(TreatmentInput{
		TreatmentType: model.TreatmentMowing,
		PlotIDs:       []uint{plot.ID},
		Date:          model.NewDate(2024, 5, 1),
		FertilizerDetails: &FertilizerDetailInput{
			ProductName: "Turf Builder",
			Amount:      &amount,
		},
	}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))

	// Matching variant plus an extra one.
	_, err = treatments.Create(TreatmentInput{
		TreatmentType: model.TreatmentMowing,
		PlotIDs:       []uint{plot.ID},
		Date:          model.NewDate(2024, 5, 1),
		MowingDetails: &MowingDetailInput{HeightInches: &height},
		FertilizerDetails: &FertilizerDetailInput{
			ProductName: "Turf Builder",
			Amount:      &amount,
		},
	}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))

	// No detail payload at all.
	_, err = treatments.Create(TreatmentInput{
		TreatmentType: model.TreatmentMowing,
		PlotIDs:       []uint{plot.ID},
		Date:          model.NewDate(2024, 5, 1),
	}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestCreateTreatment_UnitDefaults(t *testing.T) {
	treatments, plots, _ := newTreatmentFixture(t)

	plot := mustCreatePlot(t, plots, "Plot1", nil)
	amount := 4.0

	fert, err := treatments.Create(TreatmentInput{
		TreatmentType: model.TreatmentFertilizer,
		PlotIDs:       []uint{plot.ID},
		Date:          model.NewDate(2024, 5, 1),
		FertilizerDetails: &FertilizerDetailInput{
			ProductName: "Turf Builder",
			NPKRatio:    "20-10-10",
			Amount:      &amount,
		},
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, fert.FertilizerDetails)
	assert.Equal(t, "lbs", fert.FertilizerDetails.AmountUnit)

	chem, err := treatments.Create(TreatmentInput{
		TreatmentType: model.TreatmentChemical,
		PlotIDs:       []uint{plot.ID},
		Date:          model.NewDate(2024, 5, 2),
		ChemicalDetails: &ChemicalDetailInput{
			ChemicalType: model.ChemicalHerbicide,
			ProductName:  "Trimec",
			Amount:       &amount,
		},
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, chem.ChemicalDetails)
	assert.Equal(t, "oz", chem.ChemicalDetails.AmountUnit)
}

func TestCreateTreatment_InvalidTimeOfDay(t *testing.T) {
	treatments, plots, _ := newTreatmentFixture(t)

	plot := mustCreatePlot(t, plots, "Plot1", nil)
	height := 2.5
	bad := "25:99"
	_, err := treatments.Create(TreatmentInput{
		TreatmentType: model.TreatmentMowing,
		PlotIDs:       []uint{plot.ID},
		Date:          model.NewDate(2024, 5, 1),
		Time:          &bad,
		MowingDetails: &MowingDetailInput{HeightInches: &height},
	}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestUpdateTreatment_TypeImmutable(t *testing.T) {
	treatments, plots, _ := newTreatmentFixture(t)

	plot := mustCreatePlot(t, plots, "Plot1", nil)
	amount := 0.5
	created, err := treatments.Create(TreatmentInput{
		TreatmentType: model.TreatmentWater,
		PlotIDs:       []uint{plot.ID},
		Date:          model.NewDate(2024, 5, 1),
		WaterDetails:  &WaterDetailInput{AmountInches: &amount},
	}, nil)
	require.NoError(t, err)

	newType := model.TreatmentMowing
	_, err = treatments.Update(created.ID, TreatmentPatch{TreatmentType: &newType})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))

	// Restating the existing type is allowed.
	sameType := model.TreatmentWater
	_, err = treatments.Update(created.ID, TreatmentPatch{TreatmentType: &sameType})
	assert.NoError(t, err)

	// A detail payload for a different variant is rejected too.
	height := 2.0
	_, err = treatments.Update(created.ID, TreatmentPatch{
		MowingDetails: &MowingDetailInput{HeightInches: &height},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestUpdateTreatment_DetailOverwrite(t *testing.T) {
	treatments, plots, db := newTreatmentFixture(t)

	plot := mustCreatePlot(t, plots, "Plot1", nil)
	amount := 0.5
	duration := 20
	created, err := treatments.Create(TreatmentInput{
		TreatmentType: model.TreatmentWater,
		PlotIDs:       []uint{plot.ID},
		Date:          model.NewDate(2024, 5, 1),
		WaterDetails: &WaterDetailInput{
			AmountInches:    &amount,
			DurationMinutes: &duration,
			Method:          "sprinkler",
		},
	}, nil)
	require.NoError(t, err)

	newAmount := 0.75
	updated, err := treatments.Update(created.ID, TreatmentPatch{
		WaterDetails: &WaterDetailInput{
			AmountInches: &newAmount,
			Method:       "drip",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.WaterDetails)
	assert.Equal(t, 0.75, updated.WaterDetails.AmountInches)
	assert.Equal(t, "drip", updated.WaterDetails.Method)

	// Overwrite, not a second row.
	var count int64
	require.NoError(t, db.Model(&model.WaterTreatment{}).Where("treatment_id = ?", created.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateTreatment_ScalarsAndPlots(t *testing.T) {
	treatments, plots, _ := newTreatmentFixture(t)

	plotA := mustCreatePlot(t, plots, "A", nil)
	plotB := mustCreatePlot(t, plots, "B", nil)
	height := 2.5
	created, err := treatments.Create(TreatmentInput{
		TreatmentType: model.TreatmentMowing,
		PlotIDs:       []uint{plotA.ID},
		Date:          model.NewDate(2024, 5, 1),
		MowingDetails: &MowingDetailInput{HeightInches: &height},
	}, nil)
	require.NoError(t, err)

	notes := "switched plots"
	newDate := model.NewDate(2024, 5, 3)
	newPlots := []uint{plotB.ID}
	updated, err := treatments.Update(created.ID, TreatmentPatch{
		Notes:   &notes,
		Date:    &newDate,
		PlotIDs: &newPlots,
	})
	require.NoError(t, err)
	assert.Equal(t, "switched plots", updated.Notes)
	assert.Equal(t, "2024-05-03", updated.Date.String())
	require.Len(t, updated.Plots, 1)
	assert.Equal(t, plotB.ID, updated.Plots[0].ID)

	// The plot set may be replaced but never emptied.
	empty := []uint{}
	_, err = treatments.Update(created.ID, TreatmentPatch{PlotIDs: &empty})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestDeleteTreatment_CascadesDetail(t *testing.T) {
	treatments, plots, db := newTreatmentFixture(t)

	plot := mustCreatePlot(t, plots, "Plot1", nil)
	amount := 0.5
	created, err := treatments.Create(TreatmentInput{
		TreatmentType: model.TreatmentWater,
		PlotIDs:       []uint{plot.ID},
		Date:          model.NewDate(2024, 5, 1),
		WaterDetails:  &WaterDetailInput{AmountInches: &amount},
	}, nil)
	require.NoError(t, err)

	require.NoError(t, treatments.Delete(created.ID))

	_, err = treatments.Get(created.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound))

	var count int64
	require.NoError(t, db.Model(&model.WaterTreatment{}).Where("treatment_id = ?", created.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	require.NoError(t, db.Table("treatment_plots").Where("treatment_id = ?", created.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// The plot itself is untouched.
	_, err = plots.Get(plot.ID)
	assert.NoError(t, err)

	err = treatments.Delete(created.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestListTreatments_Filters(t *testing.T) {
	treatments, plots, _ := newTreatmentFixture(t)

	plotA := mustCreatePlot(t, plots, "A", nil)
	plotB := mustCreatePlot(t, plots, "B", nil)

	height := 2.5
	amount := 0.5
	_, err := treatments.Create(TreatmentInput{
		TreatmentType: model.TreatmentMowing,
		PlotIDs:       []uint{plotA.ID},
		Date:          model.NewDate(2024, 5, 1),
		MowingDetails: &MowingDetailInput{HeightInches: &height},
	}, nil)
	require.NoError(t, err)
	_, err = treatments.Create(TreatmentInput{
		TreatmentType: model.TreatmentWater,
		PlotIDs:       []uint{plotA.ID, plotB.ID},
		Date:          model.NewDate(2024, 5, 2),
		WaterDetails:  &WaterDetailInput{AmountInches: &amount},
	}, nil)
	require.NoError(t, err)

	mowing := model.TreatmentMowing
	list, err := treatments.List(repository.TreatmentFilter{Type: &mowing})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.TreatmentMowing, list[0].TreatmentType)

	list, err = treatments.List(repository.TreatmentFilter{PlotID: &plotB.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.TreatmentWater, list[0].TreatmentType)

	date := model.NewDate(2024, 5, 1)
	list, err = treatments.List(repository.TreatmentFilter{Date: &date})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.TreatmentMowing, list[0].TreatmentType)

	list, err = treatments.List(repository.TreatmentFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

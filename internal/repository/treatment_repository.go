package repository

import (
	"gorm.io/gorm"

	"turftrack/internal/model"
)

// TreatmentFilter narrows treatment listings
type TreatmentFilter struct {
	Type   *model.TreatmentType
	Date   *model.Date
	PlotID *uint
}

// TreatmentRepository defines storage operations for treatments and their
// detail variants. Multi-row writes run inside a single transaction so a
// treatment row can never be observed without its detail row.
type TreatmentRepository interface {
	Create(t *model.Treatment, plotIDs []uint) error
	Update(t *model.Treatment, plotIDs []uint) error
	FindByID(id uint) (*model.Treatment, error)
	List(filter TreatmentFilter) ([]model.Treatment, error)
	Delete(id uint) error
}

// treatmentRepository implements TreatmentRepository
type treatmentRepository struct {
	db *gorm.DB
}

// NewTreatmentRepository creates a new treatment repository
func NewTreatmentRepository(db *gorm.DB) TreatmentRepository {
	return &treatmentRepository{db: db}
}

// Create persists the treatment row, its one detail row, and the plot
// associations atomically.
func (r *treatmentRepository) Create(t *model.Treatment, plotIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Plots").Create(t).Error; err != nil {
			return translateErr(err, "treatment")
		}
		return r.replacePlots(tx, t, plotIDs)
	})
}

// Update saves scalar fields, upserts the detail row carried on t, and, when
// plotIDs is non-nil, replaces the plot set.
func (r *treatmentRepository) Update(t *model.Treatment, plotIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		session := tx.Session(&gorm.Session{FullSaveAssociations: true})
		if err := session.Omit("Plots").Save(t).Error; err != nil {
			return translateErr(err, "treatment")
		}
		if plotIDs == nil {
			return nil
		}
		return r.replacePlots(tx, t, plotIDs)
	})
}

func (r *treatmentRepository) replacePlots(tx *gorm.DB, t *model.Treatment, plotIDs []uint) error {
	var plots []model.Plot
	if err := tx.Where("id IN ?", plotIDs).Find(&plots).Error; err != nil {
		return err
	}
	if err := tx.Model(t).Omit("Plots.*").Association("Plots").Replace(&plots); err != nil {
		return err
	}
	t.Plots = plots
	return nil
}

func (r *treatmentRepository) FindByID(id uint) (*model.Treatment, error) {
	var t model.Treatment
	err := r.preloaded(r.db).First(&t, id).Error
	if err != nil {
		return nil, translateErr(err, "treatment")
	}
	return &t, nil
}

func (r *treatmentRepository) List(filter TreatmentFilter) ([]model.Treatment, error) {
	query := r.preloaded(r.db).Order("date DESC, time DESC")
	if filter.Type != nil {
		query = query.Where("treatment_type = ?", *filter.Type)
	}
	if filter.Date != nil {
		query = query.Where("date = ?", *filter.Date)
	}
	if filter.PlotID != nil {
		query = query.
			Joins("JOIN treatment_plots ON treatment_plots.treatment_id = treatments.id").
			Where("treatment_plots.plot_id = ?", *filter.PlotID)
	}
	var treatments []model.Treatment
	if err := query.Find(&treatments).Error; err != nil {
		return nil, err
	}
	return treatments, nil
}

// Delete removes the treatment, its detail row, and its plot associations in
// one transaction.
func (r *treatmentRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("treatment_id = ?", id).Delete(&model.WaterTreatment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("treatment_id = ?", id).Delete(&model.FertilizerTreatment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("treatment_id = ?", id).Delete(&model.ChemicalTreatment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("treatment_id = ?", id).Delete(&model.MowingTreatment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM treatment_plots WHERE treatment_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Treatment{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return model.NotFoundErrorf("treatment %d not found", id)
		}
		return nil
	})
}

// preloaded attaches the plot set and all four detail relations; at most one
// detail preload yields a row per treatment.
func (r *treatmentRepository) preloaded(db *gorm.DB) *gorm.DB {
	return db.Model(&model.Treatment{}).
		Preload("Plots", func(db *gorm.DB) *gorm.DB { return db.Order("plots.name ASC") }).
		Preload("WaterDetails").
		Preload("FertilizerDetails").
		Preload("ChemicalDetails").
		Preload("MowingDetails")
}

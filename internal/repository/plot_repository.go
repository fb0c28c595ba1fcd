package repository

import (
	"gorm.io/gorm"

	"turftrack/internal/model"
)

// PlotFilter narrows plot listings
type PlotFilter struct {
	ParentID   *uint
	ParentOnly bool
	Search     string
}

// PlotRepository defines storage operations for plots
type PlotRepository interface {
	Create(plot *model.Plot) error
	Update(plot *model.Plot) error
	FindByID(id uint) (*model.Plot, error)
	List(filter PlotFilter) ([]model.Plot, error)
	ListChildren(parentID uint) ([]model.Plot, error)
	CountChildren(id uint) (int64, error)
	CountTreatments(id uint) (int64, error)
	AllExist(ids []uint) (bool, error)
	DeleteTree(ids []uint) error
}

// plotRepository implements PlotRepository
type plotRepository struct {
	db *gorm.DB
}

// NewPlotRepository creates a new plot repository
func NewPlotRepository(db *gorm.DB) PlotRepository {
	return &plotRepository{db: db}
}

func (r *plotRepository) Create(plot *model.Plot) error {
	return translateErr(r.db.Create(plot).Error, "plot")
}

func (r *plotRepository) Update(plot *model.Plot) error {
	return translateErr(r.db.Save(plot).Error, "plot")
}

func (r *plotRepository) FindByID(id uint) (*model.Plot, error) {
	var plot model.Plot
	if err := r.db.First(&plot, id).Error; err != nil {
		return nil, translateErr(err, "plot")
	}
	return &plot, nil
}

func (r *plotRepository) List(filter PlotFilter) ([]model.Plot, error) {
	query := r.db.Model(&model.Plot{}).Order("name ASC")
	if filter.ParentOnly {
		query = query.Where("parent_plot_id IS NULL")
	} else if filter.ParentID != nil {
		query = query.Where("parent_plot_id = ?", *filter.ParentID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR location LIKE ? OR grass_type LIKE ?", like, like, like)
	}
	var plots []model.Plot
	if err := query.Find(&plots).Error; err != nil {
		return nil, err
	}
	return plots, nil
}

func (r *plotRepository) ListChildren(parentID uint) ([]model.Plot, error) {
	var plots []model.Plot
	err := r.db.Where("parent_plot_id = ?", parentID).Order("name ASC").Find(&plots).Error
	if err != nil {
		return nil, err
	}
	return plots, nil
}

func (r *plotRepository) CountChildren(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Plot{}).Where("parent_plot_id = ?", id).Count(&count).Error
	return count, err
}

func (r *plotRepository) CountTreatments(id uint) (int64, error) {
	var count int64
	err := r.db.Table("treatment_plots").Where("plot_id = ?", id).Count(&count).Error
	return count, err
}

// AllExist reports whether every id in ids refers to an existing plot.
func (r *plotRepository) AllExist(ids []uint) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	unique := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	distinct := make([]uint, 0, len(unique))
	for id := range unique {
		distinct = append(distinct, id)
	}
	var count int64
	err := r.db.Model(&model.Plot{}).Where("id IN ?", distinct).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == int64(len(distinct)), nil
}

// DeleteTree removes a plot and its descendants in one transaction. Each
// deleted plot is detached from any treatment's plot set; treatments left
// with an empty plot set are kept.
func (r *plotRepository) DeleteTree(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM treatment_plots WHERE plot_id IN ?", ids).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&model.Plot{}).Error
	})
}

package repository

import (
	"gorm.io/gorm"

	"turftrack/internal/model"
)

// LocationRepository defines storage operations for research locations
type LocationRepository interface {
	Create(loc *model.Location) error
	Update(loc *model.Location) error
	FindByID(id uint) (*model.Location, error)
	List(search string) ([]model.Location, error)
	Delete(id uint) error
}

// locationRepository implements LocationRepository
type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(loc *model.Location) error {
	return translateErr(r.db.Create(loc).Error, "location")
}

func (r *locationRepository) Update(loc *model.Location) error {
	return translateErr(r.db.Save(loc).Error, "location")
}

func (r *locationRepository) FindByID(id uint) (*model.Location, error) {
	var loc model.Location
	if err := r.db.First(&loc, id).Error; err != nil {
		return nil, translateErr(err, "location")
	}
	return &loc, nil
}

func (r *locationRepository) List(search string) ([]model.Location, error) {
	query := r.db.Order("name ASC")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	var locs []model.Location
	if err := query.Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

func (r *locationRepository) Delete(id uint) error {
	result := r.db.Delete(&model.Location{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.NotFoundErrorf("location %d not found", id)
	}
	return nil
}

// GrassTypeRepository defines storage operations for grass types
type GrassTypeRepository interface {
	Create(gt *model.GrassType) error
	Update(gt *model.GrassType) error
	FindByID(id uint) (*model.GrassType, error)
	List(search string) ([]model.GrassType, error)
	Delete(id uint) error
}

// grassTypeRepository implements GrassTypeRepository
type grassTypeRepository struct {
	db *gorm.DB
}

// NewGrassTypeRepository creates a new grass type repository
func NewGrassTypeRepository(db *gorm.DB) GrassTypeRepository {
	return &grassTypeRepository{db: db}
}

func (r *grassTypeRepository) Create(gt *model.GrassType) error {
	return translateErr(r.db.Create(gt).Error, "grass type")
}

func (r *grassTypeRepository) Update(gt *model.GrassType) error {
	return translateErr(r.db.Save(gt).Error, "grass type")
}

func (r *grassTypeRepository) FindByID(id uint) (*model.GrassType, error) {
	var gt model.GrassType
	if err := r.db.First(&gt, id).Error; err != nil {
		return nil, translateErr(err, "grass type")
	}
	return &gt, nil
}

func (r *grassTypeRepository) List(search string) ([]model.GrassType, error) {
	query := r.db.Order("name ASC")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR scientific_name LIKE ? OR description LIKE ?", like, like, like)
	}
	var gts []model.GrassType
	if err := query.Find(&gts).Error; err != nil {
		return nil, err
	}
	return gts, nil
}

func (r *grassTypeRepository) Delete(id uint) error {
	result := r.db.Delete(&model.GrassType{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.NotFoundErrorf("grass type %d not found", id)
	}
	return nil
}

// UserRepository resolves user identities for the identity middleware
type UserRepository interface {
	FindByID(id uint) (*model.User, error)
	Create(user *model.User) error
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translateErr(err, "user")
	}
	return &user, nil
}

func (r *userRepository) Create(user *model.User) error {
	return translateErr(r.db.Create(user).Error, "user")
}

// ContactRepository defines storage operations for contact-form submissions
type ContactRepository interface {
	Create(msg *model.ContactMessage) error
	List() ([]model.ContactMessage, error)
}

// contactRepository implements ContactRepository
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(msg *model.ContactMessage) error {
	return translateErr(r.db.Create(msg).Error, "contact message")
}

func (r *contactRepository) List() ([]model.ContactMessage, error) {
	var msgs []model.ContactMessage
	if err := r.db.Order("created_at DESC").Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

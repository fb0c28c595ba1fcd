package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"turftrack/internal/model"
)

// SeedRepository handles database seeding operations
type SeedRepository struct {
	db *gorm.DB
}

// NewSeedRepository creates a new seed repository
func NewSeedRepository(db *gorm.DB) *SeedRepository {
	return &SeedRepository{db: db}
}

// SeedDatabase loads a small demo dataset: reference data, a two-level plot
// hierarchy, and one treatment of each type.
func (s *SeedRepository) SeedDatabase() error {
	if err := s.clearExistingData(); err != nil {
		return fmt.Errorf("failed to clear existing data: %w", err)
	}

	user, err := s.createUser()
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.createReferenceData(); err != nil {
		return fmt.Errorf("failed to create reference data: %w", err)
	}

	plots, err := s.createPlots(user)
	if err != nil {
		return fmt.Errorf("failed to create plots: %w", err)
	}

	treatments, err := s.createTreatments(user, plots)
	if err != nil {
		return fmt.Errorf("failed to create treatments: %w", err)
	}

	fmt.Printf("Seeded database successfully:\n")
	fmt.Printf("  - Plots: %d\n", len(plots))
	fmt.Printf("  - Treatments: %d\n", treatments)

	return nil
}

// clearExistingData removes existing data
func (s *SeedRepository) clearExistingData() error {
	tables := []string{
		"water_treatments", "fertilizer_treatments", "chemical_treatments",
		"mowing_treatments", "treatment_plots", "treatments", "plots",
		"grass_types", "locations", "contact_messages", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *SeedRepository) createUser() (*model.User, error) {
	user := &model.User{
		Email:     "agronomist@example.edu",
		FirstName: "Sam",
		LastName:  "Fielder",
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *SeedRepository) createReferenceData() error {
	locations := []model.Location{
		{Name: "North Farm", Description: "Primary research station north of campus"},
		{Name: "South Greens", Description: "Putting-green trial area"},
	}
	if err := s.db.Create(&locations).Error; err != nil {
		return err
	}

	grassTypes := []model.GrassType{
		{Name: "Kentucky Bluegrass", ScientificName: "Poa pratensis", Description: "Cool-season turfgrass"},
		{Name: "Creeping Bentgrass", ScientificName: "Agrostis stolonifera", Description: "Greens-height turfgrass"},
	}
	return s.db.Create(&grassTypes).Error
}

func (s *SeedRepository) createPlots(user *model.User) ([]model.Plot, error) {
	lat, lng := 40.4237, -86.9212
	size := 5000.0

	parent := model.Plot{
		Name:        "Plot1",
		Location:    "North Farm",
		GrassType:   "Kentucky Bluegrass",
		SizeSqft:    &size,
		CenterLat:   &lat,
		CenterLng:   &lng,
		CreatedByID: &user.ID,
	}
	if err := s.db.Create(&parent).Error; err != nil {
		return nil, err
	}

	childSize := 2500.0
	children := []model.Plot{
		{
			Name:         "Plot1-A",
			ParentPlotID: &parent.ID,
			Location:     "North Farm",
			GrassType:    "Kentucky Bluegrass",
			SizeSqft:     &childSize,
			CenterLat:    &lat,
			CenterLng:    &lng,
			CreatedByID:  &user.ID,
		},
		{
			Name:         "Plot1-B",
			ParentPlotID: &parent.ID,
			Location:     "North Farm",
			GrassType:    "Creeping Bentgrass",
			SizeSqft:     &childSize,
			PolygonCoordinates: model.Polygon{
				{Lat: 40.4238, Lng: -86.9214},
				{Lat: 40.4238, Lng: -86.9210},
				{Lat: 40.4235, Lng: -86.9210},
				{Lat: 40.4235, Lng: -86.9214},
			},
			CreatedByID: &user.ID,
		},
	}
	if err := s.db.Create(&children).Error; err != nil {
		return nil, err
	}

	return append([]model.Plot{parent}, children...), nil
}

func (s *SeedRepository) createTreatments(user *model.User, plots []model.Plot) (int, error) {
	today := time.Now().UTC()
	date := model.NewDate(today.Year(), today.Month(), today.Day())
	duration := 30
	rate := 1.0

	treatments := []model.Treatment{
		{
			TreatmentType: model.TreatmentWater,
			Date:          date,
			Notes:         "Weekly irrigation",
			AppliedByID:   &user.ID,
			WaterDetails: &model.WaterTreatment{
				AmountInches:    0.5,
				DurationMinutes: &duration,
				Method:          "sprinkler",
			},
		},
		{
			TreatmentType: model.TreatmentFertilizer,
			Date:          date,
			Notes:         "Spring feeding",
			AppliedByID:   &user.ID,
			FertilizerDetails: &model.FertilizerTreatment{
				ProductName:     "Turf Builder",
				NPKRatio:        "20-10-10",
				Amount:          10,
				AmountUnit:      "lbs",
				RatePer1000Sqft: &rate,
			},
		},
		{
			TreatmentType: model.TreatmentChemical,
			Date:          date,
			Notes:         "Broadleaf control",
			AppliedByID:   &user.ID,
			ChemicalDetails: &model.ChemicalTreatment{
				ChemicalType: model.ChemicalHerbicide,
				ProductName:  "Trimec",
				Amount:       4,
				AmountUnit:   "oz",
				TargetPest:   "dandelion",
			},
		},
		{
			TreatmentType: model.TreatmentMowing,
			Date:          date,
			Notes:         "Regular mow",
			AppliedByID:   &user.ID,
			MowingDetails: &model.MowingTreatment{
				HeightInches:     2.5,
				ClippingsRemoved: true,
				MowerType:        "reel",
				Pattern:          "stripe",
			},
		},
	}

	for i := range treatments {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit("Plots").Create(&treatments[i]).Error; err != nil {
				return err
			}
			return tx.Model(&treatments[i]).Omit("Plots.*").Association("Plots").Replace(&plots[0])
		})
		if err != nil {
			return i, err
		}
	}

	return len(treatments), nil
}

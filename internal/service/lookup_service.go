package service

import (
	"strings"

	"turftrack/internal/model"
	"turftrack/internal/repository"
)

// LookupInput carries the fields shared by the master-list entities
type LookupInput struct {
	Name           string `json:"name"`
	ScientificName string `json:"scientific_name"`
	Description    string `json:"description"`
}

// LookupService manages the Location and GrassType master lists
type LookupService interface {
	CreateLocation(input LookupInput) (*model.Location, error)
	UpdateLocation(id uint, input LookupInput) (*model.Location, error)
	GetLocation(id uint) (*model.Location, error)
	ListLocations(search string) ([]model.Location, error)
	DeleteLocation(id uint) error

	CreateGrassType(input LookupInput) (*model.GrassType, error)
	UpdateGrassType(id uint, input LookupInput) (*model.GrassType, error)
	GetGrassType(id uint) (*model.GrassType, error)
	ListGrassTypes(search string) ([]model.GrassType, error)
	DeleteGrassType(id uint) error
}

// lookupService implements LookupService
type lookupService struct {
	locations  repository.LocationRepository
	grassTypes repository.GrassTypeRepository
}

// NewLookupService creates a new lookup service
func NewLookupService(locations repository.LocationRepository, grassTypes repository.GrassTypeRepository) LookupService {
	return &lookupService{locations: locations, grassTypes: grassTypes}
}

func (s *lookupService) CreateLocation(input LookupInput) (*model.Location, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, model.ValidationErrorf("location name is required")
	}
	loc := &model.Location{Name: name, Description: input.Description}
	if err := s.locations.Create(loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *lookupService) UpdateLocation(id uint, input LookupInput) (*model.Location, error) {
	loc, err := s.locations.FindByID(id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		loc.Name = name
	}
	if input.Description != "" {
		loc.Description = input.Description
	}
	if err := s.locations.Update(loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *lookupService) GetLocation(id uint) (*model.Location, error) {
	return s.locations.FindByID(id)
}

func (s *lookupService) ListLocations(search string) ([]model.Location, error) {
	return s.locations.List(search)
}

func (s *lookupService) DeleteLocation(id uint) error {
	return s.locations.Delete(id)
}

func (s *lookupService) CreateGrassType(input LookupInput) (*model.GrassType, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, model.ValidationErrorf("grass type name is required")
	}
	gt := &model.GrassType{
		Name:           name,
		ScientificName: input.ScientificName,
		Description:    input.Description,
	}
	if err := s.grassTypes.Create(gt); err != nil {
		return nil, err
	}
	return gt, nil
}

func (s *lookupService) UpdateGrassType(id uint, input LookupInput) (*model.GrassType, error) {
	gt, err := s.grassTypes.FindByID(id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		gt.Name = name
	}
	if input.ScientificName != "" {
		gt.ScientificName = input.ScientificName
	}
	if input.Description != "" {
		gt.Description = input.Description
	}
	if err := s.grassTypes.Update(gt); err != nil {
		return nil, err
	}
	return gt, nil
}

func (s *lookupService) GetGrassType(id uint) (*model.GrassType, error) {
	return s.grassTypes.FindByID(id)
}

func (s *lookupService) ListGrassTypes(search string) ([]model.GrassType, error) {
	return s.grassTypes.List(search)
}

func (s *lookupService) DeleteGrassType(id uint) error {
	return s.grassTypes.Delete(id)
}

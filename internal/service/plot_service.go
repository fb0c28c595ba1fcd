package service

import (
	"errors"
	"strings"

	"turftrack/internal/model"
	"turftrack/internal/repository"
)

// PlotInput carries the fields for creating a plot
type PlotInput struct {
	Name               string        `json:"name" binding:"required"`
	ParentPlotID       *uint         `json:"parent_plot"`
	Location           string        `json:"location"`
	SizeSqft           *float64      `json:"size_sqft"`
	GrassType          string        `json:"grass_type"`
	Notes              string        `json:"notes"`
	PolygonCoordinates model.Polygon `json:"polygon_coordinates"`
	CenterLat          *float64      `json:"center_lat"`
	CenterLng          *float64      `json:"center_lng"`
}

// PlotPatch carries partial updates for a plot. Parent changes go through
// SetParent, not here.
type PlotPatch struct {
	Name               *string       `json:"name"`
	Location           *string       `json:"location"`
	SizeSqft           *float64      `json:"size_sqft"`
	GrassType          *string       `json:"grass_type"`
	Notes              *string       `json:"notes"`
	PolygonCoordinates model.Polygon `json:"polygon_coordinates"`
	CenterLat          *float64      `json:"center_lat"`
	CenterLng          *float64      `json:"center_lng"`
}

// Hierarchy aggregates everything about a plot's position in its tree
type Hierarchy struct {
	Ancestors      []model.Plot `json:"ancestors"`
	Current        model.Plot   `json:"current"`
	DirectChildren []model.Plot `json:"direct_children"`
	AllDescendants []model.Plot `json:"all_descendants"`
}

// PlotService defines operations over the plot hierarchy
type PlotService interface {
	Create(input PlotInput, userID *uint) (*model.Plot, error)
	Get(id uint) (*model.Plot, error)
	List(filter repository.PlotFilter) ([]model.Plot, error)
	Update(id uint, patch PlotPatch) (*model.Plot, error)
	SetParent(id uint, parentID *uint) (*model.Plot, error)
	Delete(id uint) error
	Subplots(id uint) ([]model.Plot, error)
	Counts(id uint) (subplots, treatments int64, err error)
	Descendants(id uint) ([]model.Plot, error)
	AncestorChain(id uint) ([]model.Plot, error)
	DisplayPath(id uint) (string, error)
	FullHierarchy(id uint) (*Hierarchy, error)
}

// plotService implements PlotService
type plotService struct {
	repo repository.PlotRepository
}

// NewPlotService creates a new plot service
func NewPlotService(repo repository.PlotRepository) PlotService {
	return &plotService{repo: repo}
}

func (s *plotService) Create(input PlotInput, userID *uint) (*model.Plot, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, model.ValidationErrorf("plot name is required")
	}

	plot := &model.Plot{
		Name:               strings.TrimSpace(input.Name),
		ParentPlotID:       input.ParentPlotID,
		Location:           input.Location,
		SizeSqft:           input.SizeSqft,
		GrassType:          input.GrassType,
		Notes:              input.Notes,
		PolygonCoordinates: input.PolygonCoordinates,
		CenterLat:          input.CenterLat,
		CenterLng:          input.CenterLng,
		CreatedByID:        userID,
	}
	if !plot.HasGeometry() {
		return nil, model.ValidationErrorf("plot must have polygon coordinates or a center lat/lng pair")
	}

	if input.ParentPlotID != nil {
		if _, err := s.repo.FindByID(*input.ParentPlotID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil, model.ValidationErrorf("parent plot %d does not exist", *input.ParentPlotID)
			}
			return nil, err
		}
	}

	if err := s.repo.Create(plot); err != nil {
		return nil, err
	}
	return plot, nil
}

func (s *plotService) Get(id uint) (*model.Plot, error) {
	return s.repo.FindByID(id)
}

func (s *plotService) List(filter repository.PlotFilter) ([]model.Plot, error) {
	return s.repo.List(filter)
}

func (s *plotService) Update(id uint, patch PlotPatch) (*model.Plot, error) {
	plot, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, model.ValidationErrorf("plot name must not be empty")
		}
		plot.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Location != nil {
		plot.Location = *patch.Location
	}
	if patch.SizeSqft != nil {
		plot.SizeSqft = patch.SizeSqft
	}
	if patch.GrassType != nil {
		plot.GrassType = *patch.GrassType
	}
	if patch.Notes != nil {
		plot.Notes = *patch.Notes
	}
	if patch.PolygonCoordinates != nil {
		plot.PolygonCoordinates = patch.PolygonCoordinates
	}
	if patch.CenterLat != nil {
		plot.CenterLat = patch.CenterLat
	}
	if patch.CenterLng != nil {
		plot.CenterLng = patch.CenterLng
	}

	if !plot.HasGeometry() {
		return nil, model.ValidationErrorf("plot must have polygon coordinates or a center lat/lng pair")
	}

	if err := s.repo.Update(plot); err != nil {
		return nil, err
	}
	return plot, nil
}

// SetParent reassigns a plot's parent after checking that the assignment
// would not close a cycle: the candidate parent, and every ancestor above
// it, must differ from the plot itself.
func (s *plotService) SetParent(id uint, parentID *uint) (*model.Plot, error) {
	plot, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if parentID == nil {
		plot.ParentPlotID = nil
		if err := s.repo.Update(plot); err != nil {
			return nil, err
		}
		return plot, nil
	}

	if *parentID == plot.ID {
		return nil, model.ErrCircularHierarchy
	}
	candidate, err := s.repo.FindByID(*parentID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ValidationErrorf("parent plot %d does not exist", *parentID)
		}
		return nil, err
	}

	// Walk the candidate's ancestor chain. The visited set guards against
	// pre-existing corruption in stored data.
	visited := map[uint]struct{}{}
	current := candidate
	for {
		if current.ID == plot.ID {
			return nil, model.ErrCircularHierarchy
		}
		if _, seen := visited[current.ID]; seen {
			return nil, model.ErrCircularHierarchy
		}
		visited[current.ID] = struct{}{}
		if current.ParentPlotID == nil {
			break
		}
		current, err = s.repo.FindByID(*current.ParentPlotID)
		if err != nil {
			return nil, err
		}
	}

	plot.ParentPlotID = parentID
	if err := s.repo.Update(plot); err != nil {
		return nil, err
	}
	return plot, nil
}

// Delete removes the plot and its whole subtree.
func (s *plotService) Delete(id uint) error {
	plot, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	descendants, err := s.Descendants(plot.ID)
	if err != nil {
		return err
	}
	ids := make([]uint, 0, len(descendants)+1)
	ids = append(ids, plot.ID)
	for _, d := range descendants {
		ids = append(ids, d.ID)
	}
	return s.repo.DeleteTree(ids)
}

func (s *plotService) Subplots(id uint) ([]model.Plot, error) {
	if _, err := s.repo.FindByID(id); err != nil {
		return nil, err
	}
	return s.repo.ListChildren(id)
}

// Counts returns the number of direct subplots and linked treatments.
func (s *plotService) Counts(id uint) (int64, int64, error) {
	subplots, err := s.repo.CountChildren(id)
	if err != nil {
		return 0, 0, err
	}
	treatments, err := s.repo.CountTreatments(id)
	if err != nil {
		return 0, 0, err
	}
	return subplots, treatments, nil
}

// Descendants returns every plot below id, breadth-first. Under the
// acyclicity invariant each node appears exactly once; the visited set keeps
// the walk terminating even on corrupted data.
func (s *plotService) Descendants(id uint) ([]model.Plot, error) {
	if _, err := s.repo.FindByID(id); err != nil {
		return nil, err
	}

	var result []model.Plot
	visited := map[uint]struct{}{id: {}}
	queue := []uint{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		children, err := s.repo.ListChildren(current)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if _, seen := visited[child.ID]; seen {
				continue
			}
			visited[child.ID] = struct{}{}
			result = append(result, child)
			queue = append(queue, child.ID)
		}
	}
	return result, nil
}

// AncestorChain returns the plots above id, root first, excluding the plot
// itself.
func (s *plotService) AncestorChain(id uint) ([]model.Plot, error) {
	plot, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	var chain []model.Plot
	visited := map[uint]struct{}{plot.ID: {}}
	current := plot
	for current.ParentPlotID != nil {
		parent, err := s.repo.FindByID(*current.ParentPlotID)
		if err != nil {
			return nil, err
		}
		if _, seen := visited[parent.ID]; seen {
			break
		}
		visited[parent.ID] = struct{}{}
		chain = append([]model.Plot{*parent}, chain...)
		current = parent
	}
	return chain, nil
}

// DisplayPath renders the ancestor chain plus the plot's own name, joined
// with " > ", e.g. "FieldA > FieldA-North".
func (s *plotService) DisplayPath(id uint) (string, error) {
	plot, err := s.repo.FindByID(id)
	if err != nil {
		return "", err
	}
	chain, err := s.AncestorChain(id)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(chain)+1)
	for _, ancestor := range chain {
		names = append(names, ancestor.Name)
	}
	names = append(names, plot.Name)
	return strings.Join(names, " > "), nil
}

// FullHierarchy combines ancestors, direct children, and all descendants in
// one response.
func (s *plotService) FullHierarchy(id uint) (*Hierarchy, error) {
	plot, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	ancestors, err := s.AncestorChain(id)
	if err != nil {
		return nil, err
	}
	children, err := s.repo.ListChildren(id)
	if err != nil {
		return nil, err
	}
	descendants, err := s.Descendants(id)
	if err != nil {
		return nil, err
	}
	if ancestors == nil {
		ancestors = []model.Plot{}
	}
	if children == nil {
		children = []model.Plot{}
	}
	if descendants == nil {
		descendants = []model.Plot{}
	}
	return &Hierarchy{
		Ancestors:      ancestors,
		Current:        *plot,
		DirectChildren: children,
		AllDescendants: descendants,
	}, nil
}

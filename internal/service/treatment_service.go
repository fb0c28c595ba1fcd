package service

import (
	"time"

	"turftrack/internal/model"
	"turftrack/internal/repository"
)

// WaterDetailInput is the payload for a water treatment's detail row
type WaterDetailInput struct {
	AmountInches    *float64 `json:"amount_inches"`
	DurationMinutes *int     `json:"duration_minutes"`
	Method          string   `json:"method"`
}

// FertilizerDetailInput is the payload for a fertilizer treatment's detail row
type FertilizerDetailInput struct {
	ProductName     string   `json:"product_name"`
	NPKRatio        string   `json:"npk_ratio"`
	Amount          *float64 `json:"amount"`
	AmountUnit      string   `json:"amount_unit"`
	RatePer1000Sqft *float64 `json:"rate_per_1000sqft"`
}

// ChemicalDetailInput is the payload for a chemical treatment's detail row
type ChemicalDetailInput struct {
	ChemicalType     model.ChemicalType `json:"chemical_type"`
	ProductName      string             `json:"product_name"`
	ActiveIngredient string             `json:"active_ingredient"`
	Amount           *float64           `json:"amount"`
	AmountUnit       string             `json:"amount_unit"`
	RatePer1000Sqft  *float64           `json:"rate_per_1000sqft"`
	TargetPest       string             `json:"target_pest"`
}

// MowingDetailInput is the payload for a mowing treatment's detail row
type MowingDetailInput struct {
	HeightInches     *float64 `json:"height_inches"`
	ClippingsRemoved bool     `json:"clippings_removed"`
	MowerType        string   `json:"mower_type"`
	Pattern          string   `json:"pattern"`
}

// TreatmentInput carries the fields for creating a treatment. Exactly the
// detail payload matching TreatmentType must be set.
type TreatmentInput struct {
	TreatmentType     model.TreatmentType    `json:"treatment_type"`
	PlotIDs           []uint                 `json:"plots"`
	Date              model.Date             `json:"date"`
	Time              *string                `json:"time"`
	Notes             string                 `json:"notes"`
	WaterDetails      *WaterDetailInput      `json:"water_details"`
	FertilizerDetails *FertilizerDetailInput `json:"fertilizer_details"`
	ChemicalDetails   *ChemicalDetailInput   `json:"chemical_details"`
	MowingDetails     *MowingDetailInput     `json:"mowing_details"`
}

// TreatmentPatch carries partial updates. The type tag is immutable: a patch
// naming a different type, or carrying a detail payload for a different
// type, is rejected. A matching detail payload overwrites the detail row.
type TreatmentPatch struct {
	TreatmentType     *model.TreatmentType   `json:"treatment_type"`
	PlotIDs           *[]uint                `json:"plots"`
	Date              *model.Date            `json:"date"`
	Time              *string                `json:"time"`
	Notes             *string                `json:"notes"`
	WaterDetails      *WaterDetailInput      `json:"water_details"`
	FertilizerDetails *FertilizerDetailInput `json:"fertilizer_details"`
	ChemicalDetails   *ChemicalDetailInput   `json:"chemical_details"`
	MowingDetails     *MowingDetailInput     `json:"mowing_details"`
}

// TreatmentService dispatches treatment writes to the detail variant that
// matches the type tag
type TreatmentService interface {
	Create(input TreatmentInput, userID *uint) (*model.Treatment, error)
	Get(id uint) (*model.Treatment, error)
	List(filter repository.TreatmentFilter) ([]model.Treatment, error)
	Update(id uint, patch TreatmentPatch) (*model.Treatment, error)
	Delete(id uint) error
}

// treatmentService implements TreatmentService
type treatmentService struct {
	repo     repository.TreatmentRepository
	plotRepo repository.PlotRepository
}

// NewTreatmentService creates a new treatment service
func NewTreatmentService(repo repository.TreatmentRepository, plotRepo repository.PlotRepository) TreatmentService {
	return &treatmentService{repo: repo, plotRepo: plotRepo}
}

func (s *treatmentService) Create(input TreatmentInput, userID *uint) (*model.Treatment, error) {
	if !input.TreatmentType.Valid() {
		return nil, model.ValidationErrorf("unknown treatment type %q", input.TreatmentType)
	}
	if len(input.PlotIDs) == 0 {
		return nil, model.ValidationErrorf("treatment requires at least one plot")
	}
	ok, err := s.plotRepo.AllExist(input.PlotIDs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ValidationErrorf("one or more plots do not exist")
	}
	if input.Date.IsZero() {
		return nil, model.ValidationErrorf("treatment date is required")
	}
	if err := validateTimeOfDay(input.Time); err != nil {
		return nil, err
	}

	t := &model.Treatment{
		TreatmentType: input.TreatmentType,
		Date:          input.Date,
		Time:          input.Time,
		Notes:         input.Notes,
		AppliedByID:   userID,
	}
	if err := attachDetail(t, detailPayloads{
		water:      input.WaterDetails,
		fertilizer: input.FertilizerDetails,
		chemical:   input.ChemicalDetails,
		mowing:     input.MowingDetails,
	}); err != nil {
		return nil, err
	}

	if err := s.repo.Create(t, input.PlotIDs); err != nil {
		return nil, err
	}
	return s.repo.FindByID(t.ID)
}

func (s *treatmentService) Get(id uint) (*model.Treatment, error) {
	return s.repo.FindByID(id)
}

func (s *treatmentService) List(filter repository.TreatmentFilter) ([]model.Treatment, error) {
	return s.repo.List(filter)
}

func (s *treatmentService) Update(id uint, patch TreatmentPatch) (*model.Treatment, error) {
	t, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if patch.TreatmentType != nil && *patch.TreatmentType != t.TreatmentType {
		return nil, model.ValidationErrorf("treatment type cannot be changed after creation")
	}

	if patch.Date != nil {
		if patch.Date.IsZero() {
			return nil, model.ValidationErrorf("treatment date must not be empty")
		}
		t.Date = *patch.Date
	}
	if patch.Time != nil {
		if err := validateTimeOfDay(patch.Time); err != nil {
			return nil, err
		}
		t.Time = patch.Time
	}
	if patch.Notes != nil {
		t.Notes = *patch.Notes
	}

	var plotIDs []uint
	if patch.PlotIDs != nil {
		if len(*patch.PlotIDs) == 0 {
			return nil, model.ValidationErrorf("treatment requires at least one plot")
		}
		ok, err := s.plotRepo.AllExist(*patch.PlotIDs)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, model.ValidationErrorf("one or more plots do not exist")
		}
		plotIDs = *patch.PlotIDs
	}

	if err := upsertDetail(t, detailPayloads{
		water:      patch.WaterDetails,
		fertilizer: patch.FertilizerDetails,
		chemical:   patch.ChemicalDetails,
		mowing:     patch.MowingDetails,
	}); err != nil {
		return nil, err
	}

	if err := s.repo.Update(t, plotIDs); err != nil {
		return nil, err
	}
	return s.repo.FindByID(t.ID)
}

func (s *treatmentService) Delete(id uint) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// detailPayloads groups the four optional detail inputs for dispatch
type detailPayloads struct {
	water      *WaterDetailInput
	fertilizer *FertilizerDetailInput
	chemical   *ChemicalDetailInput
	mowing     *MowingDetailInput
}

// forType returns the payload matching t, and whether any payload for a
// different type is present.
func (p detailPayloads) forType(t model.TreatmentType) (matching interface{}, mismatched bool) {
	if p.water != nil {
		if t == model.TreatmentWater {
			matching = p.water
		} else {
			mismatched = true
		}
	}
	if p.fertilizer != nil {
		if t == model.TreatmentFertilizer {
			matching = p.fertilizer
		} else {
			mismatched = true
		}
	}
	if p.chemical != nil {
		if t == model.TreatmentChemical {
			matching = p.chemical
		} else {
			mismatched = true
		}
	}
	if p.mowing != nil {
		if t == model.TreatmentMowing {
			matching = p.mowing
		} else {
			mismatched = true
		}
	}
	return matching, mismatched
}

// attachDetail enforces the exactly-one-detail invariant at creation: the
// payload matching the type tag is required, any other payload is rejected.
func attachDetail(t *model.Treatment, payloads detailPayloads) error {
	matching, mismatched := payloads.forType(t.TreatmentType)
	if mismatched {
		return model.ValidationErrorf("detail payload does not match treatment type %q", t.TreatmentType)
	}
	if matching == nil {
		return model.ValidationErrorf("%s treatment requires a %s_details payload", t.TreatmentType, t.TreatmentType)
	}
	return setDetail(t, matching)
}

// upsertDetail applies a detail payload during update: only the payload for
// the existing type tag is accepted, and it overwrites the detail row while
// keeping its identity.
func upsertDetail(t *model.Treatment, payloads detailPayloads) error {
	matching, mismatched := payloads.forType(t.TreatmentType)
	if mismatched {
		return model.ValidationErrorf("detail payload does not match treatment type %q", t.TreatmentType)
	}
	if matching == nil {
		return nil
	}
	return setDetail(t, matching)
}

func setDetail(t *model.Treatment, payload interface{}) error {
	switch in := payload.(type) {
	case *WaterDetailInput:
		if in.AmountInches == nil {
			return model.ValidationErrorf("water treatment requires amount_inches")
		}
		detail := model.WaterTreatment{
			AmountInches:    *in.AmountInches,
			DurationMinutes: in.DurationMinutes,
			Method:          in.Method,
		}
		if t.WaterDetails != nil {
			detail.ID = t.WaterDetails.ID
			detail.TreatmentID = t.WaterDetails.TreatmentID
		}
		t.WaterDetails = &detail
	case *FertilizerDetailInput:
		if in.ProductName == "" {
			return model.ValidationErrorf("fertilizer treatment requires product_name")
		}
		if in.Amount == nil {
			return model.ValidationErrorf("fertilizer treatment requires amount")
		}
		unit := in.AmountUnit
		if unit == "" {
			unit = "lbs"
		}
		detail := model.FertilizerTreatment{
			ProductName:     in.ProductName,
			NPKRatio:        in.NPKRatio,
			Amount:          *in.Amount,
			AmountUnit:      unit,
			RatePer1000Sqft: in.RatePer1000Sqft,
		}
		if t.FertilizerDetails != nil {
			detail.ID = t.FertilizerDetails.ID
			detail.TreatmentID = t.FertilizerDetails.TreatmentID
		}
		t.FertilizerDetails = &detail
	case *ChemicalDetailInput:
		if !in.ChemicalType.Valid() {
			return model.ValidationErrorf("unknown chemical type %q", in.ChemicalType)
		}
		if in.ProductName == "" {
			return model.ValidationErrorf("chemical treatment requires product_name")
		}
		if in.Amount == nil {
			return model.ValidationErrorf("chemical treatment requires amount")
		}
		unit := in.AmountUnit
		if unit == "" {
			unit = "oz"
		}
		detail := model.ChemicalTreatment{
			ChemicalType:     in.ChemicalType,
			ProductName:      in.ProductName,
			ActiveIngredient: in.ActiveIngredient,
			Amount:           *in.Amount,
			AmountUnit:       unit,
			RatePer1000Sqft:  in.RatePer1000Sqft,
			TargetPest:       in.TargetPest,
		}
		if t.ChemicalDetails != nil {
			detail.ID = t.ChemicalDetails.ID
			detail.TreatmentID = t.ChemicalDetails.TreatmentID
		}
		t.ChemicalDetails = &detail
	case *MowingDetailInput:
		if in.HeightInches == nil {
			return model.ValidationErrorf("mowing treatment requires height_inches")
		}
		detail := model.MowingTreatment{
			HeightInches:     *in.HeightInches,
			ClippingsRemoved: in.ClippingsRemoved,
			MowerType:        in.MowerType,
			Pattern:          in.Pattern,
		}
		if t.MowingDetails != nil {
			detail.ID = t.MowingDetails.ID
			detail.TreatmentID = t.MowingDetails.TreatmentID
		}
		t.MowingDetails = &detail
	}
	return nil
}

func validateTimeOfDay(v *string) error {
	if v == nil || *v == "" {
		return nil
	}
	if _, err := time.Parse("15:04", *v); err != nil {
		return model.ValidationErrorf("time must be in HH:MM format")
	}
	return nil
}

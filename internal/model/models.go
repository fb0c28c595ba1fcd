package model

import (
	"strings"
	"time"
)

// User is a minimal account record. Authentication itself is handled by an
// external session layer; plots and treatments only keep a nullable
// reference to the user that created them.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Email     string `gorm:"not null;uniqueIndex;size:255" json:"email"`
	FirstName string `gorm:"size:100" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// FullName returns "First Last", falling back to the email address.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// Location is master-list reference data for research locations
type Location struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name        string `gorm:"not null;uniqueIndex;size:200" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// TableName specifies the table name for Location
func (Location) TableName() string {
	return "locations"
}

// GrassType is master-list reference data for turf grass varieties
type GrassType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name           string `gorm:"not null;uniqueIndex;size:100" json:"name"`
	ScientificName string `gorm:"size:200" json:"scientific_name"`
	Description    string `gorm:"type:text" json:"description"`
}

// TableName specifies the table name for GrassType
func (GrassType) TableName() string {
	return "grass_types"
}

// Plot represents a research plot. Plots form a forest via ParentPlotID;
// a plot must carry either polygon coordinates or a center lat/lng pair.
type Plot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name         string   `gorm:"not null;uniqueIndex;size:100" json:"name"`
	ParentPlotID *uint    `gorm:"index" json:"parent_plot"`
	Location     string   `gorm:"size:200" json:"location"`
	SizeSqft     *float64 `gorm:"type:decimal(10,2)" json:"size_sqft"`
	GrassType    string   `gorm:"size:100" json:"grass_type"`
	Notes        string   `gorm:"type:text" json:"notes"`

	PolygonCoordinates Polygon  `gorm:"type:text" json:"polygon_coordinates,omitempty"`
	CenterLat          *float64 `gorm:"type:decimal(11,8)" json:"center_lat"`
	CenterLng          *float64 `gorm:"type:decimal(12,8)" json:"center_lng"`

	CreatedByID *uint `json:"created_by"`

	// Relationships
	ParentPlot *Plot       `gorm:"foreignKey:ParentPlotID" json:"-"`
	Subplots   []Plot      `gorm:"foreignKey:ParentPlotID" json:"-"`
	CreatedBy  *User       `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
	Treatments []Treatment `gorm:"many2many:treatment_plots" json:"-"`
}

// TableName specifies the table name for Plot
func (Plot) TableName() string {
	return "plots"
}

// HasGeometry reports whether the plot satisfies the geometry invariant:
// a non-empty polygon or a complete center coordinate pair.
func (p *Plot) HasGeometry() bool {
	return len(p.PolygonCoordinates) > 0 || (p.CenterLat != nil && p.CenterLng != nil)
}

// TreatmentType tags a treatment with the detail variant it carries
type TreatmentType string

// Supported treatment types
const (
	TreatmentWater      TreatmentType = "water"
	TreatmentFertilizer TreatmentType = "fertilizer"
	TreatmentChemical   TreatmentType = "chemical"
	TreatmentMowing     TreatmentType = "mowing"
)

// Valid reports whether t is one of the four supported treatment types.
func (t TreatmentType) Valid() bool {
	switch t {
	case TreatmentWater, TreatmentFertilizer, TreatmentChemical, TreatmentMowing:
		return true
	}
	return false
}

// Treatment is a dated application event against one or more plots. Exactly
// one of the four detail relationships is populated, and its variant matches
// TreatmentType.
type Treatment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TreatmentType TreatmentType `gorm:"not null;size:20;index:idx_treatment_type_date,priority:1" json:"treatment_type"`
	Date          Date          `gorm:"not null;type:date;index:idx_treatment_type_date,priority:2" json:"date"`
	Time          *string       `gorm:"size:5" json:"time"`
	Notes         string        `gorm:"type:text" json:"notes"`

	AppliedByID *uint `json:"applied_by"`

	// Relationships
	AppliedBy *User  `gorm:"foreignKey:AppliedByID;constraint:OnDelete:SET NULL" json:"-"`
	Plots     []Plot `gorm:"many2many:treatment_plots" json:"plots,omitempty"`

	WaterDetails      *WaterTreatment      `gorm:"foreignKey:TreatmentID;constraint:OnDelete:CASCADE" json:"water_details,omitempty"`
	FertilizerDetails *FertilizerTreatment `gorm:"foreignKey:TreatmentID;constraint:OnDelete:CASCADE" json:"fertilizer_details,omitempty"`
	ChemicalDetails   *ChemicalTreatment   `gorm:"foreignKey:TreatmentID;constraint:OnDelete:CASCADE" json:"chemical_details,omitempty"`
	MowingDetails     *MowingTreatment     `gorm:"foreignKey:TreatmentID;constraint:OnDelete:CASCADE" json:"mowing_details,omitempty"`
}

// TableName specifies the table name for Treatment
func (Treatment) TableName() string {
	return "treatments"
}

// DetailMatchesType reports whether exactly the detail variant named by
// TreatmentType is populated and the other three are absent.
func (t *Treatment) DetailMatchesType() bool {
	populated := 0
	match := false
	if t.WaterDetails != nil {
		populated++
		match = t.TreatmentType == TreatmentWater
	}
	if t.FertilizerDetails != nil {
		populated++
		match = t.TreatmentType == TreatmentFertilizer
	}
	if t.ChemicalDetails != nil {
		populated++
		match = t.TreatmentType == TreatmentChemical
	}
	if t.MowingDetails != nil {
		populated++
		match = t.TreatmentType == TreatmentMowing
	}
	return populated == 1 && match
}

// WaterTreatment holds irrigation details for a Treatment of type water
type WaterTreatment struct {
	ID          uint `gorm:"primaryKey" json:"-"`
	TreatmentID uint `gorm:"not null;uniqueIndex" json:"-"`

	AmountInches    float64 `gorm:"not null;type:decimal(5,2)" json:"amount_inches"`
	DurationMinutes *int    `json:"duration_minutes"`
	Method          string  `gorm:"size:50" json:"method"`
}

// TableName specifies the table name for WaterTreatment
func (WaterTreatment) TableName() string {
	return "water_treatments"
}

// FertilizerTreatment holds fertilizer application details
type FertilizerTreatment struct {
	ID          uint `gorm:"primaryKey" json:"-"`
	TreatmentID uint `gorm:"not null;uniqueIndex" json:"-"`

	ProductName     string   `gorm:"not null;size:200" json:"product_name"`
	NPKRatio        string   `gorm:"column:npk_ratio;size:20" json:"npk_ratio"`
	Amount          float64  `gorm:"not null;type:decimal(10,2)" json:"amount"`
	AmountUnit      string   `gorm:"size:20;default:lbs" json:"amount_unit"`
	RatePer1000Sqft *float64 `gorm:"column:rate_per_1000sqft;type:decimal(10,2)" json:"rate_per_1000sqft"`
}

// TableName specifies the table name for FertilizerTreatment
func (FertilizerTreatment) TableName() string {
	return "fertilizer_treatments"
}

// ChemicalType classifies a chemical treatment
type ChemicalType string

// Supported chemical sub-types
const (
	ChemicalHerbicide       ChemicalType = "herbicide"
	ChemicalInsecticide     ChemicalType = "insecticide"
	ChemicalFungicide       ChemicalType = "fungicide"
	ChemicalGrowthRegulator ChemicalType = "growth_regulator"
	ChemicalOther           ChemicalType = "other"
)

// Valid reports whether c is a supported chemical sub-type.
func (c ChemicalType) Valid() bool {
	switch c {
	case ChemicalHerbicide, ChemicalInsecticide, ChemicalFungicide, ChemicalGrowthRegulator, ChemicalOther:
		return true
	}
	return false
}

// ChemicalTreatment holds pesticide/herbicide/fungicide application details
type ChemicalTreatment struct {
	ID          uint `gorm:"primaryKey" json:"-"`
	TreatmentID uint `gorm:"not null;uniqueIndex" json:"-"`

	ChemicalType     ChemicalType `gorm:"not null;size:20" json:"chemical_type"`
	ProductName      string       `gorm:"not null;size:200" json:"product_name"`
	ActiveIngredient string       `gorm:"size:200" json:"active_ingredient"`
	Amount           float64      `gorm:"not null;type:decimal(10,2)" json:"amount"`
	AmountUnit       string       `gorm:"size:20;default:oz" json:"amount_unit"`
	RatePer1000Sqft  *float64     `gorm:"column:rate_per_1000sqft;type:decimal(10,2)" json:"rate_per_1000sqft"`
	TargetPest       string       `gorm:"size:200" json:"target_pest"`
}

// TableName specifies the table name for ChemicalTreatment
func (ChemicalTreatment) TableName() string {
	return "chemical_treatments"
}

// MowingTreatment holds mowing details
type MowingTreatment struct {
	ID          uint `gorm:"primaryKey" json:"-"`
	TreatmentID uint `gorm:"not null;uniqueIndex" json:"-"`

	HeightInches     float64 `gorm:"not null;type:decimal(4,2)" json:"height_inches"`
	ClippingsRemoved bool    `gorm:"default:false" json:"clippings_removed"`
	MowerType        string  `gorm:"size:50" json:"mower_type"`
	Pattern          string  `gorm:"size:50" json:"pattern"`
}

// TableName specifies the table name for MowingTreatment
func (MowingTreatment) TableName() string {
	return "mowing_treatments"
}

// ContactMessage stores a contact-form submission for audit and spam review
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Name         string `gorm:"not null;size:255" json:"name"`
	Email        string `gorm:"not null;index;size:255" json:"email"`
	Subject      string `gorm:"not null;size:255" json:"subject"`
	Message      string `gorm:"not null;type:text" json:"message"`
	SubmittedURL string `gorm:"size:500" json:"submitted_url"`
	IPAddress    string `gorm:"index;size:45" json:"ip_address"`
	UserAgent    string `gorm:"type:text" json:"user_agent"`
}

// TableName specifies the table name for ContactMessage
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// Package fbo defines the facility record model shared by the
// reconciliation engine, the local store, and the remote store adapters.
package fbo

import (
	"github.com/agentstation/utc"
)

// ImportLabel is the provenance label reserved for bulk-imported baseline
// rows. Interactive edits must never carry it; the merge policy treats any
// other non-empty label as an interactive contributor.
const ImportLabel = "baseline-import"

// Record represents one ground-service provider (FBO) at one airport.
type Record struct {
	// Core identity
	LocationCode string `json:"location_code" yaml:"location_code"` // Airport identifier (uppercase, 3-4 chars)
	Name         string `json:"name" yaml:"name"`                   // Display name (free text)

	// Contact
	Phone     *string `json:"phone,omitempty" yaml:"phone,omitempty"`         // Front-desk phone number
	Frequency *string `json:"frequency,omitempty" yaml:"frequency,omitempty"` // Unicom/arinc radio frequency
	Website   *string `json:"website,omitempty" yaml:"website,omitempty"`     // Public website URL

	// Fuel - prices are meaningless without FuelPriceDate; the pair is
	// set and cleared together
	JetAPrice         *float64  `json:"jet_a_price,omitempty" yaml:"jet_a_price,omitempty"`                 // Jet-A price per gallon (USD)
	AvgasPrice        *float64  `json:"avgas_price,omitempty" yaml:"avgas_price,omitempty"`                 // 100LL price per gallon (USD)
	FuelPriceDate     *utc.Time `json:"fuel_price_date,omitempty" yaml:"fuel_price_date,omitempty"`         // When the prices were observed
	FuelPriceReporter *string   `json:"fuel_price_reporter,omitempty" yaml:"fuel_price_reporter,omitempty"` // Who reported the prices

	// Amenities - additive booleans, never regress under merge
	HasCrewCar     bool `json:"has_crew_car" yaml:"has_crew_car"`       // Crew cars available
	HasCrewLounge  bool `json:"has_crew_lounge" yaml:"has_crew_lounge"` // Crew lounge
	HasCatering    bool `json:"has_catering" yaml:"has_catering"`       // Catering arrangements
	HasMaintenance bool `json:"has_maintenance" yaml:"has_maintenance"` // On-field maintenance
	HasHangars     bool `json:"has_hangars" yaml:"has_hangars"`         // Hangar space
	HasDeice       bool `json:"has_deice" yaml:"has_deice"`             // De-ice service
	HasOxygen      bool `json:"has_oxygen" yaml:"has_oxygen"`           // Oxygen service
	HasGPU         bool `json:"has_gpu" yaml:"has_gpu"`                 // Ground power unit
	HasLavService  bool `json:"has_lav_service" yaml:"has_lav_service"` // Lavatory service

	// Fees
	HandlingFee   *float64 `json:"handling_fee,omitempty" yaml:"handling_fee,omitempty"`       // Handling fee (USD)
	OvernightFee  *float64 `json:"overnight_fee,omitempty" yaml:"overnight_fee,omitempty"`     // Overnight parking fee (USD)
	RampFee       *float64 `json:"ramp_fee,omitempty" yaml:"ramp_fee,omitempty"`               // Ramp fee (USD)
	RampFeeWaived *bool    `json:"ramp_fee_waived,omitempty" yaml:"ramp_fee_waived,omitempty"` // Waived with fuel purchase; only meaningful with RampFee set

	// Rating - backend-derived only, never edited locally
	AvgRating   *float64 `json:"avg_rating,omitempty" yaml:"avg_rating,omitempty"`     // Average pilot rating
	RatingCount *int     `json:"rating_count,omitempty" yaml:"rating_count,omitempty"` // Number of ratings behind AvgRating

	// Provenance
	LastUpdated utc.Time `json:"last_updated" yaml:"last_updated"`                 // Freshness timestamp, max() under merge
	UpdatedBy   string   `json:"updated_by,omitempty" yaml:"updated_by,omitempty"` // Source label; ImportLabel is reserved for bulk rows
	RemoteID    *string  `json:"remote_id,omitempty" yaml:"remote_id,omitempty"`   // Backend identifier, present once synced
	IsVerified  bool     `json:"is_verified" yaml:"is_verified"`                   // Baseline-curated record, protected from deletion
	PendingPush bool     `json:"pending_push" yaml:"pending_push"`                 // Created/edited locally, not yet pushed upstream
}

// Key returns the normalized comparison key for the record's name.
func (r *Record) Key() string {
	return Normalize(r.Name)
}

// HasFuelPrice reports whether the record carries any fuel price data.
func (r *Record) HasFuelPrice() bool {
	return r.JetAPrice != nil || r.AvgasPrice != nil
}

// SetFuelPrice sets the fuel price unit as a whole.
func (r *Record) SetFuelPrice(jetA, avgas *float64, date utc.Time, reporter string) {
	r.JetAPrice = jetA
	r.AvgasPrice = avgas
	r.FuelPriceDate = &date
	if reporter != "" {
		r.FuelPriceReporter = &reporter
	} else {
		r.FuelPriceReporter = nil
	}
}

// ClearFuelPrice clears the fuel price unit as a whole.
func (r *Record) ClearFuelPrice() {
	r.JetAPrice = nil
	r.AvgasPrice = nil
	r.FuelPriceDate = nil
	r.FuelPriceReporter = nil
}

// Interactive reports whether the record's provenance label marks it as an
// interactive contribution rather than a bulk-imported baseline row.
func (r *Record) Interactive() bool {
	return r.UpdatedBy != "" && r.UpdatedBy != ImportLabel
}

// Clone returns a deep copy of the record. Pointer fields are duplicated so
// mutating the copy never leaks into the original.
func (r Record) Clone() Record {
	c := r
	c.Phone = clonePtr(r.Phone)
	c.Frequency = clonePtr(r.Frequency)
	c.Website = clonePtr(r.Website)
	c.JetAPrice = clonePtr(r.JetAPrice)
	c.AvgasPrice = clonePtr(r.AvgasPrice)
	c.FuelPriceDate = clonePtr(r.FuelPriceDate)
	c.FuelPriceReporter = clonePtr(r.FuelPriceReporter)
	c.HandlingFee = clonePtr(r.HandlingFee)
	c.OvernightFee = clonePtr(r.OvernightFee)
	c.RampFee = clonePtr(r.RampFee)
	c.RampFeeWaived = clonePtr(r.RampFeeWaived)
	c.AvgRating = clonePtr(r.AvgRating)
	c.RatingCount = clonePtr(r.RatingCount)
	c.RemoteID = clonePtr(r.RemoteID)
	return c
}

// CloneAll deep-copies a slice of records.
func CloneAll(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i := range records {
		out[i] = records[i].Clone()
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

package reconcile

import (
	"github.com/propilot/fbohub/pkg/fbo"
)

// Merge combines two records already identified as the same real-world
// facility into one. It is pure and deterministic: no I/O, no clock reads,
// and it never fails. Each field group is resolved independently:
//
//  1. Identity (LocationCode, Name) stays with existing so cosmetic name
//     variants never churn the stored spelling. RemoteID takes incoming's
//     value when present.
//  2. Contact, fee, and rating fields go to incoming when incoming is an
//     interactive edit, to existing otherwise, with the loser filling nulls.
//  3. Amenity flags OR together and never regress.
//  4. The fuel price unit (both prices, date, reporter) moves together from
//     whichever side carries the strictly newer observation date.
//  5. IsVerified and PendingPush OR together; LastUpdated takes the max.
func Merge(existing, incoming fbo.Record) fbo.Record {
	merged := existing.Clone()

	merged.RemoteID = coalesce(incoming.RemoteID, existing.RemoteID)

	mergeAttributed(&merged, existing, incoming)
	mergeAmenities(&merged, existing, incoming)
	mergeFuelPrice(&merged, existing, incoming)
	mergeProvenance(&merged, existing, incoming)

	return merged
}

// mergeAttributed resolves the contact, fee, and rating fields. Incoming wins
// when it is an interactive edit; when both sides are interactive the
// strictly newer LastUpdated wins and ties keep existing.
func mergeAttributed(merged *fbo.Record, existing, incoming fbo.Record) {
	incomingWins := incoming.Interactive()
	if incomingWins && existing.Interactive() {
		incomingWins = incoming.LastUpdated.Time.After(existing.LastUpdated.Time)
	}

	if incomingWins {
		merged.Phone = coalesce(incoming.Phone, existing.Phone)
		merged.Frequency = coalesce(incoming.Frequency, existing.Frequency)
		merged.Website = coalesce(incoming.Website, existing.Website)
		merged.HandlingFee = coalesce(incoming.HandlingFee, existing.HandlingFee)
		merged.OvernightFee = coalesce(incoming.OvernightFee, existing.OvernightFee)
		merged.RampFee = coalesce(incoming.RampFee, existing.RampFee)
		merged.AvgRating = coalesce(incoming.AvgRating, existing.AvgRating)
		merged.RatingCount = coalesce(incoming.RatingCount, existing.RatingCount)
	} else {
		merged.Phone = coalesce(existing.Phone, incoming.Phone)
		merged.Frequency = coalesce(existing.Frequency, incoming.Frequency)
		merged.Website = coalesce(existing.Website, incoming.Website)
		merged.HandlingFee = coalesce(existing.HandlingFee, incoming.HandlingFee)
		merged.OvernightFee = coalesce(existing.OvernightFee, incoming.OvernightFee)
		merged.RampFee = coalesce(existing.RampFee, incoming.RampFee)
		merged.AvgRating = coalesce(existing.AvgRating, incoming.AvgRating)
		merged.RatingCount = coalesce(existing.RatingCount, incoming.RatingCount)
	}

	// The waived flag is meaningless without a fee, so it only moves when
	// incoming also carries a ramp fee value.
	merged.RampFeeWaived = existing.RampFeeWaived
	if incoming.RampFee != nil {
		if incomingWins && incoming.RampFeeWaived != nil {
			merged.RampFeeWaived = incoming.RampFeeWaived
		} else if merged.RampFeeWaived == nil {
			merged.RampFeeWaived = incoming.RampFeeWaived
		}
	}
}

// mergeAmenities ORs the amenity flags so a confirmed amenity never regresses.
func mergeAmenities(merged *fbo.Record, existing, incoming fbo.Record) {
	merged.HasCrewCar = existing.HasCrewCar || incoming.HasCrewCar
	merged.HasCrewLounge = existing.HasCrewLounge || incoming.HasCrewLounge
	merged.HasCatering = existing.HasCatering || incoming.HasCatering
	merged.HasMaintenance = existing.HasMaintenance || incoming.HasMaintenance
	merged.HasHangars = existing.HasHangars || incoming.HasHangars
	merged.HasDeice = existing.HasDeice || incoming.HasDeice
	merged.HasOxygen = existing.HasOxygen || incoming.HasOxygen
	merged.HasGPU = existing.HasGPU || incoming.HasGPU
	merged.HasLavService = existing.HasLavService || incoming.HasLavService
}

// mergeFuelPrice moves the fuel price unit as a whole. A missing price date is
// treated as the earliest possible instant, and a side with any price data
// beats a side with none even when its date is not newer.
func mergeFuelPrice(merged *fbo.Record, existing, incoming fbo.Record) {
	if takeIncomingFuel(existing, incoming) {
		merged.JetAPrice = clone(incoming.JetAPrice)
		merged.AvgasPrice = clone(incoming.AvgasPrice)
		merged.FuelPriceDate = clone(incoming.FuelPriceDate)
		merged.FuelPriceReporter = clone(incoming.FuelPriceReporter)
		return
	}
	merged.JetAPrice = clone(existing.JetAPrice)
	merged.AvgasPrice = clone(existing.AvgasPrice)
	merged.FuelPriceDate = clone(existing.FuelPriceDate)
	merged.FuelPriceReporter = clone(existing.FuelPriceReporter)
}

func takeIncomingFuel(existing, incoming fbo.Record) bool {
	if incoming.FuelPriceDate != nil {
		if existing.FuelPriceDate == nil || incoming.FuelPriceDate.Time.After(existing.FuelPriceDate.Time) {
			return true
		}
	}
	// Price beats no price regardless of dates.
	return !existing.HasFuelPrice() && incoming.HasFuelPrice()
}

// mergeProvenance resolves verification, push state, and freshness. UpdatedBy
// follows whichever side supplied the winning LastUpdated, existing on ties.
func mergeProvenance(merged *fbo.Record, existing, incoming fbo.Record) {
	merged.IsVerified = existing.IsVerified || incoming.IsVerified
	merged.PendingPush = existing.PendingPush || incoming.PendingPush

	if incoming.LastUpdated.Time.After(existing.LastUpdated.Time) {
		merged.LastUpdated = incoming.LastUpdated
		merged.UpdatedBy = incoming.UpdatedBy
	} else {
		merged.LastUpdated = existing.LastUpdated
		merged.UpdatedBy = existing.UpdatedBy
	}
}

// coalesce returns the first non-nil pointer, copied so the merged record
// never aliases either input.
func coalesce[T any](a, b *T) *T {
	if a != nil {
		return clone(a)
	}
	return clone(b)
}

func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

package pricing

import (
	"math"

	"rideconnect/config"
	"rideconnect/models"
)

// MaxPassengers is the largest party a single ride accepts.
const MaxPassengers = 6

// RateConfig is one pricing tier.
type RateConfig struct {
	HourlyRate  float64
	MinimumFare float64
}

// Policy holds the fare rules. The zero value is not useful; use DefaultPolicy or PolicyFromConfig.
type Policy struct {
	Standard         RateConfig
	Airport          RateConfig
	BaseFare         float64
	PerPassengerRate float64
	AirportSurcharge float64
	// FallbackBuffer is added to the minimum fare when no estimate could be produced.
	FallbackBuffer float64
}

func DefaultPolicy() Policy {
	return Policy{
		Standard:         RateConfig{HourlyRate: 60, MinimumFare: 16},
		Airport:          RateConfig{HourlyRate: 80, MinimumFare: 30},
		BaseFare:         0,
		PerPassengerRate: 5,
		FallbackBuffer:   10,
	}
}

// PolicyFromConfig builds the policy from the loaded application config.
func PolicyFromConfig(cfg config.Config) Policy {
	p := DefaultPolicy()
	p.Standard = RateConfig{HourlyRate: cfg.StandardHourlyRate, MinimumFare: cfg.StandardMinimumFare}
	p.Airport = RateConfig{HourlyRate: cfg.AirportHourlyRate, MinimumFare: cfg.AirportMinimumFare}
	p.BaseFare = cfg.BaseFare
	p.PerPassengerRate = cfg.PerPassengerRate
	p.AirportSurcharge = cfg.AirportSurcharge
	return p
}

func (p Policy) Rate(isAirportRoute bool) RateConfig {
	if isAirportRoute {
		return p.Airport
	}
	return p.Standard
}

func RateTypeFor(isAirportRoute bool) models.RateType {
	if isAirportRoute {
		return models.RateAirport
	}
	return models.RateStandard
}

// Price applies the fare formula to a ride of durationHours. The result never
// falls below the tier's minimum fare.
func (p Policy) Price(durationHours float64, isAirportRoute bool, passengerCount int) (float64, models.FareBreakdown) {
	rate := p.Rate(isAirportRoute)
	if durationHours < 0 || math.IsNaN(durationHours) || math.IsInf(durationHours, 0) {
		durationHours = 0
	}
	extra := ClampPassengers(passengerCount) - 1

	bd := models.FareBreakdown{
		BaseFare:     p.BaseFare,
		TimeCharge:   durationHours * rate.HourlyRate,
		PassengerFee: float64(extra) * p.PerPassengerRate,
	}
	if isAirportRoute {
		bd.AirportSurcharge = p.AirportSurcharge
	}

	total := bd.BaseFare + bd.TimeCharge + bd.PassengerFee + bd.AirportSurcharge
	if total < rate.MinimumFare {
		total = rate.MinimumFare
		bd.MinimumApplied = true
	}

	bd.BaseFare = RoundCents(bd.BaseFare)
	bd.TimeCharge = RoundCents(bd.TimeCharge)
	bd.PassengerFee = RoundCents(bd.PassengerFee)
	bd.AirportSurcharge = RoundCents(bd.AirportSurcharge)
	return RoundCents(total), bd
}

// FallbackPrice is the flat price offered when the pipeline could not estimate a route.
func (p Policy) FallbackPrice(isAirportRoute bool) float64 {
	return RoundCents(p.Rate(isAirportRoute).MinimumFare + p.FallbackBuffer)
}

// ClampPassengers maps any count onto [1, MaxPassengers]; zero means a single rider.
func ClampPassengers(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxPassengers {
		return MaxPassengers
	}
	return n
}

// RoundCents rounds half-up to two decimals.
func RoundCents(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

package pricing

import (
	"fmt"
	"math"

	"rideconnect/models"
)

// QuoteDisplay is the human-readable form of a quote.
type QuoteDisplay struct {
	PriceText string `json:"priceText"`
	RateInfo  string `json:"rateInfo"`
	RouteInfo string `json:"routeInfo"`
}

func (p Policy) FormatQuote(q models.FareQuote) QuoteDisplay {
	rate := p.Rate(q.IsAirportRoute)
	label := "Standard"
	if q.IsAirportRoute {
		label = "Airport"
	}
	return QuoteDisplay{
		PriceText: fmt.Sprintf("$%.2f", q.TotalPrice),
		RateInfo:  fmt.Sprintf("%s Rate: $%g/hour (min $%g)", label, rate.HourlyRate, rate.MinimumFare),
		RouteInfo: fmt.Sprintf("%.1f miles • %d minutes", q.DistanceMiles, int(math.Round(q.DurationHours*60))),
	}
}

package models

// Coordinate is a (longitude, latitude) pair in decimal degrees.
type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// RouteEstimate is a driving duration and distance between two coordinates.
type RouteEstimate struct {
	DurationSeconds float64 `json:"durationSeconds"`
	DistanceMeters  float64 `json:"distanceMeters"`
}

type RateType string

const (
	RateStandard RateType = "standard"
	RateAirport  RateType = "airport"
)

// FareBreakdown itemises a quote. The parts sum to the total unless the minimum fare applied.
type FareBreakdown struct {
	BaseFare         float64 `bson:"baseFare" json:"baseFare"`
	TimeCharge       float64 `bson:"timeCharge" json:"timeCharge"`
	PassengerFee     float64 `bson:"passengerFee" json:"passengerFee"`
	AirportSurcharge float64 `bson:"airportSurcharge" json:"airportSurcharge"`
	MinimumApplied   bool    `bson:"minimumApplied" json:"minimumApplied"`
}

type FareQuote struct {
	TotalPrice     float64       `json:"totalPrice"`
	DurationHours  float64       `json:"durationHours"`
	DistanceMiles  float64       `json:"distanceMiles"`
	IsAirportRoute bool          `json:"isAirportRoute"`
	RateType       RateType      `json:"rateType"`
	PassengerCount int           `json:"passengerCount"`
	Breakdown      FareBreakdown `json:"breakdown"`
}

// QuoteRequest is the input to a fare estimate.
type QuoteRequest struct {
	Pickup         string `json:"pickupLocation" binding:"required"`
	Dropoff        string `json:"dropoffLocation" binding:"required"`
	IsAirportRoute bool   `json:"isAirportRoute"`
	PassengerCount int    `json:"passengerCount"`
}

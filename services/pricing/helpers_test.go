package pricing

import "rideconnect/config"

func configWithRates(standardMin, airportHourly float64) config.Config {
	return config.Config{
		StandardHourlyRate:  60,
		StandardMinimumFare: standardMin,
		AirportHourlyRate:   airportHourly,
		AirportMinimumFare:  30,
		PerPassengerRate:    5,
	}
}

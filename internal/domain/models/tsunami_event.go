package models

// TsunamiEvent is a row of the NOAA historical tsunami catalogue. The catalogue
// is loosely shaped: apart from the external ID any attribute may be missing.
type TsunamiEvent struct {
	ID int64

	Year   *int
	Month  *int
	Day    *int
	Hour   *int
	Minute *int
	Second *float64

	FocalDepth       *float64
	PrimaryMagnitude *float64

	Country      *string
	State        *string
	LocationName *string

	Latitude  *float64
	Longitude *float64

	MaximumWaterHeight *float64
}

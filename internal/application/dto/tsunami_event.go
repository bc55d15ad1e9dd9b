package dto

import "github.com/ecnlab/ecn/internal/domain/models"

// TsunamiEventResponse is the wire form of a NOAA catalogue entry.
type TsunamiEventResponse struct {
	ID                 int64    `json:"id"`
	Year               *int     `json:"year"`
	Month              *int     `json:"month"`
	Day                *int     `json:"day"`
	Hour               *int     `json:"hour"`
	Minute             *int     `json:"minute"`
	Second             *float64 `json:"second"`
	FocalDepth         *float64 `json:"focalDepth"`
	PrimaryMagnitude   *float64 `json:"primaryMagnitude"`
	Country            *string  `json:"country"`
	State              *string  `json:"state"`
	LocationName       *string  `json:"locationName"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	MaximumWaterHeight *float64 `json:"maximumWaterHeight"`
}

type TsunamiEventList struct {
	TsunamiEvents []*TsunamiEventResponse `json:"tsunamiEvents"`
}

// TsunamiEventListResponse is the envelope returned by GET /tsunamiEvents.
type TsunamiEventListResponse struct {
	Embedded TsunamiEventList `json:"_embedded"`
}

func NewTsunamiEventResponse(e *models.TsunamiEvent) *TsunamiEventResponse {
	return &TsunamiEventResponse{
		ID:                 e.ID,
		Year:               e.Year,
		Month:              e.Month,
		Day:                e.Day,
		Hour:               e.Hour,
		Minute:             e.Minute,
		Second:             e.Second,
		FocalDepth:         e.FocalDepth,
		PrimaryMagnitude:   e.PrimaryMagnitude,
		Country:            e.Country,
		State:              e.State,
		LocationName:       e.LocationName,
		Latitude:           e.Latitude,
		Longitude:          e.Longitude,
		MaximumWaterHeight: e.MaximumWaterHeight,
	}
}

func NewTsunamiEventListResponse(events []*models.TsunamiEvent) *TsunamiEventListResponse {
	items := make([]*TsunamiEventResponse, 0, len(events))
	for _, e := range events {
		items = append(items, NewTsunamiEventResponse(e))
	}
	return &TsunamiEventListResponse{Embedded: TsunamiEventList{TsunamiEvents: items}}
}

package dto

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/ecnlab/ecn/internal/domain/models"
)

// EarthquakeResponse is the wire form of an earthquake. Absent attributes are
// serialized as null, never omitted.
type EarthquakeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	UsgsID   *string `json:"usgsId"`
	UsgsName *string `json:"usgsName"`

	OriginTime     *string `json:"originTime"`
	UsgsOriginTime *string `json:"usgsOriginTime"`
	IrisOriginTime *string `json:"irisOriginTime"`

	NoaaLocation *string `json:"noaaLocation"`

	NoviantyRuptureDuration     *float64 `json:"noviantyRuptureDuration"`
	NoviantyPWaveDominantPeriod *float64 `json:"noviantyPWaveDominantPeriod"`
	NoviantyT0xTd               *float64 `json:"noviantyT0xtd"`
	NoviantyMw                  *float64 `json:"noviantyMw"`

	Mw     *float64 `json:"mw"`
	UsgsMw *float64 `json:"usgsMw"`
	IrisMw *float64 `json:"irisMw"`

	NoaaTsunami   *bool  `json:"noaaTsunami"`
	NoaaTsunamiID *int64 `json:"noaaTsunamiId"`

	Unknown1  *int64   `json:"unknown1"`
	UsgsDepth *float64 `json:"usgsDepth"`

	CollectionName *string `json:"collectionName"`
	CollectionPos  *int64  `json:"collectionPos"`

	Epicenter     *geojson.Geometry `json:"epicenter"`
	UsgsEpicenter *geojson.Geometry `json:"usgsEpicenter"`
}

// EarthquakeList is the _embedded body of the list response.
type EarthquakeList struct {
	Earthquakes []*EarthquakeResponse `json:"earthquakes"`
}

// EarthquakeListResponse is the envelope returned by GET /earthquakes.
type EarthquakeListResponse struct {
	Embedded EarthquakeList `json:"_embedded"`
}

// NewEarthquakeResponse converts a domain earthquake.
func NewEarthquakeResponse(e *models.Earthquake) *EarthquakeResponse {
	return &EarthquakeResponse{
		ID:                          e.ID,
		Name:                        e.Name,
		UsgsID:                      e.UsgsID,
		UsgsName:                    e.UsgsName,
		OriginTime:                  FormatTimestamp(e.OriginTime),
		UsgsOriginTime:              FormatTimestamp(e.UsgsOriginTime),
		IrisOriginTime:              FormatTimestamp(e.IrisOriginTime),
		NoaaLocation:                e.NoaaLocation,
		NoviantyRuptureDuration:     e.NoviantyRuptureDuration,
		NoviantyPWaveDominantPeriod: e.NoviantyPWaveDominantPeriod,
		NoviantyT0xTd:               e.NoviantyT0xTd,
		NoviantyMw:                  e.NoviantyMw,
		Mw:                          e.Mw,
		UsgsMw:                      e.UsgsMw,
		IrisMw:                      e.IrisMw,
		NoaaTsunami:                 e.NoaaTsunami,
		NoaaTsunamiID:               e.NoaaTsunamiID,
		Unknown1:                    e.Unknown1,
		UsgsDepth:                   e.UsgsDepth,
		CollectionName:              e.CollectionName,
		CollectionPos:               e.CollectionPos,
		Epicenter:                   pointGeometry(e.Epicenter),
		UsgsEpicenter:               pointGeometry(e.UsgsEpicenter),
	}
}

// NewEarthquakeListResponse wraps earthquakes in the _embedded envelope. The
// list is never nil so an empty result renders as [].
func NewEarthquakeListResponse(earthquakes []*models.Earthquake) *EarthquakeListResponse {
	items := make([]*EarthquakeResponse, 0, len(earthquakes))
	for _, e := range earthquakes {
		items = append(items, NewEarthquakeResponse(e))
	}
	return &EarthquakeListResponse{Embedded: EarthquakeList{Earthquakes: items}}
}

func pointGeometry(p *orb.Point) *geojson.Geometry {
	if p == nil {
		return nil
	}
	return geojson.NewGeometry(*p)
}

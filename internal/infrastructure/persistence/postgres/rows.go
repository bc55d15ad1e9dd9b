package postgres

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"gorm.io/datatypes"

	"github.com/ecnlab/ecn/internal/domain/models"
)

// earthquakeRow is the earthquakes table. Epicenters are GeoJSON geometries in
// JSON columns.
type earthquakeRow struct {
	ID   string `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name;not null"`

	UsgsID   *string `gorm:"column:usgs_id"`
	UsgsName *string `gorm:"column:usgs_name"`

	OriginTime     *time.Time `gorm:"column:origin_time"`
	UsgsOriginTime *time.Time `gorm:"column:usgs_origin_time"`
	IrisOriginTime *time.Time `gorm:"column:iris_origin_time"`

	NoaaLocation *string `gorm:"column:noaa_location"`

	NoviantyRuptureDuration     *float64 `gorm:"column:novianty_rupture_duration"`
	NoviantyPWaveDominantPeriod *float64 `gorm:"column:novianty_p_wave_dominant_period"`
	NoviantyT0xTd               *float64 `gorm:"column:novianty_t0xtd"`
	NoviantyMw                  *float64 `gorm:"column:novianty_mw"`

	Mw     *float64 `gorm:"column:mw"`
	UsgsMw *float64 `gorm:"column:usgs_mw"`
	IrisMw *float64 `gorm:"column:iris_mw"`

	NoaaTsunami   *bool  `gorm:"column:noaa_tsunami"`
	NoaaTsunamiID *int64 `gorm:"column:noaa_tsunami_id"`

	Unknown1  *int64   `gorm:"column:unknown1"`
	UsgsDepth *float64 `gorm:"column:usgs_depth"`

	CollectionName *string `gorm:"column:collection_name"`
	CollectionPos  *int64  `gorm:"column:collection_pos"`

	Epicenter     datatypes.JSON `gorm:"column:epicenter"`
	UsgsEpicenter datatypes.JSON `gorm:"column:usgs_epicenter"`
}

func (earthquakeRow) TableName() string {
	return "earthquakes"
}

func (r *earthquakeRow) toDomain() *models.Earthquake {
	return &models.Earthquake{
		ID:                          r.ID,
		Name:                        r.Name,
		UsgsID:                      r.UsgsID,
		UsgsName:                    r.UsgsName,
		OriginTime:                  utc(r.OriginTime),
		UsgsOriginTime:              utc(r.UsgsOriginTime),
		IrisOriginTime:              utc(r.IrisOriginTime),
		NoaaLocation:                r.NoaaLocation,
		NoviantyRuptureDuration:     r.NoviantyRuptureDuration,
		NoviantyPWaveDominantPeriod: r.NoviantyPWaveDominantPeriod,
		NoviantyT0xTd:               r.NoviantyT0xTd,
		NoviantyMw:                  r.NoviantyMw,
		Mw:                          r.Mw,
		UsgsMw:                      r.UsgsMw,
		IrisMw:                      r.IrisMw,
		NoaaTsunami:                 r.NoaaTsunami,
		NoaaTsunamiID:               r.NoaaTsunamiID,
		Unknown1:                    r.Unknown1,
		UsgsDepth:                   r.UsgsDepth,
		CollectionName:              r.CollectionName,
		CollectionPos:               r.CollectionPos,
		Epicenter:                   decodePoint(r.Epicenter),
		UsgsEpicenter:               decodePoint(r.UsgsEpicenter),
	}
}

func newEarthquakeRow(e *models.Earthquake) *earthquakeRow {
	return &earthquakeRow{
		ID:                          e.ID,
		Name:                        e.Name,
		UsgsID:                      e.UsgsID,
		UsgsName:                    e.UsgsName,
		OriginTime:                  e.OriginTime,
		UsgsOriginTime:              e.UsgsOriginTime,
		IrisOriginTime:              e.IrisOriginTime,
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
		Epicenter:                   encodePoint(e.Epicenter),
		UsgsEpicenter:               encodePoint(e.UsgsEpicenter),
	}
}

// decodePoint returns nil for empty columns and for geometries that are not points.
func decodePoint(raw datatypes.JSON) *orb.Point {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil
	}
	p, ok := g.Geometry().(orb.Point)
	if !ok {
		return nil
	}
	return &p
}

func encodePoint(p *orb.Point) datatypes.JSON {
	if p == nil {
		return nil
	}
	b, err := geojson.NewGeometry(*p).MarshalJSON()
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// tsunamiEventRow is the tsunami_events table, one row per NOAA catalogue entry.
type tsunamiEventRow struct {
	ID                 int64    `gorm:"column:id;primaryKey;autoIncrement:false"`
	Year               *int     `gorm:"column:year;index"`
	Month              *int     `gorm:"column:month"`
	Day                *int     `gorm:"column:day"`
	Hour               *int     `gorm:"column:hour"`
	Minute             *int     `gorm:"column:minute"`
	Second             *float64 `gorm:"column:second"`
	FocalDepth         *float64 `gorm:"column:focal_depth"`
	PrimaryMagnitude   *float64 `gorm:"column:primary_magnitude"`
	Country            *string  `gorm:"column:country"`
	State              *string  `gorm:"column:state"`
	LocationName       *string  `gorm:"column:location_name"`
	Latitude           *float64 `gorm:"column:latitude"`
	Longitude          *float64 `gorm:"column:longitude"`
	MaximumWaterHeight *float64 `gorm:"column:maximum_water_height"`
}

func (tsunamiEventRow) TableName() string {
	return "tsunami_events"
}

func (r *tsunamiEventRow) toDomain() *models.TsunamiEvent {
	return &models.TsunamiEvent{
		ID:                 r.ID,
		Year:               r.Year,
		Month:              r.Month,
		Day:                r.Day,
		Hour:               r.Hour,
		Minute:             r.Minute,
		Second:             r.Second,
		FocalDepth:         r.FocalDepth,
		PrimaryMagnitude:   r.PrimaryMagnitude,
		Country:            r.Country,
		State:              r.State,
		LocationName:       r.LocationName,
		Latitude:           r.Latitude,
		Longitude:          r.Longitude,
		MaximumWaterHeight: r.MaximumWaterHeight,
	}
}

func newTsunamiEventRow(e *models.TsunamiEvent) *tsunamiEventRow {
	return &tsunamiEventRow{
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

package mongo

import (
	"math"
	"time"

	"github.com/paulmach/orb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ecnlab/ecn/internal/domain/models"
)

// pointDocument is a GeoJSON Point as stored by a 2dsphere-indexed field.
type pointDocument struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

func (p *pointDocument) toPoint() *orb.Point {
	if p == nil || len(p.Coordinates) < 2 {
		return nil
	}
	pt := orb.Point{p.Coordinates[0], p.Coordinates[1]}
	return &pt
}

func fromPoint(p *orb.Point) *pointDocument {
	if p == nil {
		return nil
	}
	return &pointDocument{Type: "Point", Coordinates: []float64{p.Lon(), p.Lat()}}
}

// earthquakeDocument mirrors the earthquake collection. Unknown keys are ignored
// by the decoder.
type earthquakeDocument struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`

	UsgsID   *string `bson:"usgsId,omitempty"`
	UsgsName *string `bson:"usgsName,omitempty"`

	OriginTime     *time.Time `bson:"originTime,omitempty"`
	UsgsOriginTime *time.Time `bson:"usgsOriginTime,omitempty"`
	IrisOriginTime *time.Time `bson:"irisOriginTime,omitempty"`

	NoaaLocation *string `bson:"noaaLocation,omitempty"`

	NoviantyRuptureDuration     *float64 `bson:"noviantyRuptureDuration,omitempty"`
	NoviantyPWaveDominantPeriod *float64 `bson:"noviantyPWaveDominantPeriod,omitempty"`
	NoviantyT0xTd               *float64 `bson:"noviantyT0xtd,omitempty"`
	NoviantyMw                  *float64 `bson:"noviantyMw,omitempty"`

	Mw     *float64 `bson:"mw,omitempty"`
	UsgsMw *float64 `bson:"usgsMw,omitempty"`
	IrisMw *float64 `bson:"irisMw,omitempty"`

	NoaaTsunami   *bool  `bson:"noaaTsunami,omitempty"`
	NoaaTsunamiID *int64 `bson:"noaaTsunamiId,omitempty"`

	Unknown1  *int64   `bson:"unknown1,omitempty"`
	UsgsDepth *float64 `bson:"usgsDepth,omitempty"`

	CollectionName *string `bson:"collectionName,omitempty"`
	CollectionPos  *int64  `bson:"collectionPos,omitempty"`

	Epicenter     *pointDocument `bson:"epicenter,omitempty"`
	UsgsEpicenter *pointDocument `bson:"usgsEpicenter,omitempty"`
}

func (d *earthquakeDocument) toDomain() *models.Earthquake {
	return &models.Earthquake{
		ID:                          d.ID.Hex(),
		Name:                        d.Name,
		UsgsID:                      d.UsgsID,
		UsgsName:                    d.UsgsName,
		OriginTime:                  utc(d.OriginTime),
		UsgsOriginTime:              utc(d.UsgsOriginTime),
		IrisOriginTime:              utc(d.IrisOriginTime),
		NoaaLocation:                d.NoaaLocation,
		NoviantyRuptureDuration:     d.NoviantyRuptureDuration,
		NoviantyPWaveDominantPeriod: d.NoviantyPWaveDominantPeriod,
		NoviantyT0xTd:               d.NoviantyT0xTd,
		NoviantyMw:                  d.NoviantyMw,
		Mw:                          d.Mw,
		UsgsMw:                      d.UsgsMw,
		IrisMw:                      d.IrisMw,
		NoaaTsunami:                 d.NoaaTsunami,
		NoaaTsunamiID:               d.NoaaTsunamiID,
		Unknown1:                    d.Unknown1,
		UsgsDepth:                   d.UsgsDepth,
		CollectionName:              d.CollectionName,
		CollectionPos:               d.CollectionPos,
		Epicenter:                   d.Epicenter.toPoint(),
		UsgsEpicenter:               d.UsgsEpicenter.toPoint(),
	}
}

// newEarthquakeDocument is the inverse of toDomain. The service never writes; it
// exists for seeding test databases.
func newEarthquakeDocument(e *models.Earthquake) *earthquakeDocument {
	d := &earthquakeDocument{
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
		Epicenter:                   fromPoint(e.Epicenter),
		UsgsEpicenter:               fromPoint(e.UsgsEpicenter),
	}
	if oid, err := primitive.ObjectIDFromHex(e.ID); err == nil {
		d.ID = oid
	}
	return d
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// NOAA catalogue column names used by the tsunamiEvent collection.
const (
	fieldID                 = "ID"
	fieldYear               = "YEAR"
	fieldMonth              = "MONTH"
	fieldDay                = "DAY"
	fieldHour               = "HOUR"
	fieldMinute             = "MINUTE"
	fieldSecond             = "SECOND"
	fieldFocalDepth         = "FOCAL_DEPTH"
	fieldPrimaryMagnitude   = "PRIMARY_MAGNITUDE"
	fieldCountry            = "COUNTRY"
	fieldState              = "STATE"
	fieldLocationName       = "LOCATION_NAME"
	fieldLatitude           = "LATITUDE"
	fieldLongitude          = "LONGITUDE"
	fieldMaximumWaterHeight = "MAXIMUM_WATER_HEIGHT"
)

// decodeTsunamiEvent reads a catalogue row. Bulk CSV imports store the same
// column as int32, int64, double or an empty string depending on the row, so
// each attribute is read leniently and anything unusable becomes absent.
func decodeTsunamiEvent(raw bson.Raw) *models.TsunamiEvent {
	ev := &models.TsunamiEvent{
		Year:               intField(raw, fieldYear),
		Month:              intField(raw, fieldMonth),
		Day:                intField(raw, fieldDay),
		Hour:               intField(raw, fieldHour),
		Minute:             intField(raw, fieldMinute),
		Second:             floatField(raw, fieldSecond),
		FocalDepth:         floatField(raw, fieldFocalDepth),
		PrimaryMagnitude:   floatField(raw, fieldPrimaryMagnitude),
		Country:            stringField(raw, fieldCountry),
		State:              stringField(raw, fieldState),
		LocationName:       stringField(raw, fieldLocationName),
		Latitude:           floatField(raw, fieldLatitude),
		Longitude:          floatField(raw, fieldLongitude),
		MaximumWaterHeight: floatField(raw, fieldMaximumWaterHeight),
	}
	if id := floatField(raw, fieldID); id != nil {
		ev.ID = int64(*id)
	}
	return ev
}

func floatField(raw bson.Raw, key string) *float64 {
	rv, err := raw.LookupErr(key)
	if err != nil {
		return nil
	}
	var f float64
	switch rv.Type {
	case bsontype.Double:
		f = rv.Double()
	case bsontype.Int32:
		f = float64(rv.Int32())
	case bsontype.Int64:
		f = float64(rv.Int64())
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func intField(raw bson.Raw, key string) *int {
	f := floatField(raw, key)
	if f == nil || *f != math.Trunc(*f) {
		return nil
	}
	i := int(*f)
	return &i
}

func stringField(raw bson.Raw, key string) *string {
	rv, err := raw.LookupErr(key)
	if err != nil || rv.Type != bsontype.String {
		return nil
	}
	s := rv.StringValue()
	if s == "" {
		return nil
	}
	return &s
}

package models

import (
	"time"

	"github.com/paulmach/orb"
)

// Earthquake is a seismic event as recorded by the external ingestion process.
// Name is the only field guaranteed to be present; every other attribute is
// provenance-specific (USGS, IRIS, NOAA or the Novianty 2018 feature set) and may
// be missing, which is modelled with pointers.
type Earthquake struct {
	ID   string
	Name string

	UsgsID   *string
	UsgsName *string

	OriginTime     *time.Time
	UsgsOriginTime *time.Time
	IrisOriginTime *time.Time

	NoaaLocation *string

	// Rupture duration (t0), P-wave dominant period (td), their product and the
	// moment magnitude as derived by Novianty et al. (2018).
	NoviantyRuptureDuration     *float64
	NoviantyPWaveDominantPeriod *float64
	NoviantyT0xTd               *float64
	NoviantyMw                  *float64

	Mw     *float64
	UsgsMw *float64
	IrisMw *float64

	NoaaTsunami   *bool
	NoaaTsunamiID *int64

	Unknown1  *int64
	UsgsDepth *float64

	CollectionName *string
	CollectionPos  *int64

	Epicenter     *orb.Point
	UsgsEpicenter *orb.Point
}

package valueobject

import (
	"fmt"
	"math"
)

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000.0

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// NewGeoPoint validates coordinate ranges.
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	if lat < -90 || lat > 90 {
		return GeoPoint{}, fmt.Errorf("invalid latitude: %v", lat)
	}
	if lng < -180 || lng > 180 {
		return GeoPoint{}, fmt.Errorf("invalid longitude: %v", lng)
	}
	return GeoPoint{Lat: lat, Lng: lng}, nil
}

// DistanceMeters returns the great-circle distance to other using the
// haversine formula.
func (p GeoPoint) DistanceMeters(other GeoPoint) float64 {
	lat1 := p.Lat * math.Pi / 180
	lng1 := p.Lng * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	lng2 := other.Lng * math.Pi / 180

	dLat := lat2 - lat1
	dLng := lng2 - lng1

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return c * earthRadiusMeters
}

// TimeWindow is a daily working window in local wall-clock time, expressed as
// "HH:MM" strings. The comparison is lexicographic, which is correct for
// zero-padded 24h times.
type TimeWindow struct {
	Start string
	End   string
}

// Contains reports whether the given "HH:MM" time falls inside the window,
// inclusive at both ends.
func (w TimeWindow) Contains(hhmm string) bool {
	return w.Start <= hhmm && hhmm <= w.End
}

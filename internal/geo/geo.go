// Package geo implements great-circle distance and the bounding-box
// prefilter used by nearby search.
package geo

import (
	"math"

	"eventpulse/internal/model"
)

const (
	// earthRadiusKm is the mean radius of the Earth.
	earthRadiusKm = 6371.0

	// kmPerDegreeLat approximates the surface distance of one degree
	// of latitude.
	kmPerDegreeLat = 111.0

	// minLatCosine guards the longitude-delta division near the poles,
	// where cos(lat) collapses to zero.
	minLatCosine = 1e-6
)

// Distance returns the great-circle distance in kilometers between two
// points, computed with the haversine formula. It is symmetric and returns
// exactly zero for identical points.
func Distance(a, b model.GeoPoint) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)
	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(radians(a.Latitude))*math.Cos(radians(b.Latitude))*sinLon*sinLon
	// Floating rounding can push h marginally outside [0,1]; a negative
	// radicand or a sqrt above 1 would poison atan2.
	h = math.Max(0, math.Min(1, h))

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// BoundingBox is a rectangular degree-range filter around a center point.
// It is a superset filter: it may admit points outside the true radius but
// never rejects a point within it.
type BoundingBox struct {
	minLat, maxLat float64
	minLon, maxLon float64
	allLongitudes  bool
}

// BoundsAround computes the bounding box covering radiusKm around center.
// Near the poles the longitude span degenerates; the box then accepts all
// longitudes instead of dividing by a vanishing cosine.
func BoundsAround(center model.GeoPoint, radiusKm float64) BoundingBox {
	latDelta := radiusKm / kmPerDegreeLat

	box := BoundingBox{
		minLat: center.Latitude - latDelta,
		maxLat: center.Latitude + latDelta,
	}

	cosLat := math.Cos(radians(center.Latitude))
	if math.Abs(cosLat) < minLatCosine {
		box.allLongitudes = true
		return box
	}

	lonDelta := radiusKm / (kmPerDegreeLat * cosLat)
	box.minLon = center.Longitude - lonDelta
	box.maxLon = center.Longitude + lonDelta
	return box
}

// Contains reports whether the point falls inside the box.
func (b BoundingBox) Contains(p model.GeoPoint) bool {
	if p.Latitude < b.minLat || p.Latitude > b.maxLat {
		return false
	}
	if b.allLongitudes {
		return true
	}
	return p.Longitude >= b.minLon && p.Longitude <= b.maxLon
}

// Candidates filters events down to those whose location falls inside the
// bounding box around center. Callers refine the result with Distance; the
// box only guarantees it never drops an event within radiusKm.
func Candidates(center model.GeoPoint, radiusKm float64, events []model.Event) []model.Event {
	box := BoundsAround(center, radiusKm)

	var out []model.Event
	for _, ev := range events {
		if box.Contains(ev.Point()) {
			out = append(out, ev)
		}
	}
	return out
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

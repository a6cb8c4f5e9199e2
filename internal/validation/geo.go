package validation

import (
	"math"

	"volunteer_platform/internal/model"
)

const earthRadiusKm = 6371

func ValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

func ValidLongitude(lng float64) bool {
	return !math.IsNaN(lng) && lng >= -180 && lng <= 180
}

// PointFromLngLat parses a GeoJSON ordered pair [longitude, latitude].
func PointFromLngLat(field string, coords []float64, errs *Errors) model.GeoPoint {
	if !checkPair(field, coords, errs) {
		return model.GeoPoint{}
	}
	p := model.GeoPoint{Longitude: coords[0], Latitude: coords[1]}
	checkRanges(field, p, errs)
	return p
}

// PointFromLatLng parses an ordered pair [latitude, longitude].
func PointFromLatLng(field string, coords []float64, errs *Errors) model.GeoPoint {
	if !checkPair(field, coords, errs) {
		return model.GeoPoint{}
	}
	p := model.GeoPoint{Latitude: coords[0], Longitude: coords[1]}
	checkRanges(field, p, errs)
	return p
}

// ValidPoint reports whether both axes are within WGS84 bounds
func ValidPoint(p model.GeoPoint) bool {
	return ValidLatitude(p.Latitude) && ValidLongitude(p.Longitude)
}

func checkPair(field string, coords []float64, errs *Errors) bool {
	if coords == nil {
		errs.Add(field, "is required")
		return false
	}
	if len(coords) != 2 {
		errs.Add(field, "must have exactly 2 elements")
		return false
	}
	return true
}

func checkRanges(field string, p model.GeoPoint, errs *Errors) {
	if !ValidLatitude(p.Latitude) {
		errs.Add(field, "latitude must be between -90 and 90")
	}
	if !ValidLongitude(p.Longitude) {
		errs.Add(field, "longitude must be between -180 and 180")
	}
}

// DistanceKm returns the great-circle distance between a and b using the Haversine formula
func DistanceKm(a, b model.GeoPoint) float64 {
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Latitude*math.Pi/180)*math.Cos(b.Latitude*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

package model

import "encoding/json"

// GeoPoint is a WGS84 position. It is the single in-process representation of a
// coordinate; wire formats convert to and from it at the API boundary.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// LngLat marshals a point in GeoJSON order: [longitude, latitude].
// Volunteer profile locations use this order.
type LngLat GeoPoint

func (p LngLat) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Longitude, p.Latitude})
}

// LatLng marshals a point as [latitude, longitude]. Survey payloads use this order.
type LatLng GeoPoint

func (p LatLng) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Latitude, p.Longitude})
}

// Package geo provides coordinate types and great-circle distance math.
package geo

import "math"

const (
	earthRadiusKm = 6371
	kmToMiles     = 0.621371
)

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// HaversineKm returns the great-circle distance between a and b in kilometres.
func HaversineKm(a, b Coordinate) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// DistanceMiles returns the great-circle distance between a and b in miles.
func DistanceMiles(a, b Coordinate) float64 {
	return HaversineKm(a, b) * kmToMiles
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

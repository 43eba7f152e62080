// Package geo holds geographic helpers for property coordinates.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// World is the valid WGS84 longitude/latitude range.
var World = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// Point converts latitude/longitude to an orb point (x = longitude, y = latitude).
func Point(latitude, longitude float64) orb.Point {
	return orb.Point{longitude, latitude}
}

// Valid reports whether the coordinates are finite and inside World.
func Valid(latitude, longitude float64) bool {
	if math.IsNaN(latitude) || math.IsNaN(longitude) || math.IsInf(latitude, 0) || math.IsInf(longitude, 0) {
		return false
	}
	return World.Contains(Point(latitude, longitude))
}

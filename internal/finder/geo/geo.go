package geo

import (
	"fmt"
	"math"

	"tamirciBul/internal/models"
)

const earthRadiusKm = 6371.0

// Validate checks that lat/lng form a usable WGS84 coordinate.
func Validate(lat, lng float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %.6f out of range", models.ErrInvalidCoordinate, lat)
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude %.6f out of range", models.ErrInvalidCoordinate, lng)
	}
	return nil
}

// Distance returns the great-circle distance between a and b in kilometers
// using the Haversine formula. Identical points return exactly 0.
func Distance(a, b models.GeoPoint) (float64, error) {
	if err := Validate(a.Latitude, a.Longitude); err != nil {
		return 0, err
	}
	if err := Validate(b.Latitude, b.Longitude); err != nil {
		return 0, err
	}
	if a == b {
		return 0, nil
	}

	dLat := radians(b.Latitude - a.Latitude)
	dLng := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Latitude))*math.Cos(radians(b.Latitude))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h)), nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

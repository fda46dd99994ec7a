// Package geo resolves addresses to coordinates and computes walking
// distances through OpenRouteService.
package geo

import (
	"context"
	"errors"
)

// Coordinates are (longitude, latitude).
type Coordinates [2]float64

var ErrNoResult = errors.New("geo: no result for address")

type Provider interface {
	Coordinates(ctx context.Context, address string) (Coordinates, error)
	Autocomplete(ctx context.Context, text string) (map[string]Coordinates, error)
	WalkingDistance(ctx context.Context, from, to Coordinates) (float64, error)
}

package repository

import (
	"context"

	"ecomovex-service/internal/domain/entity"
)

// MapsRepository defines the interface for the place search collaborator.
// A not-found search returns an empty slice, not an error.
type MapsRepository interface {
	SearchPlace(ctx context.Context, text string) ([]entity.Place, error)
	GetPlaceDetails(ctx context.Context, destinationID string) (*entity.PlaceDetails, error)
}

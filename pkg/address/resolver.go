package address

import (
	"context"

	"github.com/zuhaus/house-search/pkg/house"
)

// Resolver bundles geocoding with the secondary location index so the indexing
// pipeline has a single collaborator for everything address shaped.
type Resolver struct {
	geocoder  *Geocoder
	locations *LocationIndex
}

func NewResolver(geocoder *Geocoder, locations *LocationIndex) *Resolver {
	return &Resolver{geocoder: geocoder, locations: locations}
}

func (r *Resolver) Locate(ctx context.Context, city, address string) (house.Location, error) {
	return r.geocoder.Locate(ctx, city, address)
}

func (r *Resolver) UpsertLocation(ctx context.Context, houseId int64, loc house.Location, title, address string, price, area int) error {
	return r.locations.Upsert(ctx, houseId, loc, title, address, price, area)
}

func (r *Resolver) RemoveLocation(ctx context.Context, houseId int64) error {
	return r.locations.Remove(ctx, houseId)
}

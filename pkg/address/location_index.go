package address

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/zuhaus/house-search/pkg/house"
)

const (
	geoKey     = "house:locations"
	metaPrefix = "house:loc:"
)

// LocationIndex is the secondary geo store for map rendering. It must agree
// with the search index before a reindex counts as complete, the retry loop is
// the only thing keeping the two consistent.
type LocationIndex struct {
	client *redis.Client
}

func NewLocationIndex(addr, password string, db int) *LocationIndex {
	return &LocationIndex{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (l *LocationIndex) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Upsert writes the house position and its display metadata.
func (l *LocationIndex) Upsert(ctx context.Context, houseId int64, loc house.Location, title, address string, price, area int) error {
	member := strconv.FormatInt(houseId, 10)
	if err := l.client.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      member,
		Longitude: loc.Lon,
		Latitude:  loc.Lat,
	}).Err(); err != nil {
		return fmt.Errorf("location upsert %d: %w", houseId, err)
	}
	if err := l.client.HSet(ctx, metaPrefix+member,
		"title", title,
		"address", address,
		"price", price,
		"area", area,
	).Err(); err != nil {
		return fmt.Errorf("location meta %d: %w", houseId, err)
	}
	return nil
}

// Remove deletes the house from the geo set and drops its metadata.
func (l *LocationIndex) Remove(ctx context.Context, houseId int64) error {
	member := strconv.FormatInt(houseId, 10)
	if err := l.client.ZRem(ctx, geoKey, member).Err(); err != nil {
		return fmt.Errorf("location remove %d: %w", houseId, err)
	}
	if err := l.client.Del(ctx, metaPrefix+member).Err(); err != nil {
		return fmt.Errorf("location meta remove %d: %w", houseId, err)
	}
	return nil
}

package indexer

import (
	"context"

	"github.com/zuhaus/house-search/pkg/house"
	"github.com/zuhaus/house-search/pkg/search"
)

// HouseStore is the read side of the system of record.
type HouseStore interface {
	GetHouse(ctx context.Context, id int64) (*house.House, error)
	GetDetail(ctx context.Context, houseId int64) (*house.HouseDetail, error)
	GetTags(ctx context.Context, houseId int64) ([]string, error)
	GetAddress(ctx context.Context, enName string, level house.AddressLevel) (*house.SupportAddress, error)
}

// SearchIndex is the subset of index operations the reconciler mutates.
type SearchIndex interface {
	FindByHouseId(ctx context.Context, houseId int64) ([]string, error)
	Create(ctx context.Context, doc *search.HouseDoc) error
	Update(ctx context.Context, esId string, doc *search.HouseDoc) error
	DeleteByHouseId(ctx context.Context, houseId int64) (int64, error)
}

// Analyzer tokenizes text with the index analyzer.
type Analyzer interface {
	Analyze(ctx context.Context, texts ...string) ([]search.Token, error)
}

// AddressResolver geocodes addresses and maintains the secondary location
// index that must stay in step with the search index.
type AddressResolver interface {
	Locate(ctx context.Context, city, address string) (house.Location, error)
	UpsertLocation(ctx context.Context, houseId int64, loc house.Location, title, address string, price, area int) error
	RemoveLocation(ctx context.Context, houseId int64) error
}

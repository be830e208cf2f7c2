package indexer

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/zuhaus/house-search/pkg/house"
	"github.com/zuhaus/house-search/pkg/search"
)

// DocumentBuilder projects a house and its satellite records into a flat
// search document. The document is rebuilt wholesale on every reindex.
type DocumentBuilder struct {
	store    HouseStore
	resolver AddressResolver
}

func NewDocumentBuilder(store HouseStore, resolver AddressResolver) *DocumentBuilder {
	return &DocumentBuilder{store: store, resolver: resolver}
}

// Build fetches everything belonging to the house and assembles the document.
// A missing house propagates house.ErrNotFound so the caller can treat the
// write as not-yet-committed. A missing detail record still yields a document,
// the gap is logged instead of failing the reindex. A geocoding failure is
// fatal, map queries need the location.
func (b *DocumentBuilder) Build(ctx context.Context, houseId int64) (*search.HouseDoc, error) {
	h, err := b.store.GetHouse(ctx, houseId)
	if err != nil {
		return nil, err
	}

	detail, err := b.store.GetDetail(ctx, houseId)
	if errors.Is(err, house.ErrDetailNotFound) {
		log.Printf("house %d has no detail record, indexing partial document", houseId)
		detail = &house.HouseDetail{HouseId: houseId}
	} else if err != nil {
		return nil, err
	}

	tags, err := b.store.GetTags(ctx, houseId)
	if err != nil {
		return nil, err
	}

	city, err := b.store.GetAddress(ctx, h.CityEnName, house.LevelCity)
	if err != nil {
		return nil, err
	}
	region, err := b.store.GetAddress(ctx, h.RegionEnName, house.LevelRegion)
	if err != nil {
		return nil, err
	}

	address := city.CnName + region.CnName + h.Street + h.District + detail.DetailAddress
	location, err := b.resolver.Locate(ctx, city.CnName, address)
	if err != nil {
		return nil, fmt.Errorf("resolve location for house %d: %w", houseId, err)
	}

	return &search.HouseDoc{
		HouseId:           h.Id,
		Title:             h.Title,
		Price:             h.Price,
		Area:              h.Area,
		Direction:         h.Direction,
		RentWay:           h.RentWay,
		CityEnName:        h.CityEnName,
		RegionEnName:      h.RegionEnName,
		District:          h.District,
		Street:            h.Street,
		Address:           address,
		Description:       detail.Description,
		LayoutDesc:        detail.LayoutDesc,
		Traffic:           detail.Traffic,
		RoundService:      detail.RoundService,
		SubwayLineName:    detail.SubwayLineName,
		SubwayStationName: detail.SubwayStationName,
		DistanceToSubway:  detail.DistanceToSubway,
		Tags:              tags,
		Location:          location,
		CreateTime:        h.CreateTime,
		LastUpdateTime:    h.LastUpdateTime,
	}, nil
}

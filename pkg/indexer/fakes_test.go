package indexer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/zuhaus/house-search/pkg/house"
	"github.com/zuhaus/house-search/pkg/search"
)

var errDownstream = errors.New("downstream unavailable")

type fakeStore struct {
	houses  map[int64]*house.House
	details map[int64]*house.HouseDetail
	tags    map[int64][]string
	cities  map[string]*house.SupportAddress
	regions map[string]*house.SupportAddress
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		houses: map[int64]*house.House{
			16: {
				Id: 16, Title: "国贸两居室", Price: 5600, Area: 78,
				Direction: 2, RentWay: 1, Street: "建国路", District: "国贸公寓",
				CityEnName: "bj", RegionEnName: "cy",
				CreateTime:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				LastUpdateTime: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		details: map[int64]*house.HouseDetail{
			16: {
				HouseId: 16, Description: "精装修", LayoutDesc: "两室一厅",
				Traffic: "近地铁一号线", RoundService: "商场超市",
				DetailAddress: "国贸公寓3号楼", SubwayLineName: "一号线",
				SubwayStationName: "国贸站", DistanceToSubway: 300,
			},
		},
		tags: map[int64][]string{
			16: {"近地铁", "精装修"},
		},
		cities: map[string]*house.SupportAddress{
			"bj": {EnName: "bj", CnName: "北京", Level: house.LevelCity},
		},
		regions: map[string]*house.SupportAddress{
			"cy": {EnName: "cy", CnName: "朝阳", Level: house.LevelRegion, ParentEnName: "bj"},
		},
	}
}

func (f *fakeStore) GetHouse(_ context.Context, id int64) (*house.House, error) {
	h, ok := f.houses[id]
	if !ok {
		return nil, house.ErrNotFound
	}
	return h, nil
}

func (f *fakeStore) GetDetail(_ context.Context, houseId int64) (*house.HouseDetail, error) {
	d, ok := f.details[houseId]
	if !ok {
		return nil, house.ErrDetailNotFound
	}
	return d, nil
}

func (f *fakeStore) GetTags(_ context.Context, houseId int64) ([]string, error) {
	return f.tags[houseId], nil
}

func (f *fakeStore) GetAddress(_ context.Context, enName string, level house.AddressLevel) (*house.SupportAddress, error) {
	var a *house.SupportAddress
	if level == house.LevelCity {
		a = f.cities[enName]
	} else {
		a = f.regions[enName]
	}
	if a == nil {
		return nil, house.ErrNotFound
	}
	return a, nil
}

type fakeIndex struct {
	docs   map[string]search.HouseDoc
	nextId int

	findErr   error
	createErr error
	updateErr error
	deleteErr error

	// deleteReturns forces DeleteByHouseId to report this count instead of
	// the real one, simulating a racing writer.
	deleteReturns *int64
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: make(map[string]search.HouseDoc)}
}

func (f *fakeIndex) FindByHouseId(_ context.Context, houseId int64) ([]string, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var ids []string
	for esId, doc := range f.docs {
		if doc.HouseId == houseId {
			ids = append(ids, esId)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *fakeIndex) Create(_ context.Context, doc *search.HouseDoc) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextId++
	f.docs[fmt.Sprintf("es-%d", f.nextId)] = *doc
	return nil
}

func (f *fakeIndex) Update(_ context.Context, esId string, doc *search.HouseDoc) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.docs[esId]; !ok {
		return fmt.Errorf("unknown document %s", esId)
	}
	f.docs[esId] = *doc
	return nil
}

func (f *fakeIndex) DeleteByHouseId(ctx context.Context, houseId int64) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	ids, _ := f.FindByHouseId(ctx, houseId)
	for _, esId := range ids {
		delete(f.docs, esId)
	}
	if f.deleteReturns != nil {
		return *f.deleteReturns, nil
	}
	return int64(len(ids)), nil
}

func (f *fakeIndex) countFor(houseId int64) int {
	n := 0
	for _, doc := range f.docs {
		if doc.HouseId == houseId {
			n++
		}
	}
	return n
}

type fakeResolver struct {
	loc       house.Location
	locateErr error
	upsertErr error
	removeErr error
	upserts   []int64
	removes   []int64
}

func (f *fakeResolver) Locate(context.Context, string, string) (house.Location, error) {
	if f.locateErr != nil {
		return house.Location{}, f.locateErr
	}
	return f.loc, nil
}

func (f *fakeResolver) UpsertLocation(_ context.Context, houseId int64, _ house.Location, _, _ string, _, _ int) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, houseId)
	return nil
}

func (f *fakeResolver) RemoveLocation(_ context.Context, houseId int64) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removes = append(f.removes, houseId)
	return nil
}

type fakeAnalyzer struct {
	tokens []search.Token
	err    error
}

func (f *fakeAnalyzer) Analyze(context.Context, ...string) ([]search.Token, error) {
	return f.tokens, f.err
}

func newTestReconciler(store HouseStore, idx SearchIndex, resolver AddressResolver, analyzer Analyzer) *Reconciler {
	return NewReconciler(idx,
		NewDocumentBuilder(store, resolver),
		NewSuggestionBuilder(analyzer),
		resolver,
	)
}

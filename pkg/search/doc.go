package search

import (
	"time"

	"github.com/zuhaus/house-search/pkg/house"
)

// Index field keys. These must match the index mapping, the query builders and
// the document struct tags below.
const (
	KeyHouseId           = "houseId"
	KeyTitle             = "title"
	KeyPrice             = "price"
	KeyArea              = "area"
	KeyCityEnName        = "cityEnName"
	KeyRegionEnName      = "regionEnName"
	KeyDirection         = "direction"
	KeyRentWay           = "rentWay"
	KeyDistrict          = "district"
	KeyTraffic           = "traffic"
	KeyRoundService      = "roundService"
	KeySubwayLineName    = "subwayLineName"
	KeySubwayStationName = "subwayStationName"
	KeyLocation          = "location"
	KeySuggest           = "suggest"

	aggDistrict = "agg_district"
	aggRegion   = "agg_region"
)

// Suggestion is one completion entry attached to a document. Weight is left to
// the engine default.
type Suggestion struct {
	Input string `json:"input"`
}

// HouseDoc is the denormalized projection of one house, rebuilt wholesale on
// every reindex so its fields always agree with each other.
type HouseDoc struct {
	HouseId           int64          `json:"houseId"`
	Title             string         `json:"title"`
	Price             int            `json:"price"`
	Area              int            `json:"area"`
	Direction         int            `json:"direction"`
	RentWay           int            `json:"rentWay"`
	CityEnName        string         `json:"cityEnName"`
	RegionEnName      string         `json:"regionEnName"`
	District          string         `json:"district"`
	Street            string         `json:"street"`
	Address           string         `json:"address"`
	Description       string         `json:"description"`
	LayoutDesc        string         `json:"layoutDesc"`
	Traffic           string         `json:"traffic"`
	RoundService      string         `json:"roundService"`
	SubwayLineName    string         `json:"subwayLineName"`
	SubwayStationName string         `json:"subwayStationName"`
	DistanceToSubway  int            `json:"distanceToSubway"`
	Tags              []string       `json:"tags"`
	Location          house.Location `json:"location"`
	Suggest           []Suggestion   `json:"suggest"`
	CreateTime        time.Time      `json:"createTime"`
	LastUpdateTime    time.Time      `json:"lastUpdateTime"`
}

// Token is one analyzed term from the index analyzer.
type Token struct {
	Term string `json:"token"`
	Type string `json:"type"`
}

// Bucket is one aggregation bucket in a query response.
type Bucket struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

package house

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("house not found")
	ErrDetailNotFound = errors.New("house detail not found")
)

// House is the core listing record as stored in the system of record.
type House struct {
	Id             int64     `json:"id"`
	Title          string    `json:"title"`
	Price          int       `json:"price"`
	Area           int       `json:"area"`
	Direction      int       `json:"direction"`
	RentWay        int       `json:"rentWay"`
	Street         string    `json:"street"`
	District       string    `json:"district"`
	CityEnName     string    `json:"cityEnName"`
	RegionEnName   string    `json:"regionEnName"`
	CreateTime     time.Time `json:"createTime"`
	LastUpdateTime time.Time `json:"lastUpdateTime"`
}

type HouseDetail struct {
	HouseId           int64  `json:"houseId"`
	Description       string `json:"description"`
	LayoutDesc        string `json:"layoutDesc"`
	Traffic           string `json:"traffic"`
	RoundService      string `json:"roundService"`
	DetailAddress     string `json:"detailAddress"`
	SubwayLineName    string `json:"subwayLineName"`
	SubwayStationName string `json:"subwayStationName"`
	DistanceToSubway  int    `json:"distanceToSubway"`
}

type AddressLevel int

const (
	LevelCity AddressLevel = iota + 1
	LevelRegion
)

// SupportAddress is one row of the hierarchical city/region table.
type SupportAddress struct {
	EnName       string       `json:"enName"`
	CnName       string       `json:"cnName"`
	Level        AddressLevel `json:"level"`
	BaiduMapLng  float64      `json:"baiduMapLongitude"`
	BaiduMapLat  float64      `json:"baiduMapLatitude"`
	ParentEnName string       `json:"parentEnName"`
}

// Location is a resolved geo point, longitude/latitude order follows the
// geocoding service response.
type Location struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

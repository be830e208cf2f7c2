package search

// RentSearch carries all user supplied search criteria. A regionEnName of "*"
// means no region filter, direction <= 0 and rentWay < 0 mean unset.
type RentSearch struct {
	CityEnName     string `json:"cityEnName" schema:"cityEnName"`
	RegionEnName   string `json:"regionEnName" schema:"regionEnName,default:*"`
	Keywords       string `json:"keywords" schema:"keywords"`
	AreaBlock      string `json:"areaBlock" schema:"areaBlock,default:*"`
	PriceBlock     string `json:"priceBlock" schema:"priceBlock,default:*"`
	Direction      int    `json:"direction" schema:"direction"`
	RentWay        int    `json:"rentWay" schema:"rentWay,default:-1"`
	OrderBy        string `json:"orderBy" schema:"orderBy,default:lastUpdateTime"`
	OrderDirection string `json:"orderDirection" schema:"orderDirection,default:desc"`
	Start          int    `json:"start" schema:"start"`
	Size           int    `json:"size" schema:"size,default:5"`
}

// MapSearch bounds a map query with two opposite corners, top-left and
// bottom-right. Corner ordering is the caller's responsibility.
type MapSearch struct {
	CityEnName     string  `json:"cityEnName" schema:"cityEnName"`
	OrderBy        string  `json:"orderBy" schema:"orderBy,default:lastUpdateTime"`
	OrderDirection string  `json:"orderDirection" schema:"orderDirection,default:desc"`
	LeftLatitude   float64 `json:"leftLatitude" schema:"leftLatitude"`
	LeftLongitude  float64 `json:"leftLongitude" schema:"leftLongitude"`
	RightLatitude  float64 `json:"rightLatitude" schema:"rightLatitude"`
	RightLongitude float64 `json:"rightLongitude" schema:"rightLongitude"`
	Start          int     `json:"start" schema:"start"`
	Size           int     `json:"size" schema:"size,default:5"`
}

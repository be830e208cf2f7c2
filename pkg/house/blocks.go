package house

// RentValueBlock is a named numeric range used for area and price filtering.
// Min or Max of -1 means the bound is open.
type RentValueBlock struct {
	Key string `json:"key"`
	Min int    `json:"min"`
	Max int    `json:"max"`
}

// BlockAll is the sentinel block that applies no range filter.
var BlockAll = RentValueBlock{Key: "*", Min: -1, Max: -1}

var areaBlocks = map[string]RentValueBlock{
	"*-30":   {Key: "*-30", Min: -1, Max: 30},
	"30-50":  {Key: "30-50", Min: 30, Max: 50},
	"50-70":  {Key: "50-70", Min: 50, Max: 70},
	"70-100": {Key: "70-100", Min: 70, Max: 100},
	"100-*":  {Key: "100-*", Min: 100, Max: -1},
}

var priceBlocks = map[string]RentValueBlock{
	"*-1000":    {Key: "*-1000", Min: -1, Max: 1000},
	"1000-3000": {Key: "1000-3000", Min: 1000, Max: 3000},
	"3000-*":    {Key: "3000-*", Min: 3000, Max: -1},
}

func MatchArea(key string) RentValueBlock {
	if block, ok := areaBlocks[key]; ok {
		return block
	}
	return BlockAll
}

func MatchPrice(key string) RentValueBlock {
	if block, ok := priceBlocks[key]; ok {
		return block
	}
	return BlockAll
}

func (b RentValueBlock) IsAll() bool {
	return b.Key == BlockAll.Key
}

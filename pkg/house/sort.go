package house

const DefaultSortKey = "lastUpdateTime"

var sortKeys = map[string]struct{}{
	"createTime":       {},
	"lastUpdateTime":   {},
	"price":            {},
	"area":             {},
	"distanceToSubway": {},
}

// SortKey whitelists the user supplied order-by field, unknown keys fall back
// to the default so a bad query parameter can never hit an unmapped field.
func SortKey(key string) string {
	if _, ok := sortKeys[key]; ok {
		return key
	}
	return DefaultSortKey
}

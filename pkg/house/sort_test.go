package house

import "testing"

func TestSortKeyWhitelist(t *testing.T) {
	for _, key := range []string{"createTime", "lastUpdateTime", "price", "area", "distanceToSubway"} {
		if got := SortKey(key); got != key {
			t.Errorf("SortKey(%q) = %q", key, got)
		}
	}
}

func TestSortKeyUnknownFallsBack(t *testing.T) {
	for _, key := range []string{"", "houseId", "title", "Price", "price; drop"} {
		if got := SortKey(key); got != DefaultSortKey {
			t.Errorf("SortKey(%q) = %q, want %q", key, got, DefaultSortKey)
		}
	}
}

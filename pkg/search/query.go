package search

import (
	"context"
	"log"

	"github.com/zuhaus/house-search/pkg/house"
)

const maxSuggestions = 5

// Query runs a filtered, sorted, paginated search and returns the total hit
// count plus the house ids of the requested page. Query failures surface as
// (0, nil), never as an error, so a broken index degrades to "no results".
func (c *Client) Query(ctx context.Context, rs *RentSearch) (int64, []int64) {
	res, err := c.doSearch(ctx, buildRentQuery(rs))
	if err != nil {
		log.Printf("house query failed: %v", err)
		return 0, nil
	}
	return res.Hits.Total.Value, hitHouseIds(res)
}

// Suggest returns up to 5 distinct completion texts for the prefix.
func (c *Client) Suggest(ctx context.Context, prefix string) []string {
	res, err := c.doSearch(ctx, buildSuggestQuery(prefix))
	if err != nil {
		log.Printf("suggest query failed: %v", err)
		return nil
	}
	seen := make(map[string]struct{})
	suggestions := make([]string, 0, maxSuggestions)
	for _, entry := range res.Suggest["autocomplete"] {
		for _, option := range entry.Options {
			if _, ok := seen[option.Text]; ok {
				continue
			}
			seen[option.Text] = struct{}{}
			suggestions = append(suggestions, option.Text)
			if len(suggestions) >= maxSuggestions {
				return suggestions
			}
		}
	}
	return suggestions
}

// AggregateDistrictHouse counts the houses of one district inside a region.
func (c *Client) AggregateDistrictHouse(ctx context.Context, cityEnName, regionEnName, district string) int64 {
	res, err := c.doSearch(ctx, buildDistrictAggQuery(cityEnName, regionEnName, district))
	if err != nil {
		log.Printf("district aggregation failed: %v", err)
		return 0
	}
	for _, bucket := range res.Aggregations[aggDistrict].Buckets {
		if bucket.Key == district {
			return bucket.DocCount
		}
	}
	return 0
}

// MapAggregate returns one bucket per region of the city with its house count.
func (c *Client) MapAggregate(ctx context.Context, cityEnName string) (int64, []Bucket) {
	res, err := c.doSearch(ctx, buildRegionAggQuery(cityEnName))
	if err != nil {
		log.Printf("region aggregation failed: %v", err)
		return 0, nil
	}
	agg := res.Aggregations[aggRegion]
	buckets := make([]Bucket, 0, len(agg.Buckets))
	for _, b := range agg.Buckets {
		buckets = append(buckets, Bucket{Key: b.Key, Count: b.DocCount})
	}
	return res.Hits.Total.Value, buckets
}

// MapQuery is Query with the term/text filters replaced by a geo bounding box
// over the document location. Bounds are inclusive.
func (c *Client) MapQuery(ctx context.Context, ms *MapSearch) (int64, []int64) {
	res, err := c.doSearch(ctx, buildMapQuery(ms))
	if err != nil {
		log.Printf("map query failed: %v", err)
		return 0, nil
	}
	return res.Hits.Total.Value, hitHouseIds(res)
}

func hitHouseIds(res *searchResponse) []int64 {
	ids := make([]int64, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		ids = append(ids, hit.Source.HouseId)
	}
	return ids
}

func buildRentQuery(rs *RentSearch) map[string]any {
	filters := []any{
		termQuery(KeyCityEnName, rs.CityEnName),
	}

	if rs.RegionEnName != "" && rs.RegionEnName != "*" {
		filters = append(filters, termQuery(KeyRegionEnName, rs.RegionEnName))
	}

	if area := house.MatchArea(rs.AreaBlock); !area.IsAll() {
		filters = append(filters, rangeQuery(KeyArea, area))
	}
	if price := house.MatchPrice(rs.PriceBlock); !price.IsAll() {
		filters = append(filters, rangeQuery(KeyPrice, price))
	}

	if rs.Direction > 0 {
		filters = append(filters, termQuery(KeyDirection, rs.Direction))
	}
	if rs.RentWay > -1 {
		filters = append(filters, termQuery(KeyRentWay, rs.RentWay))
	}

	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"filter": filters,
				"must":   []any{keywordsQuery(rs.Keywords)},
			},
		},
		"sort":    sortClause(rs.OrderBy, rs.OrderDirection),
		"from":    rs.Start,
		"size":    rs.Size,
		"_source": []string{KeyHouseId},
	}
}

func buildMapQuery(ms *MapSearch) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"filter": []any{
					termQuery(KeyCityEnName, ms.CityEnName),
					map[string]any{
						"geo_bounding_box": map[string]any{
							KeyLocation: map[string]any{
								"top_left": map[string]any{
									"lat": ms.LeftLatitude,
									"lon": ms.LeftLongitude,
								},
								"bottom_right": map[string]any{
									"lat": ms.RightLatitude,
									"lon": ms.RightLongitude,
								},
							},
						},
					},
				},
			},
		},
		"sort":    sortClause(ms.OrderBy, ms.OrderDirection),
		"from":    ms.Start,
		"size":    ms.Size,
		"_source": []string{KeyHouseId},
	}
}

func buildDistrictAggQuery(cityEnName, regionEnName, district string) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"filter": []any{
					termQuery(KeyCityEnName, cityEnName),
					termQuery(KeyRegionEnName, regionEnName),
					termQuery(KeyDistrict, district),
				},
			},
		},
		"aggs": map[string]any{
			aggDistrict: map[string]any{
				"terms": map[string]any{"field": KeyDistrict},
			},
		},
		"size": 0,
	}
}

func buildRegionAggQuery(cityEnName string) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"filter": []any{termQuery(KeyCityEnName, cityEnName)},
			},
		},
		"aggs": map[string]any{
			aggRegion: map[string]any{
				"terms": map[string]any{"field": KeyRegionEnName},
			},
		},
	}
}

func buildSuggestQuery(prefix string) map[string]any {
	return map[string]any{
		"suggest": map[string]any{
			"autocomplete": map[string]any{
				"prefix": prefix,
				"completion": map[string]any{
					"field": KeySuggest,
					"size":  maxSuggestions,
				},
			},
		},
		"_source": false,
	}
}

// keywordsQuery matches the free text keywords across all searchable text
// fields. An empty keyword string must not exclude anything, so it becomes a
// match_all clause.
func keywordsQuery(keywords string) map[string]any {
	if keywords == "" {
		return map[string]any{"match_all": map[string]any{}}
	}
	return map[string]any{
		"multi_match": map[string]any{
			"query": keywords,
			"fields": []string{
				KeyTitle,
				KeyTraffic,
				KeyDistrict,
				KeyRoundService,
				KeySubwayLineName,
				KeySubwayStationName,
			},
		},
	}
}

func termQuery(field string, value any) map[string]any {
	return map[string]any{"term": map[string]any{field: value}}
}

func rangeQuery(field string, block house.RentValueBlock) map[string]any {
	bounds := map[string]any{}
	if block.Min > 0 {
		bounds["gte"] = block.Min
	}
	if block.Max > 0 {
		bounds["lte"] = block.Max
	}
	return map[string]any{"range": map[string]any{field: bounds}}
}

func sortClause(orderBy, orderDirection string) []any {
	if orderDirection != "asc" {
		orderDirection = "desc"
	}
	return []any{
		map[string]any{
			house.SortKey(orderBy): map[string]any{"order": orderDirection},
		},
	}
}

package address

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/zuhaus/house-search/pkg/house"
)

// Geocoder resolves a concatenated address string to a geo point through the
// Baidu geocoding HTTP API. A failed resolution fails the whole reindex, map
// queries cannot work without a location.
type Geocoder struct {
	key     string
	baseURL string
	http    *retryablehttp.Client
}

func NewGeocoder(apiKey string) *Geocoder {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 6 * time.Second
	rc.Logger = nil

	return &Geocoder{
		key:     apiKey,
		baseURL: "https://api.map.baidu.com",
		http:    rc,
	}
}

type geocodeResponse struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
	Result struct {
		Location struct {
			Lng float64 `json:"lng"`
			Lat float64 `json:"lat"`
		} `json:"location"`
	} `json:"result"`
}

// Locate resolves city + address to a geo point. Status other than 0 is an
// error from the API side, not an empty result.
func (g *Geocoder) Locate(ctx context.Context, city, address string) (house.Location, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("city", city)
	q.Set("output", "json")
	q.Set("ak", g.key)

	u := fmt.Sprintf("%s/geocoding/v3/?%s", g.baseURL, q.Encode())
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return house.Location{}, err
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return house.Location{}, fmt.Errorf("geocode %q: %w", address, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return house.Location{}, fmt.Errorf("geocode %q: status %d", address, resp.StatusCode)
	}

	var body geocodeResponse
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&body); err != nil {
		return house.Location{}, fmt.Errorf("geocode %q: decode: %w", address, err)
	}
	if body.Status != 0 {
		return house.Location{}, fmt.Errorf("geocode %q: api status %d %s", address, body.Status, body.Msg)
	}
	return house.Location{
		Lon: body.Result.Location.Lng,
		Lat: body.Result.Location.Lat,
	}, nil
}

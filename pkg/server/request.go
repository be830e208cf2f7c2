package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/zuhaus/house-search/pkg/search"
)

var errMissingCity = errors.New("cityEnName is required")

func decodeRentSearch(r *http.Request, rs *search.RentSearch) error {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(rs, r.URL.Query()); err != nil {
		return err
	}
	if rs.CityEnName == "" {
		return errMissingCity
	}
	if rs.Start < 0 {
		rs.Start = 0
	}
	if rs.Size <= 0 {
		rs.Size = 5
	}
	return nil
}

func decodeMapSearch(r *http.Request, ms *search.MapSearch) error {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(ms, r.URL.Query()); err != nil {
		return err
	}
	if ms.CityEnName == "" {
		return errMissingCity
	}
	if ms.Start < 0 {
		ms.Start = 0
	}
	if ms.Size <= 0 {
		ms.Size = 5
	}
	return nil
}

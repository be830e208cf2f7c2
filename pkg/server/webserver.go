package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zuhaus/house-search/pkg/common"
	"github.com/zuhaus/house-search/pkg/indexer"
	"github.com/zuhaus/house-search/pkg/search"
)

var queryCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "housesearch_queries_total",
	Help: "The total number of queries served, by endpoint",
}, []string{"endpoint"})

// MultiResult is the normalized paged response shape.
type MultiResult[T any] struct {
	Total  int64 `json:"total"`
	Result []T   `json:"result"`
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HouseIdLister resolves a city to the house ids it contains, for bulk
// reindexing. Satisfied by *house.Store.
type HouseIdLister interface {
	GetHouseIdsByCity(ctx context.Context, cityEnName string) ([]int64, error)
}

// WebServer serves the read side of the index plus the administrative
// reindex/remove surface.
type WebServer struct {
	Search     *search.Client
	Dispatcher *indexer.Dispatcher
	Houses     HouseIdLister

	reindexQueue *common.QueueHandler[int64]
	checks       map[string]HealthChecker
}

func NewWebServer(searchClient *search.Client, dispatcher *indexer.Dispatcher, houses HouseIdLister) *WebServer {
	ws := &WebServer{
		Search:     searchClient,
		Dispatcher: dispatcher,
		Houses:     houses,
		checks:     make(map[string]HealthChecker),
	}
	// Bulk reindexes run through the direct path in background chunks so an
	// admin request returns immediately.
	ws.reindexQueue = common.NewQueueHandler(func(ids []int64) {
		for _, id := range ids {
			dispatcher.Index(id)
		}
	}, 64)
	return ws
}

// AddHealthCheck registers a named dependency for the health endpoint.
func (ws *WebServer) AddHealthCheck(name string, check HealthChecker) {
	ws.checks[name] = check
}

func (ws *WebServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", ws.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/search", ws.handleSearch)
	mux.HandleFunc("GET /api/suggest", ws.handleSuggest)
	mux.HandleFunc("GET /api/aggregate/district", ws.handleDistrictAggregate)
	mux.HandleFunc("GET /api/map/regions", ws.handleMapRegions)
	mux.HandleFunc("GET /api/map/houses", ws.handleMapHouses)
	mux.HandleFunc("POST /admin/index/{id}", ws.handleAdminIndex)
	mux.HandleFunc("DELETE /admin/index/{id}", ws.handleAdminRemove)
	mux.HandleFunc("POST /admin/reindex", ws.handleAdminBulkReindex)
	return mux
}

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	result := make(map[string]string, len(ws.checks))
	for name, check := range ws.checks {
		if err := check.Ping(r.Context()); err != nil {
			result[name] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			result[name] = "ok"
		}
	}
	writeJson(w, status, result)
}

func (ws *WebServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	queryCount.WithLabelValues("search").Inc()
	var rs search.RentSearch
	if err := decodeRentSearch(r, &rs); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	total, ids := ws.Search.Query(r.Context(), &rs)
	writeJson(w, http.StatusOK, MultiResult[int64]{Total: total, Result: ids})
}

func (ws *WebServer) handleSuggest(w http.ResponseWriter, r *http.Request) {
	queryCount.WithLabelValues("suggest").Inc()
	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		http.Error(w, "prefix is required", http.StatusBadRequest)
		return
	}
	suggestions := ws.Search.Suggest(r.Context(), prefix)
	writeJson(w, http.StatusOK, map[string]any{"result": suggestions})
}

func (ws *WebServer) handleDistrictAggregate(w http.ResponseWriter, r *http.Request) {
	queryCount.WithLabelValues("aggregate_district").Inc()
	q := r.URL.Query()
	city, region, district := q.Get("cityEnName"), q.Get("regionEnName"), q.Get("district")
	if city == "" || region == "" || district == "" {
		http.Error(w, "cityEnName, regionEnName and district are required", http.StatusBadRequest)
		return
	}
	count := ws.Search.AggregateDistrictHouse(r.Context(), city, region, district)
	writeJson(w, http.StatusOK, map[string]int64{"count": count})
}

func (ws *WebServer) handleMapRegions(w http.ResponseWriter, r *http.Request) {
	queryCount.WithLabelValues("map_regions").Inc()
	city := r.URL.Query().Get("cityEnName")
	if city == "" {
		http.Error(w, errMissingCity.Error(), http.StatusBadRequest)
		return
	}
	total, buckets := ws.Search.MapAggregate(r.Context(), city)
	writeJson(w, http.StatusOK, MultiResult[search.Bucket]{Total: total, Result: buckets})
}

func (ws *WebServer) handleMapHouses(w http.ResponseWriter, r *http.Request) {
	queryCount.WithLabelValues("map_houses").Inc()
	var ms search.MapSearch
	if err := decodeMapSearch(r, &ms); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	total, ids := ws.Search.MapQuery(r.Context(), &ms)
	writeJson(w, http.StatusOK, MultiResult[int64]{Total: total, Result: ids})
}

func (ws *WebServer) handleAdminIndex(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid house id", http.StatusBadRequest)
		return
	}
	ws.Dispatcher.Index(id)
	w.WriteHeader(http.StatusAccepted)
}

func (ws *WebServer) handleAdminRemove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid house id", http.StatusBadRequest)
		return
	}
	ws.Dispatcher.Remove(id)
	w.WriteHeader(http.StatusAccepted)
}

type bulkReindexRequest struct {
	CityEnName string `json:"cityEnName"`
	From       int64  `json:"from"`
	To         int64  `json:"to"`
}

// handleAdminBulkReindex queues a whole city or an id range for reindexing.
func (ws *WebServer) handleAdminBulkReindex(w http.ResponseWriter, r *http.Request) {
	var req bulkReindexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var ids []int64
	switch {
	case req.CityEnName != "":
		var err error
		ids, err = ws.Houses.GetHouseIdsByCity(r.Context(), req.CityEnName)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	case req.To >= req.From && req.From > 0:
		ids = make([]int64, 0, req.To-req.From+1)
		for id := req.From; id <= req.To; id++ {
			ids = append(ids, id)
		}
	default:
		http.Error(w, "either cityEnName or a valid from/to range is required", http.StatusBadRequest)
		return
	}

	ws.reindexQueue.Add(ids...)
	writeJson(w, http.StatusAccepted, map[string]int{"queued": len(ids)})
}

func writeJson(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

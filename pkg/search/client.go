package search

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/elastic/go-elasticsearch/v8"
)

const defaultAnalyzer = "ik_smart"

// Client wraps the Elasticsearch client with house-index operations. All
// mutating calls are idempotent at the pipeline level: duplicate detection and
// full-document replace happen in the reconciler, not here.
type Client struct {
	es       *elasticsearch.Client
	index    string
	analyzer string
}

func NewClient(addresses []string, index string) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addresses,
	})
	if err != nil {
		return nil, fmt.Errorf("search: create client: %w", err)
	}
	return &Client{es: es, index: index, analyzer: defaultAnalyzer}, nil
}

// IndexExists reports whether the house index has been created.
func (c *Client) IndexExists(ctx context.Context) (bool, error) {
	res, err := c.es.Indices.Exists(
		[]string{c.index},
		c.es.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, fmt.Errorf("search: index exists: %w", err)
	}
	defer res.Body.Close()
	return res.StatusCode == 200, nil
}

// Ping verifies the cluster is reachable and the house index exists.
func (c *Client) Ping(ctx context.Context) error {
	ok, err := c.IndexExists(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("index %q does not exist", c.index)
	}
	return nil
}

// FindByHouseId returns the engine ids of every document carrying the given
// houseId. More than one id means the at-most-one invariant has been violated.
func (c *Client) FindByHouseId(ctx context.Context, houseId int64) ([]string, error) {
	body := map[string]any{
		"query": termQuery(KeyHouseId, houseId),
	}
	res, err := c.doSearch(ctx, body)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		ids = append(ids, hit.Id)
	}
	return ids, nil
}

// Create indexes a new document, letting the engine assign the id.
func (c *Client) Create(ctx context.Context, doc *HouseDoc) error {
	body, err := sonic.Marshal(doc)
	if err != nil {
		return err
	}
	res, err := c.es.Index(
		c.index,
		bytes.NewReader(body),
		c.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("search: index house %d: %w", doc.HouseId, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("search: index house %d: %s", doc.HouseId, responseError(res.Body))
	}
	return nil
}

// Update replaces the whole document stored under esId. Partial field patches
// are never issued, the projection must stay internally consistent.
func (c *Client) Update(ctx context.Context, esId string, doc *HouseDoc) error {
	body, err := sonic.Marshal(map[string]any{"doc": doc})
	if err != nil {
		return err
	}
	res, err := c.es.Update(
		c.index,
		esId,
		bytes.NewReader(body),
		c.es.Update.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("search: update house %d: %w", doc.HouseId, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("search: update house %d: %s", doc.HouseId, responseError(res.Body))
	}
	return nil
}

// DeleteByHouseId removes every document for the house and returns how many
// were actually deleted.
func (c *Client) DeleteByHouseId(ctx context.Context, houseId int64) (int64, error) {
	body, err := sonic.Marshal(map[string]any{
		"query": termQuery(KeyHouseId, houseId),
	})
	if err != nil {
		return 0, err
	}
	res, err := c.es.DeleteByQuery(
		[]string{c.index},
		bytes.NewReader(body),
		c.es.DeleteByQuery.WithContext(ctx),
	)
	if err != nil {
		return 0, fmt.Errorf("search: delete house %d: %w", houseId, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, fmt.Errorf("search: delete house %d: %s", houseId, responseError(res.Body))
	}
	var out struct {
		Deleted int64 `json:"deleted"`
	}
	if err := sonic.ConfigDefault.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("search: delete house %d: decode response: %w", houseId, err)
	}
	return out.Deleted, nil
}

// Analyze tokenizes the given texts with the index analyzer.
func (c *Client) Analyze(ctx context.Context, texts ...string) ([]Token, error) {
	body, err := sonic.Marshal(map[string]any{
		"analyzer": c.analyzer,
		"text":     texts,
	})
	if err != nil {
		return nil, err
	}
	res, err := c.es.Indices.Analyze(
		c.es.Indices.Analyze.WithContext(ctx),
		c.es.Indices.Analyze.WithIndex(c.index),
		c.es.Indices.Analyze.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search: analyze: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search: analyze: %s", responseError(res.Body))
	}
	var out struct {
		Tokens []Token `json:"tokens"`
	}
	if err := sonic.ConfigDefault.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("search: analyze: decode response: %w", err)
	}
	return out.Tokens, nil
}

func (c *Client) doSearch(ctx context.Context, body map[string]any) (*searchResponse, error) {
	raw, err := sonic.Marshal(body)
	if err != nil {
		return nil, err
	}
	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(raw)),
		c.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, fmt.Errorf("search: query request: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search: query error: %s", responseError(res.Body))
	}
	out := &searchResponse{}
	if err := sonic.ConfigDefault.NewDecoder(res.Body).Decode(out); err != nil {
		return nil, fmt.Errorf("search: decode response: %w", err)
	}
	return out, nil
}

func responseError(body io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(body, 4<<10))
	return string(b)
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Id     string `json:"_id"`
			Source struct {
				HouseId int64 `json:"houseId"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
	Aggregations map[string]struct {
		Buckets []struct {
			Key      string `json:"key"`
			DocCount int64  `json:"doc_count"`
		} `json:"buckets"`
	} `json:"aggregations"`
	Suggest map[string][]struct {
		Options []struct {
			Text string `json:"text"`
		} `json:"options"`
	} `json:"suggest"`
}

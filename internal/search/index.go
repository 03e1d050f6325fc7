package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/vendora/marketplace/internal/models"
	"github.com/vendora/marketplace/pkg/logging"
)

// Index mirrors the product catalog into elasticsearch. A nil Index is a
// no-op so the catalog works without a search backend.
type Index struct {
	es    *elasticsearch.Client
	index string
}

func NewIndex(es *elasticsearch.Client, index string) *Index {
	if es == nil {
		return nil
	}
	return &Index{es: es, index: index}
}

func (i *Index) IndexProduct(ctx context.Context, product *models.Product) {
	if i == nil {
		return
	}

	data, err := json.Marshal(product)
	if err != nil {
		logging.FromContext(ctx).Error("es_index_failed", "product_id", product.ID, "error", err)
		return
	}

	res, err := i.es.Index(
		i.index,
		bytes.NewReader(data),
		i.es.Index.WithContext(ctx),
		i.es.Index.WithDocumentID(strconv.FormatUint(uint64(product.ID), 10)),
	)
	if err != nil {
		logging.FromContext(ctx).Error("es_index_failed", "product_id", product.ID, "error", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		logging.FromContext(ctx).Error("es_index_failed", "product_id", product.ID, "status", res.Status())
	}
}

func (i *Index) DeleteProduct(ctx context.Context, productID uint) {
	if i == nil {
		return
	}

	res, err := i.es.Delete(
		i.index,
		strconv.FormatUint(uint64(productID), 10),
		i.es.Delete.WithContext(ctx),
	)
	if err != nil {
		logging.FromContext(ctx).Error("es_delete_failed", "product_id", productID, "error", err)
		return
	}
	res.Body.Close()
}

func (i *Index) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	if i == nil {
		return 0, nil, fmt.Errorf("search backend not configured")
	}

	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := i.es.Search(
		i.es.Search.WithContext(ctx),
		i.es.Search.WithIndex(i.index),
		i.es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct{ Value int64 }             `json:"total"`
			Hits  []struct{ Source models.Product } `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}

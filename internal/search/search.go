// Package search answers free-text product queries. With an
// Elasticsearch cluster configured the catalog is indexed there and
// queried with a fuzzy multi_match; without one it falls back to a
// substring scan over the in-memory catalog.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/exclucatalog/exclucatalog/internal/catalog"
	"github.com/exclucatalog/exclucatalog/internal/config"
	"github.com/exclucatalog/exclucatalog/internal/models"
)

func NewClient(cfg *config.Config) (*elasticsearch.Client, error) {
	esCfg := elasticsearch.Config{
		Addresses: []string{cfg.ES_URL},
		Username:  cfg.ES_USER,
		Password:  cfg.ES_PASSWORD,
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("search: create client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("search: cluster info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search: cluster error: %s: %s", res.Status(), body)
	}

	return client, nil
}

type Service struct {
	ES      *elasticsearch.Client // nil means local fallback only
	Index   string
	Catalog *catalog.Store
	Log     *slog.Logger
}

// Reindex replaces the search index with the given products. Failures
// are logged per document; search falls back to stale or local results.
func (s *Service) Reindex(ctx context.Context, products []models.Product) {
	if s.ES == nil {
		return
	}

	if res, err := s.ES.Indices.Delete([]string{s.Index},
		s.ES.Indices.Delete.WithContext(ctx),
		s.ES.Indices.Delete.WithIgnoreUnavailable(true),
	); err != nil {
		s.Log.Error("search: delete index", "error", err)
	} else {
		res.Body.Close()
	}

	for _, p := range products {
		doc, err := json.Marshal(p)
		if err != nil {
			s.Log.Error("search: marshal product", "id", p.ID, "error", err)
			continue
		}
		res, err := s.ES.Index(s.Index, bytes.NewReader(doc),
			s.ES.Index.WithContext(ctx),
			s.ES.Index.WithDocumentID(strconv.FormatInt(p.ID, 10)),
		)
		if err != nil {
			s.Log.Error("search: index product", "id", p.ID, "error", err)
			continue
		}
		if res.IsError() {
			s.Log.Error("search: index product", "id", p.ID, "status", res.Status())
		}
		res.Body.Close()
	}
}

func (s *Service) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	if s.ES == nil {
		return s.searchLocal(query, from, size)
	}
	return s.searchES(ctx, query, from, size)
}

func (s *Service) searchES(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "code", "model"},
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

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: query: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: query: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
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

func (s *Service) searchLocal(query string, from, size int) (int64, []models.Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	var matched []models.Product
	for _, p := range s.Catalog.GetAll() {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Code), q) ||
			strings.Contains(strings.ToLower(p.Model), q) {
			matched = append(matched, p)
		}
	}

	total := int64(len(matched))
	if from >= len(matched) {
		return total, nil, nil
	}
	end := from + size
	if end > len(matched) {
		end = len(matched)
	}
	return total, matched[from:end], nil
}

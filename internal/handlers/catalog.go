package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/exclucatalog/exclucatalog/internal/catalog"
	"github.com/exclucatalog/exclucatalog/internal/events"
	"github.com/exclucatalog/exclucatalog/internal/importer"
	"github.com/exclucatalog/exclucatalog/internal/search"
	"github.com/exclucatalog/exclucatalog/internal/util"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func errorResponse(c echo.Context, code int, err error) error {
	return c.JSON(code, Response{
		Status:  "error",
		Message: err.Error(),
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

type CatalogHandler struct {
	Catalog  *catalog.Store
	Importer *importer.Importer
	Search   *search.Service
	Producer events.Publisher
}

// GetProducts lists the catalog, optionally narrowed by a filter, with
// the usual page/size window. The filter is applied before slicing, so
// page 1 of a fresh filter is always valid.
func (h *CatalogHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	filtered := h.Catalog.Filter(c.QueryParam("filter_kind"), c.QueryParam("filter_value"))
	total := int64(len(filtered))

	offset, limit := util.Calculate(page, size)
	end := offset + limit
	if offset > len(filtered) {
		offset = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}
	items := filtered[offset:end]

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

// ImportProducts replaces the whole catalog from an uploaded
// spreadsheet. The upload is parsed completely before the store is
// touched; an empty sheet leaves the catalog as it was.
func (h *CatalogHandler) ImportProducts(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, fmt.Errorf("missing file: %w", err))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	defer f.Close()

	products, err := h.Importer.ReadProducts(fileHeader.Filename, f)
	if err != nil {
		if errors.Is(err, importer.ErrEmptyFile) {
			return errorResponse(c, http.StatusBadRequest, err)
		}
		return errorResponse(c, http.StatusUnprocessableEntity, err)
	}

	if err := h.Catalog.ReplaceAll(c.Request().Context(), products); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	h.Search.Reindex(c.Request().Context(), products)
	h.publish(c, map[string]any{
		"type":  "catalog_replaced",
		"count": len(products),
	})

	return c.JSON(http.StatusOK, Response{
		Status:  "ok",
		Message: fmt.Sprintf("se han cargado %d productos", len(products)),
	})
}

func (h *CatalogHandler) SearchProducts(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return errorResponse(c, http.StatusBadRequest, errors.New("q is required"))
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Search.Search(c.Request().Context(), query, offset, limit)
	if err != nil {
		return errorResponse(c, http.StatusBadGateway, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}

func (h *CatalogHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.Publish(ctx, "catalog", event); err != nil {
		c.Logger().Errorf("event publish error: %v", err)
	}
}

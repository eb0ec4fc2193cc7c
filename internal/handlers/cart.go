package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/exclucatalog/exclucatalog/internal/cart"
	"github.com/exclucatalog/exclucatalog/internal/catalog"
	"github.com/exclucatalog/exclucatalog/internal/events"
	"github.com/exclucatalog/exclucatalog/internal/models"
)

type CartHandler struct {
	Cart     *cart.Store
	Catalog  *catalog.Store
	Producer events.Publisher
}

func (h *CartHandler) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"items":       h.Cart.Items(),
		"total_items": h.Cart.TotalItems(),
	})
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	var req struct {
		ProductID int64 `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	var product *models.Product
	for _, p := range h.Catalog.GetAll() {
		if p.ID == req.ProductID {
			product = &p
			break
		}
	}
	if product == nil {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	if err := h.Cart.AddToCart(c.Request().Context(), *product); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items":       h.Cart.Items(),
		"total_items": h.Cart.TotalItems(),
	})
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := h.Cart.UpdateQuantity(c.Request().Context(), id, req.Quantity); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"items": h.Cart.Items()})
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := h.Cart.RemoveFromCart(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	if err := h.Cart.ClearCart(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Checkout validates the customer form and snapshots the cart into a
// new order. The cart is intentionally not cleared here; the client
// decides when to empty it.
func (h *CartHandler) Checkout(c echo.Context) error {
	var customer models.Customer
	if err := c.Bind(&customer); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if fieldErrors := validateCustomer(customer); len(fieldErrors) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": fieldErrors})
	}

	order, err := h.Cart.SaveOrder(c.Request().Context(), &customer)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	if order == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	h.publish(c, map[string]any{
		"type":     "order_created",
		"order_id": order.ID,
		"total":    order.Total,
	})

	return c.JSON(http.StatusCreated, order)
}

func (h *CartHandler) GetOrders(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Cart.Orders())
}

func validateCustomer(customer models.Customer) map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(customer.RIF) == "" {
		fieldErrors["rif"] = "requerido"
	}
	if strings.TrimSpace(customer.Name) == "" {
		fieldErrors["name"] = "requerido"
	}
	if strings.TrimSpace(customer.Phone) == "" {
		fieldErrors["phone"] = "requerido"
	}
	if strings.TrimSpace(customer.Address) == "" {
		fieldErrors["address"] = "requerido"
	}
	return fieldErrors
}

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.Publish(ctx, "cart", event); err != nil {
		c.Logger().Errorf("event publish error: %v", err)
	}
}

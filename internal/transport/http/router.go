package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/exclucatalog/exclucatalog/internal/handlers"
	"github.com/exclucatalog/exclucatalog/internal/middleware/auth"
)

type Deps struct {
	SessionSecret  []byte
	PagesHandler   *handlers.PagesHandler
	AuthHandler    *handlers.AuthHandler
	CatalogHandler *handlers.CatalogHandler
	CartHandler    *handlers.CartHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.GET("/", d.PagesHandler.Root)
	e.GET("/login", d.PagesHandler.Login)
	e.GET("/catalogo", d.PagesHandler.Catalogo)

	v1 := e.Group("/api/v1")

	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout)

	v1.GET("/products", d.CatalogHandler.GetProducts)
	v1.GET("/search", d.CatalogHandler.SearchProducts)

	guarded := v1.Group("", auth.RequireLogin(d.SessionSecret))

	guarded.GET("/cart", d.CartHandler.GetCart)
	guarded.POST("/cart", d.CartHandler.AddToCart)
	guarded.PATCH("/cart/:id", d.CartHandler.UpdateQuantity)
	guarded.DELETE("/cart/:id", d.CartHandler.RemoveFromCart)
	guarded.DELETE("/cart", d.CartHandler.ClearCart)
	guarded.POST("/checkout", d.CartHandler.Checkout)
	guarded.GET("/orders", d.CartHandler.GetOrders)

	admin := v1.Group("/admin", auth.RequireLogin(d.SessionSecret))
	admin.POST("/products/import", d.CatalogHandler.ImportProducts)
}

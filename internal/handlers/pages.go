package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/exclucatalog/exclucatalog/internal/middleware/auth"
)

// PagesHandler implements the page-level route guard: the entry path
// redirects by session state, the login page bounces authenticated
// visitors to the catalog, and the catalog bounces anonymous visitors
// to the login page.
type PagesHandler struct {
	SessionSecret []byte
}

const loginPage = `<!doctype html>
<html lang="es">
<head><meta charset="utf-8"><title>ExcluCatalog</title></head>
<body>
<h1>ExcluCatalog</h1>
<p>Ingresa para ver el catálogo exclusivo.</p>
<form method="post" action="/api/v1/login" id="login">
<input type="password" name="password" placeholder="Contraseña">
<button type="submit">Entrar</button>
</form>
</body>
</html>`

const catalogPage = `<!doctype html>
<html lang="es">
<head><meta charset="utf-8"><title>Catálogo</title></head>
<body>
<h1>Catálogo</h1>
<p>Los productos se sirven desde /api/v1/products.</p>
</body>
</html>`

func (h *PagesHandler) Root(c echo.Context) error {
	if auth.IsAuthenticated(c, h.SessionSecret) {
		return c.Redirect(http.StatusFound, "/catalogo")
	}
	return c.Redirect(http.StatusFound, "/login")
}

func (h *PagesHandler) Login(c echo.Context) error {
	if auth.IsAuthenticated(c, h.SessionSecret) {
		return c.Redirect(http.StatusFound, "/catalogo")
	}
	return c.HTML(http.StatusOK, loginPage)
}

func (h *PagesHandler) Catalogo(c echo.Context) error {
	if !auth.IsAuthenticated(c, h.SessionSecret) {
		return c.Redirect(http.StatusFound, "/login")
	}
	return c.HTML(http.StatusOK, catalogPage)
}

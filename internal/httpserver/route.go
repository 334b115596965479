package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	Auth       *AuthHTTP
	Cart       *CartHTTP
	Categories *CategoryHTTP
	Products   *ProductHTTP
	Search     *SearchHTTP
	JWTSecret  []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	auth := e.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)
	auth.POST("/logout", d.Auth.Logout)

	authMW := &AuthMiddleware{JWTSecret: d.JWTSecret}

	cart := e.Group("/cart", authMW.RequireAuth)
	cart.GET("", d.Cart.GetItems)
	cart.POST("/items", d.Cart.AddItem)
	cart.PATCH("/items/:id", d.Cart.UpdateItem)
	cart.DELETE("/items/:id", d.Cart.RemoveItem)

	categories := e.Group("/categories")
	categories.GET("", d.Categories.List)
	categories.GET("/:id", d.Categories.Get)
	categories.POST("", d.Categories.Create, authMW.RequireAdmin)
	categories.PATCH("/:id", d.Categories.Update, authMW.RequireAdmin)
	categories.DELETE("/:id", d.Categories.Delete, authMW.RequireAdmin)

	products := e.Group("/products")
	products.GET("", d.Products.List)
	products.GET("/:id", d.Products.Get)
	products.POST("", d.Products.Create, authMW.RequireAdmin)
	products.PATCH("/:id", d.Products.Update, authMW.RequireAdmin)
	products.DELETE("/:id", d.Products.Delete, authMW.RequireAdmin)

	if d.Search != nil && d.Search.Searcher != nil {
		products.GET("/search", d.Search.Search)
	}
}

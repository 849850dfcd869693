package echoServer

import (
	"github.com/StressDemon/book-manager/app/echoServer/controller/auth"
	"github.com/StressDemon/book-manager/app/echoServer/controller/author"
	"github.com/StressDemon/book-manager/app/echoServer/controller/book"
	"github.com/StressDemon/book-manager/app/echoServer/controller/genre"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth      *auth.Controller
	Book      *book.Controller
	Author    *author.Controller
	Genre     *genre.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public reads + auth endpoints
	pub := e.Group("/api")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	pub.GET("/books", c.Book.List)
	pub.GET("/books/search", c.Book.Search)
	pub.GET("/books/:id", c.Book.Detail)
	pub.GET("/books/:id/authors", c.Book.Authors)
	pub.GET("/books/:id/genres", c.Book.Genres)
	pub.GET("/books/:id/reviews", c.Book.Reviews)

	pub.GET("/authors", c.Author.List)
	pub.GET("/authors/:id", c.Author.Detail)
	pub.GET("/authors/:id/books", c.Author.Books)

	pub.GET("/genres", c.Genre.List)
	pub.GET("/genres/:id", c.Genre.Detail)
	pub.GET("/genres/:id/books", c.Genre.Books)

	// Admin mutations: JWT + role gate
	adm := e.Group("/api")
	adm.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
	}))
	adm.Use(RequireAdmin())

	adm.POST("/books", c.Book.Create)
	adm.PUT("/books/:id", c.Book.Update)
	adm.DELETE("/books/:id", c.Book.Delete)

	adm.POST("/authors", c.Author.Create)
	adm.PUT("/authors/:id", c.Author.Update)
	adm.DELETE("/authors/:id", c.Author.Delete)

	adm.POST("/genres", c.Genre.Create)
	adm.PUT("/genres/:id", c.Genre.Update)
	adm.DELETE("/genres/:id", c.Genre.Delete)
}

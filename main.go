// Package main book catalog API.
//
// @title           Book Manager API
// @version         1.0
// @description     Catalog service over books, authors, genres and reviews.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/StressDemon/book-manager/app/echoServer"
	authctrl "github.com/StressDemon/book-manager/app/echoServer/controller/auth"
	authorctrl "github.com/StressDemon/book-manager/app/echoServer/controller/author"
	bookctrl "github.com/StressDemon/book-manager/app/echoServer/controller/book"
	genrectrl "github.com/StressDemon/book-manager/app/echoServer/controller/genre"
	"github.com/StressDemon/book-manager/app/echoServer/validation"
	"github.com/StressDemon/book-manager/config"
	authorrepo "github.com/StressDemon/book-manager/repository/author"
	bookrepo "github.com/StressDemon/book-manager/repository/book"
	genrerepo "github.com/StressDemon/book-manager/repository/genre"
	userrepo "github.com/StressDemon/book-manager/repository/user"
	authsvc "github.com/StressDemon/book-manager/service/auth"
	authorsvc "github.com/StressDemon/book-manager/service/author"
	booksvc "github.com/StressDemon/book-manager/service/book"
	genresvc "github.com/StressDemon/book-manager/service/genre"
	"github.com/StressDemon/book-manager/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	// repos
	br := bookrepo.New(db)
	ar := authorrepo.New(db)
	gr := genrerepo.New(db)
	ur := userrepo.New(db)

	// services
	bs := booksvc.New(br)
	as := authorsvc.New(ar)
	gs := genresvc.New(gr)
	us := authsvc.New(ur, cfg.JWTSecret)

	// controllers
	v := validator.New()
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	authorC := &authorctrl.Controller{Svc: as, V: v, Log: log}
	genreC := &genrectrl.Controller{Svc: gs, V: v, Log: log}
	authC := &authctrl.Controller{Svc: us, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:   authC,
		Book:   bookC,
		Author: authorC,
		Genre:  genreC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting server", "port", port)

	e.Logger.Fatal(e.Start(":" + port))
}

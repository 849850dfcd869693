package author

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/StressDemon/book-manager/model"
	authorsvc "github.com/StressDemon/book-manager/service/author"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc authorsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// GET /api/authors
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("author list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/authors/:id
func (h *Controller) Detail(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	a, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		if authorsvc.Code(err) == authorsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Author not found"})
		}
		h.Log.Error("author detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, a)
}

// GET /api/authors/:id/books
func (h *Controller) Books(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rows, err := h.Svc.Books(c.Request().Context(), id)
	if err != nil {
		if authorsvc.Code(err) == authorsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Author not found"})
		}
		h.Log.Error("author books", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// Create author
// @Summary      Create author (admin)
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        payload  body  model.CreateAuthorReq  true  "Author payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/authors [post]
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateAuthorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json", "errors": err.Error()})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	id, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		if authorsvc.Code(err) == authorsvc.ErrBadInput {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		}
		h.Log.Error("author create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Author created successfully",
		"id":      id,
	})
}

// PUT /api/authors/:id — sparse update.
func (h *Controller) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req model.UpdateAuthorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json", "errors": err.Error()})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	if err := h.Svc.Update(c.Request().Context(), id, req); err != nil {
		switch authorsvc.Code(err) {
		case authorsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Author not found"})
		case authorsvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		default:
			h.Log.Error("author update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Author updated successfully"})
}

// DELETE /api/authors/:id
func (h *Controller) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if authorsvc.Code(err) == authorsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Author not found"})
		}
		h.Log.Error("author delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Author deleted successfully"})
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/luksua/API-Repaso/internal/api/metrics"
	"github.com/luksua/API-Repaso/internal/core/domain"
	"github.com/luksua/API-Repaso/internal/core/ports"
)

// PropertyHandler handles HTTP requests for property operations.
type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// List handles GET /api/properties.
//
// @Summary      List all properties
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   propertyResponse
// @Failure      401  {object}  map[string]string
// @Router       /properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	details, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(details))
}

// Create handles POST /api/properties.
//
// @Summary      Create a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPropertyRequest  true  "Property fields"
// @Success      201   {object}  propertyResponse
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createPropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	p, err := h.service.Create(c.Request().Context(), toCreateInput(req), userID)
	if err != nil {
		metrics.PropertyMutationsTotal.WithLabelValues("create", mutationResult(err)).Inc()
		return err
	}

	metrics.PropertyMutationsTotal.WithLabelValues("create", "ok").Inc()
	metrics.PropertiesCreatedTotal.WithLabelValues(string(p.Type)).Inc()
	return c.JSON(http.StatusCreated, toPropertyResponse(p, nil))
}

// Get handles GET /api/properties/:id.
//
// @Summary      Get a property by id
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Property id"
// @Success      200  {object}  propertyResponse
// @Failure      404  {object}  map[string]string
// @Router       /properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	id, err := propertyID(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPropertyResponse(detail.Property, detail.Owner))
}

// Update handles PUT /api/properties/:id. Only fields present in the payload
// are applied; explicit nulls clear nullable fields.
//
// @Summary      Update a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Property id"
// @Param        body  body      updatePropertyRequest  true  "Partial property fields"
// @Success      200   {object}  propertyResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /properties/{id} [put]
func (h *PropertyHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	id, err := propertyID(c)
	if err != nil {
		return err
	}

	var req updatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	p, err := h.service.Update(c.Request().Context(), id, toUpdateInput(req), userID)
	if err != nil {
		metrics.PropertyMutationsTotal.WithLabelValues("update", mutationResult(err)).Inc()
		return err
	}

	metrics.PropertyMutationsTotal.WithLabelValues("update", "ok").Inc()
	return c.JSON(http.StatusOK, toPropertyResponse(p, nil))
}

// Delete handles DELETE /api/properties/:id.
//
// @Summary      Delete a property
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Property id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	id, err := propertyID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id, userID); err != nil {
		metrics.PropertyMutationsTotal.WithLabelValues("delete", mutationResult(err)).Inc()
		return err
	}

	metrics.PropertyMutationsTotal.WithLabelValues("delete", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Propiedad eliminada"})
}

// Stats handles GET /api/properties/stats: the acting user's portfolio
// rollup, computed fresh on every call.
//
// @Summary      Portfolio stats for the acting user
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      401  {object}  map[string]string
// @Router       /properties/stats [get]
func (h *PropertyHandler) Stats(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	metrics.StatsRequestsTotal.Inc()
	return c.JSON(http.StatusOK, toStatsResponse(stats))
}

func propertyID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "property not found")
	}
	return id, nil
}

func mutationResult(err error) string {
	var verr *domain.ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, domain.ErrNotOwner):
		return "denied"
	case errors.Is(err, domain.ErrPropertyNotFound):
		return "not_found"
	default:
		return "error"
	}
}

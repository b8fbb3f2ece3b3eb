package catalog

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
	"github.com/clinicdesk/clinicdesk/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("admin", "doctor", "nurse", "receptionist", "pharmacist"))
	read.GET("/catalog", h.ListItems)
	read.GET("/catalog/:id", h.GetItem)
	read.GET("/catalog/resolve", h.ResolveByName)

	write := api.Group("", auth.RequireRole("admin"))
	write.POST("/catalog", h.CreateItem)
	write.PUT("/catalog/:id", h.UpdateItem)
}

func (h *Handler) CreateItem(c echo.Context) error {
	var it Item
	if err := c.Bind(&it); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateItem(c.Request().Context(), &it); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, it)
}

func (h *Handler) GetItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	it, err := h.svc.GetItem(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "item not found")
	}
	return c.JSON(http.StatusOK, it)
}

func (h *Handler) UpdateItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var it Item
	if err := c.Bind(&it); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	it.ID = id
	if err := h.svc.UpdateItem(c.Request().Context(), &it); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, it)
}

func (h *Handler) ListItems(c echo.Context) error {
	params := pagination.FromContext(c)
	var kind *ItemKind
	if k := c.QueryParam("kind"); k != "" {
		ik := ItemKind(k)
		kind = &ik
	}
	activeOnly := c.QueryParam("active") != "false"
	items, total, err := h.svc.ListItems(c.Request().Context(), kind, activeOnly, params.Limit, params.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, params.Limit, params.Offset))
}

func (h *Handler) ResolveByName(c echo.Context) error {
	kind := ItemKind(c.QueryParam("kind"))
	if !validKinds[kind] {
		return echo.NewHTTPError(http.StatusBadRequest, "kind must be one of: medication, service")
	}
	it, err := h.svc.ResolveByName(c.Request().Context(), kind, c.QueryParam("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if it == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no matching item")
	}
	return c.JSON(http.StatusOK, it)
}

package queue

import (
	"encoding/json"
	"io"
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
	g := api.Group("", auth.RequireRole("admin", "doctor", "nurse", "receptionist"))
	g.GET("/queue", h.ListByStatus)
	g.GET("/queue/:id", h.GetEntry)
	g.POST("/queue", h.Enqueue)
	g.PUT("/queue/:id/session-data", h.UpdateSessionData)
	g.PUT("/queue/:id/status", h.UpdateStatus)
}

func (h *Handler) Enqueue(c echo.Context) error {
	var e Entry
	if err := c.Bind(&e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Enqueue(c.Request().Context(), &e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *Handler) GetEntry(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	e, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "queue entry not found")
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) UpdateSessionData(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !json.Valid(body) {
		return echo.NewHTTPError(http.StatusBadRequest, "body must be valid JSON")
	}
	data := json.RawMessage(body)
	if err := h.svc.UpdateSessionData(c.Request().Context(), id, data); err != nil {
		switch err {
		case ErrEntryArchived, ErrQueueMismatch:
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Status Status `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !validStatuses[body.Status] {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	var svcErr error
	switch body.Status {
	case StatusCompleted:
		svcErr = h.svc.MarkCompleted(c.Request().Context(), id)
	case StatusInConsultation:
		svcErr = h.svc.MarkInConsultation(c.Request().Context(), id)
	case StatusArchived:
		svcErr = h.svc.Archive(c.Request().Context(), id)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "cannot transition back to waiting")
	}
	if svcErr != nil {
		return echo.NewHTTPError(http.StatusBadRequest, svcErr.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListByStatus(c echo.Context) error {
	params := pagination.FromContext(c)
	status := Status(c.QueryParam("status"))
	if status == "" {
		status = StatusWaiting
	}
	entries, total, err := h.svc.ListByStatus(c.Request().Context(), status, params.Limit, params.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(entries, total, params.Limit, params.Offset))
}

package consultation

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
	"github.com/clinicdesk/clinicdesk/internal/platform/notification"
	"github.com/clinicdesk/clinicdesk/pkg/pagination"
)

type Handler struct {
	svc      *Service
	workflow *Workflow
	notifier notification.Notifier
}

func NewHandler(svc *Service, wf *Workflow, notifier notification.Notifier) *Handler {
	return &Handler{svc: svc, workflow: wf, notifier: notifier}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	doctors := api.Group("", auth.RequireRole("admin", "doctor"))
	doctors.POST("/consultations/complete", h.Complete)

	read := api.Group("", auth.RequireRole("admin", "doctor", "nurse"))
	read.GET("/consultations/:id", h.GetSession)
	read.GET("/consultations/:id/items", h.ListItems)
	read.GET("/patients/:id/consultations", h.ListByPatient)
	read.GET("/patients/:id/notes", h.ListNotes)
}

// Complete runs the completion workflow and raises the user-facing
// notice. Success and failure notices both live here so the workflow
// stays presentation-free.
func (h *Handler) Complete(c echo.Context) error {
	var req CompleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	user := auth.UserIDFromContext(ctx)

	result, err := h.workflow.Complete(ctx, &req)
	if err != nil {
		h.notifier.Notify(ctx, user, "", "consultation-failed", map[string]string{
			"patient_name": req.PatientID.String(),
			"error":        err.Error(),
		})
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.notifier.Notify(ctx, user, "", "consultation-completed", map[string]string{
		"patient_name": req.PatientID.String(),
		"items":        fmt.Sprintf("%d", len(result.Items)),
	})
	for _, it := range result.Items {
		if it.ItemType == ItemMedication {
			h.notifier.Notify(ctx, user, "", "prescription-recorded", map[string]string{
				"medication":   it.Name,
				"patient_name": req.PatientID.String(),
			})
		}
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) GetSession(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	s, err := h.svc.GetSession(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) ListItems(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	items, err := h.svc.ListItemsBySession(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	params := pagination.FromContext(c)
	sessions, total, err := h.svc.ListSessionsByPatient(c.Request().Context(), patientID, params.Limit, params.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(sessions, total, params.Limit, params.Offset))
}

func (h *Handler) ListNotes(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	params := pagination.FromContext(c)
	notes, total, err := h.svc.ListNotesByPatient(c.Request().Context(), patientID, params.Limit, params.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(notes, total, params.Limit, params.Offset))
}

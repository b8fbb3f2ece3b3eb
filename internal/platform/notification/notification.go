// Package notification keeps user-facing notices out of the domain
// workflows. Services and handlers publish through the Notifier
// interface; the in-memory Center stores per-recipient notices with
// template rendering and read tracking.
package notification

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
)

// Severity of a notice as presented to the user.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notice is a single user-facing notification.
type Notice struct {
	ID        string            `json:"id"`
	Recipient string            `json:"recipient"`
	Severity  Severity          `json:"severity"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	ReadAt    *time.Time        `json:"read_at,omitempty"`
}

// Notifier is the publishing side consumed by HTTP handlers.
type Notifier interface {
	Notify(ctx context.Context, recipient string, severity Severity, templateID string, data map[string]string) (*Notice, error)
}

// Template defines a reusable notice template with {{key}} placeholders.
type Template struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Severity Severity `json:"severity"`
}

var builtInTemplates = []Template{
	{
		ID:       "consultation-completed",
		Title:    "Consultation completed",
		Body:     "Consultation for {{patient_name}} recorded: {{items}} item(s) prescribed.",
		Severity: SeveritySuccess,
	},
	{
		ID:       "consultation-failed",
		Title:    "Consultation could not be saved",
		Body:     "Saving the consultation for {{patient_name}} failed: {{error}}. Records written before the failure were kept.",
		Severity: SeverityError,
	},
	{
		ID:       "prescription-recorded",
		Title:    "Prescription recorded",
		Body:     "{{medication}} added to {{patient_name}}'s current medications.",
		Severity: SeverityInfo,
	},
	{
		ID:       "analytics-failed",
		Title:    "Analytics unavailable",
		Body:     "Procurement analytics could not be generated: {{error}}.",
		Severity: SeverityError,
	},
}

// Center is an in-memory notification store.
type Center struct {
	mu        sync.RWMutex
	templates map[string]Template
	notices   map[string][]*Notice // keyed by recipient
	maxPerBox int
}

// NewCenter creates a Center with the built-in templates registered.
func NewCenter() *Center {
	c := &Center{
		templates: make(map[string]Template),
		notices:   make(map[string][]*Notice),
		maxPerBox: 200,
	}
	for _, t := range builtInTemplates {
		c.templates[t.ID] = t
	}
	return c
}

// RegisterTemplate adds or replaces a template.
func (c *Center) RegisterTemplate(t Template) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates[t.ID] = t
}

// render performs {{key}} replacement. Keys present in the template but
// absent from data are left as-is.
func render(s string, data map[string]string) string {
	for k, v := range data {
		s = strings.ReplaceAll(s, "{{"+k+"}}", v)
	}
	return s
}

// Notify renders the template and stores the notice for the recipient.
// The severity argument overrides the template default when non-empty.
func (c *Center) Notify(_ context.Context, recipient string, severity Severity, templateID string, data map[string]string) (*Notice, error) {
	if recipient == "" {
		return nil, fmt.Errorf("recipient is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.templates[templateID]
	if !ok {
		return nil, fmt.Errorf("unknown notification template: %s", templateID)
	}
	if severity == "" {
		severity = t.Severity
	}

	n := &Notice{
		ID:        uuid.New().String(),
		Recipient: recipient,
		Severity:  severity,
		Title:     render(t.Title, data),
		Message:   render(t.Body, data),
		Metadata:  data,
		CreatedAt: time.Now().UTC(),
	}

	box := append(c.notices[recipient], n)
	if len(box) > c.maxPerBox {
		box = box[len(box)-c.maxPerBox:]
	}
	c.notices[recipient] = box
	return n, nil
}

// List returns the recipient's notices, newest first.
func (c *Center) List(recipient string, unreadOnly bool) []*Notice {
	c.mu.RLock()
	defer c.mu.RUnlock()

	box := c.notices[recipient]
	out := make([]*Notice, 0, len(box))
	for i := len(box) - 1; i >= 0; i-- {
		if unreadOnly && box[i].ReadAt != nil {
			continue
		}
		out = append(out, box[i])
	}
	return out
}

// MarkRead marks a notice as read. Returns false when the notice does not
// exist for the recipient.
func (c *Center) MarkRead(recipient, noticeID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, n := range c.notices[recipient] {
		if n.ID == noticeID {
			if n.ReadAt == nil {
				now := time.Now().UTC()
				n.ReadAt = &now
			}
			return true
		}
	}
	return false
}

// Handler exposes the notification center over HTTP.
type Handler struct {
	center *Center
}

func NewHandler(center *Center) *Handler {
	return &Handler{center: center}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/notifications", h.ListNotices)
	api.POST("/notifications/:id/read", h.MarkRead)
}

func (h *Handler) ListNotices(c echo.Context) error {
	recipient := currentUser(c)
	unreadOnly := c.QueryParam("unread") == "true"
	return c.JSON(http.StatusOK, h.center.List(recipient, unreadOnly))
}

func (h *Handler) MarkRead(c echo.Context) error {
	recipient := currentUser(c)
	if !h.center.MarkRead(recipient, c.Param("id")) {
		return echo.NewHTTPError(http.StatusNotFound, "notification not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func currentUser(c echo.Context) string {
	if uid := auth.UserIDFromContext(c.Request().Context()); uid != "" {
		return uid
	}
	return "anonymous"
}

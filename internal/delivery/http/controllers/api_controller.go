package controllers

import (
	"log/slog"
	"net/http"

	"conferencesite/internal/delivery/http/helpers"
	"conferencesite/internal/domain"
)

// GetEventSuccessResponse is the success response envelope for GET /api/events/{eventID} (200).
type GetEventSuccessResponse struct {
	Data  *domain.EventView `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

type APIController struct {
	Logger  *slog.Logger
	Content domain.ContentRepository
	Builder domain.ScheduleBuilder
}

func NewAPIController(logger *slog.Logger, content domain.ContentRepository, builder domain.ScheduleBuilder) *APIController {
	return &APIController{
		Logger:  logger,
		Content: content,
		Builder: builder,
	}
}

// GetEvent godoc
// @Summary Get an event view model
// @Description Returns the event with its timed agenda, resolved presentations and attachments, participating speakers and archived flag.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains the event view model"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{eventID} [get]
func (c *APIController) GetEvent(w http.ResponseWriter, r *http.Request) {
	content, err := c.Content.Load(r.Context(), domain.CollectionEvents, domain.CollectionPresentations, domain.CollectionSpeakers)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	event, ok := content.EventByID(r.PathValue("eventID"))
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		return
	}
	view, err := c.Builder.Build(event, content.Presentations, content.Speakers)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} controllers.HealthResponse
// @Router /health [get]
func (c *APIController) Health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (c *APIController) fail(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
}

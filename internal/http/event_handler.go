package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/concierge-availability/internal/application"
	"github.com/example/concierge-availability/internal/hours"
	"github.com/example/concierge-availability/internal/recurrence"
)

type eventService interface {
	EventAvailability(ctx context.Context, eventID string) (application.EventAvailability, error)
	ValidateEvent(ctx context.Context, input application.EventInput) error
}

type EventHandler struct {
	service   eventService
	responder responder
	logger    *slog.Logger
}

func NewEventHandler(service eventService, logger *slog.Logger) *EventHandler {
	base := defaultLogger(logger)
	return &EventHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *EventHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "EventHandler", operation, attrs...)
}

func (h *EventHandler) Availability(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := EventIDFromContext(r.Context())
	if !ok || strings.TrimSpace(eventID) == "" {
		h.log(r.Context(), "Availability", "error_kind", "bad_request").ErrorContext(r.Context(), "missing event id for availability")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEvent)
		return
	}

	logger := h.log(r.Context(), "Availability", "event_id", eventID)

	availability, err := h.service.EventAvailability(r.Context(), eventID)
	if err != nil {
		logger.ErrorContext(r.Context(), "event availability failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("booking_state", string(availability.BookingState)).InfoContext(r.Context(), "event availability resolved")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toEventAvailabilityDTO(availability))
}

func (h *EventHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req eventValidationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Validate", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode event validation request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Validate")

	input, fieldErrors := req.toInput()
	if len(fieldErrors) > 0 {
		logger.InfoContext(r.Context(), "event validation request rejected", "fields", len(fieldErrors))
		h.responder.writeJSON(r.Context(), w, http.StatusUnprocessableEntity, errorResponse{
			Message: "the submitted values are invalid",
			Errors:  fieldErrors,
		})
		return
	}

	if err := h.service.ValidateEvent(r.Context(), input); err != nil {
		logger.ErrorContext(r.Context(), "event validation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "event validated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, eventValidationResponse{Valid: true})
}

type eventValidationRequest struct {
	Title              string                 `json:"title"`
	Timezone           string                 `json:"timezone"`
	Start              string                 `json:"start"`
	AllDay             bool                   `json:"all_day"`
	Recurring          bool                   `json:"recurring"`
	Rule               *recurrenceRuleRequest `json:"rule,omitempty"`
	BookingOpensHours  *float64               `json:"booking_opens_hours,omitempty"`
	BookingClosesHours *float64               `json:"booking_closes_hours,omitempty"`
}

type recurrenceRuleRequest struct {
	Frequency string   `json:"freq"`
	Interval  int      `json:"interval"`
	Days      []string `json:"days,omitempty"`
	Until     string   `json:"until,omitempty"`
}

// toInput converts the wire payload into service input, reporting fields the
// service layer never sees because they fail to parse at the boundary.
func (req eventValidationRequest) toInput() (application.EventInput, map[string]string) {
	fieldErrors := make(map[string]string)

	input := application.EventInput{
		Title:              req.Title,
		Timezone:           req.Timezone,
		AllDay:             req.AllDay,
		Recurring:          req.Recurring,
		BookingOpensHours:  req.BookingOpensHours,
		BookingClosesHours: req.BookingClosesHours,
	}

	if value := strings.TrimSpace(req.Start); value != "" {
		start, err := time.Parse(time.RFC3339, value)
		if err != nil {
			fieldErrors["start"] = "start must be an RFC 3339 timestamp"
		} else {
			input.Start = start
		}
	}

	if req.Rule != nil {
		rule := &recurrence.Rule{
			Frequency: recurrence.ParseFrequency(req.Rule.Frequency),
			Interval:  req.Rule.Interval,
		}
		for _, name := range req.Rule.Days {
			day, err := hours.ParseWeekday(name)
			if err != nil {
				fieldErrors["recurrence"] = "unknown weekday: " + name
				break
			}
			rule.Weekdays = append(rule.Weekdays, day)
		}
		if value := strings.TrimSpace(req.Rule.Until); value != "" {
			until, err := time.Parse("2006-01-02", value)
			if err != nil {
				fieldErrors["recurrence"] = "until must be a calendar date (YYYY-MM-DD)"
			} else {
				rule.Until = &until
			}
		}
		input.Rule = rule
	}

	if len(fieldErrors) > 0 {
		return application.EventInput{}, fieldErrors
	}
	return input, nil
}

type eventValidationResponse struct {
	Valid bool `json:"valid"`
}

type eventAvailabilityDTO struct {
	EventID           string  `json:"event_id"`
	Title             string  `json:"title"`
	Recurring         bool    `json:"recurring"`
	RecurrenceLabel   string  `json:"recurrence_label,omitempty"`
	EffectiveStart    *string `json:"effective_start"`
	Ended             bool    `json:"ended"`
	BookingState      string  `json:"booking_state"`
	AcceptingRequests bool    `json:"accepting_requests"`
	CheckedAt         string  `json:"checked_at"`
}

func toEventAvailabilityDTO(availability application.EventAvailability) eventAvailabilityDTO {
	dto := eventAvailabilityDTO{
		EventID:           availability.EventID,
		Title:             availability.Title,
		Recurring:         availability.Recurring,
		RecurrenceLabel:   availability.RecurrenceLabel,
		Ended:             availability.Ended,
		BookingState:      string(availability.BookingState),
		AcceptingRequests: availability.AcceptingRequests,
		CheckedAt:         availability.CheckedAt.Format(time.RFC3339),
	}
	if availability.EffectiveStart != nil {
		formatted := availability.EffectiveStart.Format(time.RFC3339)
		dto.EffectiveStart = &formatted
	}
	return dto
}

package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/fmartins/agendafoto/internal/service"
)

// AvailabilityHandler handles availability HTTP requests.
type AvailabilityHandler struct {
	availability *service.AvailabilityService
}

// NewAvailabilityHandler creates a new handler wired to the availability service.
func NewAvailabilityHandler(availability *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// GetAvailability handles GET /api/v1/availability
//
// Query parameters: date (required, YYYY-MM-DD), services (CSV of service
// ids), neighborhood, admin (true skips the contested-capacity subtraction),
// lat/lng (the session's coordinate; when both are given, slots a free
// photographer cannot physically reach in time are excluded).
//
// Returns 200 with the day's bookable slots; an empty list on closed days or
// when nobody qualifies.
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	location, err := queryLocation(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	query := service.AvailabilityQuery{
		Date:         date,
		ServiceIDs:   queryCSV(r, "services"),
		Neighborhood: r.URL.Query().Get("neighborhood"),
		Location:     location,
		Admin:        r.URL.Query().Get("admin") == "true",
	}

	slots, err := h.availability.GetAvailability(r.Context(), query)
	if err != nil {
		log.Printf("[handler] availability error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal_error",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":     date.Format("2006-01-02"),
		"services": query.ServiceIDs,
		"slots":    slots,
	})
}

// CheckAvailability handles GET /api/v1/availability/check
//
// Query parameters: photographer_id (required), date (required), time
// (required, HH:MM), duration (minutes, defaults to the standard session).
//
// Returns 200 with the availability verdict, 404 for unknown photographers,
// or 400 for malformed input.
func (h *AvailabilityHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	photographerID := r.URL.Query().Get("photographer_id")
	if photographerID == "" {
		writeBadRequest(w, "missing required parameter: photographer_id")
		return
	}

	date, err := queryDate(r, "date")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	wallClock := r.URL.Query().Get("time")
	if wallClock == "" {
		writeBadRequest(w, "missing required parameter: time")
		return
	}

	duration := service.DefaultOrderDurationMinutes
	if raw := r.URL.Query().Get("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil {
			writeBadRequest(w, "invalid duration: must be an integer")
			return
		}
	}

	free, err := h.availability.CheckFree(r.Context(), photographerID, date, wallClock, duration)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeBadRequest(w, err.Error())
		case errors.Is(err, service.ErrPhotographerNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error":   "not_found",
				"message": "Photographer not found.",
			})
		default:
			log.Printf("[handler] availability check error: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "internal_error",
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"photographer_id":  photographerID,
		"date":             date.Format("2006-01-02"),
		"time":             wallClock,
		"duration_minutes": duration,
		"free":             free,
	})
}

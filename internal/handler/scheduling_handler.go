package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/fmartins/agendafoto/internal/model"
	"github.com/fmartins/agendafoto/internal/service"
)

// SchedulingHandler handles smart-scheduling HTTP requests.
type SchedulingHandler struct {
	opportunities *service.OpportunityService
	insertions    *service.InsertionService
}

// NewSchedulingHandler creates a new handler wired to the scheduling services.
func NewSchedulingHandler(opportunities *service.OpportunityService, insertions *service.InsertionService) *SchedulingHandler {
	return &SchedulingHandler{opportunities: opportunities, insertions: insertions}
}

// FindOpportunities handles GET /api/v1/scheduling/opportunities
//
// Query parameters: lat and lng (required, the new order's location) and
// date (required, YYYY-MM-DD).
//
// Returns 200 with routing opportunities near the location, nearest first.
func (h *SchedulingHandler) FindOpportunities(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		writeBadRequest(w, "invalid lat: must be a number")
		return
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		writeBadRequest(w, "invalid lng: must be a number")
		return
	}
	date, err := queryDate(r, "date")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	opportunities, err := h.opportunities.FindOpportunities(r.Context(), model.Location{Lat: lat, Lng: lng}, date)
	if err != nil {
		log.Printf("[handler] opportunities error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal_error",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":          date.Format("2006-01-02"),
		"count":         len(opportunities),
		"opportunities": opportunities,
	})
}

// OrdersForSlot handles GET /api/v1/scheduling/orders-for-slot
//
// Query parameters: photographer_id (required), date (required), time
// (required, HH:MM), duration (minutes, defaults to the standard session).
//
// Returns 200 with pending orders ranked by route fit for the slot, best
// first, 404 for unknown photographers, or 400 for malformed input.
func (h *SchedulingHandler) OrdersForSlot(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.insertions.SuggestOrders(r.Context(), photographerID, date, wallClock, duration)
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
			log.Printf("[handler] orders-for-slot error: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "internal_error",
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"photographer_id": photographerID,
		"date":            date.Format("2006-01-02"),
		"time":            wallClock,
		"origin_label":    result.Origin,
		"suggestions":     result.Suggestions,
	})
}

// itinerary.go
package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"rihla/models"
	"rihla/planner"
	"rihla/utils"

	"github.com/julienschmidt/httprouter"
)

// generation includes the external model call and its timeout
const generateTimeout = 90 * time.Second

// Handlers exposes the Manager over HTTP.
type Handlers struct {
	mgr          *Manager
	shareBaseURL string
}

func NewHandlers(mgr *Manager, shareBaseURL string) *Handlers {
	return &Handlers{mgr: mgr, shareBaseURL: shareBaseURL}
}

// POST /api/itineraries
func (h *Handlers) GenerateItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var p models.Preferences
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()

	it, err := h.mgr.Generate(ctx, p, utils.GetUserIDFromRequest(r))
	if err != nil {
		respondErr(w, err, "Error generating itinerary")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, it)
}

type saveRequest struct {
	Name string `json:"name"`
}

// POST /api/itineraries/:id/save
func (h *Handlers) SaveItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	// the body is optional; an empty one, chunked or not, keeps the default name
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	saved, all, err := h.mgr.Save(ctx, ps.ByName("id"), utils.GetUserIDFromRequest(r), req.Name)
	if err != nil {
		respondErr(w, err, "Error saving itinerary")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"itinerary":   saved,
		"itineraries": all,
	})
}

// GET /api/itineraries
func (h *Handlers) GetItineraries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	all, err := h.mgr.List(ctx, utils.GetUserIDFromRequest(r))
	if err != nil {
		respondErr(w, err, "Error fetching itineraries")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, all)
}

// GET /api/itineraries/all/:id
func (h *Handlers) GetItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	it, err := h.mgr.Get(ctx, ps.ByName("id"), utils.GetUserIDFromRequest(r))
	if err != nil {
		respondErr(w, err, "Error fetching itinerary")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, it)
}

// PUT /api/itineraries/:id
func (h *Handlers) UpdateItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var ch Changes
	if err := json.NewDecoder(r.Body).Decode(&ch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	it, err := h.mgr.Update(ctx, ps.ByName("id"), utils.GetUserIDFromRequest(r), ch)
	if err != nil {
		respondErr(w, err, "Error updating itinerary")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, it)
}

// DELETE /api/itineraries/:id
func (h *Handlers) DeleteItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.mgr.Delete(ctx, ps.ByName("id"), utils.GetUserIDFromRequest(r)); err != nil {
		respondErr(w, err, "Error deleting itinerary")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Itinerary deleted successfully"})
}

// respondErr maps domain errors to status codes; anything unknown is a 500.
func respondErr(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, planner.ErrValidation):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidDays):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, planner.ErrNoData):
		utils.RespondWithError(w, http.StatusNotFound, planner.ErrNoData.Error())
	case errors.Is(err, ErrUnauthorized):
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrForbidden):
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
	default:
		log.Printf("[itinerary] %s: %v", fallback, err)
		utils.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}

package routes

import (
	"fmt"
	"net/http"

	"rihla/itinerary"
	"rihla/middleware"
	"rihla/ratelim"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func AddItineraryRoutes(router *httprouter.Router, h *itinerary.Handlers, auth *middleware.Auth, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/itineraries", rateLimiter.Limit(auth.OptionalAuth(h.GenerateItinerary))) //Generate a new itinerary
	router.POST("/api/itineraries/:id/save", auth.Authenticate(h.SaveItinerary))               //Save a copy to the caller
	router.GET("/api/itineraries", auth.Authenticate(h.GetItineraries))                        //Fetch the caller's itineraries
	router.GET("/api/itineraries/all/:id", auth.OptionalAuth(h.GetItinerary))                  //Fetch a single itinerary
	router.GET("/api/itineraries/all/:id/pdf", auth.OptionalAuth(h.ExportPDF))                 //Download as PDF
	router.PUT("/api/itineraries/:id", auth.Authenticate(h.UpdateItinerary))                   //Update an itinerary
	router.DELETE("/api/itineraries/:id", auth.Authenticate(h.DeleteItinerary))                //Delete an itinerary
}

func AddUtilityRoutes(router *httprouter.Router) {
	router.GET("/health", Index)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

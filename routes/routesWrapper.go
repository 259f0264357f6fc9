package routes

import (
	"rihla/itinerary"
	"rihla/middleware"
	"rihla/ratelim"

	"github.com/julienschmidt/httprouter"
)

func RoutesWrapper(router *httprouter.Router, h *itinerary.Handlers, auth *middleware.Auth, rateLimiter *ratelim.RateLimiter) {
	AddItineraryRoutes(router, h, auth, rateLimiter)
	AddUtilityRoutes(router)
}

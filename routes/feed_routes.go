package routes

import (
	"oppswipe_server/controllers"
	"oppswipe_server/services"

	"github.com/gorilla/mux"
)

// RegisterFeedRoutes sets up routes for feed operations under /api/feed
func RegisterFeedRoutes(r *mux.Router, feedService *services.FeedService) {
	controller := controllers.NewFeedController(feedService)

	feedRouter := r.PathPrefix("/api/feed").Subrouter()
	feedRouter.HandleFunc("", controller.HandleGetFeed).Methods("POST")
}

package routes

import (
	"oppswipe_server/controllers"
	"oppswipe_server/services"

	"github.com/gorilla/mux"
)

// RegisterSwipeRoutes sets up routes for swipe writes under /api/swipe
func RegisterSwipeRoutes(r *mux.Router, queue *services.WriteQueueService) {
	controller := controllers.NewSwipeController(queue)

	swipeRouter := r.PathPrefix("/api/swipe").Subrouter()
	swipeRouter.HandleFunc("", controller.HandleSwipe).Methods("POST")
	swipeRouter.HandleFunc("/undo", controller.HandleUndo).Methods("POST")
}

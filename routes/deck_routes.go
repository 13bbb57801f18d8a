package routes

import (
	"oppswipe_server/controllers"
	"oppswipe_server/services"

	"github.com/gorilla/mux"
)

// RegisterDeckRoutes sets up routes for deck operations under /api/deck
func RegisterDeckRoutes(r *mux.Router, deckService *services.DeckService) {
	controller := controllers.NewDeckController(deckService)

	deckRouter := r.PathPrefix("/api/deck").Subrouter()
	deckRouter.HandleFunc("/open", controller.HandleOpenDeck).Methods("POST")
	deckRouter.HandleFunc("/{deckId}/dispatch", controller.HandleDispatch).Methods("POST")
	deckRouter.HandleFunc("/{deckId}", controller.HandleGetDeck).Methods("GET")
}

package routes

import (
	"oppswipe_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterMediaRoutes sets up routes for banner media under /api/media
func RegisterMediaRoutes(r *mux.Router) {
	mediaRouter := r.PathPrefix("/api/media").Subrouter()
	mediaRouter.HandleFunc("/uploadURL", controllers.GenerateBannerUploadURL).Methods("POST")
	mediaRouter.HandleFunc("/readURL", controllers.GetBannerReadURL).Methods("POST")
}

package routes

import (
	"jamaah_server/controllers"
	"jamaah_server/services"

	"github.com/gorilla/mux"
)

// RegisterMarketRoutes sets up the marketplace and donation routes.
func RegisterMarketRoutes(r *mux.Router, market *services.MarketService, auth *services.AuthService, profiles *services.ProfileService) {
	controller := controllers.NewMarketController(market, auth, profiles)

	marketRouter := r.PathPrefix("/api/marketplace").Subrouter()
	marketRouter.HandleFunc("/products", controller.HandleListProducts).Methods("GET")
	marketRouter.HandleFunc("/products", controller.HandleCreateProduct).Methods("POST")
	marketRouter.HandleFunc("/products/{id}", controller.HandleDeleteProduct).Methods("DELETE")
	marketRouter.HandleFunc("/products/{id}/reviews", controller.HandleListReviews).Methods("GET")
	marketRouter.HandleFunc("/products/{id}/reviews", controller.HandleAddReview).Methods("POST")

	donationRouter := r.PathPrefix("/api/donations").Subrouter()
	donationRouter.HandleFunc("/campaigns", controller.HandleListCampaigns).Methods("GET")
	donationRouter.HandleFunc("/campaigns", controller.HandleCreateCampaign).Methods("POST")
	donationRouter.HandleFunc("/campaigns/{id}/donate", controller.HandleDonate).Methods("POST")
}

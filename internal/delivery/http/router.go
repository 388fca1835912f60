package http

import (
	"net/http"

	"blood-network-backend/internal/delivery/http/handler"
	"blood-network-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router           *mux.Router
	authHandler      *handler.AuthHandler
	hospitalHandler  *handler.HospitalHandler
	donorHandler     *handler.DonorHandler
	inventoryHandler *handler.InventoryHandler
	matchingHandler  *handler.MatchingHandler
	authMiddleware   *middleware.AuthMiddleware
	corsMiddleware   *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	hospitalHandler *handler.HospitalHandler,
	donorHandler *handler.DonorHandler,
	inventoryHandler *handler.InventoryHandler,
	matchingHandler *handler.MatchingHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:           mux.NewRouter(),
		authHandler:      authHandler,
		hospitalHandler:  hospitalHandler,
		donorHandler:     donorHandler,
		inventoryHandler: inventoryHandler,
		matchingHandler:  matchingHandler,
		authMiddleware:   authMiddleware,
		corsMiddleware:   corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)

	// Hospital routes (public reads + registration)
	api.HandleFunc("/hospitals", r.hospitalHandler.CreateHospital).Methods(http.MethodPost)
	api.HandleFunc("/hospitals/data", r.hospitalHandler.GetHospitalData).Methods(http.MethodGet)
	api.HandleFunc("/hospitals/data/locations", r.hospitalHandler.GetHospitalDataWithLocation).Methods(http.MethodGet)

	// Matching routes (public reads)
	matching := api.PathPrefix("/matching").Subrouter()
	matching.HandleFunc("/hospitals/surplus", r.matchingHandler.MatchSurplusHospitals).Methods(http.MethodGet)
	matching.HandleFunc("/hospitals/shortage", r.matchingHandler.MatchShortageHospitals).Methods(http.MethodGet)
	matching.HandleFunc("/donors/shortage", r.matchingHandler.MatchDonorsForShortage).Methods(http.MethodGet)
	matching.HandleFunc("/donors/surplus", r.matchingHandler.MatchDonorsForSurplus).Methods(http.MethodGet)

	// Mutations (protected)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/hospitals/stats/rebuild", r.hospitalHandler.RebuildStats).Methods(http.MethodPost)
	protected.HandleFunc("/hospitals/flags", r.hospitalHandler.UpdateFlag).Methods(http.MethodPatch)
	protected.HandleFunc("/hospitals/inventory", r.inventoryHandler.AdjustInventory).Methods(http.MethodPost)
	protected.HandleFunc("/donors", r.donorHandler.AddDonor).Methods(http.MethodPost)
	protected.HandleFunc("/donors/{pid}", r.donorHandler.RemoveDonor).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

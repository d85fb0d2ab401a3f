package http

import (
	"net/http"

	"salon-booking-api/internal/delivery/http/handler"
	"salon-booking-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	appointmentHandler *handler.AppointmentHandler
	paymentHandler     *handler.PaymentHandler
	dateHandler        *handler.DateHandler
	styleHandler       *handler.StyleHandler
	categoryHandler    *handler.CategoryHandler
	settingsHandler    *handler.SettingsHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	paymentHandler *handler.PaymentHandler,
	dateHandler *handler.DateHandler,
	styleHandler *handler.StyleHandler,
	categoryHandler *handler.CategoryHandler,
	settingsHandler *handler.SettingsHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		appointmentHandler: appointmentHandler,
		paymentHandler:     paymentHandler,
		dateHandler:        dateHandler,
		styleHandler:       styleHandler,
		categoryHandler:    categoryHandler,
		settingsHandler:    settingsHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public booking surface
	api.HandleFunc("/dates", r.dateHandler.GetBookable).Methods(http.MethodGet)
	api.HandleFunc("/styles", r.styleHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/categories", r.categoryHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/settings", r.settingsHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)

	// Payment flow (public, polled by the booking client)
	api.HandleFunc("/payments/initialize", r.paymentHandler.Initialize).Methods(http.MethodPost)
	api.HandleFunc("/payments/verify/{reference}", r.paymentHandler.Verify).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Admin surface
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)

	// Appointment management
	admin.HandleFunc("/appointments", r.appointmentHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}", r.appointmentHandler.GetByID).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}/status", r.appointmentHandler.ChangeStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{id}/payments", r.appointmentHandler.RecordPayment).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)

	// Calendar management
	admin.HandleFunc("/dates", r.dateHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/dates/bulk", r.dateHandler.CreateBulk).Methods(http.MethodPost)
	admin.HandleFunc("/dates/reconcile", r.dateHandler.Reconcile).Methods(http.MethodPost)
	admin.HandleFunc("/dates/{id}", r.dateHandler.Delete).Methods(http.MethodDelete)

	// Catalog management
	admin.HandleFunc("/styles", r.styleHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/styles/{id}", r.styleHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/styles/{id}", r.styleHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/categories", r.categoryHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{id}", r.categoryHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/categories/{id}", r.categoryHandler.Delete).Methods(http.MethodDelete)

	// System settings
	admin.HandleFunc("/settings", r.settingsHandler.Update).Methods(http.MethodPut)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

package api

import (
	"context"
	"time"

	"github.com/gorilla/mux"
	"github.com/nvillanueva/flightboard/session"
	"github.com/nvillanueva/flightboard/types"
)

// FlightStore is the persistence layer for flight submissions.
type FlightStore interface {
	Insert(f types.Submission) (string, error)
	List() ([]types.Submission, error)
	Get(id string) (types.Submission, error)
	Delete(id string) error
}

// ExternalSource supplies and receives flight records from the external
// flight API. Both operations are best-effort from the caller's side.
type ExternalSource interface {
	Fetch(ctx context.Context) ([]types.FlightRecord, error)
	Forward(ctx context.Context, record types.FlightRecord) error
}

// NewRouter creates and configures a new router with all API endpoints
func NewRouter(store FlightStore, ext ExternalSource, sessions *session.Store, sessionTTL time.Duration) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.Use(ResolveSession(sessions, sessionTTL))

	api.HandleFunc("/health", HealthCheck).Methods("GET")

	// Auth endpoints
	api.HandleFunc("/auth/session", GetSessionState(sessions)).Methods("GET")
	api.HandleFunc("/auth/admin", AdminLogin(sessions)).Methods("POST")
	api.HandleFunc("/auth/login", UserLogin(sessions)).Methods("POST")
	api.HandleFunc("/auth/logout", Logout(sessions)).Methods("POST")

	// Flight endpoints
	api.HandleFunc("/flights", ListFlights(store, ext)).Methods("GET")
	api.HandleFunc("/flights", AddFlight(store, ext, sessions)).Methods("POST")
	api.HandleFunc("/flights/{id}", DeleteFlight(store, sessions)).Methods("DELETE")

	// Admin endpoints
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(RequireAdmin(sessions))
	admin.HandleFunc("/flights", AdminListFlights(store)).Methods("GET")

	return r
}

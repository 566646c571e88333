package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"wheelhouse/internal/app/hosts"
	"wheelhouse/internal/listing"
	"wheelhouse/internal/store"
)

// HostService captures the host account operations needed by the HTTP handlers.
type HostService interface {
	Signup(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Verify(token string) (int64, error)
}

// ListingService exposes listing search and management workflows.
type ListingService interface {
	Search(ctx context.Context, params listing.Params) ([]listing.Row, listing.Page, error)
	SearchInBounds(ctx context.Context, params listing.Params) ([]listing.Row, error)
	Get(ctx context.Context, id int64) (listing.Row, error)
	Create(ctx context.Context, hostID int64, payload listing.Payload) (listing.Row, error)
	HostCreate(ctx context.Context, hostID int64, payload listing.Payload) (listing.Row, error)
	Update(ctx context.Context, id, hostID int64, payload listing.Payload) (listing.Row, error)
	Publish(ctx context.Context, id, hostID int64, payload listing.Payload) (listing.Row, error)
	Delete(ctx context.Context, id, hostID int64) error
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	hosts    HostService
	listings ListingService
	media    listing.Media
}

// New configures a Server with the given service implementations.
func New(hosts HostService, listings ListingService, media listing.Media) *Server {
	return &Server{
		hosts:    hosts,
		listings: listings,
		media:    media,
	}
}

// Routes exposes the HTTP handlers for host accounts and listings.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /api/v1/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	mux.HandleFunc("GET /api/v1/listings", s.handleSearch)
	mux.HandleFunc("GET /api/v1/listings/map", s.handleSearchMap)
	mux.HandleFunc("GET /api/v1/listings/{id}", s.handleGetListing)
	mux.HandleFunc("POST /api/v1/listings", s.handleCreateListing)
	mux.HandleFunc("POST /api/v1/host/listings", s.handleHostCreateListing)
	mux.HandleFunc("PATCH /api/v1/listings/{id}", s.handleUpdateListing)
	mux.HandleFunc("POST /api/v1/listings/{id}/publish", s.handlePublishListing)
	mux.HandleFunc("DELETE /api/v1/listings/{id}", s.handleDeleteListing)

	return mux
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// writeError maps service errors to HTTP statuses. Validation failures
// carry their per-field messages; anything unrecognized becomes an
// opaque 500 so storage details never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	var verr *listing.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid input", Fields: verr.Fields})
	case errors.Is(err, store.ErrListingNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "listing not found"})
	case errors.Is(err, store.ErrHostExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "email already registered"})
	case errors.Is(err, store.ErrInvalidCredentials), errors.Is(err, hosts.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// authHost resolves the bearer token to a host id, or writes a 401.
func (s *Server) authHost(w http.ResponseWriter, r *http.Request) (int64, bool) {
	token := parseBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		return 0, false
	}
	hostID, err := s.hosts.Verify(token)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
		return 0, false
	}
	return hostID, true
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

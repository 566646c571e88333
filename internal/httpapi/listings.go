package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"wheelhouse/internal/listing"
	"wheelhouse/shared/go/models"
)

type listingsResponse struct {
	Listings []models.Listing `json:"listings"`
	Page     *listing.Page    `json:"page,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	rows, page, err := s.listings.Search(r.Context(), queryParams(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listingsResponse{
		Listings: listing.ProjectAll(rows, s.media),
		Page:     &page,
	})
}

func (s *Server) handleSearchMap(w http.ResponseWriter, r *http.Request) {
	rows, err := s.listings.SearchInBounds(r.Context(), queryParams(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listingsResponse{
		Listings: listing.ProjectAll(rows, s.media),
	})
}

func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	row, err := s.listings.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listing.Project(row, s.media))
}

func (s *Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	s.createListing(w, r, s.listings.Create)
}

func (s *Server) handleHostCreateListing(w http.ResponseWriter, r *http.Request) {
	s.createListing(w, r, s.listings.HostCreate)
}

func (s *Server) createListing(w http.ResponseWriter, r *http.Request, create func(ctx context.Context, hostID int64, payload listing.Payload) (listing.Row, error)) {
	hostID, ok := s.authHost(w, r)
	if !ok {
		return
	}

	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	row, err := create(r.Context(), hostID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, listing.Project(row, s.media))
}

func (s *Server) handleUpdateListing(w http.ResponseWriter, r *http.Request) {
	hostID, ok := s.authHost(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	row, err := s.listings.Update(r.Context(), id, hostID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listing.Project(row, s.media))
}

func (s *Server) handlePublishListing(w http.ResponseWriter, r *http.Request) {
	hostID, ok := s.authHost(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	row, err := s.listings.Publish(r.Context(), id, hostID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listing.Project(row, s.media))
}

func (s *Server) handleDeleteListing(w http.ResponseWriter, r *http.Request) {
	hostID, ok := s.authHost(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.listings.Delete(r.Context(), id, hostID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// queryParams flattens the URL query to the first value per key.
func queryParams(r *http.Request) listing.Params {
	params := make(listing.Params)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid listing id"})
		return 0, false
	}
	return id, true
}

func decodePayload(w http.ResponseWriter, r *http.Request) (listing.Payload, bool) {
	var payload listing.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return nil, false
	}
	return payload, true
}

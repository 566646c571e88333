package main

import (
	"net/http"

	"wheelhouse/internal/app/hosts"
	"wheelhouse/internal/app/listings"
	"wheelhouse/internal/http/middleware"
	"wheelhouse/internal/httpapi"
	"wheelhouse/internal/store"
	sharedmw "wheelhouse/shared/go/middleware"
)

func newHTTPHandler(cfg Config, dataStore *store.Store) http.Handler {
	hostSvc := hosts.New(dataStore, []byte(cfg.JWTSecret))
	listingSvc := listings.New(dataStore)

	handler := httpapi.New(hostSvc, listingSvc, cfg.Media).Routes()

	handler = middleware.CORS(cfg.AllowedOrigins)(handler)
	handler = sharedmw.Recovery()(handler)
	handler = sharedmw.RequestLogging()(handler)

	return handler
}

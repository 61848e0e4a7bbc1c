package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	router.Get("/api/version", h.getServerVersion)
	router.Get("/api/node", h.getNodeInfo)
	router.Get("/api/keys", h.getPublicKeys)
	router.Handle("/metrics", h.metrics.Handler())

	// carrier routes
	router.Group(func(r chi.Router) {
		r.Post("/api/bundles", h.uploadBundle)
		r.Get("/api/bundles/{bundleID}", h.downloadBundle)
		r.Post("/api/inventory", h.inventory)
	})

	// JSON routes that may be compressed
	router.Group(func(r chi.Router) {
		r.Use(withGZip)
		r.Get("/api/peers/{peerID}/bundles", h.sendBundles)
		r.Post("/api/adus/{peerID}/{appID}", h.produceADU)
	})

	// operator routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth, withGZip)
		r.Get("/api/admin/routes", h.listRoutes)
		r.Put("/api/admin/routes", h.saveRoute)
		r.Delete("/api/admin/routes/{appID}", h.deleteRoute)
		r.Get("/api/admin/peers", h.listPeers)
		r.Get("/api/admin/peers/{peerID}/metadata", h.peerMetadata)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

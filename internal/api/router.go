package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pranto48/lifeos-backend/internal/api/handlers"
	mw "github.com/pranto48/lifeos-backend/internal/api/middleware"
)

type Dependencies struct {
	AuthHandler    *handlers.AuthHandler
	SetupHandler   *handlers.SetupHandler
	LicenseHandler *handlers.LicenseHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)

	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)

	r.Route("/api", func(api chi.Router) {
		api.Route("/setup", func(sr chi.Router) {
			sr.Post("/test-connection", dep.SetupHandler.TestConnection)
			sr.Get("/status", dep.SetupHandler.Status)
			sr.Post("/initialize", dep.SetupHandler.Initialize)
		})

		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", dep.AuthHandler.Register)
			ar.Post("/login", dep.AuthHandler.Login)
			ar.Get("/session", dep.AuthHandler.Session)
			ar.Post("/logout", dep.AuthHandler.Logout)
		})

		api.Route("/license", func(lr chi.Router) {
			lr.Post("/verify", dep.LicenseHandler.Verify)
			lr.Get("/status", dep.LicenseHandler.Status)
		})
	})

	return r
}

package router

import (
	"database/sql"
	"net/http"

	authhandler "coscribe/internal/auth"
	authrepo "coscribe/internal/auth/repository"
	authservice "coscribe/internal/auth/service"
	dochandler "coscribe/internal/document"
	docrepo "coscribe/internal/document/repository"
	docservice "coscribe/internal/document/service"
	"coscribe/middleware"
	"coscribe/pkg/token"
	"coscribe/socket"

	"github.com/go-chi/chi/v5"
)

func Setup(db *sql.DB, hub *socket.Hub, tokens *token.Issuer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.CORS)

	users := authrepo.NewUserRepository(db)
	authH := authhandler.NewAuthHandler(authservice.NewAuthService(users, tokens))

	docs := docrepo.NewDocumentRepository(db)
	docH := dochandler.NewDocumentHandler(docservice.NewDocumentService(docs, hub, users))

	// Account endpoints are the only unauthenticated surface.
	r.Post("/register", authH.Register)
	r.Post("/token", authH.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens))

		r.Get("/users", authH.ListUsers)

		r.Route("/documents", func(r chi.Router) {
			r.Post("/", docH.Create)
			r.Get("/", docH.List)
			r.Post("/share", docH.Share)
			r.Get("/{documentID}", docH.Get)
			r.Put("/{documentID}", docH.Update)
			r.Delete("/{documentID}", docH.Delete)
		})

		// Live channel: one document per connection, token in the query
		// string (checked by the Auth middleware above).
		r.Get("/ws/{documentID}", func(w http.ResponseWriter, r *http.Request) {
			socket.ServeWs(hub, w, r, chi.URLParam(r, "documentID"), middleware.UserID(r))
		})
	})

	return r
}

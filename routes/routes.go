package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/Dosada05/teamfinder/docs"
	"github.com/Dosada05/teamfinder/handlers"
	"github.com/Dosada05/teamfinder/middleware"
)

// idPattern ограничивает параметр пути целыми числами; всё остальное уходит в 404.
const idPattern = "/{id:[0-9]+}"

type Options struct {
	Logger         *zap.Logger
	Resolver       middleware.ActorResolver
	AllowedOrigins []string
	SwaggerEnabled bool
}

type Handlers struct {
	Health           *handlers.HealthHandler
	Auth             *handlers.AuthHandler
	Applications     *handlers.JoinableHandler
	Invitations      *handlers.JoinableHandler
	Memberships      *handlers.MembershipHandler
	EmailPreferences *handlers.EmailPreferencesHandler
	Uploads          *handlers.UploadHandler
	Regions          *handlers.CatalogHandler
	Positions        *handlers.CatalogHandler
	Interests        *handlers.CatalogHandler
	Languages        *handlers.CatalogHandler
}

func SetupRoutes(opts Options, h Handlers) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(chiMiddleware.StripSlashes)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.Authenticate(opts.Resolver))

	router.NotFound(handlers.NotFound)
	router.MethodNotAllowed(handlers.MethodNotAllowed)

	router.Get("/healthz", h.Health.Check)
	router.Post("/auth/login", h.Auth.Login)

	// Заявки и приглашения видны только авторизованным пользователям
	joinableRoutes(router, "/applications", h.Applications)
	joinableRoutes(router, "/invitations", h.Invitations)

	router.Route("/memberships", func(r chi.Router) {
		r.Get("/", h.Memberships.List)
		r.Get(idPattern, h.Memberships.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Put(idPattern, h.Memberships.Update)
			r.Patch(idPattern, h.Memberships.Update)
			r.Delete(idPattern, h.Memberships.Delete)
		})
	})

	router.Route("/email-preferences", func(r chi.Router) {
		r.Get("/", h.EmailPreferences.List)
		r.Get("/self", h.EmailPreferences.Self)
		r.Get(idPattern, h.EmailPreferences.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Put(idPattern, h.EmailPreferences.Update)
			r.Patch(idPattern, h.EmailPreferences.Update)
		})
	})

	// Справочники только для чтения
	catalogRoutes(router, "/regions", h.Regions)
	catalogRoutes(router, "/positions", h.Positions)
	catalogRoutes(router, "/interests", h.Interests)
	catalogRoutes(router, "/languages", h.Languages)

	router.With(middleware.RequireAuth).Get("/s3-sign", h.Uploads.SignTeamLogo)

	if opts.SwaggerEnabled {
		router.Get("/swagger/doc.json", handlers.SwaggerDoc(docs.SwaggerJSON))
		router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	return router
}

func joinableRoutes(router chi.Router, prefix string, h *handlers.JoinableHandler) {
	router.Route(prefix, func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/", h.Collection)
		r.Post("/", h.Collection)

		r.Get(idPattern, h.Item)
		r.Put(idPattern, h.Item)
		r.Patch(idPattern, h.Item)
	})
}

func catalogRoutes(router chi.Router, prefix string, h *handlers.CatalogHandler) {
	router.Route(prefix, func(r chi.Router) {
		r.Get("/", h.List)
		r.Get(idPattern, h.Get)
	})
}

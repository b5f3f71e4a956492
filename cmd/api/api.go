package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcacote/docs" //this is required to generate swagger docs
	"parcacote/internal/auth"
	"parcacote/internal/cache"
	"parcacote/internal/domain/storage"
	"parcacote/internal/geocode"
	"parcacote/internal/images"
	"parcacote/internal/mailer"
	"parcacote/internal/notifications"
	"parcacote/internal/ratelimiter"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         *storage.Container
	cache         *cache.PlaygroundCache
	logger        *zap.SugaredLogger
	cld           *cloudinary.Cloudinary
	mailer        mailer.Client
	authenticator auth.Authenticator
	push          notifications.PushSender
	geocoder      *geocode.Client
	preloader     *images.Preloader
	rateLimiter   ratelimiter.Limiter
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	mail        mailConfig
	frontendURL string
	auth        authConfig
	rateLimiter ratelimiter.Config
	adminEmail  string
	geocodeURL  string
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	refreshSecret   string
	secret          string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	iss             string
}

type basicConfig struct {
	user string
	pass string
}

type mailConfig struct {
	fromEmail string
	mailtrap  mailTrapConfig
}

type mailTrapConfig struct {
	apiKey string
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Signal through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// Public catalog of supported equipment types.
		r.Get("/equipments", app.listEquipmentsHandler)

		r.Get("/geocode", app.geocodeSearchHandler)
		r.Get("/geocode/reverse", app.geocodeReverseHandler)

		r.Route("/playgrounds", func(r chi.Router) {
			r.Get("/", app.listPlaygroundsHandler)
			r.Get("/{playgroundID}", app.getPlaygroundHandler)
			r.Get("/share/{code}", app.getPlaygroundByShareCodeHandler)
			r.Get("/{playgroundID}/comments", app.listCommentsHandler)
			r.Get("/{playgroundID}/comments/stats", app.commentStatsHandler)
			r.Post("/{playgroundID}/comments", app.createCommentHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Post("/", app.submitPlaygroundHandler)
				r.Patch("/{playgroundID}", app.updatePlaygroundHandler)
				r.Delete("/{playgroundID}", app.deletePlaygroundHandler)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/me", app.getCurrentUserHandler)
			r.Get("/me/submissions", app.listMySubmissionsHandler)
			r.Post("/logout", app.logoutHandler)
			r.Post("/push-token", app.savePushTokenHandler)
			r.Delete("/push-token", app.removePushTokenHandler)

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", app.listFavoritesHandler)
				r.Get("/{playgroundID}", app.favoriteStatusHandler)
				r.Put("/{playgroundID}", app.addFavoriteHandler)
				r.Delete("/{playgroundID}", app.removeFavoriteHandler)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Use(app.RequireAdmin)
			r.Get("/playgrounds", app.adminListPlaygroundsHandler)
			r.Post("/playgrounds/{playgroundID}/approve", app.adminApprovePlaygroundHandler)
			r.Post("/playgrounds/{playgroundID}/reject", app.adminRejectPlaygroundHandler)
			r.Patch("/playgrounds/{playgroundID}", app.adminUpdatePlaygroundHandler)
			r.Delete("/playgrounds/{playgroundID}", app.adminDeletePlaygroundHandler)
		})

		// Public routes
		r.Route("/authentication", func(r chi.Router) {
			r.Post("/user", app.registerUserHandler)
			r.Post("/token", app.createTokenHandler)
			r.Post("/refresh", app.refreshTokenHandler)
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}

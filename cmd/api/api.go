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

	"catalogadmin/docs" //this is required to generate swagger docs
	"catalogadmin/internal/auth"
	"catalogadmin/internal/catalogapi"
	"catalogadmin/internal/domain/products"
	"catalogadmin/internal/images"
	"catalogadmin/internal/ratelimiter"
	"catalogadmin/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	logger        *zap.SugaredLogger
	client        catalogapi.Client
	catalog       *products.Store
	images        catalogapi.ImageResolver
	thumbnails    images.Thumbnailer
	sessions      *session.Registry
	operator      *auth.Operator
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.cors.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// Public routes
		r.Route("/authentication", func(r chi.Router) {
			r.With(app.RateLimiterMiddleware).Post("/token", app.createTokenHandler)
			r.With(app.AuthTokenMiddleware).Post("/logout", app.logoutHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/", app.getCatalogHandler)
				r.With(app.RateLimiterMiddleware).Post("/refetch", app.refetchCatalogHandler)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", app.listProductsHandler)
				r.Route("/{productID}", func(r chi.Router) {
					r.Get("/", app.getProductHandler)
					r.Patch("/", app.updateProductHandler)
					r.Patch("/variants/{variantID}", app.updateVariantHandler)
				})
			})

			r.Route("/view", func(r chi.Router) {
				r.Get("/", app.getViewHandler)
				r.Post("/mount", app.mountViewHandler)
				r.Post("/search", app.searchViewHandler)
				r.Post("/page", app.pageViewHandler)
				r.Post("/language", app.languageViewHandler)
				r.Post("/select", app.selectProductHandler)
				r.Post("/back", app.backViewHandler)
				r.Post("/popstate", app.popStateHandler)
				r.Post("/frame", app.frameHandler)
			})

			r.Route("/uploads", func(r chi.Router) {
				r.Get("/", app.uploadStatusHandler)
				r.Post("/open", app.openUploadHandler)
				r.With(app.RateLimiterMiddleware).Post("/", app.submitUploadHandler)
				r.Delete("/", app.closeUploadHandler)
			})

			r.Get("/notifications", app.listNotificationsHandler)
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
		WriteTimeout: time.Second * 90,
		ReadTimeout:  time.Second * 30,
		IdleTimeout:  time.Minute,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go app.sessions.Run(ctx, 10*time.Minute)

	// Implementing graceful shutdown
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

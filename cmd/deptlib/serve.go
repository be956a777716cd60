package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	deptlibhttp "github.com/bobinette/deptlib/http"
	"github.com/bobinette/deptlib/jwt"
	"github.com/bobinette/deptlib/pdf"
	"github.com/bobinette/deptlib/services"
	"github.com/bobinette/deptlib/users"
)

func init() {
	RootCmd.AddCommand(&ServeCommand)
}

var ServeCommand = cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  "Start the web server exposing the catalog, the search and the reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := readKey(cfg.Auth.Key)
		if err != nil {
			return err
		}

		if err := openStores(); err != nil {
			return err
		}
		index, err := openIndex()
		if err != nil {
			return err
		}
		fallback, err := cfg.fallbackPolicy()
		if err != nil {
			return err
		}

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector())

		// Services
		encoder := jwt.NewEncodeDecoder(key, cfg.Auth.Lifetime.Duration)
		authService := services.NewAuthService(userRepository, authorRepository, encoder)
		reportService := services.NewReportService(
			workRepository,
			authorRepository,
			categoryRepository,
			journalRepository,
			&pdf.Renderer{FontFile: cfg.Report.Font, Logger: logger},
			logger,
		)
		reportService.Title = cfg.Report.Title
		reportService.Fallback = fallback

		works := services.NewWorkService(workRepository, authorRepository, index)

		// Routes
		guards := deptlibhttp.NewGuards(key, users.NewAuthenticator(userRepository, cfg.Auth.Admins))
		srv := deptlibhttp.NewGinServer(logger, cfg.HTTP.Origins)
		deptlibhttp.RegisterAuthEndpoints(srv, authService, guards)
		deptlibhttp.RegisterAuthorEndpoints(srv, services.NewAuthorService(authorRepository, works), guards)
		deptlibhttp.RegisterCategoryEndpoints(srv, services.NewCategoryService(categoryRepository), guards)
		deptlibhttp.RegisterJournalEndpoints(srv, services.NewJournalService(journalRepository), guards)
		deptlibhttp.RegisterWorkEndpoints(srv, works, guards)
		deptlibhttp.RegisterReportEndpoints(srv, services.NewInstrumentingReportService(reportService, registry), guards)
		srv.RegisterHandler("/metrics", "GET", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

		server := &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           srv,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errc := make(chan error, 1)
		go func() {
			logger.Infof("server started, listening on %s", cfg.HTTP.Address)
			errc <- server.ListenAndServe()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errc:
			return err
		case sig := <-stop:
			logger.Infof("received %v, shutting down", sig)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	},
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agrotrack/config"
	"agrotrack/database"
	"agrotrack/pkg/catalog"
	"agrotrack/router"

	// Field
	fieldCtrlImp "agrotrack/pkg/field/controllerImp"
	fieldRepoImp "agrotrack/pkg/field/repositoryImp"
	fieldSvcImp "agrotrack/pkg/field/serviceImp"

	// Culture
	cultureCtrlImp "agrotrack/pkg/culture/controllerImp"
	cultureRepoImp "agrotrack/pkg/culture/repositoryImp"
	cultureSvcImp "agrotrack/pkg/culture/serviceImp"

	// Harvest
	harvestCtrlImp "agrotrack/pkg/harvest/controllerImp"
	harvestRepoImp "agrotrack/pkg/harvest/repositoryImp"
	harvestSvcImp "agrotrack/pkg/harvest/serviceImp"

	// Health
	healthCtrlImp "agrotrack/pkg/health/controllerImp"

	"agrotrack/pkg/progress"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg.Log(logger)

	est, err := catalog.LoadFromFiles(cfg.CatalogCSV, cfg.CatalogXLSX)
	if err != nil {
		logger.Warn("crop catalog partially loaded", zap.Error(err))
	}
	logger.Info("crop catalog ready", zap.Int("crops", est.Size()))

	db, err := database.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		return err
	}

	e := newServer(cfg, db, est, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newServer wires repositories, services and controllers onto a fresh echo.
func newServer(cfg config.AppConfig, db *gorm.DB, est catalog.Estimator, log *zap.Logger) *echo.Echo {
	loc := cfg.Location()
	clock := func() time.Time { return time.Now().In(loc) }

	var calc progress.Calculator = progress.Direct()
	if cfg.ProgressCacheSize > 0 {
		calc = progress.NewCache(cfg.ProgressCacheSize, cfg.ProgressCacheTTL)
	}

	fCtrl := fieldCtrlImp.New(fieldSvcImp.NewFieldService(fieldRepoImp.New(db), log))

	cSvc := cultureSvcImp.New(cultureRepoImp.New(db), calc, est, log, clock)
	cCtrl := cultureCtrlImp.New(cSvc, loc)

	hSvc := harvestSvcImp.New(harvestRepoImp.New(db), cSvc, log)
	hCtrl := harvestCtrlImp.New(hSvc)

	healthCtrl := healthCtrlImp.NewHealthCtrl(db, est)

	return router.New(
		echo.New(),
		router.Options{Logger: log, MetricsEnabled: cfg.MetricsEnabled},
		fCtrl,
		cCtrl,
		hCtrl,
		healthCtrl,
	)
}

package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"agrotrack/pkg/catalog"
)

const pingTimeout = 800 * time.Millisecond

type HealthCtrl struct {
	db      *gorm.DB
	catalog catalog.Estimator
	started time.Time
}

func NewHealthCtrl(db *gorm.DB, est catalog.Estimator) *HealthCtrl {
	return &HealthCtrl{db: db, catalog: est, started: time.Now()}
}

type sub struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
	defer cancel()

	db := h.pingDB(ctx)
	cat := sub{OK: h.catalog != nil && h.catalog.Size() > 0}
	if !cat.OK {
		cat.Err = "crop catalog is empty"
	}

	allOK := db.OK
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}
	catalogSize := 0
	if h.catalog != nil {
		catalogSize = h.catalog.Size()
	}

	resp := map[string]any{
		"status":       map[string]any{"ok": allOK},
		"uptime_sec":   int(time.Since(h.started).Seconds()),
		"catalog_size": catalogSize,
		"checks": map[string]any{
			"database": db,
			"catalog":  cat,
		},
		"time": time.Now().Format(time.RFC3339),
	}
	return c.JSON(status, resp)
}

func (h *HealthCtrl) pingDB(ctx context.Context) sub {
	if h.db == nil {
		return sub{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return sub{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return sub{Err: "ping: " + err.Error()}
	}
	return sub{OK: true}
}

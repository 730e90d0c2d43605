package controllerImp

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"dispatch/pkg/health/controller"
)

// Timeout bounds the whole health probe.
const Timeout = 800 * time.Millisecond

var appStart = time.Now()

// Check is an extra dependency probe reported next to the database.
type Check func(ctx context.Context) error

type healthCtrl struct {
	db     *gorm.DB
	checks map[string]Check
}

func NewHealthCtrl(db *gorm.DB, checks map[string]Check) controller.HealthController {
	return &healthCtrl{db: db, checks: checks}
}

type sub struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *healthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), Timeout)
	defer cancel()

	results := map[string]sub{"database": h.pingDB(ctx)}
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		results[name] = race(ctx, h.checks[name])
	}

	allOK := true
	for _, r := range results {
		allOK = allOK && r.OK
	}
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}

	resp := map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     results,
		"time":       time.Now().Format(time.RFC3339),
	}
	return c.JSON(status, resp)
}

func (h *healthCtrl) pingDB(ctx context.Context) sub {
	if h.db == nil {
		return sub{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return sub{Err: "db.DB(): " + err.Error()}
	}
	return race(ctx, sqlDB.PingContext)
}

// race runs fn against the probe deadline; a probe that ignores ctx still
// loses once the timer fires.
func race(ctx context.Context, fn Check) sub {
	done := make(chan error, 1)
	go func() { done <- fn(ctx) }()
	select {
	case err := <-done:
		if err != nil {
			return sub{Err: err.Error()}
		}
		return sub{OK: true}
	case <-ctx.Done():
		return sub{Err: "timeout"}
	}
}

package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"dispatch/entities"
	"dispatch/pkg/export"
	"dispatch/pkg/export/controller"
	taskCtrl "dispatch/pkg/task/controllerImp"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TaskLister is satisfied by the task service.
type TaskLister interface {
	List(ctx context.Context, from, to *time.Time) ([]entities.Task, error)
}

type httpCtrl struct {
	tasks TaskLister
	loc   *time.Location
	now   func() time.Time
	log   *zap.Logger
}

func New(tasks TaskLister, loc *time.Location, log *zap.Logger) controller.ExportController {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &httpCtrl{tasks: tasks, loc: loc, now: time.Now, log: log}
}

func (h *httpCtrl) load(c echo.Context) ([]entities.Task, int, error) {
	from, to, err := taskCtrl.Range(c, h.loc)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	list, err := h.tasks.List(c.Request().Context(), from, to)
	if err != nil {
		h.log.Error("export list tasks", zap.Error(err))
		return nil, http.StatusInternalServerError, err
	}
	return list, http.StatusOK, nil
}

func (h *httpCtrl) Spreadsheet(c echo.Context) error {
	list, status, err := h.load(c)
	if err != nil {
		return c.JSON(status, echo.Map{"error": message(status, err)})
	}
	b, err := export.WeeklySheet(list, h.loc)
	if err != nil {
		h.log.Error("build xlsx", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "エクスポートに失敗しました"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="schedule.xlsx"`)
	return c.Blob(http.StatusOK, mimeXLSX, b)
}

func (h *httpCtrl) Calendar(c echo.Context) error {
	list, status, err := h.load(c)
	if err != nil {
		return c.JSON(status, echo.Map{"error": message(status, err)})
	}
	b, err := export.Calendar(list, h.now())
	if err != nil {
		h.log.Error("build ics", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "エクスポートに失敗しました"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="schedule.ics"`)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", b)
}

func message(status int, err error) string {
	if status == http.StatusBadRequest {
		return err.Error()
	}
	return "タスクの取得に失敗しました"
}

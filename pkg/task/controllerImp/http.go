package controllerImp

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"dispatch/pkg/middleware"
	"dispatch/pkg/schedule"
	"dispatch/pkg/task/controller"
	tsvc "dispatch/pkg/task/service"
)

type httpCtrl struct {
	s   tsvc.Service
	loc *time.Location
	log *zap.Logger
}

func New(s tsvc.Service, loc *time.Location, log *zap.Logger) controller.TaskController {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &httpCtrl{s: s, loc: loc, log: log}
}

func (h *httpCtrl) List(c echo.Context) error {
	from, to, err := Range(c, h.loc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	list, err := h.s.List(c.Request().Context(), from, to)
	if err != nil {
		h.log.Error("list tasks", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "タスクの取得に失敗しました"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": list})
}

func (h *httpCtrl) Create(c echo.Context) error {
	var in tsvc.TaskInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	if err := c.Validate(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	out, err := h.s.Create(c.Request().Context(), actor(c), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *httpCtrl) Update(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var in tsvc.TaskInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	if err := c.Validate(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	out, err := h.s.Update(c.Request().Context(), actor(c), uint(id), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *httpCtrl) Delete(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.s.Delete(c.Request().Context(), actor(c), uint(id)); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *httpCtrl) Stats(c echo.Context) error {
	from, to, err := Range(c, h.loc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	out, err := h.s.Stats(c.Request().Context(), from, to)
	if err != nil {
		h.log.Error("task stats", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "タスクの取得に失敗しました"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

func (h *httpCtrl) fail(c echo.Context, err error) error {
	switch {
	case schedule.IsValidation(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, schedule.ErrTimeConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, tsvc.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, tsvc.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, schedule.ErrConflictCheckFetch):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": err.Error()})
	}
	h.log.Error("task write", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "予定の保存に失敗しました"})
}

func actor(c echo.Context) tsvc.Actor {
	d := middleware.DecisionFrom(c)
	return tsvc.Actor{UserID: d.UserID, FullName: d.FullName, Admin: d.Admin}
}

// Range reads optional from/to (YYYY-MM-DD) query params; to is inclusive.
func Range(c echo.Context, loc *time.Location) (*time.Time, *time.Time, error) {
	var fromPtr, toPtr *time.Time
	if v := c.QueryParam("from"); v != "" {
		t, err := schedule.ParseDate(v, loc)
		if err != nil {
			return nil, nil, err
		}
		fromPtr = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := schedule.ParseDate(v, loc)
		if err != nil {
			return nil, nil, err
		}
		t = t.AddDate(0, 0, 1)
		toPtr = &t
	}
	return fromPtr, toPtr, nil
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

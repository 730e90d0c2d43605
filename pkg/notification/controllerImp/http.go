package controllerImp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"dispatch/pkg/notification/controller"
	nsvc "dispatch/pkg/notification/service"
)

type httpCtrl struct {
	s   nsvc.Service
	log *zap.Logger
}

func New(s nsvc.Service, log *zap.Logger) controller.NotificationController {
	if log == nil {
		log = zap.NewNop()
	}
	return &httpCtrl{s: s, log: log}
}

func (h *httpCtrl) List(c echo.Context) error {
	limit := nsvc.DefaultLimit
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}
	out, err := h.s.List(c.Request().Context(), limit)
	if err != nil {
		h.log.Error("list notifications", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "通知の取得に失敗しました"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// Count answers how many events happened at or after ?since (RFC 3339);
// without it, the last 24 hours.
func (h *httpCtrl) Count(c echo.Context) error {
	since := time.Now().Add(-nsvc.UnreadWindow)
	if v := c.QueryParam("since"); v != "" {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid since"})
		}
		since = t
	}
	n, err := h.s.CountSince(c.Request().Context(), since)
	if err != nil {
		h.log.Error("count notifications", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "通知の取得に失敗しました"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n, "since": since.UTC().Format(time.RFC3339Nano)})
}

func (h *httpCtrl) Stats(c echo.Context) error {
	out, err := h.s.Stats(c.Request().Context())
	if err != nil {
		h.log.Error("notification stats", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "通知の取得に失敗しました"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

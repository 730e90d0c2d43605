package controllerImp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"dispatch/pkg/middleware"
	"dispatch/pkg/workrequest/controller"
	svc "dispatch/pkg/workrequest/service"
)

type httpCtrl struct {
	s   svc.Service
	log *zap.Logger
}

func New(s svc.Service, log *zap.Logger) controller.WorkRequestController {
	if log == nil {
		log = zap.NewNop()
	}
	return &httpCtrl{s: s, log: log}
}

func (h *httpCtrl) Create(c echo.Context) error {
	var in svc.NewRequest
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	if err := c.Validate(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	out, err := h.s.Create(c.Request().Context(), middleware.DecisionFrom(c).UserID, in)
	if errors.Is(err, svc.ErrTaskNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	if err != nil {
		h.log.Error("create work request", zap.Uint("task_id", in.TaskID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *httpCtrl) Get(c echo.Context) error {
	raw := c.QueryParam("task_id")
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "task_id is required"})
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task_id"})
	}
	out, err := h.s.LatestForTask(c.Request().Context(), uint(id))
	if errors.Is(err, svc.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Work request not found"})
	}
	if err != nil {
		h.log.Error("fetch work request", zap.Uint64("task_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *httpCtrl) GeneratePDF(c echo.Context) error {
	var body struct {
		WorkRequestID uint `json:"work_request_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	if body.WorkRequestID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "work_request_id is required"})
	}
	pdf, err := h.s.RenderPDF(c.Request().Context(), body.WorkRequestID)
	if errors.Is(err, svc.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Work request not found"})
	}
	if err != nil {
		h.log.Error("render work request", zap.Uint("id", body.WorkRequestID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="work-request-%d.pdf"`, body.WorkRequestID))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

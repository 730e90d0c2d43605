package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"dispatch/pkg/identity"
	"dispatch/pkg/middleware"
	"dispatch/pkg/user/controller"
	"dispatch/pkg/user/service"
)

type userCtrl struct {
	s   service.UserService
	log *zap.Logger
}

func New(s service.UserService, log *zap.Logger) controller.UserController {
	if log == nil {
		log = zap.NewNop()
	}
	return &userCtrl{s: s, log: log}
}

func (h *userCtrl) List(c echo.Context) error {
	out, err := h.s.List(c.Request().Context())
	if err != nil {
		h.log.Error("list users", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "ユーザー一覧の取得に失敗しました"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

func (h *userCtrl) Create(c echo.Context) error {
	var in service.NewUser
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	if err := c.Validate(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	out, err := h.s.Create(c.Request().Context(), in)
	if err != nil {
		return c.JSON(createStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

func (h *userCtrl) Update(c echo.Context) error {
	var body struct {
		UserID  string            `json:"userId"`
		Updates service.UserPatch `json:"updates"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	if body.UserID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "ユーザーIDが必要です"})
	}
	out, err := h.s.Update(c.Request().Context(), body.UserID, body.Updates)
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidRole), errors.Is(err, service.ErrNoUpdates):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case err != nil:
		h.log.Error("update user", zap.String("user_id", body.UserID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "ユーザー更新に失敗しました"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

func (h *userCtrl) Delete(c echo.Context) error {
	id := c.QueryParam("userId")
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "ユーザーIDが必要です"})
	}
	actor := middleware.DecisionFrom(c).UserID
	if err := h.s.Delete(c.Request().Context(), actor, id); err != nil {
		if errors.Is(err, service.ErrSelfDelete) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Profile returns the caller's own row.
func (h *userCtrl) Profile(c echo.Context) error {
	d := middleware.DecisionFrom(c)
	u, err := h.s.Get(c.Request().Context(), d.UserID)
	if errors.Is(err, service.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	if err != nil {
		h.log.Error("profile fetch", zap.String("user_id", d.UserID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "プロフィールの取得に失敗しました"})
	}
	return c.JSON(http.StatusOK, u)
}

func createStatus(err error) int {
	var apiErr *identity.APIError
	switch {
	case errors.Is(err, service.ErrInvalidRole):
		return http.StatusBadRequest
	case errors.Is(err, identity.ErrEmailTaken):
		return http.StatusConflict
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

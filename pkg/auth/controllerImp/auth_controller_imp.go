package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"dispatch/pkg/auth/controller"
	"dispatch/pkg/identity"
	"dispatch/pkg/middleware"
)

type authCtrl struct {
	idp identity.Provider
	log *zap.Logger
}

func NewAuthController(idp identity.Provider, log *zap.Logger) controller.AuthController {
	if log == nil {
		log = zap.NewNop()
	}
	return &authCtrl{idp: idp, log: log}
}

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *authCtrl) Login(c echo.Context) error {
	var in loginBody
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	if err := c.Validate(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "メールアドレスとパスワードを入力してください"})
	}
	sess, err := h.idp.SignIn(c.Request().Context(), in.Email, in.Password)
	var apiErr *identity.APIError
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "メールアドレスまたはパスワードが正しくありません"})
	case errors.As(err, &apiErr) && apiErr.Status < 500:
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": apiErr.Message})
	case err != nil:
		h.log.Error("sign in", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "ログインに失敗しました"})
	}
	return c.JSON(http.StatusOK, sess)
}

// WhoAmI echoes what the gate decided for this request.
func (h *authCtrl) WhoAmI(c echo.Context) error {
	d := middleware.DecisionFrom(c)
	return c.JSON(http.StatusOK, echo.Map{
		"uid":           d.UserID,
		"full_name":     d.FullName,
		"authenticated": d.Authenticated,
		"admin":         d.Admin,
	})
}

package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// /cart/{identity} のHTTP
type RemoteCartHandler struct {
	uc *usecase.RemoteCartUsecase
}

// DI
func NewRemoteCartHandler(uc *usecase.RemoteCartUsecase) *RemoteCartHandler {
	return &RemoteCartHandler{uc: uc}
}

type ReplaceCartRequest struct {
	Items []model.CartItem `json:"items"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// /cart/:identity を登録
func (h *RemoteCartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/cart")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("/:identity", h.getCart)
	g.POST("/:identity", h.replaceCart)
	g.DELETE("/:identity", h.deleteCart)
}

// tokenのsubとpathのidentityが一致しているか確認する。
func identityFromPath(c echo.Context) (string, bool) {
	identity := c.Param("identity")
	sub, _ := c.Get(middleware.CtxIdentityKey).(string)
	if identity == "" || sub == "" || identity != sub {
		return "", false
	}
	return identity, true
}

func (h *RemoteCartHandler) getCart(c echo.Context) error {
	identity, ok := identityFromPath(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), identity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *RemoteCartHandler) replaceCart(c echo.Context) error {
	identity, ok := identityFromPath(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}

	var req ReplaceCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.ReplaceCart(c.Request().Context(), identity, usecase.ReplaceCartInput{
		Items: req.Items,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *RemoteCartHandler) deleteCart(c echo.Context) error {
	identity, ok := identityFromPath(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}

	if err := h.uc.DeleteCart(c.Request().Context(), identity); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

package handler

import (
	"net/http"

	"schoolcash/internal/apierror"
	"schoolcash/internal/dto"
	"schoolcash/internal/middleware"
	"schoolcash/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	admins service.AdminService
}

func NewAdminHandler(admins service.AdminService) *AdminHandler {
	return &AdminHandler{admins: admins}
}

// List godoc
// @Summary      List admin identities
// @Tags         admins
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} dto.AdminResponse
// @Router       /v1/admins [get]
func (h *AdminHandler) List(c *gin.Context) {
	resp, err := h.admins.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to load admins"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Add godoc
// @Summary      Grant admin privileges to an email
// @Tags         admins
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.AddAdminRequest true "Email to authorize"
// @Success      201 {object} dto.AdminResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/admins [post]
func (h *AdminHandler) Add(c *gin.Context) {
	var req dto.AddAdminRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.admins.Add(c.Request.Context(), claims.Email, req)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Remove godoc
// @Summary      Revoke admin privileges
// @Tags         admins
// @Security     BearerAuth
// @Param        email path string true "Email to revoke"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/admins/{email} [delete]
func (h *AdminHandler) Remove(c *gin.Context) {
	if err := h.admins.Remove(c.Request.Context(), c.Param("email")); err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"schoolcash/internal/service"

	"github.com/gin-gonic/gin"
)

type RegisterHandler struct {
	register service.RegisterService
}

func NewRegisterHandler(register service.RegisterService) *RegisterHandler {
	return &RegisterHandler{register: register}
}

// Snapshot godoc
// @Summary      Current state of today's cash register
// @Description  Returns the register document, today's transactions and the
// @Description  derived totals. While the register is still bootstrapping the
// @Description  register field is null and is_loading is true.
// @Tags         register
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} dto.RegisterSnapshot
// @Router       /v1/register [get]
func (h *RegisterHandler) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.register.Snapshot(c.Request.Context()))
}

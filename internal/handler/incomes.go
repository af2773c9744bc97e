package handler

import (
	"net/http"

	"schoolcash/internal/apierror"
	"schoolcash/internal/dto"
	"schoolcash/internal/middleware"
	"schoolcash/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type IncomeHandler struct {
	incomes service.IncomeService
}

func NewIncomeHandler(incomes service.IncomeService) *IncomeHandler {
	return &IncomeHandler{incomes: incomes}
}

// Create godoc
// @Summary      Record a fee collection
// @Tags         incomes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateIncomeRequest true "Fee collection"
// @Success      201 {object} dto.IncomeResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/incomes [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	var req dto.CreateIncomeRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	collectedBy, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid token subject"))
		return
	}

	resp, err := h.incomes.Create(c.Request.Context(), collectedBy, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List fee collections for a day
// @Tags         incomes
// @Security     BearerAuth
// @Produce      json
// @Param        date query string false "YYYY-MM-DD, defaults to today"
// @Success      200 {array} dto.IncomeResponse
// @Router       /v1/incomes [get]
func (h *IncomeHandler) List(c *gin.Context) {
	resp, err := h.incomes.ListByDate(c.Request.Context(), c.Query("date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete a fee collection (admin only)
// @Tags         incomes
// @Security     BearerAuth
// @Param        id path string true "Income id"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/incomes/{id} [delete]
func (h *IncomeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid income id"))
		return
	}
	if err := h.incomes.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

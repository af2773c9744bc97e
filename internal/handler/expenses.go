package handler

import (
	"net/http"

	"schoolcash/internal/apierror"
	"schoolcash/internal/dto"
	"schoolcash/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExpenseHandler struct {
	expenses service.ExpenseService
}

func NewExpenseHandler(expenses service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// Create godoc
// @Summary      Record an expense
// @Tags         expenses
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateExpenseRequest true "Expense"
// @Success      201 {object} dto.ExpenseResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.expenses.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List expenses for a day
// @Tags         expenses
// @Security     BearerAuth
// @Produce      json
// @Param        date query string false "YYYY-MM-DD, defaults to today"
// @Success      200 {array} dto.ExpenseResponse
// @Router       /v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	resp, err := h.expenses.ListByDate(c.Request.Context(), c.Query("date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete an expense (admin only)
// @Tags         expenses
// @Security     BearerAuth
// @Param        id path string true "Expense id"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid expense id"))
		return
	}
	if err := h.expenses.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

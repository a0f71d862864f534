package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/recipehub/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// respondServiceError 将 service 层的哨兵错误映射为对应的 HTTP 状态码
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnitNotFound),
		errors.Is(err, service.ErrIngredientNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrRecipeEntryNotFound),
		errors.Is(err, service.ErrSupplierNotFound),
		errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrProductExists),
		errors.Is(err, service.ErrRecipeEntryExists),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrSupplierExists):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrWrongPassword):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrProductInvalid),
		errors.Is(err, service.ErrIngredientInvalid),
		errors.Is(err, service.ErrRecipeAmountInvalid),
		errors.Is(err, service.ErrSupplyInvalid),
		errors.Is(err, service.ErrUserInvalid):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}

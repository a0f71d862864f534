package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addRecipeEntryRequest struct {
	Ingredient string  `json:"ingredient" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
	Unit       string  `json:"unit" binding:"required"`
}

// AddRecipeEntry 向产品配方中添加一种食材
func (a *API) AddRecipeEntry(c *gin.Context) {
	id, ok := a.requireOwnProduct(c)
	if !ok {
		return
	}

	var req addRecipeEntryRequest
	if !bindJSON(c, &req, "invalid recipe payload") {
		return
	}

	unitID, err := a.units.ResolveID(req.Unit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := a.recipes.AddEntry(id, req.Ingredient, req.Amount, unitID); err != nil {
		respondServiceError(c, err)
		return
	}

	entries, err := a.recipes.ListEntries(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": entries})
}

// RemoveRecipeEntry 从产品配方中移除一种食材
func (a *API) RemoveRecipeEntry(c *gin.Context) {
	id, ok := a.requireOwnProduct(c)
	if !ok {
		return
	}

	ingredientID, err := parseUintParam(c, "ingredientID")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.recipes.RemoveEntry(id, ingredientID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe entry removed"})
}

// ListUnits 返回全部单位的展示字符串
func (a *API) ListUnits(c *gin.Context) {
	displays, err := a.units.ListDisplayStrings()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": displays})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recipehub/internal/service"
)

type registerSupplierRequest struct {
	Name string `json:"name" binding:"required"`
}

type addSupplyRequest struct {
	IngredientID uint    `json:"ingredient_id" binding:"required"`
	Unit         string  `json:"unit" binding:"required"`
	Amount       float64 `json:"amount" binding:"required"`
	Price        float64 `json:"price"`
}

// RegisterSupplier 将当前用户登记为供应商
func (a *API) RegisterSupplier(c *gin.Context) {
	var req registerSupplierRequest
	if !bindJSON(c, &req, "invalid supplier payload") {
		return
	}

	supplier, err := a.supplies.RegisterSupplier(currentUserID(c), req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": supplier.ID, "name": supplier.Name})
}

// AddSupply 以当前用户的供应商身份登记一条食材报价
func (a *API) AddSupply(c *gin.Context) {
	var req addSupplyRequest
	if !bindJSON(c, &req, "invalid supply payload") {
		return
	}

	unitID, err := a.units.ResolveID(req.Unit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	supply, err := a.supplies.AddSupply(currentUserID(c), service.SupplyInput{
		IngredientID: req.IngredientID,
		UnitID:       unitID,
		Amount:       req.Amount,
		Price:        req.Price,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": supply.ID})
}

// ListSupplies 返回某食材的全部报价
func (a *API) ListSupplies(c *gin.Context) {
	ingredientID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := a.ingredients.Name(ingredientID); err != nil {
		respondServiceError(c, err)
		return
	}

	supplies, err := a.supplies.ListForIngredient(ingredientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"supplies": supplies})
}

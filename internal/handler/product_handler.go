package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/recipehub/internal/service"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

type createProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Amount      int    `json:"amount" binding:"required"`
	Unit        string `json:"unit" binding:"required"`
	Public      bool   `json:"public"`
	Description string `json:"description"`
}

// ShowPublicProducts 返回随机排序的公开产品列表
func (a *API) ShowPublicProducts(c *gin.Context) {
	products, err := a.products.ListAllPublic()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// ListOwnProducts 返回当前用户的产品，按名称排序
func (a *API) ListOwnProducts(c *gin.Context) {
	products, err := a.products.ListForOwner(currentUserID(c), false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// CreateProduct 创建产品，单位可用名称或符号指定
func (a *API) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if !bindJSON(c, &req, "invalid product payload") {
		return
	}

	unitID, err := a.units.ResolveID(req.Unit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	product, err := a.products.Create(currentUserID(c), service.ProductInput{
		Name:        req.Name,
		Amount:      req.Amount,
		UnitID:      unitID,
		Public:      req.Public,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": product.ID, "name": product.Name})
}

// GetProduct returns the full product view: metadata, recipe entries, the
// rendered description and the supply-based cost estimate. Private
// products are only visible to their owner.
func (a *API) GetProduct(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := a.products.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !detail.Public && detail.UserID != currentUserID(c) {
		respondError(c, http.StatusNotFound, service.ErrProductNotFound.Error())
		return
	}

	recipe, err := a.recipes.ListEntries(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	cost, err := a.supplies.ProductCost(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":          detail,
		"description_html": renderMarkdown(detail.Description),
		"recipe":           recipe,
		"cost":             gin.H{"total": cost.Total, "missing": cost.Missing},
	})
}

// DeleteProduct 删除当前用户的产品及其全部配方条目
func (a *API) DeleteProduct(c *gin.Context) {
	id, ok := a.requireOwnProduct(c)
	if !ok {
		return
	}

	if err := a.products.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

// ShareProduct 切换产品可见性
func (a *API) ShareProduct(c *gin.Context) {
	id, ok := a.requireOwnProduct(c)
	if !ok {
		return
	}

	public, err := a.products.ToggleVisibility(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "public": public})
}

// requireOwnProduct 解析 :id 并确认产品属于当前用户
func (a *API) requireOwnProduct(c *gin.Context) (uint, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return 0, false
	}

	owner, err := a.products.Owner(id)
	if err != nil {
		respondServiceError(c, err)
		return 0, false
	}
	if owner != currentUserID(c) {
		respondError(c, http.StatusForbidden, "not your product")
		return 0, false
	}
	return id, true
}

func renderMarkdown(source string) string {
	if source == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		return ""
	}
	return sanitizer.Sanitize(buf.String())
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type changeUsernameRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changeEmailRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type changeFullNameRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changeBirthdayRequest struct {
	Birthday string `json:"birthday" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ShowProfile 返回用户公开资料及其公开产品（按名称排序）
func (a *API) ShowProfile(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := a.users.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	products, err := a.products.ListForOwner(id, true)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     gin.H{"id": user.ID, "username": user.Username},
		"products": products,
	})
}

// ChangeUsername 更换当前用户的用户名
func (a *API) ChangeUsername(c *gin.Context) {
	var req changeUsernameRequest
	if !bindJSON(c, &req, "invalid username payload") {
		return
	}
	if err := a.users.ChangeUsername(currentUserID(c), req.Username, req.Password); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "username changed"})
}

// ChangeEmail 更换当前用户的邮箱
func (a *API) ChangeEmail(c *gin.Context) {
	var req changeEmailRequest
	if !bindJSON(c, &req, "invalid email payload") {
		return
	}
	if err := a.users.ChangeEmail(currentUserID(c), req.Email, req.Password); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email changed"})
}

// ChangePassword 更换当前用户的密码
func (a *API) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if !bindJSON(c, &req, "invalid password payload") {
		return
	}
	if err := a.users.ChangePassword(currentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

// ChangeFullName 更换当前用户的姓名
func (a *API) ChangeFullName(c *gin.Context) {
	var req changeFullNameRequest
	if !bindJSON(c, &req, "invalid full name payload") {
		return
	}
	if err := a.users.ChangeFullName(currentUserID(c), req.FullName, req.Password); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "name changed"})
}

// ChangeBirthday 更换当前用户的出生日期
func (a *API) ChangeBirthday(c *gin.Context) {
	var req changeBirthdayRequest
	if !bindJSON(c, &req, "invalid birthday payload") {
		return
	}

	birthday, err := time.Parse("2006-01-02", req.Birthday)
	if err != nil {
		respondError(c, http.StatusBadRequest, "birthday must be YYYY-MM-DD")
		return
	}

	if err := a.users.ChangeBirthday(currentUserID(c), birthday, req.Password); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "birthday changed"})
}

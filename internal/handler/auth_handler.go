package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v4"
	"github.com/recipehub/internal/service"
)

const userIDContextKey = "__user_id"

type registerRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	FullName    string `json:"full_name" binding:"required"`
	DateOfBirth string `json:"date_of_birth"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// tokenClaims 定义 Bearer 令牌的负载
type tokenClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// Register 创建新账号
func (a *API) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req, "invalid register payload") {
		return
	}

	input := service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	}
	if req.DateOfBirth != "" {
		birthday, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			respondError(c, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
			return
		}
		input.DateOfBirth = &birthday
	}

	user, err := a.users.Register(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "username": user.Username})
}

// Login 处理会话登录
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, "invalid login payload") {
		return
	}

	user, err := a.users.Authenticate(req.Email, req.Password)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "wrong email or password")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
}

// Logout 清除会话
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// IssueToken exchanges email/password for a signed bearer token, used by
// non-browser clients instead of the cookie session.
func (a *API) IssueToken(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, "invalid token payload") {
		return
	}

	user, err := a.users.Authenticate(req.Email, req.Password)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "wrong email or password")
		return
	}

	claims := tokenClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "recipehub",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.jwtSecret)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to sign token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed})
}

// AuthRequired 认证中间件：接受 Cookie 会话或 Bearer 令牌
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if userID, ok := session.Get("user_id").(uint); ok && userID != 0 {
			c.Set(userIDContextKey, userID)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := a.parseToken(tokenString)
			if err == nil && claims.UserID != 0 {
				c.Set(userIDContextKey, claims.UserID)
				c.Next()
				return
			}
		}

		respondError(c, http.StatusUnauthorized, "authentication required")
		c.Abort()
	}
}

func (a *API) parseToken(tokenString string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// currentUserID 返回认证中间件写入的用户 ID，0 表示未认证
func currentUserID(c *gin.Context) uint {
	if value, exists := c.Get(userIDContextKey); exists {
		if id, ok := value.(uint); ok {
			return id
		}
	}

	if _, exists := c.Get(sessions.DefaultKey); exists {
		if id, ok := sessions.Default(c).Get("user_id").(uint); ok {
			return id
		}
	}
	return 0
}

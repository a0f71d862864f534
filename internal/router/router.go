package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/recipehub/internal/config"
	"github.com/recipehub/internal/handler"
	"gorm.io/gorm"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(db *gorm.DB, cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("recipehub_session", store))

	// 静态文件服务（产品图片）
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	api := handler.NewAPI(db, cfg.UploadDir, cfg.UploadURLPath, []byte(cfg.JWTSecret))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// 公共路由
	r.POST("/register", api.Register)
	r.POST("/login", api.Login)
	r.POST("/logout", api.Logout)
	r.POST("/api/token", api.IssueToken)
	r.GET("/", api.ShowPublicProducts)
	r.GET("/units", api.ListUnits)
	r.GET("/products/:id", api.GetProduct)
	r.GET("/profiles/:id", api.ShowProfile)

	// 需要认证的路由
	auth := r.Group("")
	auth.Use(api.AuthRequired())
	{
		auth.GET("/products", api.ListOwnProducts)
		auth.POST("/products", api.CreateProduct)
		auth.DELETE("/products/:id", api.DeleteProduct)
		auth.POST("/products/:id/share", api.ShareProduct)
		auth.POST("/products/:id/recipe", api.AddRecipeEntry)
		auth.DELETE("/products/:id/recipe/:ingredientID", api.RemoveRecipeEntry)
		auth.POST("/products/:id/photo", api.UploadProductPhoto)

		profile := auth.Group("/profile")
		{
			profile.PUT("/username", api.ChangeUsername)
			profile.PUT("/email", api.ChangeEmail)
			profile.PUT("/password", api.ChangePassword)
			profile.PUT("/name", api.ChangeFullName)
			profile.PUT("/birthday", api.ChangeBirthday)
		}

		auth.POST("/suppliers", api.RegisterSupplier)
		auth.POST("/supplies", api.AddSupply)
		auth.GET("/ingredients/:id/supplies", api.ListSupplies)
	}

	return r
}

package router

import (
	"github.com/damirpristav/dogs-app-backend/internal/config"
	"github.com/damirpristav/dogs-app-backend/internal/handler"
	"github.com/damirpristav/dogs-app-backend/internal/mailer"
	"github.com/damirpristav/dogs-app-backend/internal/middleware"
	"github.com/damirpristav/dogs-app-backend/internal/models"
	"github.com/damirpristav/dogs-app-backend/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the API route table.
func SetupRouter(cfg *config.Config, db *gorm.DB, m mailer.Mailer) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	authService := service.NewAuthService(db, m, cfg)
	adoptionService := service.NewAdoptionService(db, m)
	notificationService := service.NewNotificationService(db)

	authHandler := handler.NewAuthHandler(authService, cfg.JWT)
	adoptionHandler := handler.NewAdoptionHandler(adoptionService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	animalHandler := handler.NewAnimalHandler(db)
	userHandler := handler.NewUserHandler(db)

	protect := middleware.Protect(authService)
	adminOnly := middleware.RestrictTo(models.RoleAdmin)

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/activateAccount/:token", authHandler.ActivateAccount)
	auth.POST("/forgotPassword", authHandler.ForgotPassword)
	auth.PUT("/resetPassword/:token", authHandler.ResetPassword)
	auth.GET("/logout", protect, authHandler.Logout)
	auth.GET("/me", protect, authHandler.Me)
	auth.GET("/checkToken", protect, authHandler.CheckToken)
	auth.DELETE("/deleteMe", protect, authHandler.DeleteMe)
	auth.POST("/resendActivationToken", protect, adminOnly, authHandler.ResendActivationToken)

	adoptions := api.Group("/adoptions", protect)
	adoptions.GET("", adoptionHandler.List)
	adoptions.POST("/dog/:animalId", middleware.RestrictTo(models.RoleUser), adoptionHandler.Adopt)
	adoptions.GET("/:adoptionId", adminOnly, adoptionHandler.Get)
	adoptions.PATCH("/:adoptionId", adminOnly, adoptionHandler.Update)

	notifications := api.Group("/notifications", protect)
	notifications.GET("", notificationHandler.List)
	notifications.DELETE("", notificationHandler.DeleteAll)
	notifications.GET("/:notificationId", notificationHandler.Get)
	notifications.DELETE("/:notificationId", notificationHandler.Delete)
	notifications.PATCH("/seen/:notificationId", notificationHandler.Seen)

	animals := api.Group("/dogs")
	animals.GET("", animalHandler.List)
	animals.GET("/:animalId", animalHandler.Get)
	animals.POST("", protect, adminOnly, animalHandler.Create)
	animals.PUT("/:animalId", protect, adminOnly, animalHandler.Update)
	animals.DELETE("/:animalId", protect, adminOnly, animalHandler.Delete)

	users := api.Group("/users", protect, adminOnly)
	users.GET("", userHandler.List)
	users.GET("/:userId", userHandler.Get)
	users.DELETE("/:userId", userHandler.Delete)

	return r
}

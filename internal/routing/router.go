package routing

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/activity-atlas/server/internal/handlers"
	"github.com/activity-atlas/server/internal/managers"
	"github.com/activity-atlas/server/internal/middleware"
	"github.com/activity-atlas/server/internal/schemas"
	"github.com/activity-atlas/server/internal/utils"
)

func InitRouter(databaseMgr managers.DatabaseMgr, jwtMgr managers.JWTMgr, storeMgr managers.StoreMgr,
	geocodingMgr managers.GeocodingMgr) *gin.Engine {
	// Initialize router with logging and recovery middleware
	router := gin.New()
	// Initialize middleware
	setupCommonMiddleware(router)
	// Setup routes
	setupRoutes(router, databaseMgr, jwtMgr, storeMgr, geocodingMgr)

	return router
}

func setupCommonMiddleware(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.InjectTrace())
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "PATCH", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept, Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "X-Trace-Id"},
		MaxAge:        12 * time.Hour,
	}))
	router.Use(middleware.SanitizePath())
	router.Use(middleware.LogRequest())
}

func setupRoutes(router *gin.Engine, databaseMgr managers.DatabaseMgr, jwtMgr managers.JWTMgr,
	storeMgr managers.StoreMgr, geocodingMgr managers.GeocodingMgr) {
	// Set up version route
	router.GET("/", func(c *gin.Context) {
		apiVersion := os.Getenv("API_VERSION")
		if apiVersion == "" {
			apiVersion = "main:latest"
		}

		metadata := &schemas.MetadataDTO{
			ApiVersion: apiVersion,
			ApiName:    "Activity Atlas",
		}
		utils.WriteAndLogResponse(c, metadata, http.StatusOK)
	})

	// Set up health route
	router.GET("/health", func(c *gin.Context) {
		// Ping the database
		if err := databaseMgr.GetPool().Ping(c); err != nil {
			c.String(http.StatusInternalServerError, "Database not responding")
			return
		}
		c.Status(http.StatusOK)
	})

	// Set up metrics route
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Serve the uploaded images
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads/images"
	}
	router.Static("/uploads/images", uploadDir)

	// Set up API routes
	apiRouter := router.Group("/api")
	{
		// Set up user routes
		userRouter := apiRouter.Group("/users")
		userHdl := handlers.NewUserHandler(&databaseMgr, &jwtMgr)
		userRoutes(userRouter, userHdl)

		// Set up activity routes
		activityRouter := apiRouter.Group("/activities")
		activityHdl := handlers.NewActivityHandler(&databaseMgr, &storeMgr, &geocodingMgr)
		activityRoutes(activityRouter, activityHdl, jwtMgr)
	}
}

func userRoutes(userRouter *gin.RouterGroup, userHdl handlers.UserHdl) {
	userRouter.GET("/", userHdl.GetUsers)
	userRouter.POST("/signup", middleware.ValidateAndSanitizeStruct(&schemas.SignupRequest{}), userHdl.Signup)
	userRouter.POST("/login", middleware.ValidateAndSanitizeStruct(&schemas.LoginRequest{}), userHdl.Login)
}

func activityRoutes(activityRouter *gin.RouterGroup, activityHdl handlers.ActivityHdl, jwtMgr managers.JWTMgr) {
	activityRouter.GET("/:activityId", activityHdl.GetActivityById)
	activityRouter.GET("/user/:userId", activityHdl.GetActivitiesByUserId)
	// The following routes require the user to be authenticated
	activityRouter.Use(jwtMgr.JWTMiddleware())
	activityRouter.POST("/", activityHdl.CreateActivity)
	activityRouter.PATCH("/:activityId", middleware.ValidateAndSanitizeStruct(&schemas.UpdateActivityRequest{}), activityHdl.UpdateActivity)
	activityRouter.DELETE("/:activityId", activityHdl.DeleteActivity)
}

package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"adlytics/infrastructure/configuration"
	httpHandler "adlytics/interfaces/http"
	"adlytics/interfaces/middleware"
	"adlytics/usecase"
)

func InitiateRouter(
	authHandler httpHandler.IAuthHandler,
	accountHandler httpHandler.IAccountHandler,
	oauthCallbackHandler httpHandler.IOAuthCallbackHandler,
	analysisHandler httpHandler.IAnalysisHandler,
	uploadHandler httpHandler.IUploadHandler,
	queueHandler httpHandler.IQueueHandler,
	reportHandler httpHandler.IReportHandler,
	sessionUsecase usecase.ISessionUsecase,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     configuration.C.UI.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Routes reachable without a session.
	router.POST("/login", authHandler.Login)
	router.POST("/register", authHandler.Register)
	router.GET("/session", authHandler.Session)

	// The provider redirects here; the outcome page is public because
	// the redirect carries no bearer token.
	router.GET("/oauth/callback", oauthCallbackHandler.Callback)

	api := router.Group("api")
	api.Use(middleware.Auth(sessionUsecase))

	api.POST("/logout", authHandler.Logout)

	accounts := api.Group("/accounts")
	{
		accounts.GET("", accountHandler.List)
		accounts.POST("/oauth/initiate", accountHandler.Initiate)
		accounts.GET("/oauth/status", oauthCallbackHandler.Status)
		accounts.DELETE("/:id", accountHandler.Disconnect)
		accounts.POST("/:id/sync", accountHandler.Sync)
		accounts.GET("/:id/campaigns", accountHandler.Campaigns)
	}

	upload := api.Group("/upload")
	{
		upload.POST("/csv", uploadHandler.UploadCSV)
		upload.GET("/queue-status", queueHandler.Status)
		upload.GET("/events", queueHandler.Stream)
	}

	analysis := api.Group("/analysis")
	{
		analysis.GET("/history", analysisHandler.History)
		analysis.GET("/:id", analysisHandler.Get)
		analysis.GET("/:id/results", analysisHandler.Results)
		analysis.DELETE("/:id", analysisHandler.Delete)
		analysis.GET("/:id/download-pdf", analysisHandler.DownloadPDF)
		analysis.POST("/:id/download-pdf-with-charts", analysisHandler.DownloadPDFWithCharts)
		analysis.POST("/:id/email", analysisHandler.EmailReport)
	}

	reports := api.Group("/reports")
	{
		reports.POST("/generate", reportHandler.Generate)
		reports.GET("/:id/status", reportHandler.Status)
	}

	return router
}

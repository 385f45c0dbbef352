package handlers

import (
	"github.com/formlab/formbuilder-service/internal/services"
	"github.com/formlab/formbuilder-service/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	formHandler     *FormHandler
	responseHandler *ResponseHandler
	uploadHandler   *UploadHandler
}

func NewHandlerManager(
	formService services.FormService,
	responseService services.ResponseService,
	exportService services.ExportService,
	storage services.AssetStorage,
	maxUploadSize int64,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		formHandler:     NewFormHandler(formService, logger),
		responseHandler: NewResponseHandler(responseService, exportService, logger),
		uploadHandler:   NewUploadHandler(storage, maxUploadSize, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "formbuilder-service",
		})
	})

	api := router.Group("/api")
	{
		forms := api.Group("/forms")
		{
			forms.POST("", hm.formHandler.CreateForm)
			forms.GET("/:id", hm.formHandler.GetForm)
		}

		responses := api.Group("/responses")
		{
			responses.POST("", hm.responseHandler.CreateResponse)
			responses.GET("/:formId", hm.responseHandler.ListResponses)
			responses.GET("/:formId/export", hm.responseHandler.ExportResponses)
		}

		api.POST("/upload", hm.uploadHandler.UploadImage)
	}
}

// NewEngine builds the gin engine with the shared middleware stack.
func NewEngine(logger utils.Logger, corsOrigins []string, uploadDir, uploadBaseURL string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	corsConfig := cors.DefaultConfig()
	if len(corsOrigins) == 0 || (len(corsOrigins) == 1 && corsOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = corsOrigins
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	// Serve stored assets directly
	if uploadDir != "" {
		router.Static(uploadBaseURL, uploadDir)
	}

	return router
}

package http

import (
	"github.com/gin-gonic/gin"

	"messageboard/internal/bootstrap"
	"messageboard/internal/model"
	"messageboard/internal/transport/http/handler"
	"messageboard/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	if app.Config.App.Env != "test" {
		router.Use(gin.Logger())
	}
	router.Use(
		gin.Recovery(),
		middleware.Metrics(app.Metrics),
		middleware.CORS(app.Config.App.ClientOrigin),
	)

	healthHandler := handler.NewHealthHandler(app)
	messageHandler := handler.NewMessageHandler(app.Messages, app.Log)
	aboutHandler := handler.NewAboutHandler(model.AboutProfile{
		Name:  app.Config.About.Name,
		Bio:   app.Config.About.Bio,
		Image: app.Config.About.Image,
	})

	router.GET("/healthz", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(app.Metrics.Handler()))

	messages := router.Group("/messages")
	messages.GET("", messageHandler.List)
	messages.POST("/save", messageHandler.Save)
	messages.GET("/:messageId", messageHandler.Get)

	router.GET("/api/about", aboutHandler.Get)

	return router
}

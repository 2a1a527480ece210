package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pressroom/backend/internal/events"
	"github.com/pressroom/backend/internal/lifecycle"
)

// RegisterRoutes builds the echo instance with all routes and middleware.
func (h *Handler) RegisterRoutes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			h.log.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	}))

	api := e.Group("/api/v1")

	api.POST("/articles", h.CreateArticle)
	api.GET("/articles", h.Articles)
	api.GET("/articles/:id", h.ArticleByID)
	api.POST("/articles/:id/status", h.RequestTransition)

	api.GET("/notifications", h.Notifications)
	api.POST("/notifications/:id/read", h.MarkNotificationRead)

	api.GET("/events/ws", h.EventStream)

	e.GET("/health", h.Health)
	if h.metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(h.metricsHandler))
	}

	return e
}

// EventStream upgrades to a websocket and pushes publication events for the
// UI's article list refresh.
func (h *Handler) EventStream(c echo.Context) error {
	return events.ServeWS(h.hub, h.log, c.Response(), c.Request(),
		lifecycle.TopicArticleStatus, lifecycle.TopicArticlePublished)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

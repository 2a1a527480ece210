package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pressroom/backend/internal/events"
	"github.com/pressroom/backend/internal/lifecycle"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// Identity headers set by the out-of-scope auth middleware in front of us.
const (
	headerUserID = "X-User-Id"
	headerRole   = "X-Role"
)

type Handler struct {
	engine         *lifecycle.Manager
	notifications  NotificationStore
	hub            *events.Hub
	metricsHandler http.Handler
	log            *slog.Logger
}

func NewHandler(engine *lifecycle.Manager, notifications NotificationStore,
	hub *events.Hub, metricsHandler http.Handler, log *slog.Logger) *Handler {

	return &Handler{
		engine:         engine,
		notifications:  notifications,
		hub:            hub,
		metricsHandler: metricsHandler,
		log:            log,
	}
}

func (h *Handler) handleError(c echo.Context, err error, statusCode int, message string) error {
	h.log.Error("handleError", "error", err, "statusCode", statusCode, "message", message)
	return c.JSON(statusCode, map[string]string{"error": message})
}

func (h *Handler) actor(c echo.Context) (int, lifecycle.Role, error) {
	role, err := lifecycle.ParseRole(c.Request().Header.Get(headerRole))
	if err != nil {
		return 0, "", err
	}

	userID, err := strconv.Atoi(c.Request().Header.Get(headerUserID))
	if err != nil {
		return 0, "", errors.New("missing or invalid user id header")
	}

	return userID, role, nil
}

// CreateArticle handles POST /api/v1/articles
// @Summary Create an article
// @Description Creates an article with its initial status resolved per role. Publication never happens at creation.
// @Tags articles
// @Accept json
// @Produce json
// @Param article body rest.CreateArticleRequest true "Article payload"
// @Success 201 {object} rest.Article
// @Failure 400,403,500 {object} map[string]string
// @Router /api/v1/articles [post]
func (h *Handler) CreateArticle(c echo.Context) error {
	userID, role, err := h.actor(c)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid actor headers")
	}
	if role == lifecycle.RoleReader {
		return h.handleError(c, nil, http.StatusForbidden, "readers cannot create articles")
	}

	var req CreateArticleRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" {
		return h.handleError(c, nil, http.StatusBadRequest, "title is required")
	}

	article, err := h.engine.CreateArticle(c.Request().Context(), lifecycle.NewArticle{
		AuthorID:           userID,
		Title:              req.Title,
		Content:            req.Content,
		Status:             lifecycle.Status(req.Status),
		ScheduledPublishAt: req.ScheduledPublishAt,
	}, role)
	if err != nil {
		if errors.Is(err, lifecycle.ErrMissingScheduleTime) {
			return h.handleError(c, err, http.StatusBadRequest, err.Error())
		}
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusCreated, NewArticle(*article))
}

// RequestTransition handles POST /api/v1/articles/:id/status
// @Summary Request an article status transition
// @Description Validates the transition against the lifecycle policy and commits it with an optimistic-concurrency write.
// @Tags articles
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param transition body rest.TransitionRequest true "Requested status and optional reason"
// @Success 200 {object} rest.TransitionResponse
// @Failure 400,403,404,409,422,500 {object} map[string]string
// @Router /api/v1/articles/{id}/status [post]
func (h *Handler) RequestTransition(c echo.Context) error {
	_, role, err := h.actor(c)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid actor headers")
	}

	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	var req TransitionRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	status, err := lifecycle.ParseStatus(req.Status)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, err.Error())
	}

	result, err := h.engine.ApplyTransition(
		c.Request().Context(), articleID, status, role, req.Reason)
	if err != nil {
		return h.transitionError(c, err)
	}

	return c.JSON(http.StatusOK, NewTransitionResponse(result))
}

func (h *Handler) transitionError(c echo.Context, err error) error {
	var invalid *lifecycle.InvalidTransitionError
	var insufficient *lifecycle.InsufficientRoleError

	switch {
	case errors.Is(err, lifecycle.ErrArticleNotFound):
		return h.handleError(c, err, http.StatusNotFound, "article not found")
	case errors.Is(err, lifecycle.ErrConflict):
		return h.handleError(c, err, http.StatusConflict,
			"this article was just changed by someone else, please refresh")
	case errors.As(err, &invalid):
		return h.handleError(c, err, http.StatusUnprocessableEntity, invalid.Error())
	case errors.As(err, &insufficient):
		return h.handleError(c, err, http.StatusForbidden, insufficient.Error())
	default:
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}
}

// ArticleByID handles GET /api/v1/articles/:id
// @Summary Get article by ID
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} rest.Article
// @Failure 400,404,500 {object} map[string]string
// @Router /api/v1/articles/{id} [get]
func (h *Handler) ArticleByID(c echo.Context) error {
	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	article, err := h.engine.ArticleByID(c.Request().Context(), articleID)
	if err != nil {
		if errors.Is(err, lifecycle.ErrArticleNotFound) {
			return h.handleError(c, err, http.StatusNotFound, "article not found")
		}
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, NewArticle(*article))
}

// Articles handles GET /api/v1/articles
// @Summary List articles by status
// @Description Lists articles in one lifecycle status, newest first. Backs the moderation queue.
// @Tags articles
// @Produce json
// @Param status query string true "Lifecycle status"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10)"
// @Success 200 {array} rest.Article
// @Failure 400,500 {object} map[string]string
// @Router /api/v1/articles [get]
func (h *Handler) Articles(c echo.Context) error {
	var req ArticlesRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	status, err := lifecycle.ParseStatus(req.Status)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, err.Error())
	}

	page, pageSize := defaultPage, defaultPageSize
	if req.Page != nil {
		page = *req.Page
	}
	if req.PageSize != nil {
		pageSize = *req.PageSize
	}

	articles, err := h.engine.ArticlesByStatus(c.Request().Context(), status, page, pageSize)
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, Map(articles, NewArticle))
}

package video

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appcurve/olivia-party-sub000/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	videos := protected.Group("/videos")
	{
		videos.GET("", h.List)
		videos.POST("", h.Create)
		videos.PUT("/:uuid", h.Update)
		videos.DELETE("/:uuid", h.Delete)
	}
	groups := protected.Group("/video-groups")
	{
		groups.GET("", h.ListGroups)
		groups.POST("", h.CreateGroup)
		groups.PUT("/:uuid", h.UpdateGroup)
		groups.DELETE("/:uuid", h.DeleteGroup)
	}
}

func (h *Handler) List(c *gin.Context) {
	videos, err := h.service.ListVideos(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Internal(c)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"videos": videos})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	v, err := h.service.CreateVideo(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"video": v})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	v, err := h.service.UpdateVideo(c.Request.Context(), c.GetInt64("user_id"), c.Param("uuid"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"video": v})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.DeleteVideo(c.Request.Context(), c.GetInt64("user_id"), c.Param("uuid")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListGroups(c *gin.Context) {
	groups, err := h.service.ListGroups(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Internal(c)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"groups": groups})
}

func (h *Handler) CreateGroup(c *gin.Context) {
	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	g, err := h.service.CreateGroup(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"group": g})
}

func (h *Handler) UpdateGroup(c *gin.Context) {
	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	g, err := h.service.UpdateGroup(c.Request.Context(), c.GetInt64("user_id"), c.Param("uuid"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"group": g})
}

func (h *Handler) DeleteGroup(c *gin.Context) {
	if err := h.service.DeleteGroup(c.Request.Context(), c.GetInt64("user_id"), c.Param("uuid")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrVideoNotFound), errors.Is(err, ErrGroupNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrUnknownPlatform), errors.Is(err, ErrUnknownGroupItem):
		response.BadRequest(c, err.Error())
	default:
		response.Internal(c)
	}
}

package phrase

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
	lists := protected.Group("/phrase-lists")
	{
		lists.GET("", h.List)
		lists.GET("/:uuid", h.Get)
		lists.POST("", h.Create)
		lists.PUT("/:uuid", h.Update)
		lists.DELETE("/:uuid", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	lists, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Internal(c)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"phrase_lists": lists})
}

func (h *Handler) Get(c *gin.Context) {
	list, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), c.Param("uuid"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"phrase_list": list})
}

func (h *Handler) Create(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	list, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"phrase_list": list})
}

func (h *Handler) Update(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	list, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), c.Param("uuid"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"phrase_list": list})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), c.Param("uuid")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrListNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrInvalidLanguage):
		response.BadRequest(c, err.Error())
	default:
		response.Internal(c)
	}
}

package handler

import (
	"net/http"
	"strconv"

	"vidshare/internal/services"
	"vidshare/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CommentHandler struct {
	service *services.CommentService
}

func NewCommentHandler(service *services.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) Create(c *gin.Context) {
	active, ok := activeUser(c)
	if !ok {
		return
	}
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid video id", "INVALID_REQUEST"))
		return
	}
	var req httpdto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	created, err := h.service.Create(c.Request.Context(), active, videoID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.NewCommentResponse(created)))
}

func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid video id", "INVALID_REQUEST"))
		return
	}
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	comments, total, err := h.service.GetByVideo(c.Request.Context(), videoID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{
		"comments": httpdto.NewCommentListResponse(comments),
		"total":    total,
	}))
}

func (h *CommentHandler) Update(c *gin.Context) {
	active, ok := activeUser(c)
	if !ok {
		return
	}
	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid comment id", "INVALID_REQUEST"))
		return
	}
	var req httpdto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	updated, err := h.service.Update(c.Request.Context(), active, commentID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.NewCommentResponse(updated)))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	active, ok := activeUser(c)
	if !ok {
		return
	}
	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid comment id", "INVALID_REQUEST"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), active, commentID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

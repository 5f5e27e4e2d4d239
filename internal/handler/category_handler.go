package handler

import (
	"net/http"

	"vidshare/internal/services"
	"vidshare/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoryHandler struct {
	service *services.CategoryService
}

func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"categories": httpdto.NewCategoryListResponse(categories)}))
}

func (h *CategoryHandler) GetByName(c *gin.Context) {
	cat, err := h.service.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.NewCategoryResponse(cat)))
}

func (h *CategoryHandler) Create(c *gin.Context) {
	active, ok := activeUser(c)
	if !ok {
		return
	}
	var req httpdto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	cat, err := h.service.Create(c.Request.Context(), active, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.NewCategoryResponse(cat)))
}

func (h *CategoryHandler) Update(c *gin.Context) {
	active, ok := activeUser(c)
	if !ok {
		return
	}
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid category id", "INVALID_REQUEST"))
		return
	}
	var req httpdto.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	cat, err := h.service.Update(c.Request.Context(), active, categoryID, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.NewCategoryResponse(cat)))
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	active, ok := activeUser(c)
	if !ok {
		return
	}
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid category id", "INVALID_REQUEST"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), active, categoryID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

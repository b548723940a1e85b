package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mlipatov/shareit-backend/internal/identity"
	"github.com/mlipatov/shareit-backend/internal/item"
	"github.com/mlipatov/shareit-backend/internal/pkg/request"
	"github.com/mlipatov/shareit-backend/internal/pkg/response"
)

type Handler struct {
	service item.Service
}

func NewHandler(service item.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	it, err := h.service.Create(c.Request.Context(), identity.UserID(c), item.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   *body.Available,
		RequestID:   body.RequestID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewItemResponse(it))
}

func (h *Handler) Update(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var body UpdateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	it, err := h.service.Update(c.Request.Context(), params.ID, identity.UserID(c), item.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(it))
}

func (h *Handler) Get(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	detail, err := h.service.GetView(c.Request.Context(), params.ID, identity.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemDetailResponse(detail))
}

func (h *Handler) ListOwn(c *gin.Context) {
	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination parameters"})
		return
	}

	details, err := h.service.ListByOwner(c.Request.Context(), identity.UserID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ItemDetailResponse, 0, len(details))
	for _, d := range details {
		items = append(items, NewItemDetailResponse(d))
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) Search(c *gin.Context) {
	var params SearchItemsRequest
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid search parameters"})
		return
	}

	found, err := h.service.Search(c.Request.Context(), params.Text, params.ListParams)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ItemResponse, 0, len(found))
	for _, it := range found {
		items = append(items, NewItemResponse(it))
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) Delete(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), params.ID, identity.UserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Comment(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var body CreateCommentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cm, err := h.service.Comment(c.Request.Context(), params.ID, identity.UserID(c), body.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCommentResponse(cm))
}

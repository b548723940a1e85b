package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mlipatov/shareit-backend/internal/identity"
	"github.com/mlipatov/shareit-backend/internal/itemrequest"
	"github.com/mlipatov/shareit-backend/internal/pkg/request"
	"github.com/mlipatov/shareit-backend/internal/pkg/response"
)

type Handler struct {
	service itemrequest.Service
}

func NewHandler(service itemrequest.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req, err := h.service.Create(c.Request.Context(), identity.UserID(c), body.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRequestResponse(&itemrequest.Detail{Request: *req}))
}

func (h *Handler) ListOwn(c *gin.Context) {
	details, err := h.service.ListOwn(c.Request.Context(), identity.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RequestResponse, 0, len(details))
	for _, d := range details {
		items = append(items, NewRequestResponse(d))
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) ListOthers(c *gin.Context) {
	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination parameters"})
		return
	}

	details, err := h.service.ListOthers(c.Request.Context(), identity.UserID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RequestResponse, 0, len(details))
	for _, d := range details {
		items = append(items, NewRequestResponse(d))
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), params.ID, identity.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRequestResponse(d))
}

package handlers

import (
	"net/http"

	"guestbook_backend/internal/dto"
	"guestbook_backend/internal/services"
	"guestbook_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	*BaseHandler
	messageService services.MessageService
}

func NewMessageHandler(base *BaseHandler, messageService services.MessageService) *MessageHandler {
	return &MessageHandler{
		BaseHandler:    base,
		messageService: messageService,
	}
}

func (h *MessageHandler) RegisterRoutes(r *gin.Engine) {
	// Public submission
	r.POST("/enviar", h.Submit)

	// Admin listing and moderation. Access control is an external
	// collaborator; these routes assume it has already run.
	r.GET("/mensajes", h.List)
	r.PUT("/mensajes/:id", h.Update)
	r.DELETE("/mensajes/:id", h.Delete)
}

// Submit handles the public guestbook form.
func (h *MessageHandler) Submit(c *gin.Context) {
	var req dto.SubmitMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		h.HandleServiceErrorString(c, apperrors.NewBadRequestError("invalid form data: "+err.Error()))
		return
	}

	if err := h.messageService.Submit(c.Request.Context(), h.GetDB(c), &req); err != nil {
		h.HandleServiceErrorString(c, err)
		return
	}

	c.String(http.StatusOK, "✅ Mensaje enviado correctamente")
}

// List returns one page of messages with pagination metadata.
func (h *MessageHandler) List(c *gin.Context) {
	page := ParseQueryInt(c, "page", 1)
	pageSize := ParseQueryInt(c, "pageSize", 0) // 0 -> configured default
	search := c.Query("search")

	response, err := h.messageService.List(c.Request.Context(), h.GetDB(c), page, pageSize, search)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Update handles an admin edit of a single message.
func (h *MessageHandler) Update(c *gin.Context) {
	id, err := ParseParamInt(c, "id")
	if err != nil {
		h.HandleServiceErrorString(c, err)
		return
	}

	var req dto.UpdateMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		h.HandleServiceErrorString(c, apperrors.NewBadRequestError("invalid form data: "+err.Error()))
		return
	}

	if err := h.messageService.Update(c.Request.Context(), h.GetDB(c), id, &req); err != nil {
		h.HandleServiceErrorString(c, err)
		return
	}

	c.String(http.StatusOK, "✅ Mensaje actualizado correctamente")
}

// Delete removes a message permanently.
func (h *MessageHandler) Delete(c *gin.Context) {
	id, err := ParseParamInt(c, "id")
	if err != nil {
		h.HandleServiceErrorString(c, err)
		return
	}

	if err := h.messageService.Delete(c.Request.Context(), h.GetDB(c), id); err != nil {
		h.HandleServiceErrorString(c, err)
		return
	}

	c.String(http.StatusOK, "✅ Mensaje eliminado")
}

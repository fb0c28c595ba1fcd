package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"turftrack/internal/model"
	"turftrack/internal/service"
)

// ContactController handles contact-form intake
type ContactController struct {
	contacts service.ContactService
	logger   *slog.Logger
}

// NewContactController creates a new contact controller
func NewContactController(contacts service.ContactService, logger *slog.Logger) *ContactController {
	return &ContactController{contacts: contacts, logger: logger}
}

// Submit handles POST /v1/contact
func (c *ContactController) Submit(ctx *gin.Context) {
	var input service.ContactInput
	if !bindJSON(ctx, &input) {
		return
	}

	msg, err := c.contacts.Submit(input, ctx.ClientIP(), ctx.Request.UserAgent())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	c.logger.Info("contact message received",
		"contact_id", msg.ID,
		"email", msg.Email,
	)
	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Thank you for your message. We will get back to you soon.",
	})
}

// List handles GET /v1/contact
func (c *ContactController) List(ctx *gin.Context) {
	msgs, err := c.contacts.List()
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	if msgs == nil {
		msgs = []model.ContactMessage{}
	}
	ctx.JSON(http.StatusOK, msgs)
}

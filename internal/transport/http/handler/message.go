package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"messageboard/internal/app"
	"messageboard/internal/transport/http/response"
)

type MessageHandler struct {
	messages *app.MessageService
	log      *slog.Logger
}

func NewMessageHandler(messages *app.MessageService, log *slog.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, log: log}
}

func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.messages.ListAll(c.Request.Context())
	if err != nil {
		h.fail(c, err, response.StatusRetrieveFailed)
		return
	}
	response.OK(c, gin.H{"messages": messages})
}

func (h *MessageHandler) Get(c *gin.Context) {
	messages, err := h.messages.FindByID(c.Request.Context(), c.Param("messageId"))
	if err != nil {
		h.fail(c, err, response.StatusRetrieveFailed)
		return
	}
	response.OK(c, gin.H{"messages": messages})
}

func (h *MessageHandler) Save(c *gin.Context) {
	req, err := bindSaveRequest(c)
	if errors.Is(err, errNotText) {
		h.fail(c, app.NewValidationFault("name and message must be text", err), response.StatusSaveFailed)
		return
	}
	if err != nil {
		h.fail(c, app.NewValidationFault("request body could not be decoded", err), response.StatusInvalidPayload)
		return
	}

	message, err := h.messages.Save(c.Request.Context(), req.Name, req.Message)
	if err != nil {
		h.fail(c, err, response.StatusSaveFailed)
		return
	}
	response.OK(c, gin.H{"message": message})
}

func (h *MessageHandler) fail(c *gin.Context, err error, status string) {
	fault := app.AsFault(err)
	h.log.Warn("request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"kind", fault.Kind,
		"err", err,
	)
	response.Fail(c, string(fault.Kind), fault.Message, status)
}

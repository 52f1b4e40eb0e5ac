package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"messageboard/internal/model"
)

type AboutHandler struct {
	profile model.AboutProfile
}

func NewAboutHandler(profile model.AboutProfile) *AboutHandler {
	return &AboutHandler{profile: profile}
}

func (h *AboutHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.profile)
}

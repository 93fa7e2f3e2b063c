package handler

import (
	"github.com/gin-gonic/gin"

	"chitchat_server/internal/service"
)

// AIHandler serves the model-provider endpoints.
type AIHandler struct {
	aiSvc service.AIService
}

func NewAIHandler(aiSvc service.AIService) *AIHandler {
	return &AIHandler{aiSvc: aiSvc}
}

type askRequest struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Prompt   string `json:"prompt" binding:"required"`
}

// Ask handles POST /ai/ask.
func (h *AIHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	answer, err := h.aiSvc.Ask(c.Request.Context(), req.Provider, req.Model, req.Prompt)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"answer": answer})
}

// Providers handles GET /ai/providers.
func (h *AIHandler) Providers(c *gin.Context) {
	HandleSuccess(c, gin.H{"providers": h.aiSvc.Providers()})
}

// Models handles GET /ai/providers/:name/models.
func (h *AIHandler) Models(c *gin.Context) {
	models, err := h.aiSvc.Models(c.Param("name"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"models": models})
}

// Test handles POST /ai/providers/:name/test.
func (h *AIHandler) Test(c *gin.Context) {
	if err := h.aiSvc.TestConnection(c.Request.Context(), c.Param("name")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

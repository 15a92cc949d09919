package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SW2PDEPLOY/front/internal/generator"
	"github.com/SW2PDEPLOY/front/internal/models"
	"github.com/SW2PDEPLOY/front/internal/workflow"
)

type PromptsHandler struct {
	client *generator.Client
}

func NewPromptsHandler(client *generator.Client) *PromptsHandler {
	return &PromptsHandler{
		client: client,
	}
}

// Generate godoc
// @Summary     Generate a project from a text prompt
// @Description Creates an app record from a free-text description and streams the packaged project back as a download. The prompt must be at least 10 characters after trimming.
// @Tags        prompts
// @Accept      json
// @Produce     application/zip
// @Security    Bearer
// @Param       request body models.GenerateFromPromptRequest true "Prompt, optional name, target platform and optional config"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /prompts/generate [post]
func (h *PromptsHandler) Generate(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var req models.GenerateFromPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	projectType, err := models.ParseProjectType(req.ProjectType)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project type", Message: err.Error()})
		return
	}

	flow := workflow.NewPromptFlow(h.client.WithSession(session), downloadSink(c))
	if _, err := flow.Generate(req.Prompt, req.Nombre, projectType, req.Config); err != nil {
		writeWorkflowError(c, err)
		return
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SW2PDEPLOY/front/internal/generator"
	"github.com/SW2PDEPLOY/front/internal/models"
)

type AppsHandler struct {
	client *generator.Client
}

func NewAppsHandler(client *generator.Client) *AppsHandler {
	return &AppsHandler{
		client: client,
	}
}

func (h *AppsHandler) List(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	apps, err := h.client.WithSession(session).ListApps()
	if err != nil {
		writeWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AppListResponse{Apps: apps})
}

func (h *AppsHandler) Get(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	appID := c.Param("app_id")
	if appID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing app id"})
		return
	}

	app, err := h.client.WithSession(session).GetApp(appID)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

func (h *AppsHandler) Update(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	appID := c.Param("app_id")
	if appID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing app id"})
		return
	}

	var req models.UpdateAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	app, err := h.client.WithSession(session).UpdateApp(appID, generator.AppPatch{
		Nombre: req.Nombre,
		Prompt: req.Prompt,
		Config: req.Config,
	})
	if err != nil {
		writeWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

func (h *AppsHandler) Delete(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	appID := c.Param("app_id")
	if appID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing app id"})
		return
	}

	if err := h.client.WithSession(session).DeleteApp(appID); err != nil {
		writeWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DeleteAppResponse{Message: "app deleted successfully"})
}

package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SW2PDEPLOY/front/internal/generator"
	"github.com/SW2PDEPLOY/front/internal/imaging"
	"github.com/SW2PDEPLOY/front/internal/models"
	"github.com/SW2PDEPLOY/front/internal/workflow"
)

type MockupsHandler struct {
	codec  *imaging.Codec
	client *generator.Client
}

func NewMockupsHandler(codec *imaging.Codec, client *generator.Client) *MockupsHandler {
	return &MockupsHandler{
		codec:  codec,
		client: client,
	}
}

// Analyze godoc
// @Summary     Analyze a mockup image
// @Description Validates and compresses an uploaded mockup image, then asks the generation service to describe the interface it shows.
// @Tags        mockups
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       image formData file true "Mockup image (jpeg, png, gif or webp, max 20 MiB)"
// @Param       project_type formData string true "Target platform: flutter or angular"
// @Success     200 {object} models.AnalyzeResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     422 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /mockups/analyze [post]
func (h *MockupsHandler) Analyze(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	projectType, err := models.ParseProjectType(c.PostForm("project_type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project type", Message: err.Error()})
		return
	}

	fileName, mediaType, data, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid upload", Message: err.Error()})
		return
	}

	flow := workflow.NewImageFlow(h.codec, h.client.WithSession(session), nil)
	if err := flow.SelectFile(fileName, mediaType, data); err != nil {
		writeWorkflowError(c, err)
		return
	}

	description, err := flow.Analyze(projectType)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}

	preview := flow.Preview()
	c.JSON(http.StatusOK, models.AnalyzeResponse{
		Description: description,
		Format:      preview.Format,
		SizeKB:      preview.SizeKB,
		Width:       preview.Width,
		Height:      preview.Height,
	})
}

// Generate godoc
// @Summary     Generate a project from a mockup image
// @Description Runs the full pipeline for an uploaded mockup: validate, compress, analyze, create the app record, generate the packaged project, and stream the archive back as a download.
// @Tags        mockups
// @Accept      multipart/form-data
// @Produce     application/zip
// @Security    Bearer
// @Param       image formData file true "Mockup image (jpeg, png, gif or webp, max 20 MiB)"
// @Param       name formData string true "Project name"
// @Param       project_type formData string true "Target platform: flutter or angular"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     422 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /mockups/generate [post]
func (h *MockupsHandler) Generate(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	name := c.PostForm("name")
	projectType, err := models.ParseProjectType(c.PostForm("project_type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project type", Message: err.Error()})
		return
	}

	fileName, mediaType, data, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid upload", Message: err.Error()})
		return
	}

	flow := workflow.NewImageFlow(h.codec, h.client.WithSession(session), downloadSink(c))
	if err := flow.SelectFile(fileName, mediaType, data); err != nil {
		writeWorkflowError(c, err)
		return
	}

	if _, err := flow.Generate(name, projectType, nil); err != nil {
		writeWorkflowError(c, err)
		return
	}
}

// downloadSink streams a delivered artifact to the browser as a file
// download.
func downloadSink(c *gin.Context) workflow.Sink {
	return workflow.SinkFunc(func(a *generator.Artifact) error {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Name))
		c.Data(http.StatusOK, a.ContentType, a.Data)
		return nil
	})
}

// readUpload pulls the uploaded image out of the multipart form.
func readUpload(c *gin.Context) (name, mediaType string, data []byte, err error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return "", "", nil, fmt.Errorf("missing image file: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	data, err = io.ReadAll(src)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to read upload: %w", err)
	}

	return fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data, nil
}

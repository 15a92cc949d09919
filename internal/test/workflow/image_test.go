package workflow_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SW2PDEPLOY/front/internal/generator"
	"github.com/SW2PDEPLOY/front/internal/imaging"
	"github.com/SW2PDEPLOY/front/internal/models"
	"github.com/SW2PDEPLOY/front/internal/workflow"
	"github.com/SW2PDEPLOY/front/internal/workflow/mocks"
)

type captureSink struct {
	artifacts []*generator.Artifact
	err       error
}

func (s *captureSink) Deliver(a *generator.Artifact) error {
	if s.err != nil {
		return s.err
	}
	s.artifacts = append(s.artifacts, a)
	return nil
}

func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testArtifact() *generator.Artifact {
	return &generator.Artifact{ContentType: "application/zip", Data: []byte("PK\x03\x04fake")}
}

func TestImageFlow_SelectFile(t *testing.T) {
	flow := workflow.NewImageFlow(imaging.NewCodec(1024, 80), new(mocks.MockGenerateClient), &captureSink{})

	err := flow.SelectFile("mock.png", "image/png", makePNG(t, 64, 48))

	require.NoError(t, err)
	assert.Equal(t, workflow.StateIdle, flow.State())
	assert.Equal(t, "mock.png", flow.FileName())
	require.NotNil(t, flow.Preview())
	assert.Equal(t, 64, flow.Preview().Width)
	assert.Equal(t, 48, flow.Preview().Height)
}

func TestImageFlow_SelectFile_RejectsUnsupportedType(t *testing.T) {
	flow := workflow.NewImageFlow(imaging.NewCodec(1024, 80), new(mocks.MockGenerateClient), &captureSink{})

	err := flow.SelectFile("doc.pdf", "application/pdf", []byte("%PDF-1.4"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
	assert.Equal(t, workflow.StateFailed, flow.State())

	message, class := flow.Err()
	assert.Contains(t, message, "unsupported file type")
	assert.Equal(t, workflow.ClassValidation, class)
	assert.Nil(t, flow.Preview())
}

func TestImageFlow_SelectFile_RejectsCorruptImage(t *testing.T) {
	flow := workflow.NewImageFlow(imaging.NewCodec(1024, 80), new(mocks.MockGenerateClient), &captureSink{})

	err := flow.SelectFile("broken.png", "image/png", []byte("not a real png"))

	require.Error(t, err)
	var codecErr *imaging.CodecError
	assert.True(t, errors.As(err, &codecErr))
	assert.Equal(t, workflow.StateFailed, flow.State())

	_, class := flow.Err()
	assert.Equal(t, workflow.ClassCodec, class)
}

func TestImageFlow_SelectFile_ReplacesPreviousSelection(t *testing.T) {
	mockClient := new(mocks.MockGenerateClient)
	mockClient.On("AnalyzeImage", mock.Anything, models.ProjectTypeFlutter).Return("old description", nil)

	flow := workflow.NewImageFlow(imaging.NewCodec(1024, 80), mockClient, &captureSink{})
	require.NoError(t, flow.SelectFile("first.png", "image/png", makePNG(t, 64, 48)))
	_, err := flow.Analyze(models.ProjectTypeFlutter)
	require.NoError(t, err)
	assert.Equal(t, "old description", flow.Description())

	require.NoError(t, flow.SelectFile("second.png", "image/png", makePNG(t, 100, 80)))

	assert.Equal(t, "second.png", flow.FileName())
	assert.Equal(t, 100, flow.Preview().Width)
	assert.Empty(t, flow.Description())
}

func TestImageFlow_Analyze(t *testing.T) {
	var sentPayload string
	mockClient := new(mocks.MockGenerateClient)
	mockClient.On("AnalyzeImage", mock.Anything, models.ProjectTypeFlutter).
		Run(func(args mock.Arguments) { sentPayload = args.String(0) }).
		Return("a dashboard with three stat cards", nil)

	flow := workflow.NewImageFlow(imaging.NewCodec(1024, 80), mockClient, &captureSink{})
	require.NoError(t, flow.SelectFile("mock.png", "image/png", makePNG(t, 64, 48)))

	description, err := flow.Analyze(models.ProjectTypeFlutter)

	require.NoError(t, err)
	assert.Equal(t, "a dashboard with three stat cards", description)
	assert.Equal(t, description, flow.Description())
	assert.Equal(t, workflow.StateIdle, flow.State())
	assert.Equal(t, flow.Preview().Encoded, sentPayload)
}

func TestImageFlow_Analyze_RequiresImage(t *testing.T) {
	flow := workflow.NewImageFlow(imaging.NewCodec(1024, 80), new(mocks.MockGenerateClient), &captureSink{})

	_, err := flow.Analyze(models.ProjectTypeFlutter)

	assert.True(t, errors.Is(err, workflow.ErrNoImage))
	assert.Equal(t, workflow.StateIdle, flow.State())
}

func TestImageFlow_Analyze_SurfacesServerMessage(t *testing.T) {
	mockClient := new(mocks.MockGenerateClient)
	mockClient.On("AnalyzeImage", mock.Anything, models.ProjectTypeFlutter).
		Return("", &generator.ServerError{Op: "analyze image", Reason: "unsupported mockup layout"})

	flow := workflow.NewImageFlow(imaging.NewCodec(1024, 80), mockClient, &captureSink{})
	require.NoError(t, flow.SelectFile("mock.png", "image/png", makePNG(t, 64, 48)))

	_, err := flow.Analyze(models.ProjectTypeFlutter)

	require.Error(t, err)
	assert.Equal(t, "unsupported mockup layout", err.Error())
	assert.Equal(t, workflow.StateFailed, flow.State())

	message, class := flow.Err()
	assert.Equal(t, "unsupported mockup layout", message)
	assert.Equal(t, workflow.ClassServer, class)
	assert.NotNil(t, flow.Preview())
}

func TestImageFlow_Generate(t *testing.T) {
	app := &models.App{ID: "app-9", Nombre: "Shop", ProjectType: models.ProjectTypeFlutter}

	mockClient := new(mocks.MockGenerateClient)
	mockClient.On("AnalyzeImage", mock.Anything, models.ProjectTypeFlutter).
		Return("a product list with a cart button", nil)
	mockClient.On("CreateFromPrompt", mock.MatchedBy(func(req generator.PromptRequest) bool {
		return req.Prompt == "a product list with a cart button" &&
			req.Nombre == "Shop" &&
			req.ProjectType == models.ProjectTypeFlutter &&
			req.CreatedVia == models.CreatedViaMockup
	})).Return(app, nil)
	mockClient.On("GenerateProject", "app-9").Return(testArtifact(), nil)

	sink := &captureSink{}
	flow := workflow.NewImageFlow(imaging.NewCodec(1024, 80), mockClient, sink)
	require.NoError(t, flow.SelectFile("mock.png", "image/png", makePNG(t, 64, 48)))

	created, err := flow.Generate("Shop", models.ProjectTypeFlutter, nil)

	require.NoError(t, err)
	assert.Equal(t, "app-9", created.ID)
	require.Len(t, sink.artifacts, 1)
	assert.Equal(t, "Shop-flutter.zip", sink.artifacts[0].Name)
	assert.Equal(t, "application/zip", sink.artifacts[0].ContentType)

	assert.Equal(t, workflow.StateIdle, flow.State())
	assert.Nil(t, flow.Preview())
	assert.Empty(t, flow.FileName())
	mockClient.AssertExpectations(t)
}

func TestImageFlow_Generate_ReusesCachedDescription(t *testing.T) {
	app := &models.App{ID: "app-3", Nombre: "Gym"}

	mockClient := new(mocks.MockGenerateClient)
	mockClient.On("AnalyzeImage", mock.Anything, models.ProjectTypeAngular).
		Return("a workout schedule grid", nil).Once()
	mockClient.On("CreateFromPrompt", mock.MatchedBy(func(req generator.PromptRequest) bool {
		return req.Prompt == "a workout schedule grid"
	})).Return(app, nil)
	mockClient.On("GenerateProject", "app-3").Return(testArtifact(), nil)

	flow := workflow.NewImageFlow(imaging.NewCodec(1024, 80), mockClient, &captureSink{})
	require.NoError(t, flow.SelectFile("mock.png", "image/png", makePNG(t, 64, 48)))

	_, err := flow.Analyze(models.ProjectTypeAngular)
	require.NoError(t, err)

	_, err = flow.Generate("Gym", models.ProjectTypeAngular, nil)

	require.NoError(t, err)
	mockClient.AssertNumberOfCalls(t, "AnalyzeImage", 1)
}

func TestImageFlow_Generate_ReanalyzesWhenProjectTypeChanges(t *testing.T) {
	app := &models.App{ID: "app-8", Nombre: "Shop"}

	mockClient := new(mocks.MockGenerateClient)
	mockClient.On("AnalyzeImage", mock.Anything, models.ProjectTypeFlutter).
		Return("a checkout screen described for flutter", nil).Once()
	mockClient.On("AnalyzeImage", mock.Anything, models.ProjectTypeAngular).
		Return("a checkout screen described for angular", nil).Once()
	mockClient.On("CreateFromPrompt", mock.MatchedBy(func(req generator.PromptRequest) bool {
		return req.Prompt == "a checkout screen described for angular" &&
			req.ProjectType == models.ProjectTypeAngular
	})).Return(app, nil)
	mockClient.On("GenerateProject", "app-8").Return(testArtifact(), nil)

	flow := workflow.NewImageFlow(imaging.NewCodec(1024, 80), mockClient, &captureSink{})
	require.NoError(t, flow.SelectFile("mock.png", "image/png", makePNG(t, 64, 48)))

	_, err := flow.Analyze(models.ProjectTypeFlutter)
	require.NoError(t, err)

	_, err = flow.Generate("Shop", models.ProjectTypeAngular, nil)

	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestImageFlow_Generate_HaltsWhenAnalysisFails(t *testing.T) {
	mockClient := new(mocks.MockGenerateClient)
	mockClient.On("AnalyzeImage", mock.Anything, models.ProjectTypeFlutter).
		Return("", &generator.ServerError{Op: "analyze image", Reason: "image is too blurry to analyze"})

	flow := workflow.NewImageFlow(imaging.NewCodec(1024, 80), mockClient, &captureSink{})
	require.NoError(t, flow.SelectFile("mock.png", "image/png", makePNG(t, 64, 48)))

	_, err := flow.Generate("Shop", models.ProjectTypeFlutter, nil)

	require.Error(t, err)
	assert.Equal(t, "image is too blurry to analyze", err.Error())
	assert.Equal(t, workflow.StateFailed, flow.State())
	mockClient.AssertNotCalled(t, "CreateFromPrompt", mock.Anything)
	mockClient.AssertNotCalled(t, "GenerateProject", mock.Anything)
}

func TestImageFlow_Generate_RequiresName(t *testing.T) {
	mockClient := new(mocks.MockGenerateClient)
	flow := workflow.NewImageFlow(imaging.NewCodec(1024, 80), mockClient, &captureSink{})
	require.NoError(t, flow.SelectFile("mock.png", "image/png", makePNG(t, 64, 48)))

	_, err := flow.Generate("   ", models.ProjectTypeFlutter, nil)

	assert.True(t, errors.Is(err, workflow.ErrNameRequired))
	assert.Equal(t, workflow.StateFailed, flow.State())

	_, class := flow.Err()
	assert.Equal(t, workflow.ClassValidation, class)
	mockClient.AssertNotCalled(t, "AnalyzeImage", mock.Anything, mock.Anything)
}

func TestImageFlow_Generate_RequiresImage(t *testing.T) {
	flow := workflow.NewImageFlow(imaging.NewCodec(1024, 80), new(mocks.MockGenerateClient), &captureSink{})

	_, err := flow.Generate("Shop", models.ProjectTypeFlutter, nil)

	assert.True(t, errors.Is(err, workflow.ErrNoImage))
	assert.Equal(t, workflow.StateFailed, flow.State())
}

func TestImageFlow_Generate_DeliveryFailureFailsTheRun(t *testing.T) {
	app := &models.App{ID: "app-5", Nombre: "Shop"}

	mockClient := new(mocks.MockGenerateClient)
	mockClient.On("AnalyzeImage", mock.Anything, models.ProjectTypeFlutter).Return("a screen", nil)
	mockClient.On("CreateFromPrompt", mock.Anything).Return(app, nil)
	mockClient.On("GenerateProject", "app-5").Return(testArtifact(), nil)

	sink := &captureSink{err: errors.New("disk full")}
	flow := workflow.NewImageFlow(imaging.NewCodec(1024, 80), mockClient, sink)
	require.NoError(t, flow.SelectFile("mock.png", "image/png", makePNG(t, 64, 48)))

	_, err := flow.Generate("Shop", models.ProjectTypeFlutter, nil)

	require.Error(t, err)
	assert.Equal(t, workflow.StateFailed, flow.State())
	assert.Empty(t, sink.artifacts)
}

func TestImageFlow_RecoversAfterFailure(t *testing.T) {
	flow := workflow.NewImageFlow(imaging.NewCodec(1024, 80), new(mocks.MockGenerateClient), &captureSink{})

	require.Error(t, flow.SelectFile("doc.pdf", "application/pdf", []byte("%PDF")))
	assert.Equal(t, workflow.StateFailed, flow.State())

	require.NoError(t, flow.SelectFile("mock.png", "image/png", makePNG(t, 64, 48)))
	assert.Equal(t, workflow.StateIdle, flow.State())
	assert.NotNil(t, flow.Preview())
}

package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/SW2PDEPLOY/front/internal/generator"
	"github.com/SW2PDEPLOY/front/internal/models"
)

type MockGenerateClient struct {
	mock.Mock
}

func (m *MockGenerateClient) AnalyzeImage(encodedImage string, projectType models.ProjectType) (string, error) {
	args := m.Called(encodedImage, projectType)
	return args.String(0), args.Error(1)
}

func (m *MockGenerateClient) CreateFromPrompt(promptReq generator.PromptRequest) (*models.App, error) {
	args := m.Called(promptReq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.App), args.Error(1)
}

func (m *MockGenerateClient) GenerateProject(appID string) (*generator.Artifact, error) {
	args := m.Called(appID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*generator.Artifact), args.Error(1)
}

package workflow_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SW2PDEPLOY/front/internal/generator"
	"github.com/SW2PDEPLOY/front/internal/imaging"
	"github.com/SW2PDEPLOY/front/internal/models"
	"github.com/SW2PDEPLOY/front/internal/workflow"
)

func TestArchiveName(t *testing.T) {
	tests := []struct {
		name        string
		projectType models.ProjectType
		want        string
	}{
		{"shop", models.ProjectTypeFlutter, "shop-flutter.zip"},
		{"  shop  ", models.ProjectTypeFlutter, "shop-flutter.zip"},
		{"", models.ProjectTypeAngular, "app-angular.zip"},
		{"Mi Tienda", models.ProjectTypeAngular, "Mi Tienda-angular.zip"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, workflow.ArchiveName(tt.name, tt.projectType))
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want workflow.Class
	}{
		{"short prompt", workflow.ErrPromptTooShort, workflow.ClassValidation},
		{"missing name", workflow.ErrNameRequired, workflow.ClassValidation},
		{"missing image", workflow.ErrNoImage, workflow.ClassValidation},
		{"ambiguous source", generator.ErrExactlyOneSource, workflow.ClassValidation},
		{"wrapped sentinel", fmt.Errorf("submit: %w", workflow.ErrNameRequired), workflow.ClassValidation},
		{"upload policy", &imaging.ValidationError{Reason: "file too large"}, workflow.ClassValidation},
		{"codec failure", &imaging.CodecError{Op: "decode", Err: errors.New("bad header")}, workflow.ClassCodec},
		{"service reported", &generator.ServerError{Op: "generate project", Reason: "no screens"}, workflow.ClassServer},
		{"backend outage", &generator.TransportError{Op: "create app", StatusCode: 500}, workflow.ClassTransport},
		{"rejected request", &generator.TransportError{Op: "create app", StatusCode: 404}, workflow.ClassValidation},
		{"network down", &generator.TransportError{Op: "create app"}, workflow.ClassTransport},
		{"unrecognized", errors.New("something else"), workflow.ClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, workflow.Classify(tt.err))
		})
	}
}

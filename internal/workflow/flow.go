package workflow

import (
	"fmt"
	"strings"

	"github.com/SW2PDEPLOY/front/internal/generator"
	"github.com/SW2PDEPLOY/front/internal/models"
)

// GenerateClient is the slice of the generation API the flows call.
// *generator.Client satisfies it.
type GenerateClient interface {
	AnalyzeImage(encodedImage string, projectType models.ProjectType) (string, error)
	CreateFromPrompt(promptReq generator.PromptRequest) (*models.App, error)
	GenerateProject(appID string) (*generator.Artifact, error)
}

// ArchiveName is the filename convention for downloaded project archives.
func ArchiveName(name string, projectType models.ProjectType) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "app"
	}
	return fmt.Sprintf("%s-%s.zip", name, projectType)
}

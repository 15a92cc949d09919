package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/SW2PDEPLOY/front/internal/artifact"
	"github.com/SW2PDEPLOY/front/internal/auth"
	"github.com/SW2PDEPLOY/front/internal/generator"
	"github.com/SW2PDEPLOY/front/internal/imaging"
	"github.com/SW2PDEPLOY/front/internal/models"
	"github.com/SW2PDEPLOY/front/internal/workflow"
)

// Default generation service base URL; can override with
// GENERATOR_API_BASE_URL env var or --server flag.
var serverBaseURL = "http://localhost:3000"

func main() {
	cmd := flag.String("cmd", "", "Command: analyze|generate-image|generate-prompt|list|rename|delete")
	file := flag.String("file", "", "Mockup image path (for analyze/generate-image)")
	name := flag.String("name", "", "Project name")
	projectType := flag.String("type", "flutter", "Project type: flutter|angular")
	prompt := flag.String("prompt", "", "Prompt text (for generate-prompt)")
	out := flag.String("out", ".", "Directory for downloaded archives")
	appID := flag.String("id", "", "App ID (for rename/delete)")
	serverFlag := flag.String("server", "", "Override generation service base URL")
	flag.Parse()

	if env := os.Getenv("GENERATOR_API_BASE_URL"); env != "" {
		serverBaseURL = strings.TrimRight(env, "/")
	}
	if *serverFlag != "" {
		serverBaseURL = strings.TrimRight(*serverFlag, "/")
	}

	session, err := auth.FromToken(os.Getenv("GENERATOR_TOKEN"))
	if err != nil {
		fmt.Println("Error: GENERATOR_TOKEN must hold a valid bearer token:", err)
		os.Exit(1)
	}
	session.OnUnauthorized = func() {
		fmt.Println("Session rejected by the generation service. Obtain a fresh token and retry.")
	}

	client := generator.NewClient(serverBaseURL, session)

	switch *cmd {
	case "analyze":
		if *file == "" {
			fmt.Println("--file required")
			os.Exit(1)
		}
		if err := analyzeFlow(client, *file, *projectType); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "generate-image":
		if *file == "" {
			fmt.Println("--file required")
			os.Exit(1)
		}
		if *name == "" {
			fmt.Println("--name required")
			os.Exit(1)
		}
		if err := generateImageFlow(client, *file, *name, *projectType, *out); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "generate-prompt":
		if *prompt == "" {
			fmt.Println("--prompt required")
			os.Exit(1)
		}
		if err := generatePromptFlow(client, *prompt, *name, *projectType, *out); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "list":
		if err := listApps(client); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "rename":
		if *appID == "" {
			fmt.Println("--id required")
			os.Exit(1)
		}
		if *name == "" {
			fmt.Println("--name required")
			os.Exit(1)
		}
		if err := renameApp(client, *appID, *name); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "delete":
		if *appID == "" {
			fmt.Println("--id required")
			os.Exit(1)
		}
		if err := deleteApp(client, *appID); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	default:
		fmt.Println("Unknown command")
		flag.Usage()
		os.Exit(1)
	}
}

// ===== Mockup Image Flows =====

func analyzeFlow(client *generator.Client, file, projectType string) error {
	pt, err := models.ParseProjectType(projectType)
	if err != nil {
		return err
	}

	fmt.Println("[1] Reading", file)
	fileName, mediaType, data, err := loadImage(file)
	if err != nil {
		return err
	}

	flow := workflow.NewImageFlow(defaultCodec(), client, nil)

	fmt.Println("[2] Validating and compressing...")
	if err := flow.SelectFile(fileName, mediaType, data); err != nil {
		return err
	}
	preview := flow.Preview()
	fmt.Printf("    %dx%d %s, %d KB\n", preview.Width, preview.Height, preview.Format, preview.SizeKB)

	fmt.Println("[3] Analyzing mockup...")
	description, err := flow.Analyze(pt)
	if err != nil {
		return err
	}

	fmt.Println("[4] Description:")
	fmt.Println(description)
	return nil
}

func generateImageFlow(client *generator.Client, file, name, projectType, out string) error {
	pt, err := models.ParseProjectType(projectType)
	if err != nil {
		return err
	}

	fmt.Println("[1] Reading", file)
	fileName, mediaType, data, err := loadImage(file)
	if err != nil {
		return err
	}

	flow := workflow.NewImageFlow(defaultCodec(), client, artifact.FileSink{Dir: out})

	fmt.Println("[2] Validating and compressing...")
	if err := flow.SelectFile(fileName, mediaType, data); err != nil {
		return err
	}
	preview := flow.Preview()
	fmt.Printf("    %dx%d %s, %d KB\n", preview.Width, preview.Height, preview.Format, preview.SizeKB)

	fmt.Println("[3] Generating project (analyze, create, package)...")
	app, err := flow.Generate(name, pt, nil)
	if err != nil {
		return err
	}

	fmt.Printf("[4] App %s created. Archive saved to %s\n", app.ID, filepath.Join(out, workflow.ArchiveName(name, pt)))
	return nil
}

// ===== Prompt Flow =====

func generatePromptFlow(client *generator.Client, prompt, name, projectType, out string) error {
	pt, err := models.ParseProjectType(projectType)
	if err != nil {
		return err
	}

	flow := workflow.NewPromptFlow(client, artifact.FileSink{Dir: out})

	fmt.Println("[1] Generating project from prompt...")
	app, err := flow.Generate(prompt, name, pt, nil)
	if err != nil {
		return err
	}

	archiveName := name
	if archiveName == "" {
		archiveName = app.Nombre
	}
	fmt.Printf("[2] App %s created. Archive saved to %s\n", app.ID, filepath.Join(out, workflow.ArchiveName(archiveName, pt)))
	return nil
}

// ===== App Records =====

func listApps(client *generator.Client) error {
	apps, err := client.ListApps()
	if err != nil {
		return err
	}
	if len(apps) == 0 {
		fmt.Println("No apps found.")
		return nil
	}
	for _, app := range apps {
		fmt.Printf("%s  %-20s  %-7s  %s\n", app.ID, app.Nombre, app.ProjectType, app.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func renameApp(client *generator.Client, appID, name string) error {
	app, err := client.UpdateApp(appID, generator.AppPatch{Nombre: &name})
	if err != nil {
		return err
	}
	fmt.Printf("Renamed %s to %s\n", app.ID, app.Nombre)
	return nil
}

func deleteApp(client *generator.Client, appID string) error {
	if err := client.DeleteApp(appID); err != nil {
		return err
	}
	fmt.Println("Deleted", appID)
	return nil
}

// ===== Helpers =====

func defaultCodec() *imaging.Codec {
	return imaging.NewCodec(imaging.DefaultMaxWidth, imaging.DefaultQuality)
}

func loadImage(path string) (name, mediaType string, data []byte, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return filepath.Base(path), http.DetectContentType(data), data, nil
}

package workflow

import (
	"strings"

	"github.com/SW2PDEPLOY/front/internal/generator"
	"github.com/SW2PDEPLOY/front/internal/imaging"
	"github.com/SW2PDEPLOY/front/internal/models"
)

// ImageFlow drives mockup-image generation for a single screen instance:
// select a file (validate + compress), optionally analyze it, then generate
// and deliver the packaged project. The compressed payload produced at
// selection time is the exact payload later submitted, so what the user
// previews is what the service receives.
//
// A flow belongs to one owner and is not safe for concurrent use.
type ImageFlow struct {
	machine

	codec  *imaging.Codec
	client GenerateClient
	sink   Sink

	fileName     string
	compressed   *imaging.Compressed
	description  string
	describedFor models.ProjectType

	errMessage string
	errClass   Class
}

func NewImageFlow(codec *imaging.Codec, client GenerateClient, sink Sink) *ImageFlow {
	return &ImageFlow{
		machine: newMachine(),
		codec:   codec,
		client:  client,
		sink:    sink,
	}
}

// FileName returns the name of the currently selected file.
func (f *ImageFlow) FileName() string { return f.fileName }

// Preview returns the compressed representation of the selected image, or
// nil when nothing is selected.
func (f *ImageFlow) Preview() *imaging.Compressed { return f.compressed }

// Description returns the analysis text when an analyze step has run.
func (f *ImageFlow) Description() string { return f.description }

// Err returns the message and class of the last failure.
func (f *ImageFlow) Err() (string, Class) { return f.errMessage, f.errClass }

// SelectFile validates and compresses a newly chosen file. On success the
// flow returns to idle holding the compressed preview; any previous
// selection, analysis text and error are discarded.
func (f *ImageFlow) SelectFile(name, mediaType string, data []byte) error {
	if err := f.advance(StateValidating); err != nil {
		return ErrBusy
	}

	if err := imaging.ValidateFile(mediaType, int64(len(data))); err != nil {
		f.fail(err)
		return err
	}

	if err := f.advance(StateCompressing); err != nil {
		return err
	}

	compressed, err := f.codec.Compress(data)
	if err != nil {
		f.fail(err)
		return err
	}

	f.fileName = name
	f.compressed = compressed
	f.description = ""
	f.describedFor = ""
	f.errMessage = ""
	f.errClass = ""

	return f.advance(StateIdle)
}

// Analyze submits the compressed preview for remote analysis and caches the
// returned description. A failure surfaces the reported message and leaves
// the selection intact so the user can retry.
func (f *ImageFlow) Analyze(projectType models.ProjectType) (string, error) {
	if f.compressed == nil {
		return "", ErrNoImage
	}
	if err := f.advance(StateAnalyzing); err != nil {
		return "", ErrBusy
	}

	description, err := f.client.AnalyzeImage(f.compressed.Encoded, projectType)
	if err != nil {
		f.fail(err)
		return "", err
	}

	f.description = description
	f.describedFor = projectType
	f.errMessage = ""
	f.errClass = ""

	if err := f.advance(StateIdle); err != nil {
		return "", err
	}
	return description, nil
}

// Generate runs the remaining pipeline for the selected image: analyze
// (unless a description derived for the same project type is cached),
// create the app from the derived description, generate the packaged
// project, and deliver the archive. On success all transient fields reset
// to their idle defaults. On failure the remaining steps are skipped;
// anything already created remotely stays.
func (f *ImageFlow) Generate(name string, projectType models.ProjectType, config models.AppConfig) (*models.App, error) {
	if err := f.advance(StateValidating); err != nil {
		return nil, ErrBusy
	}

	if strings.TrimSpace(name) == "" {
		f.fail(ErrNameRequired)
		return nil, ErrNameRequired
	}
	if f.compressed == nil {
		f.fail(ErrNoImage)
		return nil, ErrNoImage
	}
	if f.sink == nil {
		f.fail(ErrNoSink)
		return nil, ErrNoSink
	}

	if err := f.advance(StateGenerating); err != nil {
		return nil, err
	}

	description := f.description
	if description == "" || f.describedFor != projectType {
		var err error
		description, err = f.client.AnalyzeImage(f.compressed.Encoded, projectType)
		if err != nil {
			f.fail(err)
			return nil, err
		}
		f.description = description
		f.describedFor = projectType
	}

	app, err := f.client.CreateFromPrompt(generator.PromptRequest{
		Prompt:      description,
		Nombre:      name,
		ProjectType: projectType,
		Config:      config,
		CreatedVia:  models.CreatedViaMockup,
	})
	if err != nil {
		f.fail(err)
		return nil, err
	}

	artifact, err := f.client.GenerateProject(app.ID)
	if err != nil {
		f.fail(err)
		return nil, err
	}
	artifact.Name = ArchiveName(name, projectType)

	if err := f.sink.Deliver(artifact); err != nil {
		f.fail(err)
		return nil, err
	}

	if err := f.advance(StateSucceeded); err != nil {
		return nil, err
	}
	f.Reset()

	return app, nil
}

// Reset clears the selection, analysis text and error, returning the flow
// to idle.
func (f *ImageFlow) Reset() {
	f.fileName = ""
	f.compressed = nil
	f.description = ""
	f.describedFor = ""
	f.errMessage = ""
	f.errClass = ""
	f.reset()
}

func (f *ImageFlow) fail(err error) {
	f.errMessage = err.Error()
	f.errClass = Classify(err)
	// every active state has an edge to failed
	_ = f.advance(StateFailed)
}

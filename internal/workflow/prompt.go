package workflow

import (
	"strings"
	"unicode/utf8"

	"github.com/SW2PDEPLOY/front/internal/generator"
	"github.com/SW2PDEPLOY/front/internal/models"
)

// MinPromptLen is the shortest accepted prompt after trimming whitespace,
// counted in characters, not bytes.
const MinPromptLen = 10

// PromptFlow drives text-prompt generation for a single screen instance:
// validate the prompt, create the app, generate the packaged project and
// deliver it. Failures are classified so the owner can tell bad input from
// a transient backend problem.
//
// A flow belongs to one owner and is not safe for concurrent use.
type PromptFlow struct {
	machine

	client GenerateClient
	sink   Sink

	errMessage string
	errClass   Class
}

func NewPromptFlow(client GenerateClient, sink Sink) *PromptFlow {
	return &PromptFlow{
		machine: newMachine(),
		client:  client,
		sink:    sink,
	}
}

// Err returns the message and class of the last failure.
func (p *PromptFlow) Err() (string, Class) { return p.errMessage, p.errClass }

// Generate validates the prompt, creates the app record and generates the
// project in strict sequence, delivering the archive on success. The flow
// ends in succeeded or failed; it never retries on its own.
func (p *PromptFlow) Generate(prompt, name string, projectType models.ProjectType, config models.AppConfig) (*models.App, error) {
	if err := p.advance(StateValidating); err != nil {
		return nil, ErrBusy
	}

	prompt = strings.TrimSpace(prompt)
	if utf8.RuneCountInString(prompt) < MinPromptLen {
		p.fail(ErrPromptTooShort)
		return nil, ErrPromptTooShort
	}
	if p.sink == nil {
		p.fail(ErrNoSink)
		return nil, ErrNoSink
	}

	if err := p.advance(StateGenerating); err != nil {
		return nil, err
	}

	app, err := p.client.CreateFromPrompt(generator.PromptRequest{
		Prompt:      prompt,
		Nombre:      name,
		ProjectType: projectType,
		Config:      config,
		CreatedVia:  models.CreatedViaPrompt,
	})
	if err != nil {
		p.fail(err)
		return nil, err
	}

	artifactName := name
	if strings.TrimSpace(artifactName) == "" {
		artifactName = app.Nombre
	}

	artifact, err := p.client.GenerateProject(app.ID)
	if err != nil {
		p.fail(err)
		return nil, err
	}
	artifact.Name = ArchiveName(artifactName, projectType)

	if err := p.sink.Deliver(artifact); err != nil {
		p.fail(err)
		return nil, err
	}

	if err := p.advance(StateSucceeded); err != nil {
		return nil, err
	}
	p.errMessage = ""
	p.errClass = ""

	return app, nil
}

// Reset returns the flow to idle, clearing any recorded failure.
func (p *PromptFlow) Reset() {
	p.errMessage = ""
	p.errClass = ""
	p.reset()
}

func (p *PromptFlow) fail(err error) {
	p.errMessage = err.Error()
	p.errClass = Classify(err)
	_ = p.advance(StateFailed)
}

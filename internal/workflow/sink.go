package workflow

import "github.com/SW2PDEPLOY/front/internal/generator"

// Sink receives a finished artifact at the end of a successful run. The
// HTTP server streams it to the browser as a download; the CLI writes it
// to disk.
type Sink interface {
	Deliver(artifact *generator.Artifact) error
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(artifact *generator.Artifact) error

func (f SinkFunc) Deliver(artifact *generator.Artifact) error {
	return f(artifact)
}

// Package llm holds the contract for the text-generation collaborator and the
// registry used to pick a provider by name.
package llm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownEngine = errors.New("unknown llm_name")

// Request is a single prompt. JSON asks the provider to reply with a JSON
// document; providers treat it as a hint and callers must still parse the
// reply defensively.
type Request struct {
	Prompt string
	JSON   bool
}

type Engine interface {
	Name() string
	GetModel() string
	Generate(ctx context.Context, in Request) (string, error)
}

// Engines is the set of configured providers and the one used when a caller
// does not name any.
type Engines struct {
	Default string
	byName  map[string]Engine
}

func NewEngines(def string, engs ...Engine) *Engines {
	e := &Engines{Default: strings.ToLower(strings.TrimSpace(def)), byName: map[string]Engine{}}
	for _, eng := range engs {
		if eng == nil {
			continue
		}
		e.byName[eng.Name()] = eng
	}
	return e
}

func (e *Engines) GetEngine(llmName string) (Engine, error) {
	name := strings.ToLower(strings.TrimSpace(llmName))
	if name == "" {
		name = e.Default
	}
	switch name {
	case "openai":
		name = "gpt"
	case "google":
		name = "gemini"
	}
	if eng, ok := e.byName[name]; ok {
		return eng, nil
	}
	return nil, fmt.Errorf("%w %q; use one of %s", ErrUnknownEngine, llmName, strings.Join(e.Names(), ", "))
}

func (e *Engines) Names() []string {
	out := make([]string, 0, len(e.byName))
	for n := range e.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

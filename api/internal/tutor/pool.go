package tutor

import (
	"tutor-proxy/api/internal/llm"
)

// Pool holds one Tutor per configured engine so callers can pick the
// collaborator per request.
type Pool struct {
	engs   *llm.Engines
	byName map[string]*Tutor
}

func NewPool(engs *llm.Engines, opts ...Option) (*Pool, error) {
	p := &Pool{engs: engs, byName: map[string]*Tutor{}}
	for _, name := range engs.Names() {
		eng, err := engs.GetEngine(name)
		if err != nil {
			return nil, err
		}
		t, err := New(eng, opts...)
		if err != nil {
			return nil, err
		}
		p.byName[name] = t
	}
	return p, nil
}

// Get resolves llmName like llm.Engines.GetEngine, so "" is the default
// engine and aliases are accepted.
func (p *Pool) Get(llmName string) (*Tutor, error) {
	eng, err := p.engs.GetEngine(llmName)
	if err != nil {
		return nil, err
	}
	return p.byName[eng.Name()], nil
}

func (p *Pool) Names() []string { return p.engs.Names() }

func (p *Pool) Default() string { return p.engs.Default }

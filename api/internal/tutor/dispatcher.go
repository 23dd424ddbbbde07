package tutor

import (
	"context"
	"fmt"
)

// Handler answers a question for one subject.
type Handler interface {
	Answer(ctx context.Context, question string) (string, error)
}

type HandlerFunc func(ctx context.Context, question string) (string, error)

func (f HandlerFunc) Answer(ctx context.Context, question string) (string, error) {
	return f(ctx, question)
}

// Route binds a subject to its handler.
type Route struct {
	Subject Subject
	Handler Handler
}

// Dispatcher picks the first route whose subject matches the label. Route
// order is priority order.
type Dispatcher struct {
	routes   []Route
	fallback string
}

func NewDispatcher(routes []Route) *Dispatcher {
	return &Dispatcher{routes: routes, fallback: fallbackMessage(routes)}
}

// Match returns the route chosen for label.
func (d *Dispatcher) Match(label Label) (Route, bool) {
	for _, r := range d.routes {
		if r.Subject.Matches(label) {
			return r, true
		}
	}
	return Route{}, false
}

// Dispatch answers question with the handler chosen for label, or with the
// fixed message naming the supported subjects when nothing matches.
func (d *Dispatcher) Dispatch(ctx context.Context, question string, label Label) (string, error) {
	r, ok := d.Match(label)
	if !ok {
		return d.fallback, nil
	}
	out, err := r.Handler.Answer(ctx, question)
	if err != nil {
		return "", fmt.Errorf("%s: %w", r.Subject.Name, err)
	}
	return out, nil
}

// Fallback is the canned reply for unrecognised labels.
func (d *Dispatcher) Fallback() string { return d.fallback }

func fallbackMessage(routes []Route) string {
	return fmt.Sprintf("I'm your educational tutor specializing in %s. How can I help you with a question today?",
		specialties(subjectsOf(routes)))
}

func subjectsOf(routes []Route) []Subject {
	out := make([]Subject, len(routes))
	for i, r := range routes {
		out[i] = r.Subject
	}
	return out
}

// specialties lists the academic subjects, leaving out general.
func specialties(subjects []Subject) string {
	var names []string
	for _, s := range subjects {
		if s.Name == General.Name {
			continue
		}
		names = append(names, s.Display)
	}
	if len(names) == 0 {
		return "general questions"
	}
	return joinList(names, "and")
}

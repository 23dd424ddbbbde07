// Package tutor classifies a question by subject, routes it to the subject's
// handler and lets the handler decide whether a local tool (calculator or
// physics solver) should contribute to the collaborator's final answer.
package tutor

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"tutor-proxy/api/internal/llm"
)

// Answer is the outcome of one question.
type Answer struct {
	Text    string
	Label   Label
	Subject string // empty when no route matched
}

type Tutor struct {
	engine     llm.Engine
	classifier *Classifier
	dispatcher *Dispatcher
	log        *zap.Logger
}

type options struct {
	log      *zap.Logger
	subjects []Subject
	handlers map[string]Handler
}

type Option func(*options)

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithSubjects narrows or reorders the subject table.
func WithSubjects(s ...Subject) Option {
	return func(o *options) { o.subjects = s }
}

// WithHandler replaces the handler built for subject.
func WithHandler(subject string, h Handler) Option {
	return func(o *options) { o.handlers[subject] = h }
}

func New(engine llm.Engine, opts ...Option) (*Tutor, error) {
	if engine == nil {
		return nil, errors.New("tutor: nil engine")
	}
	o := options{subjects: DefaultSubjects, handlers: map[string]Handler{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if len(o.subjects) == 0 {
		return nil, errors.New("tutor: no subjects")
	}

	routes := make([]Route, 0, len(o.subjects))
	for _, s := range o.subjects {
		h, ok := o.handlers[s.Name]
		if !ok {
			h = handlerFor(s, engine, o.log, o.subjects)
		}
		if h == nil {
			return nil, errors.New("tutor: no handler for subject " + s.Name)
		}
		routes = append(routes, Route{Subject: s, Handler: h})
	}

	return &Tutor{
		engine:     engine,
		classifier: NewClassifier(engine, o.subjects, o.log),
		dispatcher: NewDispatcher(routes),
		log:        o.log,
	}, nil
}

func (t *Tutor) Engine() llm.Engine { return t.engine }

func (t *Tutor) Classifier() *Classifier { return t.classifier }

func (t *Tutor) Dispatcher() *Dispatcher { return t.dispatcher }

// Ask classifies question and dispatches it. Only collaborator failures in
// the classification, decision or fallback calls are returned as errors.
func (t *Tutor) Ask(ctx context.Context, question string) (Answer, error) {
	start := time.Now()
	label, err := t.classifier.Classify(ctx, question)
	if err != nil {
		return Answer{}, err
	}

	ans := Answer{Label: label}
	if r, ok := t.dispatcher.Match(label); ok {
		ans.Subject = r.Subject.Name
	}

	ans.Text, err = t.dispatcher.Dispatch(ctx, question, label)
	if err != nil {
		return Answer{}, err
	}

	t.log.Info("question answered",
		zap.String("label", string(label)),
		zap.String("subject", ans.Subject),
		zap.String("engine", t.engine.Name()),
		zap.Duration("took", time.Since(start)))
	return ans, nil
}

package tutor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tutor-proxy/api/internal/llm"
)

// base carries what every subject handler shares: the collaborator and a
// logger named after the subject.
type base struct {
	engine llm.Engine
	log    *zap.Logger
}

func newBase(engine llm.Engine, log *zap.Logger, subject string) base {
	if log == nil {
		log = zap.NewNop()
	}
	return base{engine: engine, log: log.Named(subject)}
}

func (b base) generate(ctx context.Context, format string, args ...any) (string, error) {
	return b.engine.Generate(ctx, llm.Request{Prompt: fmt.Sprintf(format, args...)})
}

// decide runs the decision phase. Only a transport failure is an error; an
// unreadable reply is the empty decision.
func (b base) decide(ctx context.Context, format string, question string) (Decision, error) {
	raw, err := b.engine.Generate(ctx, llm.Request{Prompt: fmt.Sprintf(format, question), JSON: true})
	if err != nil {
		return Decision{}, fmt.Errorf("decision: %w", err)
	}
	d := ParseDecision(raw)
	b.log.Debug("decision parsed",
		zap.Stringer("source", d.Source),
		zap.Bool("needs_tool", d.NeedsTool),
		zap.String("question_type", d.QuestionType))
	return d, nil
}

// toolFailed logs a swallowed tool-phase error; the caller falls back.
func (b base) toolFailed(step string, err error) {
	b.log.Warn("tool phase failed, falling back", zap.String("step", step), zap.Error(err))
}

// handlerFor builds the handler serving subject.
func handlerFor(subject Subject, engine llm.Engine, log *zap.Logger, all []Subject) Handler {
	switch subject.Name {
	case Math.Name:
		return NewMathHandler(engine, log)
	case Physics.Name:
		return NewPhysicsHandler(engine, log)
	case Chemistry.Name:
		return NewChemistryHandler(engine, log)
	case CS.Name:
		return NewCSHandler(engine, log)
	case General.Name:
		return NewGeneralHandler(engine, log, specialties(all))
	}
	return nil
}

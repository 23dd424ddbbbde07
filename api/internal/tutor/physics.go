package tutor

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tutor-proxy/api/internal/llm"
	"tutor-proxy/api/internal/tools/physics"
)

// PhysicsHandler runs the formula solver when the collaborator says the
// question needs a calculation.
type PhysicsHandler struct{ base }

func NewPhysicsHandler(engine llm.Engine, log *zap.Logger) *PhysicsHandler {
	return &PhysicsHandler{newBase(engine, log, "physics")}
}

func (h *PhysicsHandler) Answer(ctx context.Context, question string) (string, error) {
	d, err := h.decide(ctx, physicsDecisionPrompt, question)
	if err != nil {
		return "", err
	}

	if d.NeedsTool {
		res := physics.Analyze(question)
		h.log.Debug("physics solver",
			zap.String("problem_type", d.ProblemType),
			zap.Bool("solved", res.Solved),
			zap.String("result", res.Text))
		if res.Solved {
			out, err := h.generate(ctx, physicsFinalPrompt, question, res.Text, strings.Join(d.Concepts, ", "))
			if err == nil {
				return out, nil
			}
			h.toolFailed("final", err)
		}
	}

	return h.generate(ctx, physicsFallbackPrompt, question)
}

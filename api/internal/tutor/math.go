package tutor

import (
	"context"

	"go.uber.org/zap"

	"tutor-proxy/api/internal/llm"
	"tutor-proxy/api/internal/tools/calculator"
)

// MathHandler runs the calculator on an expression the collaborator lifted
// out of the question.
type MathHandler struct{ base }

func NewMathHandler(engine llm.Engine, log *zap.Logger) *MathHandler {
	return &MathHandler{newBase(engine, log, "math")}
}

func (h *MathHandler) Answer(ctx context.Context, question string) (string, error) {
	d, err := h.decide(ctx, mathDecisionPrompt, question)
	if err != nil {
		return "", err
	}

	if d.NeedsTool && d.Expression != "" {
		// the apology is passed on as well; it steers the model to a symbolic answer
		result := calculator.Evaluate(d.Expression)
		h.log.Debug("calculator", zap.String("expression", d.Expression), zap.String("result", result))
		out, err := h.generate(ctx, mathFinalPrompt, question, result)
		if err == nil {
			return out, nil
		}
		h.toolFailed("final", err)
	}

	return h.generate(ctx, mathFallbackPrompt, question)
}

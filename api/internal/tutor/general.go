package tutor

import (
	"context"

	"go.uber.org/zap"

	"tutor-proxy/api/internal/llm"
)

// GeneralHandler answers greetings and off-topic questions with a short,
// friendly reply.
type GeneralHandler struct {
	base
	specialties string
}

func NewGeneralHandler(engine llm.Engine, log *zap.Logger, specialties string) *GeneralHandler {
	return &GeneralHandler{base: newBase(engine, log, "general"), specialties: specialties}
}

func (h *GeneralHandler) Answer(ctx context.Context, question string) (string, error) {
	return h.generate(ctx, generalPrompt, question, h.specialties)
}

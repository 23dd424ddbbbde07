package tutor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tutor-proxy/api/internal/llm"
)

// Classifier asks the collaborator which subject a question belongs to.
type Classifier struct {
	engine   llm.Engine
	subjects []Subject
	log      *zap.Logger
}

func NewClassifier(engine llm.Engine, subjects []Subject, log *zap.Logger) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Classifier{engine: engine, subjects: subjects, log: log}
}

// Classify returns the trimmed, lower-cased reply as is. The reply is not
// checked against the vocabulary; the dispatcher matches it by substring.
func (c *Classifier) Classify(ctx context.Context, question string) (Label, error) {
	reply, err := c.engine.Generate(ctx, llm.Request{Prompt: buildClassifyPrompt(c.subjects, question)})
	if err != nil {
		return "", fmt.Errorf("classify: %w", err)
	}
	label := Label(strings.ToLower(strings.TrimSpace(reply)))
	c.log.Debug("question classified", zap.String("label", string(label)))
	return label, nil
}

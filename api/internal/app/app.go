// Package app wires configuration into engines and tutors for the binaries.
package app

import (
	"go.uber.org/zap"

	"tutor-proxy/api/internal/config"
	"tutor-proxy/api/internal/llm"
	"tutor-proxy/api/internal/llm/gemini"
	"tutor-proxy/api/internal/llm/gpt"
	"tutor-proxy/api/internal/tutor"
)

// Engines builds every provider that has an API key, each behind its own
// rate limiter.
func Engines(cfg *config.Config) *llm.Engines {
	var engs []llm.Engine
	if cfg.GeminiAPIKey != "" {
		engs = append(engs, llm.WithRateLimit(gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel), cfg.RateLimit, cfg.RateBurst))
	}
	if cfg.OpenAIAPIKey != "" {
		eng := gpt.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if cfg.OpenAIURL != "" {
			eng.BaseURL = cfg.OpenAIURL
		}
		engs = append(engs, llm.WithRateLimit(eng, cfg.RateLimit, cfg.RateBurst))
	}
	return llm.NewEngines(cfg.DefaultLLM, engs...)
}

// Tutors builds one tutor per configured engine over the configured subjects.
func Tutors(cfg *config.Config, log *zap.Logger) (*tutor.Pool, error) {
	subjects, err := tutor.ParseSubjects(cfg.Subjects)
	if err != nil {
		return nil, err
	}
	engs := Engines(cfg)
	if _, err := engs.GetEngine(""); err != nil {
		return nil, err
	}
	return tutor.NewPool(engs, tutor.WithLogger(log), tutor.WithSubjects(subjects...))
}

package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"tutor-proxy/api/internal/llm"
	"tutor-proxy/api/internal/util"
)

var (
	reFencedCode  = regexp.MustCompile("```(?:\\w+)?\\s*([\\s\\S]+?)```")
	reInlineCode  = regexp.MustCompile(`((?:(?:public|private|protected|class|def|function|var|let|const)[\s\S]*?[{;])|(?:for|while|if)[\s\S]*?[{;])`)
	reLanguage    = stringFieldRe("language")
	reComplexity  = stringFieldRe("complexity")
	reErrors      = listFieldRe("errors")
	reImprovement = listFieldRe("improvements")
)

// KnownAlgorithms are the algorithm names the cs handler explains directly.
var KnownAlgorithms = []string{
	"binary search", "linear search", "bubble sort", "insertion sort",
	"selection sort", "merge sort", "quick sort", "heap sort",
	"breadth-first search", "depth-first search", "dijkstra",
	"dynamic programming", "greedy algorithm", "backtracking",
}

// CodeAnalysis is the collaborator's review of a code snippet.
type CodeAnalysis struct {
	Language     string   `json:"language"`
	Errors       []string `json:"errors"`
	Improvements []string `json:"improvements"`
	Complexity   string   `json:"complexity"`
}

var failedAnalysis = CodeAnalysis{
	Language:   "unknown",
	Errors:     []string{"Could not analyze code"},
	Complexity: "unknown",
}

// CSHandler covers code review and algorithm explanations.
type CSHandler struct{ base }

func NewCSHandler(engine llm.Engine, log *zap.Logger) *CSHandler {
	return &CSHandler{newBase(engine, log, "cs")}
}

func (h *CSHandler) Answer(ctx context.Context, question string) (string, error) {
	d, err := h.decide(ctx, csDecisionPrompt, question)
	if err != nil {
		return "", err
	}

	if d.Wants("code_analysis") {
		if code := ExtractCode(question); code != "" {
			a := h.AnalyzeCode(ctx, code)
			out, err := h.generate(ctx, codeReviewPrompt, question, a.Language,
				bulletList(a.Errors, "No errors found."),
				bulletList(a.Improvements, "No specific improvements suggested."),
				a.Complexity)
			if err == nil {
				return out, nil
			}
			h.toolFailed("code_analysis", err)
		}
	}

	if d.Wants("algorithm") {
		if name := FindAlgorithm(question); name != "" {
			return h.ExplainAlgorithm(ctx, name), nil
		}
	}

	return h.generate(ctx, csFallbackPrompt, question)
}

// AnalyzeCode never fails: a transport error yields the "could not analyze"
// placeholder and an unparseable reply is recovered field by field.
func (h *CSHandler) AnalyzeCode(ctx context.Context, code string) CodeAnalysis {
	raw, err := h.engine.Generate(ctx, llm.Request{Prompt: fmt.Sprintf(codeAnalysisPrompt, code), JSON: true})
	if err != nil {
		h.toolFailed("analyze_code", err)
		return failedAnalysis
	}
	return ParseCodeAnalysis(raw)
}

// ExplainAlgorithm returns the collaborator's explanation of name, or a fixed
// apology when the call fails.
func (h *CSHandler) ExplainAlgorithm(ctx context.Context, name string) string {
	out, err := h.generate(ctx, algorithmPrompt, name)
	if err != nil {
		h.toolFailed("explain_algorithm", err)
		return fmt.Sprintf("I couldn't generate an explanation for the %s algorithm.", name)
	}
	return out
}

// ParseCodeAnalysis reads a code-analysis reply: strict JSON first, then
// field-level pattern recovery with "unknown" defaults.
func ParseCodeAnalysis(raw string) CodeAnalysis {
	if obj := util.JSONObject(raw); obj != "" {
		var a CodeAnalysis
		if err := json.Unmarshal([]byte(obj), &a); err == nil {
			if a.Language == "" {
				a.Language = "unknown"
			}
			if a.Complexity == "" {
				a.Complexity = "unknown"
			}
			return a
		}
	}

	a := CodeAnalysis{Language: "unknown", Complexity: "unknown"}
	if m := reLanguage.FindStringSubmatch(raw); m != nil {
		a.Language = unquote(m[1])
	}
	if m := reErrors.FindStringSubmatch(raw); m != nil {
		a.Errors = quotedItems(m[1])
	}
	if m := reImprovement.FindStringSubmatch(raw); m != nil {
		a.Improvements = quotedItems(m[1])
	}
	if m := reComplexity.FindStringSubmatch(raw); m != nil {
		a.Complexity = unquote(m[1])
	}
	return a
}

// ExtractCode returns a fenced code block from text, or failing that the first
// span that starts like a declaration or control statement.
func ExtractCode(text string) string {
	if m := reFencedCode.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := reInlineCode.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// FindAlgorithm returns the first known algorithm named in text.
func FindAlgorithm(text string) string {
	lower := strings.ToLower(text)
	for _, a := range KnownAlgorithms {
		if strings.Contains(lower, a) {
			return a
		}
	}
	return ""
}

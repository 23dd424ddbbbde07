package tutor

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"tutor-proxy/api/internal/llm"
)

var (
	reEquation = regexp.MustCompile(`([A-Za-z0-9\s\+\(\)]+\s*->\s*[A-Za-z0-9\s\+\(\)]+)`)
	reElement  = regexp.MustCompile(`[A-Z][a-z]?\d*`)
	reCompound = regexp.MustCompile(`(?i)([A-Za-z0-9\-]+ol|[A-Za-z0-9\-]+ane|[A-Za-z0-9\-]+ene|[A-Za-z0-9\-]+oic acid|[A-Za-z0-9\-]+aldehyde|[A-Za-z0-9\-]+one|[A-Za-z0-9\-]+amine)`)
)

var errNotEquation = errors.New("not a chemical equation")

// ChemistryHandler covers equation balancing and functional-group lookup.
// Both tools are collaborator prompts; only the extraction is local.
type ChemistryHandler struct{ base }

func NewChemistryHandler(engine llm.Engine, log *zap.Logger) *ChemistryHandler {
	return &ChemistryHandler{newBase(engine, log, "chemistry")}
}

func (h *ChemistryHandler) Answer(ctx context.Context, question string) (string, error) {
	d, err := h.decide(ctx, chemistryDecisionPrompt, question)
	if err != nil {
		return "", err
	}

	if d.Wants("equation_balancing") && strings.Contains(question, "->") {
		if eq := ExtractEquation(question); eq != "" {
			out, err := h.explainBalance(ctx, question, eq)
			if err == nil {
				return out, nil
			}
			h.toolFailed("equation_balancing", err)
		}
	}

	if d.Wants("functional_groups") {
		if compound := ExtractCompound(question); compound != "" {
			out, err := h.explainGroups(ctx, question, compound)
			if err == nil {
				return out, nil
			}
			h.toolFailed("functional_groups", err)
		}
	}

	return h.generate(ctx, chemistryFallbackPrompt, question)
}

func (h *ChemistryHandler) explainBalance(ctx context.Context, question, equation string) (string, error) {
	balanced, err := h.BalanceEquation(ctx, equation)
	if err != nil {
		return "", err
	}
	return h.generate(ctx, balanceExplainPrompt, question, balanced)
}

func (h *ChemistryHandler) explainGroups(ctx context.Context, question, compound string) (string, error) {
	groups, err := h.FunctionalGroups(ctx, compound)
	if err != nil {
		return "", err
	}
	if len(groups) == 0 {
		return "", errors.New("no functional groups identified")
	}
	return h.generate(ctx, functionalGroupsExplainPrompt, question, compound, strings.Join(groups, ", "))
}

// BalanceEquation asks the collaborator for the balanced form of equation.
func (h *ChemistryHandler) BalanceEquation(ctx context.Context, equation string) (string, error) {
	if !reElement.MatchString(equation) || !strings.Contains(equation, "->") {
		return "", errNotEquation
	}
	out, err := h.generate(ctx, balancePrompt, equation)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", errors.New("empty balanced equation")
	}
	return out, nil
}

// FunctionalGroups asks the collaborator for the groups present in compound.
func (h *ChemistryHandler) FunctionalGroups(ctx context.Context, compound string) ([]string, error) {
	out, err := h.generate(ctx, functionalGroupsPrompt, compound)
	if err != nil {
		return nil, err
	}
	var groups []string
	for _, g := range strings.Split(out, ",") {
		if g = strings.TrimSpace(g); g != "" {
			groups = append(groups, g)
		}
	}
	return groups, nil
}

// ExtractEquation returns the first "reactants -> products" span in text.
func ExtractEquation(text string) string {
	m := reEquation.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ExtractCompound returns the first word that looks like an organic compound
// name by its suffix.
func ExtractCompound(text string) string {
	m := reCompound.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

package tutor

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"tutor-proxy/api/internal/util"
)

// DecisionSource tells which parse layer produced a Decision.
type DecisionSource int

const (
	DecisionNone DecisionSource = iota
	DecisionRecovered
	DecisionStrict
)

func (s DecisionSource) String() string {
	switch s {
	case DecisionStrict:
		return "strict"
	case DecisionRecovered:
		return "recovered"
	}
	return "none"
}

// Decision is the collaborator's answer to "should a local tool run?".
// Fields a subject does not use stay empty.
type Decision struct {
	NeedsTool    bool
	Expression   string
	ProblemType  string
	Concepts     []string
	QuestionType string
	Extract      string

	Raw    string
	Source DecisionSource
}

// Wants reports whether the question type names kind. Models sometimes echo
// the whole "a/b/c" template, so this is a substring test.
func (d Decision) Wants(kind string) bool {
	return d.QuestionType != "" && strings.Contains(strings.ToLower(d.QuestionType), kind)
}

// flexBool accepts true, "true", "yes" and 1.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.ToLower(strings.TrimSpace(string(data))), `"`)
	switch s {
	case "true", "yes", "1":
		*b = true
	default:
		*b = false
	}
	return nil
}

type decisionJSON struct {
	NeedsCalculator    *flexBool `json:"needs_calculator"`
	NeedsCalculation   *flexBool `json:"needs_calculation"`
	NeedsTool          *flexBool `json:"needs_tool"`
	Expression         string    `json:"expression"`
	ProblemType        string    `json:"problem_type"`
	ConceptualElements []string  `json:"conceptual_elements"`
	QuestionType       string    `json:"question_type"`
	Extract            string    `json:"extract"`
}

var (
	reNeedsTool    = regexp.MustCompile(`"needs_(?:calculator|calculation|tool)"\s*:\s*"?(true|false)`)
	reExpression   = stringFieldRe("expression")
	reProblemType  = stringFieldRe("problem_type")
	reQuestionType = stringFieldRe("question_type")
	reExtract      = stringFieldRe("extract")
	reConcepts     = listFieldRe("conceptual_elements")
	reQuoted       = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)
)

func stringFieldRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`"` + name + `"\s*:\s*"((?:[^"\\]|\\.)*)"`)
}

func listFieldRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)"` + name + `"\s*:\s*\[(.*?)\]`)
}

// ParseDecision reads a decision reply in three layers: strict JSON, then
// field-by-field pattern recovery, then the empty "no tool" decision.
func ParseDecision(raw string) Decision {
	d := Decision{Raw: raw}

	if obj := util.JSONObject(raw); obj != "" {
		var dj decisionJSON
		if err := json.Unmarshal([]byte(obj), &dj); err == nil {
			d.NeedsTool = isTrue(dj.NeedsCalculator) || isTrue(dj.NeedsCalculation) || isTrue(dj.NeedsTool)
			d.Expression = strings.TrimSpace(dj.Expression)
			d.ProblemType = strings.TrimSpace(dj.ProblemType)
			d.Concepts = dj.ConceptualElements
			d.QuestionType = strings.TrimSpace(dj.QuestionType)
			d.Extract = strings.TrimSpace(dj.Extract)
			d.Source = DecisionStrict
			return d
		}
	}

	found := false
	if m := reNeedsTool.FindStringSubmatch(raw); m != nil {
		d.NeedsTool = m[1] == "true"
		found = true
	}
	for _, f := range []struct {
		re  *regexp.Regexp
		dst *string
	}{
		{reExpression, &d.Expression},
		{reProblemType, &d.ProblemType},
		{reQuestionType, &d.QuestionType},
		{reExtract, &d.Extract},
	} {
		if m := f.re.FindStringSubmatch(raw); m != nil {
			*f.dst = strings.TrimSpace(unquote(m[1]))
			found = true
		}
	}
	if m := reConcepts.FindStringSubmatch(raw); m != nil {
		d.Concepts = quotedItems(m[1])
		found = true
	}
	if found {
		d.Source = DecisionRecovered
		return d
	}
	return Decision{Raw: raw}
}

func isTrue(b *flexBool) bool { return b != nil && bool(*b) }

func unquote(s string) string {
	if u, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return u
	}
	return s
}

func quotedItems(s string) []string {
	var out []string
	for _, m := range reQuoted.FindAllStringSubmatch(s, -1) {
		out = append(out, unquote(m[1]))
	}
	return out
}

package tutor

import (
	"context"
	"strings"
	"sync"

	"tutor-proxy/api/internal/llm"
)

// fakeEngine answers prompts by the first rule whose marker occurs in the
// prompt and records every request.
type fakeEngine struct {
	mu       sync.Mutex
	rules    []fakeRule
	def      string
	requests []llm.Request
}

type fakeRule struct {
	marker string
	reply  string
	err    error
}

func newFake() *fakeEngine { return &fakeEngine{def: "default answer"} }

func (f *fakeEngine) on(marker, reply string) *fakeEngine {
	f.rules = append(f.rules, fakeRule{marker: marker, reply: reply})
	return f
}

func (f *fakeEngine) fail(marker string, err error) *fakeEngine {
	f.rules = append(f.rules, fakeRule{marker: marker, err: err})
	return f
}

func (f *fakeEngine) Name() string     { return "fake" }
func (f *fakeEngine) GetModel() string { return "fake-1" }

func (f *fakeEngine) Generate(_ context.Context, in llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, in)
	for _, r := range f.rules {
		if strings.Contains(in.Prompt, r.marker) {
			return r.reply, r.err
		}
	}
	return f.def, nil
}

// prompt returns the first recorded prompt containing marker.
func (f *fakeEngine) prompt(marker string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if strings.Contains(r.Prompt, marker) {
			return r.Prompt, true
		}
	}
	return "", false
}

func (f *fakeEngine) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// prompt markers
const (
	mClassify        = "Classify the subject"
	mMathDecision    = "decide when to use a calculator tool"
	mMathFinal       = "helpful math tutor. The question was"
	mMathFallback    = "Answer this question thoroughly"
	mPhysicsDecision = "decide when to use calculation tools"
	mPhysicsFinal    = "physics professor explaining a problem"
	mPhysicsFallback = "physics professor explaining a concept"
	mChemDecision    = "chemistry teaching assistant"
	mBalance         = "Balance this chemical equation"
	mBalanceExplain  = "explaining how to balance equations"
	mGroups          = "Identify all functional groups"
	mGroupsExplain   = "explaining functional groups"
	mChemFallback    = "chemistry professor answering"
	mCSDecision      = "computer science teaching assistant"
	mCodeAnalysis    = "Analyze this code for errors"
	mCodeReview      = "professor reviewing code"
	mAlgorithm       = "algorithm in detail"
	mCSFallback      = "computer science professor answering"
	mGeneral         = "friendly educational tutor bot"
)

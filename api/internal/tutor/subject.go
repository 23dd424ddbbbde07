package tutor

import (
	"fmt"
	"strings"
)

// Label is the classifier's raw, lower-cased reply. It is matched against
// subject keywords by substring, so one label can mention several subjects.
type Label string

// Subject is a routing bucket.
type Subject struct {
	Name     string
	Display  string
	Keywords []string
}

var (
	Math      = Subject{Name: "math", Display: "math", Keywords: []string{"math"}}
	Physics   = Subject{Name: "physics", Display: "physics", Keywords: []string{"physics"}}
	Chemistry = Subject{Name: "chemistry", Display: "chemistry", Keywords: []string{"chemistry"}}
	CS        = Subject{Name: "cs", Display: "computer science", Keywords: []string{"computer", "cs"}}
	General   = Subject{Name: "general", Display: "general", Keywords: []string{"general"}}
)

// DefaultSubjects is the full table in routing priority order.
var DefaultSubjects = []Subject{Math, Physics, Chemistry, CS, General}

// Matches reports whether any keyword occurs in label.
func (s Subject) Matches(label Label) bool {
	for _, k := range s.Keywords {
		if strings.Contains(string(label), k) {
			return true
		}
	}
	return false
}

// ParseSubjects maps configuration names onto subjects, keeping their order.
func ParseSubjects(names []string) ([]Subject, error) {
	out := make([]Subject, 0, len(names))
	seen := map[string]bool{}
	for _, n := range names {
		s, err := ParseSubject(n)
		if err != nil {
			return nil, err
		}
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("tutor: no subjects configured")
	}
	return out, nil
}

func ParseSubject(name string) (Subject, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "math", "maths", "mathematics":
		return Math, nil
	case "physics":
		return Physics, nil
	case "chemistry":
		return Chemistry, nil
	case "cs", "computer science", "computer-science", "computer_science":
		return CS, nil
	case "general":
		return General, nil
	}
	return Subject{}, fmt.Errorf("tutor: unknown subject %q", name)
}

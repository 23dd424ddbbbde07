package physics

import (
	"errors"
	"fmt"
	"strings"

	"tutor-proxy/api/internal/util"
)

// Gravity is the gravitational acceleration used for potential energy, m/s².
const Gravity = 9.8

// MinKinematicsValues is how many of v0, v, a, t, d must be known before the
// kinematic relations are tried.
const MinKinematicsValues = 3

// Unsolved is returned when the text does not describe a problem shape the
// solver knows.
const Unsolved = "I couldn't automatically solve this physics problem with the given information."

var errDivisionByZero = errors.New("float division by zero")

// Result is a solver outcome. Solved is false when nothing was computed,
// either because no shape matched or because the arithmetic failed.
type Result struct {
	Text   string
	Solved bool
}

// Solve extracts values from text and returns a human-readable answer or a
// fixed failure string.
func Solve(text string) string {
	return Analyze(text).Text
}

// Analyze is Solve with the solved flag kept.
func Analyze(text string) Result {
	return SolveValues(Extract(text))
}

// SolveValues picks the first matching problem shape for v: force, then
// energy, then kinematics.
func SolveValues(v Values) Result {
	switch {
	case v.Has(Mass, Acceleration):
		f := CalculateForce(v[Mass], v[Acceleration])
		return Result{Text: fmt.Sprintf("Force = %s N (using F = ma)", format(f)), Solved: true}

	case v.Has(Mass) && (v.Has(Height) || v.Has(Velocity)):
		e := CalculateEnergy(v[Mass], lookup(v, Height), lookup(v, Velocity))
		var parts []string
		if e.Potential != nil {
			parts = append(parts, fmt.Sprintf("Potential energy = %s J", format(*e.Potential)))
		}
		if e.Kinetic != nil {
			parts = append(parts, fmt.Sprintf("Kinetic energy = %s J", format(*e.Kinetic)))
		}
		return Result{Text: strings.Join(parts, ", "), Solved: true}
	}

	known := Values{}
	for _, k := range []string{InitialVelocity, FinalVelocity, Acceleration, Time, Displacement} {
		if f, ok := v[k]; ok {
			known[k] = f
		}
	}
	if len(known) < MinKinematicsValues {
		return Result{Text: Unsolved}
	}

	derived, err := CalculateKinematics(known)
	if err != nil {
		return Result{Text: fmt.Sprintf("I couldn't automatically solve this physics problem: %v", err)}
	}
	if len(derived) == 0 {
		return Result{Text: Unsolved}
	}
	parts := make([]string, 0, len(derived))
	for _, d := range derived {
		parts = append(parts, fmt.Sprintf("%s = %s", strings.ReplaceAll(d.Name, "_", " "), format(d.Value)))
	}
	return Result{Text: strings.Join(parts, ", "), Solved: true}
}

// CalculateForce applies F = ma.
func CalculateForce(mass, acceleration float64) float64 {
	return mass * acceleration
}

// Energy holds whichever of potential and kinetic energy could be computed.
type Energy struct {
	Potential *float64
	Kinetic   *float64
}

// CalculateEnergy computes mgh when height is given and ½mv² when velocity is
// given.
func CalculateEnergy(mass float64, height, velocity *float64) Energy {
	var e Energy
	if height != nil {
		pe := mass * Gravity * *height
		e.Potential = &pe
	}
	if velocity != nil {
		ke := 0.5 * mass * *velocity * *velocity
		e.Kinetic = &ke
	}
	return e
}

// Derived is one quantity solved for by CalculateKinematics.
type Derived struct {
	Name  string
	Value float64
}

// CalculateKinematics solves for the quantities missing from v using the
// constant-acceleration relations. Each rule only consults the values in v,
// never another rule's output. When two rules derive the same quantity the
// later value wins but the quantity keeps the position where it first
// appeared.
func CalculateKinematics(v Values) ([]Derived, error) {
	var out []Derived
	set := func(name string, value float64) {
		for i := range out {
			if out[i].Name == name {
				out[i].Value = value
				return
			}
		}
		out = append(out, Derived{Name: name, Value: value})
	}

	v0, v0ok := v[InitialVelocity]
	vf, vfok := v[FinalVelocity]
	a, aok := v[Acceleration]
	t, tok := v[Time]
	d, dok := v[Displacement]

	if v0ok && aok && tok {
		if !vfok {
			set(FinalVelocity, v0+a*t)
		}
		if !dok {
			set(Displacement, v0*t+0.5*a*t*t)
		}
	}

	if vfok && v0ok && tok {
		if !aok {
			acc, err := div(vf-v0, t)
			if err != nil {
				return nil, err
			}
			set(Acceleration, acc)
		}
		if !dok {
			set(Displacement, 0.5*(v0+vf)*t)
		}
	}

	if vfok && v0ok && aok && !dok {
		disp, err := div(vf*vf-v0*v0, 2*a)
		if err != nil {
			return nil, err
		}
		set(Displacement, disp)
	}

	if dok && v0ok && tok {
		if !aok {
			acc, err := div(2*(d-v0*t), t*t)
			if err != nil {
				return nil, err
			}
			set(Acceleration, acc)
		}
		if !vfok {
			vel, err := div(2*d, t)
			if err != nil {
				return nil, err
			}
			set(FinalVelocity, vel-v0)
		}
	}

	return out, nil
}

func div(a, b float64) (float64, error) {
	if b == 0 {
		return 0, errDivisionByZero
	}
	return a / b, nil
}

func lookup(v Values, key string) *float64 {
	f, ok := v[key]
	if !ok {
		return nil
	}
	return &f
}

// format rounds away binary noise (2·9.8·3 prints as 58.8) and keeps one
// decimal on integral values.
func format(f float64) string {
	return util.FormatFloat(util.RoundFloat(f, 10))
}

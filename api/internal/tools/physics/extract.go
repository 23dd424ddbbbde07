// Package physics pulls unit-tagged quantities out of problem text and solves
// the three closed-form problem shapes a school physics question usually has:
// force, energy and constant-acceleration kinematics.
package physics

import (
	"regexp"
	"strconv"
)

// Quantity names used as keys in Values.
const (
	Mass            = "mass"
	Velocity        = "velocity"
	Acceleration    = "acceleration"
	Time            = "time"
	Displacement    = "displacement"
	Height          = "height"
	Force           = "force"
	InitialVelocity = "initial_velocity"
	FinalVelocity   = "final_velocity"
)

// Values maps a quantity name to its magnitude. An absent key means the
// quantity was not found in the text.
type Values map[string]float64

func (v Values) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := v[k]; !ok {
			return false
		}
	}
	return true
}

const number = `(\d+(?:\.\d+)?)`

// Unit tokens are matched case-sensitively and without conversion. The
// displacement and height patterns overlap on purpose: "5 m high" fills both.
var patterns = []struct {
	key string
	re  *regexp.Regexp
}{
	{Mass, regexp.MustCompile(number + `\s*(?:kg|kilograms?)`)},
	{Velocity, regexp.MustCompile(number + `\s*(?:m/s|meters? per second)`)},
	{Acceleration, regexp.MustCompile(number + `\s*(?:m/s²|meters? per second squared)`)},
	{Time, regexp.MustCompile(number + `\s*(?:s|seconds?)`)},
	{Displacement, regexp.MustCompile(number + `\s*(?:m|meters?)`)},
	{Height, regexp.MustCompile(number + `\s*(?:m|meters?) high`)},
	{Force, regexp.MustCompile(number + `\s*(?:N|newtons?)`)},
	{InitialVelocity, regexp.MustCompile(`initial velocity\s*(?:of\s*|is\s*|=\s*)?` + number + `\s*(?:m/s|meters? per second)`)},
	{FinalVelocity, regexp.MustCompile(`final velocity\s*(?:of\s*|is\s*|=\s*)?` + number + `\s*(?:m/s|meters? per second)`)},
}

// Extract returns the first match of every known quantity in text. It never
// fails; an empty map means nothing was recognised.
func Extract(text string) Values {
	out := Values{}
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		f, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		out[p.key] = f
	}
	return out
}

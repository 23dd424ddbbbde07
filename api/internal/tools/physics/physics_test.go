package physics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Values
	}{
		{
			name: "mass and weight units",
			text: "a 12.5 kg box pushed with 40 N",
			want: Values{Mass: 12.5, Force: 40},
		},
		{
			name: "spelled out units",
			text: "3 kilograms falling for 2 seconds",
			want: Values{Mass: 3, Time: 2},
		},
		{
			name: "nothing recognised",
			text: "why is the sky blue?",
			want: Values{},
		},
		{
			name: "units are not converted",
			text: "a 500 g ball moving at 36 km/h",
			want: Values{},
		},
		{
			name: "first occurrence wins",
			text: "first 2 kg then 7 kg",
			want: Values{Mass: 2},
		},
		{
			name: "qualified velocities",
			text: "initial velocity of 3 m/s and final velocity is 9 m/s",
			want: Values{Velocity: 3, Displacement: 3, InitialVelocity: 3, FinalVelocity: 9},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Extract(tc.text)); diff != "" {
				t.Errorf("Extract(%q) mismatch (-want +got):\n%s", tc.text, diff)
			}
		})
	}
}

// Plain meter units feed displacement as well as height, and m/s² also
// satisfies the m/s and m patterns. Both overlaps are kept as observed.
func TestExtract_KnownOverlaps(t *testing.T) {
	v := Extract("a shelf 5 m high")
	assert.Equal(t, 5.0, v[Displacement])
	assert.Equal(t, 5.0, v[Height])

	v = Extract("mass of 5 kg and acceleration of 2 m/s²")
	assert.Equal(t, 5.0, v[Mass])
	assert.Equal(t, 2.0, v[Acceleration])
	assert.Equal(t, 2.0, v[Velocity])
	assert.Equal(t, 2.0, v[Displacement])
	assert.NotContains(t, v, Time)
}

func TestSolve_Force(t *testing.T) {
	assert.Equal(t, "Force = 10.0 N (using F = ma)", Solve("mass of 5 kg and acceleration of 2 m/s²"))
}

func TestSolve_Energy(t *testing.T) {
	assert.Equal(t, "Potential energy = 58.8 J", Solve("mass 2 kg, height 3 m high"))
	assert.Equal(t, "Kinetic energy = 9.0 J", Solve("a 2 kg cart at 3 m/s"))

	r := SolveValues(Values{Mass: 2, Height: 3, Velocity: 3})
	assert.True(t, r.Solved)
	assert.Equal(t, "Potential energy = 58.8 J, Kinetic energy = 9.0 J", r.Text)
}

func TestSolve_ForceBeatsEnergy(t *testing.T) {
	r := SolveValues(Values{Mass: 2, Acceleration: 3, Height: 10})
	assert.Equal(t, "Force = 6.0 N (using F = ma)", r.Text)
}

func TestSolveValues_Kinematics(t *testing.T) {
	r := SolveValues(Values{InitialVelocity: 0, Acceleration: 2, Time: 5})
	require.True(t, r.Solved)
	assert.Equal(t, "final velocity = 10.0, displacement = 25.0", r.Text)
}

func TestSolve_KinematicsFromText(t *testing.T) {
	text := "A cart travels 25 m starting with an initial velocity of 0 m/s over 5 s."
	assert.Equal(t, "acceleration = 2.0, final velocity = 10.0", Solve(text))
}

func TestCalculateKinematics_LaterRuleOverwritesInPlace(t *testing.T) {
	got, err := CalculateKinematics(Values{InitialVelocity: 0, FinalVelocity: 12, Acceleration: 2, Time: 5})
	require.NoError(t, err)
	assert.Equal(t, []Derived{{Name: Displacement, Value: 36}}, got)
}

func TestCalculateKinematics_DoesNotChainRules(t *testing.T) {
	// a and t alone: nothing should be derived even though d is known.
	got, err := CalculateKinematics(Values{Acceleration: 2, Time: 5, Displacement: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSolve_Unsolved(t *testing.T) {
	assert.Equal(t, Unsolved, Solve("a car travels 100 m"))
	assert.Equal(t, Unsolved, Solve("what is inertia?"))

	r := SolveValues(Values{Acceleration: 2, Time: 5, Displacement: 10})
	assert.False(t, r.Solved)
	assert.Equal(t, Unsolved, r.Text)
}

func TestSolve_DivisionByZero(t *testing.T) {
	r := SolveValues(Values{InitialVelocity: 0, FinalVelocity: 10, Time: 0})
	assert.False(t, r.Solved)
	assert.Equal(t, "I couldn't automatically solve this physics problem: float division by zero", r.Text)
}

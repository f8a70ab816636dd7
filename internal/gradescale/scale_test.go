package gradescale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mira/gradekeeper/internal/gradescale"
)

func TestGradeToGPA_CanonicalGrades(t *testing.T) {
	tests := []struct {
		grade string
		gpa   float64
	}{
		{"A+", 4.3},
		{"A", 4.0},
		{"B+", 3.3},
		{"B", 3.0},
		{"C+", 2.3},
		{"C", 2.0},
		{"D+", 1.3},
		{"D", 1.0},
		{"F", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.grade, func(t *testing.T) {
			assert.Equal(t, tt.gpa, gradescale.GradeToGPA(tt.grade))
		})
	}
}

func TestGradeToFP_CanonicalGrades(t *testing.T) {
	tests := []struct {
		grade string
		fp    float64
	}{
		{"A+", 85},
		{"A", 80},
		{"B+", 70},
		{"B", 60},
		{"C+", 50},
		{"C", 40},
		{"D+", 30},
		{"D", 20},
		{"F", 0},
	}

	for _, tt := range tests {
		t.Run(tt.grade, func(t *testing.T) {
			assert.Equal(t, tt.fp, gradescale.GradeToFP(tt.grade))
		})
	}
}

func TestLookups_UnknownGrades(t *testing.T) {
	unknown := []string{"", "a+", "A++", " A", "A ", "E", "b", "4.0"}

	for _, grade := range unknown {
		assert.Equal(t, float64(gradescale.NotFound), gradescale.GradeToGPA(grade), "GradeToGPA(%q)", grade)
		assert.Equal(t, float64(gradescale.NotFound), gradescale.GradeToFP(grade), "GradeToFP(%q)", grade)
	}
}

func TestFPToGrade_Bands(t *testing.T) {
	tests := []struct {
		name  string
		fp    float64
		grade string
		ok    bool
	}{
		{"mid A+ band", 87, "A+", true},
		{"mid A band", 82, "A", true},
		{"mid B+ band", 75, "B+", true},
		{"mid B band", 65, "B", true},
		{"mid C+ band", 55, "C+", true},
		{"mid C band", 42, "C", true},
		{"mid D+ band", 35, "D+", true},
		{"mid D band", 25, "D", true},
		{"mid F band", 10, "F", true},
		{"exactly zero", 0, "F", true},
		{"exactly ninety", 90, "A+", true},
		{"above every band", 150, "A+", true},
		{"lower bound is inclusive", 40, "C", true},
		{"just below a bound", 39.99, "D+", true},
		{"negative", -1, "", false},
		{"rounds up across a bound", 39.999, "C", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grade, ok := gradescale.FPToGrade(tt.fp)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.grade, grade)
		})
	}
}

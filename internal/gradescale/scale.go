// Package gradescale holds the static letter-grade scale tables and the
// conversions between letter grades, GPA values and final percentages.
package gradescale

import "math"

// NotFound is returned by the table lookups for any string that is not one
// of the nine canonical letter grades. Lookups are case-sensitive and do
// not trim whitespace.
const NotFound = -1

// Letters lists the canonical grades from best to worst.
var Letters = []string{"A+", "A", "B+", "B", "C+", "C", "D+", "D", "F"}

var gradeToGPA = map[string]float64{
	"A+": 4.3,
	"A":  4.0,
	"B+": 3.3,
	"B":  3.0,
	"C+": 2.3,
	"C":  2.0,
	"D+": 1.3,
	"D":  1.0,
	"F":  0.0,
}

// Final-percent floor for each letter. Together the floors define the band
// table: each letter covers [floor, next floor), the top band is open-ended.
var gradeToFP = map[string]float64{
	"A+": 85,
	"A":  80,
	"B+": 70,
	"B":  60,
	"C+": 50,
	"C":  40,
	"D+": 30,
	"D":  20,
	"F":  0,
}

// GradeToGPA returns the GPA value for a letter grade, or NotFound.
func GradeToGPA(grade string) float64 {
	if gpa, ok := gradeToGPA[grade]; ok {
		return gpa
	}
	return NotFound
}

// GradeToFP returns the final-percent floor for a letter grade, or NotFound.
func GradeToFP(grade string) float64 {
	if fp, ok := gradeToFP[grade]; ok {
		return fp
	}
	return NotFound
}

// FPToGrade maps a final percent onto the band table. The percent is rounded
// to two decimals first. Bands are half-open [lower, upper) ascending;
// anything at or above the top floor maps to "A+" and negative values have
// no band (ok=false).
func FPToGrade(fp float64) (string, bool) {
	fp = math.Round(fp*100) / 100
	if fp < 0 {
		return "", false
	}
	for _, letter := range Letters {
		if fp >= gradeToFP[letter] {
			return letter, true
		}
	}
	return "", false
}

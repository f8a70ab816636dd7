// Package credit decides how much a course counts toward the GPA.
package credit

import (
	"strings"

	"github.com/mira/gradekeeper/internal/gradescale"
)

// Courses worth two credit hours. Matched by exact name.
var doubleCredit = map[string]bool{
	"English 10/American History": true,
	"English 9/World History":     true,
}

// boostThreshold is the minimum GPA value a grade must map to before an
// advanced course earns its boost.
const boostThreshold = 1.8

// Hours returns the credit-hour weight for a course name: 2 for the
// combined double-credit courses, 0.5 for independent-service courses,
// 1 for everything else.
func Hours(courseName string) float64 {
	if doubleCredit[courseName] {
		return 2
	}
	if strings.HasPrefix(courseName, "I Service: ") || strings.HasPrefix(courseName, "IS: ") {
		return 0.5
	}
	return 1
}

// Boost returns the additive GPA adjustment for advanced (AP/AT) courses.
// Grades mapping below the threshold earn no boost regardless of course.
func Boost(courseName, grade string) float64 {
	if gradescale.GradeToGPA(grade) < boostThreshold {
		return 0
	}
	if strings.HasPrefix(courseName, "AP ") || strings.HasPrefix(courseName, "AT ") {
		return 0.5
	}
	return 0
}

// Package gpa aggregates per-course grades into an overall GPA.
package gpa

import (
	"fmt"

	"github.com/mira/gradekeeper/internal/credit"
	"github.com/mira/gradekeeper/internal/gradescale"
	"github.com/mira/gradekeeper/internal/models"
)

// Calculate returns the credit-weighted GPA over all courses whose grade is
// recognized, formatted to two decimal places. Courses with unrecognized
// grades contribute to neither total. With no contributing course the
// result is "0.00".
func Calculate(courses []models.Course) string {
	var sum, total float64
	for _, c := range courses {
		value := gradescale.GradeToGPA(c.Grade)
		if value == gradescale.NotFound {
			continue
		}
		weight := credit.Hours(c.Name)
		total += weight
		sum += weight * (value + credit.Boost(c.Name, c.Grade))
	}
	if total == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", sum/total)
}

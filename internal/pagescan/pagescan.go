// Package pagescan recovers grade data from the fixed course-page layout
// produced by the school information system. The template is external and
// versioned; everything here degrades to an absence value instead of
// failing when the structure does not match.
package pagescan

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mira/gradekeeper/internal/models"
)

// The page template embeds the running grade history as a script call like
//
//	plotGradeData("[12;34.5;...;85;90]")
//
// where the last two tokens are the candidate final percentages.
var gradeDataRe = regexp.MustCompile(`plotGradeData\("\[([^\[\]]*)\]"\)`)

// Assignments marked missing carry this icon in their table row.
const missingIconPath = "icon_missing"

// FinalPercent extracts the final percent from raw page source. It reads
// the last two tokens of the embedded grade-data list, parses each as a
// float (non-numeric tokens count as negative infinity) and returns the
// larger. ok is false when the marker is absent, the list holds fewer than
// two tokens, or neither token parses.
func FinalPercent(html string) (float64, bool) {
	m := gradeDataRe.FindStringSubmatch(html)
	if m == nil {
		return 0, false
	}
	tokens := strings.Split(m[1], ";")
	if len(tokens) < 2 {
		return 0, false
	}
	fp := math.Max(parseToken(tokens[len(tokens)-2]), parseToken(tokens[len(tokens)-1]))
	if math.IsInf(fp, -1) {
		return 0, false
	}
	return fp, true
}

func parseToken(tok string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	if err != nil {
		return math.Inf(-1)
	}
	return v
}

// Assignments reads the assignment list from a parsed course page. The
// template renders a single centered table whose first row is the header
// and whose last row is the legend; every row between them is one
// assignment: the third cell holds the name, the last cell the raw score.
// Row order within the table becomes the Order field.
func Assignments(doc *goquery.Document) []models.Assignment {
	rows := doc.Find(`table[align="center"]`).First().Find("tr")
	if rows.Length() <= 2 {
		return nil
	}

	assignments := make([]models.Assignment, 0, rows.Length()-2)
	rows.Slice(1, rows.Length()-1).Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		a := models.Assignment{
			Name:  strings.TrimSpace(cells.Eq(2).Text()),
			Order: i,
		}
		if cells.Length() > 0 {
			a.Score = strings.TrimSpace(cells.Last().Text())
		}
		if hasMissingIcon(row) {
			a.Status = append(a.Status, models.StatusMissing)
		}
		assignments = append(assignments, a)
	})
	return assignments
}

func hasMissingIcon(row *goquery.Selection) bool {
	found := false
	row.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		if src, ok := img.Attr("src"); ok && strings.Contains(src, missingIconPath) {
			found = true
			return false
		}
		return true
	})
	return found
}

package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mira/gradekeeper/internal/db"
	apperrors "github.com/mira/gradekeeper/internal/errors"
	"github.com/mira/gradekeeper/internal/gradestore"
	"github.com/mira/gradekeeper/internal/models"
	"github.com/mira/gradekeeper/internal/repository/sqlite"
	"github.com/mira/gradekeeper/internal/services"
	"github.com/mira/gradekeeper/internal/testutil"
	"github.com/mira/gradekeeper/internal/testutil/mocks"
)

const coursePage = `
<html><body>
<script>plotGradeData("[60;72.5;88;95]")</script>
<table align="center">
<tr><th>#</th><th>Date</th><th>Assignment</th><th>Category</th><th>Score</th></tr>
<tr><td>1</td><td>01/10</td><td>Homework 1</td><td>HW</td><td>10/10</td></tr>
<tr><td>2</td><td>01/12</td><td><img src="/images/icon_missing.gif"> Quiz 1</td><td>Quiz</td><td></td></tr>
<tr><td colspan="5">Legend</td></tr>
</table>
</body></html>`

type GradeServiceSuite struct {
	suite.Suite
	db      *db.DB
	emitter *mocks.RecordingEmitter
	svc     services.GradeService
}

func (s *GradeServiceSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.emitter = &mocks.RecordingEmitter{}
	store := gradestore.New(sqlite.NewKVStore(s.db.DB), s.emitter)
	s.svc = services.NewGradeService(store, s.emitter)
}

func (s *GradeServiceSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *GradeServiceSuite) TestImportPage() {
	ctx := context.Background()

	course, err := s.svc.ImportPage(ctx, "alice", services.PageImport{
		CourseName: "AP Calculus",
		Link:       "https://sis.example.com/guardian/scores.html?frn=0012",
		HTML:       coursePage,
	})
	s.Require().NoError(err)
	s.Require().NotNil(course)

	s.Require().NotNil(course.FinalPercent)
	s.Assert().Equal(95.0, *course.FinalPercent)
	s.Assert().Equal("A+", course.Grade, "grade derived from final percent when the page gives none")

	s.Require().Len(course.Assignments, 2)
	s.Assert().Equal("Homework 1", course.Assignments[0].Name)
	s.Assert().True(course.Assignments[1].Missing())

	saved, err := s.svc.Courses(ctx, "alice")
	s.Require().NoError(err)
	s.Require().Len(saved, 1)
	s.Assert().Equal("AP Calculus", saved[0].Name)
}

func (s *GradeServiceSuite) TestImportPage_ReplacesByName() {
	ctx := context.Background()

	_, err := s.svc.ImportPage(ctx, "alice", services.PageImport{
		CourseName: "AP Calculus", HTML: coursePage,
	})
	s.Require().NoError(err)

	_, err = s.svc.ImportPage(ctx, "alice", services.PageImport{
		CourseName: "AP Calculus", Grade: "B", HTML: coursePage,
	})
	s.Require().NoError(err)

	saved, err := s.svc.Courses(ctx, "alice")
	s.Require().NoError(err)
	s.Require().Len(saved, 1)
	s.Assert().Equal("B", saved[0].Grade, "explicit grade wins over the derived one")
}

func (s *GradeServiceSuite) TestImportPage_PageWithoutGradeData() {
	ctx := context.Background()

	course, err := s.svc.ImportPage(ctx, "alice", services.PageImport{
		CourseName: "Homeroom",
		HTML:       "<html><body><p>nothing useful</p></body></html>",
	})
	s.Require().NoError(err, "unrecognized structure degrades, it does not fail")
	s.Assert().Nil(course.FinalPercent)
	s.Assert().Empty(course.Assignments)
}

func (s *GradeServiceSuite) TestImportPage_Validation() {
	ctx := context.Background()

	_, err := s.svc.ImportPage(ctx, "", services.PageImport{CourseName: "x", HTML: "<p/>"})
	s.assertValidationError(err)

	_, err = s.svc.ImportPage(ctx, "alice", services.PageImport{HTML: "<p/>"})
	s.assertValidationError(err)

	_, err = s.svc.ImportPage(ctx, "alice", services.PageImport{CourseName: "x"})
	s.assertValidationError(err)
}

func (s *GradeServiceSuite) TestSaveCourses_ReassignsAssignmentOrder() {
	ctx := context.Background()

	err := s.svc.SaveCourses(ctx, "alice", []models.Course{{
		Name: "Biology",
		Assignments: []models.Assignment{
			{Name: "Lab 1", Order: 7},
			{Name: "Lab 2", Order: 3},
		},
	}})
	s.Require().NoError(err)

	saved, err := s.svc.Courses(ctx, "alice")
	s.Require().NoError(err)
	s.Require().Len(saved, 1)
	s.Assert().Equal(0, saved[0].Assignments[0].Order)
	s.Assert().Equal(1, saved[0].Assignments[1].Order)
}

func (s *GradeServiceSuite) TestSaveCourses_RejectsUnnamedCourse() {
	err := s.svc.SaveCourses(context.Background(), "alice", []models.Course{{Name: ""}})
	s.assertValidationError(err)
}

func (s *GradeServiceSuite) TestGPA() {
	ctx := context.Background()

	gpa, err := s.svc.GPA(ctx, "alice")
	s.Require().NoError(err)
	s.Assert().Equal("0.00", gpa, "no saved courses yet")

	s.Require().NoError(s.svc.SaveCourses(ctx, "alice", []models.Course{
		{Name: "Algebra I", Grade: "A"},
		{Name: "AP Chemistry", Grade: "A"},
	}))

	gpa, err = s.svc.GPA(ctx, "alice")
	s.Require().NoError(err)
	s.Assert().Equal("4.25", gpa)
}

func (s *GradeServiceSuite) TestRecentUser() {
	ctx := context.Background()

	user, err := s.svc.RecentUser(ctx)
	s.Require().NoError(err)
	s.Assert().Equal("", user)

	s.Require().NoError(s.svc.SaveCourses(ctx, "alice", nil))

	user, err = s.svc.RecentUser(ctx)
	s.Require().NoError(err)
	s.Assert().Equal("alice", user)
}

func (s *GradeServiceSuite) assertValidationError(err error) {
	s.Require().Error(err)
	appErr, ok := err.(*apperrors.AppError)
	s.Require().True(ok, "expected an AppError, got %T", err)
	s.Assert().Equal(apperrors.ErrCodeValidation, appErr.Code)
}

func TestGradeServiceSuite(t *testing.T) {
	suite.Run(t, new(GradeServiceSuite))
}

package gradestore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mira/gradekeeper/internal/db"
	"github.com/mira/gradekeeper/internal/gradestore"
	"github.com/mira/gradekeeper/internal/models"
	"github.com/mira/gradekeeper/internal/repository/sqlite"
	"github.com/mira/gradekeeper/internal/testutil"
	"github.com/mira/gradekeeper/internal/testutil/mocks"
)

type GradeStoreSuite struct {
	suite.Suite
	db      *db.DB
	emitter *mocks.RecordingEmitter
	store   *gradestore.Store
}

func (s *GradeStoreSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.emitter = &mocks.RecordingEmitter{}
	s.store = gradestore.New(sqlite.NewKVStore(s.db.DB), s.emitter)
}

func (s *GradeStoreSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *GradeStoreSuite) TestGetSavedGrades_NoRecord() {
	courses, err := s.store.GetSavedGrades(context.Background(), "nobody")
	s.Require().NoError(err)
	s.Assert().Empty(courses)
	s.Assert().NotNil(courses)
}

func (s *GradeStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	fp := 87.5

	saved := []models.Course{
		{
			Name:         "AP Calculus",
			Link:         "https://sis.example.com/guardian/scores.html",
			Grade:        "A+",
			FinalPercent: &fp,
			Assignments: []models.Assignment{
				{Name: "Homework 1", Score: "10/10", Order: 0},
				{Name: "Quiz 1", Score: "", Order: 1, Status: []string{models.StatusMissing}},
			},
		},
		{
			Name:  "Ceramics",
			Grade: "B",
		},
	}

	s.Require().NoError(s.store.SaveGradesLocally(ctx, "alice", saved))

	got, err := s.store.GetSavedGrades(ctx, "alice")
	s.Require().NoError(err)
	s.Require().Len(got, 2)

	s.Assert().Equal(saved[0], got[0])
	s.Assert().Equal("Ceramics", got[1].Name)
	s.Assert().Equal("B", got[1].Grade)
	s.Assert().Nil(got[1].FinalPercent)
	s.Assert().Empty(got[1].Assignments)
}

func (s *GradeStoreSuite) TestSave_OverwritesWholesale() {
	ctx := context.Background()

	s.Require().NoError(s.store.SaveGradesLocally(ctx, "alice", []models.Course{
		{Name: "Algebra I", Grade: "A"},
		{Name: "Biology", Grade: "B"},
	}))
	s.Require().NoError(s.store.SaveGradesLocally(ctx, "alice", []models.Course{
		{Name: "Chemistry", Grade: "C"},
	}))

	got, err := s.store.GetSavedGrades(ctx, "alice")
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Assert().Equal("Chemistry", got[0].Name)
}

func (s *GradeStoreSuite) TestMostRecentUser() {
	ctx := context.Background()

	user, err := s.store.MostRecentUser(ctx)
	s.Require().NoError(err)
	s.Assert().Equal("", user)

	s.Require().NoError(s.store.SaveGradesLocally(ctx, "alice", nil))
	s.Require().NoError(s.store.SaveGradesLocally(ctx, "bob", nil))

	user, err = s.store.MostRecentUser(ctx)
	s.Require().NoError(err)
	s.Assert().Equal("bob", user)
}

func (s *GradeStoreSuite) TestTelemetryEvents() {
	ctx := context.Background()

	s.Require().NoError(s.store.SaveGradesLocally(ctx, "alice", nil))
	_, err := s.store.GetSavedGrades(ctx, "alice")
	s.Require().NoError(err)

	events := s.emitter.Events()
	s.Require().Len(events, 2)
	s.Assert().Equal("grades_saved", events[0].Action)
	s.Assert().Equal("grades_loaded", events[1].Action)
}

func TestGradeStoreSuite(t *testing.T) {
	suite.Run(t, new(GradeStoreSuite))
}

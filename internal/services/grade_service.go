package services

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mira/gradekeeper/internal/errors"
	"github.com/mira/gradekeeper/internal/gpa"
	"github.com/mira/gradekeeper/internal/gradescale"
	"github.com/mira/gradekeeper/internal/gradestore"
	"github.com/mira/gradekeeper/internal/logger"
	"github.com/mira/gradekeeper/internal/models"
	"github.com/mira/gradekeeper/internal/pagescan"
	"github.com/mira/gradekeeper/internal/telemetry"
)

// PageImport is one submitted course page.
type PageImport struct {
	CourseName string `json:"course_name"`
	Link       string `json:"link"`
	Grade      string `json:"grade"`
	HTML       string `json:"html"`
}

// GradeService handles course and GPA business logic
type GradeService interface {
	Courses(ctx context.Context, username string) ([]models.Course, error)
	SaveCourses(ctx context.Context, username string, courses []models.Course) error
	GPA(ctx context.Context, username string) (string, error)
	ImportPage(ctx context.Context, username string, page PageImport) (*models.Course, error)
	RecentUser(ctx context.Context) (string, error)
}

type gradeService struct {
	store   *gradestore.Store
	emitter telemetry.Emitter
}

// NewGradeService creates a new GradeService
func NewGradeService(store *gradestore.Store, emitter telemetry.Emitter) GradeService {
	if emitter == nil {
		emitter = telemetry.Nop{}
	}
	return &gradeService{store: store, emitter: emitter}
}

func (s *gradeService) Courses(ctx context.Context, username string) ([]models.Course, error) {
	if username == "" {
		return nil, errors.NewValidationError("username", "must not be empty")
	}
	courses, err := s.store.GetSavedGrades(ctx, username)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return courses, nil
}

func (s *gradeService) SaveCourses(ctx context.Context, username string, courses []models.Course) error {
	if username == "" {
		return errors.NewValidationError("username", "must not be empty")
	}
	for i, c := range courses {
		if c.Name == "" {
			return errors.NewValidationError("courses", "course name must not be empty")
		}
		// Keep assignment order consistent with list position.
		for j := range courses[i].Assignments {
			courses[i].Assignments[j].Order = j
		}
	}
	if err := s.store.SaveGradesLocally(ctx, username, courses); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *gradeService) GPA(ctx context.Context, username string) (string, error) {
	courses, err := s.Courses(ctx, username)
	if err != nil {
		return "", err
	}
	return gpa.Calculate(courses), nil
}

func (s *gradeService) ImportPage(ctx context.Context, username string, page PageImport) (*models.Course, error) {
	log := logger.FromContext(ctx)

	if username == "" {
		return nil, errors.NewValidationError("username", "must not be empty")
	}
	if page.CourseName == "" {
		return nil, errors.NewValidationError("course_name", "must not be empty")
	}
	if page.HTML == "" {
		return nil, errors.NewValidationError("html", "must not be empty")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, errors.NewExtractionError("page is not parseable HTML")
	}

	course := models.Course{
		Name:        page.CourseName,
		Link:        page.Link,
		Grade:       page.Grade,
		Assignments: pagescan.Assignments(doc),
	}
	if fp, ok := pagescan.FinalPercent(page.HTML); ok {
		course.FinalPercent = &fp
		if course.Grade == "" {
			if letter, ok := gradescale.FPToGrade(fp); ok {
				course.Grade = letter
			}
		}
	} else {
		log.Debug("no final percent found in page for course %s", page.CourseName)
	}

	courses, err := s.store.GetSavedGrades(ctx, username)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	// Courses are identified by name within a user's list.
	replaced := false
	for i := range courses {
		if courses[i].Name == course.Name {
			courses[i] = course
			replaced = true
			break
		}
	}
	if !replaced {
		courses = append(courses, course)
	}

	if err := s.store.SaveGradesLocally(ctx, username, courses); err != nil {
		return nil, errors.NewInternalError(err)
	}

	s.emitter.Emit("page_imported", page.Link)
	log.Info("imported course %s for user %s (%d assignments)", course.Name, username, len(course.Assignments))
	return &course, nil
}

func (s *gradeService) RecentUser(ctx context.Context) (string, error) {
	user, err := s.store.MostRecentUser(ctx)
	if err != nil {
		return "", errors.NewInternalError(err)
	}
	return user, nil
}

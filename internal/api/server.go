package api

import (
	"github.com/mira/gradekeeper/internal/services"
)

// Server holds the dependencies for the HTTP layer.
type Server struct {
	GradeService services.GradeService
}

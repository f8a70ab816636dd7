// Package gradestore persists per-user course collections through the
// key-value storage capability.
package gradestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mira/gradekeeper/internal/logger"
	"github.com/mira/gradekeeper/internal/models"
	"github.com/mira/gradekeeper/internal/repository"
	"github.com/mira/gradekeeper/internal/telemetry"
)

const (
	userDataPrefix    = "USERDATA_"
	mostRecentUserKey = "most_recent_user"
)

type Store struct {
	kv      repository.KVStore
	emitter telemetry.Emitter
}

// New creates a Store. A nil emitter disables telemetry.
func New(kv repository.KVStore, emitter telemetry.Emitter) *Store {
	if emitter == nil {
		emitter = telemetry.Nop{}
	}
	return &Store{kv: kv, emitter: emitter}
}

func userKey(username string) string {
	return userDataPrefix + username
}

// GetSavedGrades returns the user's stored courses in stored order. A user
// with no record gets an empty slice, not an error.
func (s *Store) GetSavedGrades(ctx context.Context, username string) ([]models.Course, error) {
	log := logger.FromContext(ctx).WithPrefix("gradestore")
	log.Debug("loading grades for user: %s", username)

	value, err := s.kv.Get(ctx, userKey(username))
	if errors.Is(err, repository.ErrNotFound) {
		log.Debug("no record for user %s", username)
		return []models.Course{}, nil
	}
	if err != nil {
		log.Error("failed to read user record: %v", err)
		return nil, err
	}

	var record models.UserRecord
	if err := json.Unmarshal(value, &record); err != nil {
		log.Error("failed to decode user record: %v", err)
		return nil, fmt.Errorf("decode record for %s: %w", username, err)
	}

	s.emitter.Emit("grades_loaded", "")
	log.Debug("loaded %d courses for user %s", len(record.Courses), username)
	return record.Courses, nil
}

// SaveGradesLocally overwrites the user's record wholesale and marks the
// user as most recent, in a single write.
func (s *Store) SaveGradesLocally(ctx context.Context, username string, courses []models.Course) error {
	log := logger.FromContext(ctx).WithPrefix("gradestore")
	log.Debug("saving %d courses for user: %s", len(courses), username)

	value, err := json.Marshal(models.UserRecord{Courses: courses})
	if err != nil {
		log.Error("failed to encode user record: %v", err)
		return fmt.Errorf("encode record for %s: %w", username, err)
	}

	err = s.kv.SetMulti(ctx, map[string][]byte{
		userKey(username): value,
		mostRecentUserKey: []byte(username),
	})
	if err != nil {
		log.Error("failed to write user record: %v", err)
		return err
	}

	s.emitter.Emit("grades_saved", "")
	log.Info("saved %d courses for user %s", len(courses), username)
	return nil
}

// MostRecentUser returns the last saved username, or "" when nothing has
// been saved yet.
func (s *Store) MostRecentUser(ctx context.Context) (string, error) {
	value, err := s.kv.Get(ctx, mostRecentUserKey)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(value), nil
}

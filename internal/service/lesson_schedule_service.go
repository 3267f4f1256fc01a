package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/lesson-board-api/internal/dto"
	"github.com/noah-isme/lesson-board-api/internal/models"
	appErrors "github.com/noah-isme/lesson-board-api/pkg/errors"
	"github.com/noah-isme/lesson-board-api/pkg/export"
)

const lessonCachePrefix = "lessons:"

type lessonScheduleRepository interface {
	List(ctx context.Context, scope models.AccessScope, filter models.LessonScheduleFilter) ([]models.LessonScheduleView, error)
	ListByStatus(ctx context.Context, start, end time.Time, status models.LessonStatus) ([]models.LessonSchedule, error)
	LockWeek(ctx context.Context, exec sqlx.ExtContext, weekStart time.Time) error
	DeleteDrafts(ctx context.Context, exec sqlx.ExtContext, start, end time.Time) (int64, error)
	InsertDrafts(ctx context.Context, exec sqlx.ExtContext, lessons []models.LessonSchedule) (int64, error)
	ConfirmRange(ctx context.Context, start, end time.Time) (int64, error)
	FindByID(ctx context.Context, id string) (*models.LessonSchedule, error)
	FindDraftConflicts(ctx context.Context, candidate models.LessonSchedule) ([]models.LessonSchedule, error)
	Update(ctx context.Context, lesson *models.LessonSchedule) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type settingProvider interface {
	Require(ctx context.Context) (*models.ScheduleSetting, error)
}

type activeTeacherLister interface {
	ListActive(ctx context.Context) ([]models.Teacher, error)
}

type activeStudentLister interface {
	ListActive(ctx context.Context) ([]models.Student, error)
}

type availableWindowLister interface {
	ListAvailable(ctx context.Context, start, end time.Time) ([]models.TeacherAvailability, error)
}

type lessonCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
}

// LessonScheduleOptions toggles optional scheduler behaviour.
type LessonScheduleOptions struct {
	RespectConfirmed bool
	WeekLock         bool
	CacheTTL         time.Duration
}

// LessonScheduleDeps bundles the collaborators of LessonScheduleService.
type LessonScheduleDeps struct {
	Repo         lessonScheduleRepository
	Tx           txProvider
	Settings     settingProvider
	Teachers     activeTeacherLister
	Students     activeStudentLister
	Availability availableWindowLister
	Cache        lessonCache
	Metrics      *MetricsService
	Validator    *validator.Validate
	Logger       *zap.Logger
}

// ExportFile is a rendered lesson board download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// LessonScheduleService orchestrates weekly generation, confirmation and edits of placements.
type LessonScheduleService struct {
	repo         lessonScheduleRepository
	tx           txProvider
	settings     settingProvider
	teachers     activeTeacherLister
	students     activeStudentLister
	availability availableWindowLister
	cache        lessonCache
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
	opts         LessonScheduleOptions
	now          func() time.Time
}

// NewLessonScheduleService wires the service.
func NewLessonScheduleService(deps LessonScheduleDeps, opts LessonScheduleOptions) *LessonScheduleService {
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &LessonScheduleService{
		repo:         deps.Repo,
		tx:           deps.Tx,
		settings:     deps.Settings,
		teachers:     deps.Teachers,
		students:     deps.Students,
		availability: deps.Availability,
		cache:        deps.Cache,
		metrics:      deps.Metrics,
		validator:    deps.Validator,
		logger:       deps.Logger,
		opts:         opts,
		now:          time.Now,
	}
}

// AutoSchedule regenerates the DRAFT placements of a week and returns how
// many lessons were accepted.
func (s *LessonScheduleService) AutoSchedule(ctx context.Context, scope models.AccessScope, req dto.WeekRangeRequest) (dto.WeekActionResponse, error) {
	if err := requireAdmin(scope); err != nil {
		return dto.WeekActionResponse{}, err
	}
	start, end, err := parseWeek(req.WeekStart, req.WeekEnd)
	if err != nil {
		return dto.WeekActionResponse{}, err
	}

	began := s.now()
	placements, unplaced, err := s.plan(ctx, start, end)
	if err == nil {
		err = s.persistDrafts(ctx, start, end, placements)
	}
	s.metrics.ObserveAutoAssign(len(placements), unplaced, s.now().Sub(began), err)
	if err != nil {
		return dto.WeekActionResponse{}, err
	}

	s.invalidate(ctx)
	s.logger.Info("lessons auto scheduled",
		zap.String("week_start", DateKey(start)),
		zap.Int("placed", len(placements)),
		zap.Int("unplaced_students", unplaced),
		zap.String("actor", scope.UserID),
	)
	return dto.WeekActionResponse{Success: true, Count: len(placements)}, nil
}

func (s *LessonScheduleService) plan(ctx context.Context, start, end time.Time) ([]models.LessonSchedule, int, error) {
	setting, err := s.settings.Require(ctx)
	if err != nil {
		return nil, 0, err
	}
	teachers, err := s.teachers.ListActive(ctx)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teachers")
	}
	students, err := s.students.ListActive(ctx)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	windows, err := s.availability.ListAvailable(ctx, start, end)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availability")
	}
	var existing []models.LessonSchedule
	if s.opts.RespectConfirmed {
		existing, err = s.repo.ListByStatus(ctx, start, end, models.LessonStatusConfirmed)
		if err != nil {
			return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load confirmed lessons")
		}
	}

	placements := AutoAssign(AssignmentInput{
		WeekStart:    start,
		Setting:      *setting,
		Teachers:     teachers,
		Students:     students,
		Availability: windows,
		Existing:     existing,
	})

	scheduled := make(map[string]struct{}, len(placements)+len(existing))
	for _, lesson := range existing {
		scheduled[lesson.StudentID] = struct{}{}
	}
	for _, lesson := range placements {
		scheduled[lesson.StudentID] = struct{}{}
	}
	unplaced := 0
	for _, student := range students {
		if _, ok := scheduled[student.ID]; !ok {
			unplaced++
		}
	}
	return placements, unplaced, nil
}

func (s *LessonScheduleService) persistDrafts(ctx context.Context, start, end time.Time, placements []models.LessonSchedule) (err error) {
	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if s.opts.WeekLock {
		if err = s.repo.LockWeek(ctx, tx, start); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to lock week")
		}
	}
	if _, err = s.repo.DeleteDrafts(ctx, tx, start, end); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear draft lessons")
	}
	if _, err = s.repo.InsertDrafts(ctx, tx, placements); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store draft lessons")
	}
	if err = tx.Commit(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit lessons")
	}
	return nil
}

// ConfirmWeek promotes every DRAFT placement of the week to CONFIRMED.
func (s *LessonScheduleService) ConfirmWeek(ctx context.Context, scope models.AccessScope, req dto.WeekRangeRequest) (dto.WeekActionResponse, error) {
	if err := requireAdmin(scope); err != nil {
		return dto.WeekActionResponse{}, err
	}
	start, end, err := parseWeek(req.WeekStart, req.WeekEnd)
	if err != nil {
		return dto.WeekActionResponse{}, err
	}
	affected, err := s.repo.ConfirmRange(ctx, start, end)
	if err != nil {
		return dto.WeekActionResponse{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to confirm lessons")
	}
	count := int(affected)
	s.metrics.ObserveConfirm(count)
	s.invalidate(ctx)
	s.logger.Info("lessons confirmed", zap.String("week_start", DateKey(start)), zap.Int("count", count), zap.String("actor", scope.UserID))
	return dto.WeekActionResponse{Success: true, Count: count}, nil
}

// List returns the lesson board for the range. Teachers only see their own rows.
func (s *LessonScheduleService) List(ctx context.Context, scope models.AccessScope, query dto.LessonScheduleQuery) ([]models.LessonScheduleView, error) {
	start, end, err := parseDateRange(query.Start, query.End)
	if err != nil {
		return nil, err
	}
	if !scope.IsAdmin() && (scope.Role != models.RoleTeacher || scope.UserID == "") {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "forbidden")
	}

	key := fmt.Sprintf("%s%s:%s:%s", lessonCachePrefix, DateKey(start), DateKey(end), scope.CacheKey())
	if s.cache != nil {
		var cached []models.LessonScheduleView
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	rows, err := s.repo.List(ctx, scope, models.LessonScheduleFilter{Start: start, End: end})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lessons")
	}
	if rows == nil {
		rows = []models.LessonScheduleView{}
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, rows, s.opts.CacheTTL)
	}
	return rows, nil
}

// Update edits a DRAFT placement after checking it against the other drafts of that date.
func (s *LessonScheduleService) Update(ctx context.Context, scope models.AccessScope, id string, req dto.UpdateLessonScheduleRequest) (*models.LessonSchedule, error) {
	if err := requireAdmin(scope); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lesson payload")
	}
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date")
	}
	lesson, err := s.findMutable(ctx, id)
	if err != nil {
		return nil, err
	}

	candidate := *lesson
	candidate.TeacherID = req.TeacherID
	candidate.StudentID = req.StudentID
	candidate.Date = date
	candidate.StartMinutes = req.StartMinutes
	candidate.EndMinutes = req.EndMinutes
	candidate.Memo = req.Memo

	conflicts, err := s.repo.FindDraftConflicts(ctx, candidate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check lesson conflicts")
	}
	if len(conflicts) > 0 {
		return nil, conflictError(candidate, conflicts)
	}

	affected, err := s.repo.Update(ctx, &candidate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update lesson")
	}
	if affected == 0 {
		return nil, appErrors.Clone(appErrors.ErrImmutable, "")
	}
	s.invalidate(ctx)
	return &candidate, nil
}

// Delete removes a DRAFT placement.
func (s *LessonScheduleService) Delete(ctx context.Context, scope models.AccessScope, id string) error {
	if err := requireAdmin(scope); err != nil {
		return err
	}
	if _, err := s.findMutable(ctx, id); err != nil {
		return err
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete lesson")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrImmutable, "")
	}
	s.invalidate(ctx)
	return nil
}

// Export renders the visible lesson board for the range as CSV or PDF.
func (s *LessonScheduleService) Export(ctx context.Context, scope models.AccessScope, query dto.LessonScheduleQuery) (*ExportFile, error) {
	renderer, err := export.ForFormat(export.Format(strings.ToLower(query.Format)))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unsupported export format")
	}
	rows, err := s.List(ctx, scope, query)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Title:   fmt.Sprintf("Lesson board %s ~ %s", query.Start, query.End),
		Headers: []string{"Date", "Day", "Start", "End", "Teacher", "Student", "Grade", "Status"},
		Rows:    make([]map[string]string, 0, len(rows)),
	}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Date":    DateKey(row.Date),
			"Day":     row.Date.Weekday().String()[:3],
			"Start":   FormatMinutes(row.StartMinutes),
			"End":     FormatMinutes(row.EndMinutes),
			"Teacher": row.TeacherName,
			"Student": row.StudentName,
			"Grade":   models.GradeLabel(row.StudentGrade),
			"Status":  string(row.Status),
		})
	}
	body, err := renderer.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("lessons_%s_%s.%s", query.Start, query.End, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

func (s *LessonScheduleService) findMutable(ctx context.Context, id string) (*models.LessonSchedule, error) {
	lesson, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lesson")
	}
	if lesson.Status == models.LessonStatusConfirmed {
		return nil, appErrors.Clone(appErrors.ErrImmutable, "")
	}
	return lesson, nil
}

func (s *LessonScheduleService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, lessonCachePrefix+"*")
}

func conflictError(candidate models.LessonSchedule, conflicts []models.LessonSchedule) error {
	for _, other := range conflicts {
		if other.TeacherID == candidate.TeacherID && other.StudentID == candidate.StudentID &&
			other.StartMinutes == candidate.StartMinutes && other.EndMinutes == candidate.EndMinutes {
			return appErrors.Clone(appErrors.ErrConflict, "an identical lesson already exists")
		}
	}
	other := conflicts[0]
	if other.TeacherID == candidate.TeacherID {
		return appErrors.Clone(appErrors.ErrConflict, "teacher already has a lesson at this time")
	}
	return appErrors.Clone(appErrors.ErrConflict, "student already has a lesson at this time")
}

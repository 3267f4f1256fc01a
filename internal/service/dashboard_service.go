package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lesson-board-api/internal/dto"
	"github.com/noah-isme/lesson-board-api/internal/models"
	appErrors "github.com/noah-isme/lesson-board-api/pkg/errors"
)

const dashboardCachePrefix = "dashboard:"

type dashboardRepository interface {
	StudentCounts(ctx context.Context, scope models.AccessScope) (models.DashboardStudentCounts, error)
	RecordTotals(ctx context.Context, scope models.AccessScope) (models.DashboardRecordTotals, error)
	WeeklySummaries(ctx context.Context, scope models.AccessScope, year, month int) ([]models.DashboardWeek, error)
	RecentRecords(ctx context.Context, scope models.AccessScope, limit int) ([]models.DashboardRecentRecord, error)
	AbsentStudents(ctx context.Context, scope models.AccessScope, limit int) ([]models.DashboardAttentionStudent, error)
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL       time.Duration
	RecentLimit    int
	AttentionLimit int
	// Location decides which month is current.
	Location *time.Location
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Repo      dashboardRepository
	Cache     lessonCache
	Validator *validator.Validate
	Logger    *zap.Logger
	Config    DashboardServiceConfig
}

// DashboardService composes the home dashboard from students and daily records.
type DashboardService struct {
	repo      dashboardRepository
	cache     lessonCache
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
	cfg       DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 4
	}
	if cfg.AttentionLimit <= 0 {
		cfg.AttentionLimit = 5
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		repo:      params.Repo,
		cache:     params.Cache,
		validator: validate,
		logger:    logger,
		now:       time.Now,
		cfg:       cfg,
	}
}

// Summary returns the dashboard for the scope and month and reports whether it came from cache.
// A zero year or month falls back to the current month.
func (s *DashboardService) Summary(ctx context.Context, scope models.AccessScope, query dto.DashboardQuery) (*dto.DashboardResponse, bool, error) {
	if !scope.IsAdmin() && (scope.Role != models.RoleTeacher || scope.UserID == "") {
		return nil, false, appErrors.Clone(appErrors.ErrForbidden, "forbidden")
	}
	if err := s.validator.Struct(query); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid dashboard query")
	}
	now := s.now().In(s.cfg.Location)
	year, month := query.Year, query.Month
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}

	cacheKey := fmt.Sprintf("%s%04d-%02d:%s", dashboardCachePrefix, year, month, scope.CacheKey())
	if s.cache != nil {
		var cached dto.DashboardResponse
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err == nil && hit {
			return &cached, true, nil
		}
	}

	summary, err := s.compose(ctx, scope, year, month)
	if err != nil {
		return nil, false, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, summary, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return summary, false, nil
}

func (s *DashboardService) compose(ctx context.Context, scope models.AccessScope, year, month int) (*dto.DashboardResponse, error) {
	counts, err := s.repo.StudentCounts(ctx, scope)
	if err != nil {
		return nil, dashboardError(err, "failed to count students")
	}
	totals, err := s.repo.RecordTotals(ctx, scope)
	if err != nil {
		return nil, dashboardError(err, "failed to count daily records")
	}
	weeks, err := s.repo.WeeklySummaries(ctx, scope, year, month)
	if err != nil {
		return nil, dashboardError(err, "failed to summarise lesson days")
	}
	recent, err := s.repo.RecentRecords(ctx, scope, s.cfg.RecentLimit)
	if err != nil {
		return nil, dashboardError(err, "failed to load recent records")
	}
	attention, err := s.repo.AbsentStudents(ctx, scope, s.cfg.AttentionLimit)
	if err != nil {
		return nil, dashboardError(err, "failed to load absent students")
	}

	for i := range weeks {
		weeks[i].TotalStudents = weeks[i].RecordCount
		if weeks[i].TotalStudents == 0 {
			weeks[i].TotalStudents = 1
		}
	}
	for i := range recent {
		recent[i].GradeLabel = models.GradeLabel(recent[i].GradeNumber)
	}
	for i := range attention {
		attention[i].GradeLabel = models.GradeLabel(attention[i].GradeNumber)
	}
	if weeks == nil {
		weeks = []models.DashboardWeek{}
	}
	if recent == nil {
		recent = []models.DashboardRecentRecord{}
	}
	if attention == nil {
		attention = []models.DashboardAttentionStudent{}
	}

	return &dto.DashboardResponse{
		Year:  year,
		Month: month,
		Stats: dto.DashboardStats{
			TotalStudents:  counts.Total,
			ActiveStudents: counts.Total - counts.Inactive,
			AttendanceRate: percentage(totals.Present, totals.Total),
			HomeworkRate:   percentage(totals.HomeworkSubmitted, totals.Total),
		},
		Weeks:             weeks,
		RecentRecords:     recent,
		AttentionStudents: attention,
	}, nil
}

// percentage rounds part/total to a whole percent. An empty total yields 0.
func percentage(part, total int) int {
	if total < 1 {
		total = 1
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func dashboardError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// invalidateDashboards drops every cached dashboard.
func invalidateDashboards(ctx context.Context, cache cacheInvalidator) {
	if cache == nil {
		return
	}
	_ = cache.Invalidate(ctx, dashboardCachePrefix+"*")
}

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bugtracker-backend/internal/domains/bug/model"
	"bugtracker-backend/internal/domains/bug/repository"
	"bugtracker-backend/pkg/cache"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

var _ ServiceInterface = (*BugService)(nil)

type BugService struct {
	repo     repository.BugRepository
	cache    cache.Cache
	statsTTL time.Duration
	now      func() time.Time

	// statsGen tăng mỗi lần invalidate; GetStats bỏ qua SET nếu gen đổi trong lúc đọc store
	statsMu  sync.Mutex
	statsGen uint64
}

// NewBugService statsTTL <= 0 tắt cache cho stats
func NewBugService(
	repo repository.BugRepository,
	c cache.Cache,
	statsTTL time.Duration,
) *BugService {
	if c == nil {
		c = cache.NoopCache{}
	}

	return &BugService{
		repo:     repo,
		cache:    c,
		statsTTL: statsTTL,
		now:      defaultClock,
	}
}

// Postgres lưu timestamp tới microsecond
func defaultClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// =====================================================
// LIST
// =====================================================

func (s *BugService) ListBugs(ctx context.Context, req model.ListBugsRequest) (*model.ListBugsResponse, error) {
	bugs, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, s.translateRepoError("list bugs", err)
	}

	return s.toListResponse(bugs), nil
}

func (s *BugService) ListCriticalBugs(ctx context.Context) (*model.ListBugsResponse, error) {
	bugs, err := s.repo.ListCritical(ctx)
	if err != nil {
		return nil, s.translateRepoError("list critical bugs", err)
	}

	return s.toListResponse(bugs), nil
}

func (s *BugService) toListResponse(bugs []*model.Bug) *model.ListBugsResponse {
	data := model.FormatBugList(bugs, s.now())
	return &model.ListBugsResponse{
		Bugs:  data,
		Count: len(data),
	}
}

// =====================================================
// GET
// =====================================================

func (s *BugService) GetBug(ctx context.Context, id string) (*model.BugResponse, error) {
	bugID, err := parseBugID(id)
	if err != nil {
		return nil, err
	}

	bug, err := s.repo.GetByID(ctx, bugID)
	if err != nil {
		return nil, s.translateRepoError("get bug", err)
	}

	resp := model.FormatBugResponse(bug, s.now())
	return &resp, nil
}

// =====================================================
// CREATE
// =====================================================

func (s *BugService) CreateBug(ctx context.Context, in model.BugInput) (*model.BugResponse, error) {
	// Step 1: Sanitize + business validation
	clean := model.SanitizeInput(in)
	if err := model.ValidateBugData(clean); err != nil {
		return nil, model.NewInvalidInputError(err.Error())
	}

	// Step 2: Defaults + schema constraints
	now := s.now()
	bug := model.NewBug(clean, now)
	if messages := bug.Validate(); len(messages) > 0 {
		return nil, model.NewSchemaValidationError(messages)
	}

	// Step 3: Persist
	if err := s.repo.Create(ctx, bug); err != nil {
		return nil, s.translateRepoError("create bug", err)
	}

	s.invalidateCache(ctx)

	log.Info().
		Str("bug_id", bug.ID.String()).
		Str("severity", string(bug.Severity)).
		Msg("Bug created")

	resp := model.FormatBugResponse(bug, now)
	return &resp, nil
}

// =====================================================
// UPDATE
// =====================================================

func (s *BugService) UpdateBug(ctx context.Context, id string, in model.BugInput) (*model.BugResponse, error) {
	bugID, err := parseBugID(id)
	if err != nil {
		return nil, err
	}

	clean := model.SanitizeInput(in)
	now := s.now()

	// Load + merge + validate + persist trong một transaction, row bị lock
	updated, err := s.repo.Update(ctx, bugID, func(bug *model.Bug) error {
		// merge-only: field không gửi giữ nguyên giá trị đang lưu
		bug.Apply(clean)

		if err := model.ValidateBugData(bug.AsInput()); err != nil {
			return model.NewInvalidInputError(err.Error())
		}
		if messages := bug.Validate(); len(messages) > 0 {
			return model.NewSchemaValidationError(messages)
		}

		// updatedAt không được nhỏ hơn createdAt
		bug.UpdatedAt = now
		if bug.UpdatedAt.Before(bug.CreatedAt) {
			bug.UpdatedAt = bug.CreatedAt
		}
		return nil
	})
	if err != nil {
		return nil, s.translateRepoError("update bug", err)
	}

	s.invalidateCache(ctx)

	log.Info().
		Str("bug_id", updated.ID.String()).
		Str("status", string(updated.Status)).
		Msg("Bug updated")

	resp := model.FormatBugResponse(updated, now)
	return &resp, nil
}

// =====================================================
// DELETE
// =====================================================

func (s *BugService) DeleteBug(ctx context.Context, id string) (*model.DeleteBugResponse, error) {
	bugID, err := parseBugID(id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, bugID); err != nil {
		return nil, s.translateRepoError("delete bug", err)
	}

	s.invalidateCache(ctx)

	log.Info().Str("bug_id", bugID.String()).Msg("Bug deleted")

	return &model.DeleteBugResponse{ID: bugID.String()}, nil
}

// =====================================================
// STATS
// =====================================================

func (s *BugService) GetStats(ctx context.Context) (*model.BugStats, error) {
	if s.statsTTL > 0 {
		var cached model.BugStats
		found, err := s.cache.Get(ctx, model.CacheKeyStats, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", model.CacheKeyStats).Msg("Cache GET failed")
		}
		if found {
			return &cached, nil
		}
	}

	gen := s.statsGeneration()

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, s.translateRepoError("get stats", err)
	}

	if s.statsTTL > 0 {
		s.cacheStats(ctx, gen, stats)
	}

	return stats, nil
}

func (s *BugService) statsGeneration() uint64 {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.statsGen
}

// cacheStats chỉ SET khi không có mutation nào invalidate sau lúc bắt đầu đọc
func (s *BugService) cacheStats(ctx context.Context, gen uint64, stats *model.BugStats) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	if s.statsGen != gen {
		log.Debug().Str("key", model.CacheKeyStats).Msg("Stats changed while reading, skip cache SET")
		return
	}

	if err := s.cache.Set(ctx, model.CacheKeyStats, stats, s.statsTTL); err != nil {
		log.Warn().Err(err).Str("key", model.CacheKeyStats).Msg("Cache SET failed")
	}
}

// =====================================================
// HELPERS
// =====================================================

func parseBugID(id string) (uuid.UUID, error) {
	bugID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, model.NewInvalidIDError(id, err)
	}
	return bugID, nil
}

// invalidateCache xóa mọi key "bugs:*"; lỗi cache chỉ log, không fail request
func (s *BugService) invalidateCache(ctx context.Context) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	s.statsGen++
	if err := s.cache.DeletePattern(ctx, model.CacheKeyPrefix+"*"); err != nil {
		log.Warn().Err(err).Msg("Cache invalidation failed")
	}
}

// translateRepoError chuyển lỗi repository sang *model.BugError
func (s *BugService) translateRepoError(op string, err error) error {
	var dupErr *model.DuplicateFieldError

	switch {
	case model.AsBugError(err) != nil:
		return model.AsBugError(err)
	case errors.Is(err, model.ErrBugNotFound):
		return model.NewBugNotFoundError()
	case errors.As(err, &dupErr):
		return model.NewDuplicateFieldError(dupErr.Field, err)
	case errors.Is(err, model.ErrConstraintViolation):
		bugErr := model.NewSchemaValidationError(nil)
		bugErr.Err = err
		return bugErr
	}

	log.Error().Err(err).Str("op", op).Msg("Bug repository failure")
	return model.NewUnexpectedError(op, err)
}

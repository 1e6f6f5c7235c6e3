package engagement

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	svcErr "github.com/oggyb/mealplanner/internal/errors"
	"github.com/oggyb/mealplanner/internal/repository"
	"github.com/oggyb/mealplanner/internal/utils/pagination"
)

var (
	Recipe   = repository.RecipeTarget
	MealPlan = repository.MealPlanTarget
)

const maxCommentLen = 2000

// Service reads engagement aggregates and writes engagement edges.
type Service struct {
	repo *repository.EngagementRepository
	log  *slog.Logger
}

func NewService(database *gorm.DB, log *slog.Logger) *Service {
	return &Service{repo: repository.NewEngagementRepository(database), log: log}
}

// Join returns the engagement overlay of every id in targetIDs for viewerID.
// One query per edge table covers the whole target set; nothing is written.
func (s *Service) Join(ctx context.Context, t repository.Target, targetIDs []uint64, viewerID uint64) (map[uint64]Stats, error) {
	if len(targetIDs) == 0 {
		return map[uint64]Stats{}, nil
	}

	likes, err := s.repo.Likes(ctx, t, targetIDs)
	if err != nil {
		return nil, err
	}
	bookmarks, err := s.repo.Bookmarks(ctx, t, targetIDs)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.CommentEdges(ctx, t, targetIDs)
	if err != nil {
		return nil, err
	}

	return Fold(targetIDs, Edges{Likes: likes, Bookmarks: bookmarks, Comments: comments}, viewerID), nil
}

// Like records that userID likes the target. Repeating it is a no-op.
func (s *Service) Like(ctx context.Context, t repository.Target, userID, targetID uint64) (Stats, error) {
	return s.write(ctx, t, userID, targetID, "like", s.repo.Like)
}

// Unlike removes userID's like. Removing a missing like is a no-op.
func (s *Service) Unlike(ctx context.Context, t repository.Target, userID, targetID uint64) (Stats, error) {
	return s.write(ctx, t, userID, targetID, "unlike", s.repo.Unlike)
}

// Bookmark records that userID bookmarked the target. Repeating it is a no-op.
func (s *Service) Bookmark(ctx context.Context, t repository.Target, userID, targetID uint64) (Stats, error) {
	return s.write(ctx, t, userID, targetID, "bookmark", s.repo.Bookmark)
}

// Unbookmark removes userID's bookmark.
func (s *Service) Unbookmark(ctx context.Context, t repository.Target, userID, targetID uint64) (Stats, error) {
	return s.write(ctx, t, userID, targetID, "unbookmark", s.repo.Unbookmark)
}

// Comment adds a comment and returns the refreshed overlay.
func (s *Service) Comment(ctx context.Context, t repository.Target, userID, targetID uint64, text string) (Stats, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Stats{}, svcErr.InvalidArgument("comment text is required")
	}
	if utf8.RuneCountInString(text) > maxCommentLen {
		return Stats{}, svcErr.InvalidArgument("comment text must be at most %d characters", maxCommentLen)
	}
	return s.write(ctx, t, userID, targetID, "comment", func(ctx context.Context, t repository.Target, u, id uint64) error {
		return s.repo.AddComment(ctx, t, u, id, text)
	})
}

// Comments lists visible comments on a target, newest first.
func (s *Service) Comments(
	ctx context.Context,
	t repository.Target,
	viewerID, targetID uint64,
	page, limit int,
) (pagination.Page[repository.Comment], error) {
	if err := s.ensureVisible(ctx, t, viewerID, targetID); err != nil {
		return pagination.Page[repository.Comment]{}, err
	}
	comments, total, err := s.repo.Comments(ctx, t, targetID, pagination.Offset(page, limit), limit)
	if err != nil {
		return pagination.Page[repository.Comment]{}, err
	}
	return pagination.New(comments, total, page, limit), nil
}

func (s *Service) write(
	ctx context.Context,
	t repository.Target,
	userID, targetID uint64,
	action string,
	fn func(context.Context, repository.Target, uint64, uint64) error,
) (Stats, error) {
	if userID == 0 {
		return Stats{}, svcErr.InvalidArgument("caller identity is required to %s", action)
	}
	if err := s.ensureVisible(ctx, t, userID, targetID); err != nil {
		return Stats{}, err
	}
	if err := fn(ctx, t, userID, targetID); err != nil {
		s.log.Error("engagement write failed", "action", action, "target", t.Name, "target_id", targetID, "err", err)
		return Stats{}, err
	}
	s.log.Debug("engagement write", "action", action, "target", t.Name, "target_id", targetID, "user_id", userID)

	stats, err := s.Join(ctx, t, []uint64{targetID}, userID)
	if err != nil {
		return Stats{}, err
	}
	return stats[targetID], nil
}

func (s *Service) ensureVisible(ctx context.Context, t repository.Target, viewerID, targetID uint64) error {
	ok, err := s.repo.Visible(ctx, t, viewerID, targetID)
	if err != nil {
		return err
	}
	if !ok {
		return svcErr.NotFound("%s %d not found", t.Name, targetID)
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"toiletfinder/internal/auth"
	"toiletfinder/internal/consensus"
	apperrors "toiletfinder/internal/errors"
	"toiletfinder/internal/logging"
	"toiletfinder/internal/model"
	"toiletfinder/internal/repository"
)

// QueryService builds read views of toilets with consensus values applied.
type QueryService interface {
	ListToilets(ctx context.Context, actor *auth.Identity) ([]model.ToiletSummary, error)
	GetToilet(ctx context.Context, actor *auth.Identity, id uint) (*model.ToiletDetail, error)
}

type queryService struct {
	store  repository.Store
	logger *logrus.Logger
}

// NewQueryService creates a new query service.
func NewQueryService(store repository.Store, logger *logrus.Logger) QueryService {
	return &queryService{store: store, logger: logger}
}

// ListToilets summarizes every toilet. Reviews and authors are loaded in one
// query each.
func (s *queryService) ListToilets(ctx context.Context, actor *auth.Identity) ([]model.ToiletSummary, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	toilets, err := s.store.Toilets().List(ctx)
	if err != nil {
		return nil, s.fail("list toilets", err)
	}

	toiletIDs := make([]uint, 0, len(toilets))
	authorIDs := make([]uint, 0, len(toilets))
	for _, t := range toilets {
		toiletIDs = append(toiletIDs, t.ID)
		authorIDs = append(authorIDs, t.UserID)
	}

	reviews, err := s.store.Reviews().ListByToilets(ctx, toiletIDs)
	if err != nil {
		return nil, s.fail("list reviews", err)
	}
	authors, err := s.authorNames(ctx, authorIDs)
	if err != nil {
		return nil, s.fail("load authors", err)
	}

	summaries := make([]model.ToiletSummary, 0, len(toilets))
	for _, t := range toilets {
		summaries = append(summaries, summarize(t, reviews[t.ID], authors))
	}
	return summaries, nil
}

// GetToilet returns one toilet with its reviews in creation order.
func (s *queryService) GetToilet(ctx context.Context, actor *auth.Identity, id uint) (*model.ToiletDetail, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	toilet, err := s.store.Toilets().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrToiletNotFound
		}
		return nil, s.fail("find toilet", err)
	}

	reviews, err := s.store.Reviews().ListByToilet(ctx, toilet.ID)
	if err != nil {
		return nil, s.fail("list reviews", err)
	}

	authorIDs := make([]uint, 0, len(reviews)+1)
	authorIDs = append(authorIDs, toilet.UserID)
	for _, r := range reviews {
		authorIDs = append(authorIDs, r.UserID)
	}
	authors, err := s.authorNames(ctx, authorIDs)
	if err != nil {
		return nil, s.fail("load authors", err)
	}

	views := make([]model.ReviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, model.ReviewView{
			ID:             r.ID,
			Accessible:     r.Accessible,
			HasToiletPaper: r.HasToiletPaper,
			Cleanliness:    r.Cleanliness,
			Comment:        r.Comment,
			Timestamp:      formatTimestamp(r.CreatedAt),
			Author:         authorName(authors, r.UserID),
		})
	}

	return &model.ToiletDetail{
		ToiletSummary: summarize(*toilet, reviews, authors),
		Timestamp:     formatTimestamp(toilet.CreatedAt),
		Reviews:       views,
	}, nil
}

// authorNames maps user ids to usernames. Ids without a user row are absent.
func (s *queryService) authorNames(ctx context.Context, ids []uint) (map[uint]string, error) {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	users, err := s.store.Users().FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}
	return names, nil
}

func (s *queryService) fail(op string, err error) error {
	logging.LogError(s.logger, op+" failed", err, nil)
	return fmt.Errorf("%s: %w", op, err)
}

func summarize(t model.Toilet, reviews []model.Review, authors map[uint]string) model.ToiletSummary {
	c := consensus.Compute(t, reviews)
	return model.ToiletSummary{
		ID:             t.ID,
		Latitude:       t.Latitude,
		Longitude:      t.Longitude,
		Description:    t.Description,
		Accessible:     c.Accessible,
		HasToiletPaper: c.HasToiletPaper,
		Cleanliness:    c.Cleanliness,
		ReviewCount:    c.ReviewCount,
		Author:         authorName(authors, t.UserID),
	}
}

func authorName(authors map[uint]string, userID uint) string {
	if name, ok := authors[userID]; ok {
		return name
	}
	return model.UnknownAuthor
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(model.TimestampLayout)
}

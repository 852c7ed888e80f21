package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"toiletfinder/internal/auth"
	apperrors "toiletfinder/internal/errors"
	"toiletfinder/internal/repository"
	"toiletfinder/internal/service"
)

// Fixture is the seed file format. Toilets and reviews name their author by username.
type Fixture struct {
	Users   []FixtureUser   `json:"users"`
	Toilets []FixtureToilet `json:"toilets"`
}

// FixtureUser is a user to register.
type FixtureUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FixtureToilet is a toilet and the reviews submitted for it.
type FixtureToilet struct {
	Author         string          `json:"author"`
	Latitude       string          `json:"latitude"`
	Longitude      string          `json:"longitude"`
	Description    string          `json:"description"`
	Accessible     bool            `json:"accessible"`
	HasToiletPaper bool            `json:"has_toilet_paper"`
	Cleanliness    string          `json:"cleanliness"`
	Reviews        []FixtureReview `json:"reviews"`
}

// FixtureReview is one review of the enclosing toilet.
type FixtureReview struct {
	Author         string `json:"author"`
	Accessible     bool   `json:"accessible"`
	HasToiletPaper bool   `json:"has_toilet_paper"`
	Cleanliness    string `json:"cleanliness"`
	Comment        string `json:"comment"`
}

// Stats counts what a seed run wrote.
type Stats struct {
	UsersCreated   int
	UsersExisting  int
	ToiletsCreated int
	ReviewsCreated int
}

// Seeder writes fixtures through the services so every row passes validation.
type Seeder struct {
	store         repository.Store
	authService   service.AuthService
	toiletService service.ToiletService
	logger        *logrus.Logger
}

// Seed registers users and submits toilets and reviews on their behalf.
// Users that already exist are reused.
func (s *Seeder) Seed(ctx context.Context, fixture *Fixture) (Stats, error) {
	var stats Stats

	for _, u := range fixture.Users {
		_, err := s.authService.Signup(ctx, u.Username, strings.ToLower(u.Email), u.Password)
		switch {
		case err == nil:
			stats.UsersCreated++
		case apperrors.KindOf(err) == apperrors.KindConflict:
			stats.UsersExisting++
		default:
			return stats, fmt.Errorf("signup %s: %w", u.Username, err)
		}
	}

	for i, t := range fixture.Toilets {
		actor, err := s.identity(ctx, t.Author)
		if err != nil {
			return stats, fmt.Errorf("toilet %d: %w", i, err)
		}

		toilet, err := s.toiletService.AddToilet(ctx, actor, service.AddToiletInput{
			Latitude:       t.Latitude,
			Longitude:      t.Longitude,
			Description:    t.Description,
			Accessible:     t.Accessible,
			HasToiletPaper: t.HasToiletPaper,
			Cleanliness:    t.Cleanliness,
		})
		if err != nil {
			return stats, fmt.Errorf("toilet %d: %w", i, err)
		}
		stats.ToiletsCreated++

		for j, r := range t.Reviews {
			reviewer, err := s.identity(ctx, r.Author)
			if err != nil {
				return stats, fmt.Errorf("toilet %d review %d: %w", i, j, err)
			}
			if _, err := s.toiletService.AddReview(ctx, reviewer, service.AddReviewInput{
				ToiletID:       toilet.ID,
				Accessible:     r.Accessible,
				HasToiletPaper: r.HasToiletPaper,
				Cleanliness:    r.Cleanliness,
				Comment:        r.Comment,
			}); err != nil {
				return stats, fmt.Errorf("toilet %d review %d: %w", i, j, err)
			}
			stats.ReviewsCreated++
		}
	}

	return stats, nil
}

func (s *Seeder) identity(ctx context.Context, username string) (*auth.Identity, error) {
	user, err := s.store.Users().FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("author %q: %w", username, err)
	}
	return &auth.Identity{UserID: user.ID, Username: user.Username}, nil
}

// loadFixture reads fixtures from a URL, a file, or the fallback bytes when source is empty.
func loadFixture(ctx context.Context, source string, fallback []byte) (*Fixture, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case source == "":
		data = fallback
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		data, err = fetchFixture(ctx, source)
	default:
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}

	var fixture Fixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &fixture, nil
}

func fetchFixture(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fixtures: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("fixture source returned status " + resp.Status)
	}
	return io.ReadAll(resp.Body)
}

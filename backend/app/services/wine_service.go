package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"time"

	"wine-cellar/backend/app/dto"
	"wine-cellar/backend/app/models"
	"wine-cellar/backend/app/repo"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("wine not found")
	ErrInvalidQuery = errors.New("invalid search pattern")
)

type WineService struct {
	wines  *repo.WineRepository
	policy *bluemonday.Policy
}

func NewWineService(wines *repo.WineRepository) *WineService {
	return &WineService{wines: wines, policy: bluemonday.StrictPolicy()}
}

func (s *WineService) List(ctx context.Context) ([]models.Wine, error) {
	return s.wines.ListAll(ctx)
}

// Search returns the wines whose name, type or location matches query.
// The query is a case-sensitive, unanchored regular expression, so a plain
// word matches as a substring. An empty query matches everything.
func (s *WineService) Search(ctx context.Context, query string) ([]models.Wine, error) {
	re, err := regexp.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	all, err := s.wines.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	found := make([]models.Wine, 0, len(all))
	for _, w := range all {
		if re.MatchString(w.Name) || re.MatchString(w.Type) || re.MatchString(w.Location) {
			found = append(found, w)
		}
	}
	return found, nil
}

func (s *WineService) Get(ctx context.Context, id string) (*models.Wine, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	w, err := s.wines.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return w, err
}

func (s *WineService) Create(ctx context.Context, form dto.WineForm) (*models.Wine, error) {
	w := form.Wine
	w.ID = ""
	w.Uploaded = time.Time{}
	s.sanitizeWine(&w)
	if err := s.wines.Create(ctx, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Update writes the submitted mutable fields onto the wine with id.
func (s *WineService) Update(ctx context.Context, id string, form dto.WineForm) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	w := form.Wine
	s.sanitizeWine(&w)
	if form.Has("rating") && w.Rating == "" {
		w.Rating = models.DefaultRating
	}
	return s.wines.Update(ctx, id, &w, form.Fields)
}

// Delete removes the wine with id; deleting a missing id succeeds.
func (s *WineService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	return s.wines.Delete(ctx, id)
}

// maxSanitizePasses bounds nested entity decoding; each pass peels one layer.
const maxSanitizePasses = 8

// Sanitize strips markup from user supplied text and returns plain text.
// Markup smuggled in as entities is decoded and stripped on a later pass.
func (s *WineService) Sanitize(in string) string {
	out := in
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(s.policy.Sanitize(out))
		if next == out {
			return out
		}
		out = next
	}
	return out
}

func (s *WineService) sanitizeWine(w *models.Wine) {
	w.Name = s.Sanitize(w.Name)
	w.Location = s.Sanitize(w.Location)
	w.Type = s.Sanitize(w.Type)
	w.Rating = s.Sanitize(w.Rating)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

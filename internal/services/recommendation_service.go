package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/giftola/internal/models"
)

// Per-idea search caps from the original pipeline parameters.
const (
	maxProductsPerIdea = 2
	maxItemsPerIdea    = 10
	tagSearchMaxPrice  = 1000
)

// IdeaGenerator produces a gift idea list from a prompt.
type IdeaGenerator interface {
	GenerateGiftIdeas(ctx context.Context, prompt string) ([]GiftIdea, error)
}

// ProductSearcher queries the retail product-search API.
type ProductSearcher interface {
	Search(ctx context.Context, term string, minPrice, maxPrice, limit int) ([]SearchResult, error)
}

// RecommendationService turns contact and event attributes into a list of
// purchasable gift suggestions, memoized per event. The fan-out over ideas is
// a fail-fast join: one failed search fails the batch and the request.
type RecommendationService struct {
	db       *gorm.DB
	ideas    IdeaGenerator
	search   ProductSearcher
	settings *SettingsService
}

// NewRecommendationService creates a RecommendationService.
func NewRecommendationService(db *gorm.DB, ideas IdeaGenerator, search ProductSearcher, settings *SettingsService) *RecommendationService {
	return &RecommendationService{db: db, ideas: ideas, search: search, settings: settings}
}

// GetByTag searches products for a category tag directly, uncached.
func (s *RecommendationService) GetByTag(ctx context.Context, tag string, minPrice, maxPrice int) ([]SearchResult, error) {
	if maxPrice <= 0 {
		maxPrice = tagSearchMaxPrice
	}

	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}

	results, err := s.search.Search(ctx, tag, minPrice, maxPrice, 0)
	if err != nil {
		return nil, err
	}

	for i := range results {
		results[i].Link += settings.AffiliateTag
	}

	return results, nil
}

// GetForEvent returns the gift list for an event, serving the cached row
// when it is at least as new as the contact's last edit and recomputing the
// pipeline otherwise. The second return reports a cache hit.
func (s *RecommendationService) GetForEvent(ctx context.Context, event *models.Event, contact *models.Contact) ([]models.GiftItem, bool, error) {
	var cache models.EventGiftCache
	err := s.db.First(&cache, "event_id = ?", event.ID).Error
	if err == nil && !cache.CreatedAt.Before(contact.UpdatedAt) {
		return cache.GiftList, true, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	settings, err := s.settings.Get()
	if err != nil {
		return nil, false, err
	}

	prompt := buildPrompt(settings, contact, event.PreferredCost)

	ideas, err := s.ideas.GenerateGiftIdeas(ctx, prompt)
	if err != nil {
		return nil, false, fmt.Errorf("generate gift ideas: %w", err)
	}

	// One search per idea, all-or-nothing: the group context cancels the
	// remaining searches as soon as one fails.
	g, gctx := errgroup.WithContext(ctx)
	perIdea := make([][]SearchResult, len(ideas))
	for i, idea := range ideas {
		i, idea := i, idea
		g.Go(func() error {
			results, err := s.search.Search(gctx, strings.TrimSpace(idea.Brand+" "+idea.Name), 0, event.PreferredCost, maxProductsPerIdea)
			if err != nil {
				return fmt.Errorf("search %q: %w", idea.Name, err)
			}
			perIdea[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	now := time.Now()
	giftList := make([]models.GiftItem, 0, len(ideas)*maxProductsPerIdea)
	for _, results := range perIdea {
		if len(results) > maxItemsPerIdea {
			results = results[:maxItemsPerIdea]
		}
		for _, r := range results {
			giftList = append(giftList, models.GiftItem{
				ID:        uuid.New(),
				Title:     r.Title,
				Price:     r.Price.Raw,
				Link:      r.Link + settings.AffiliateTag,
				Image:     r.Image,
				Rating:    r.Rating,
				CreatedAt: now,
			})
		}
	}

	row := models.EventGiftCache{
		EventID:   event.ID,
		GiftList:  giftList,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		UpdateAll: true,
	}).Create(&row).Error; err != nil {
		return nil, false, fmt.Errorf("store gift cache: %w", err)
	}

	return giftList, false, nil
}

// buildPrompt substitutes contact and event attributes into the configured
// template.
func buildPrompt(settings *models.Settings, contact *models.Contact, preferredCost int) string {
	template := settings.PromptTemplate
	if template == "" {
		template = models.DefaultPromptTemplate
	}

	preferences, _ := json.Marshal(contact.Preferences)

	return strings.NewReplacer(
		"{noOfGifts}", strconv.Itoa(settings.GiftCount),
		"{preferences}", string(preferences),
		"{preferredCost}", strconv.Itoa(preferredCost),
		"{dob}", contact.DOB,
		"{interests}", strings.Join(contact.SelectedCategories, ", "),
	).Replace(template)
}

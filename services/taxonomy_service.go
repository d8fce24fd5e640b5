package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/tutorial-blog-backend/errs"
	"github.com/rpupo63/tutorial-blog-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TaxonomyService manages categories and tags.
type TaxonomyService struct {
	categories CategoryStore
	tags       TagStore
	logger     zerolog.Logger
}

func NewTaxonomyService(categories CategoryStore, tags TagStore) *TaxonomyService {
	return &TaxonomyService{
		categories: categories,
		tags:       tags,
		logger:     log.With().Str("service", "taxonomy").Logger(),
	}
}

func (s *TaxonomyService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "categories", err)
	}
	return categories, nil
}

func (s *TaxonomyService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	category := &models.Category{Name: strings.TrimSpace(name)}
	if err := validateStruct(category); err != nil {
		return nil, err
	}
	if err := s.categories.Add(ctx, category); err != nil {
		return nil, errs.NewDatabaseError("create", "category", err)
	}
	return category, nil
}

// DeleteCategory removes the category and every post filed under it.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("delete", "category", err)
	}
	s.logger.Info().Str("categoryID", id.String()).Msg("category and its posts deleted")
	return nil
}

func (s *TaxonomyService) ListTags(ctx context.Context) ([]*models.Tag, error) {
	tags, err := s.tags.FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "tags", err)
	}
	return tags, nil
}

func (s *TaxonomyService) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	tag := &models.Tag{Name: strings.TrimSpace(name)}
	if err := validateStruct(tag); err != nil {
		return nil, err
	}
	if err := s.tags.Add(ctx, tag); err != nil {
		return nil, errs.NewDatabaseError("create", "tag", err)
	}
	return tag, nil
}

func (s *TaxonomyService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	if err := s.tags.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("delete", "tag", err)
	}
	return nil
}

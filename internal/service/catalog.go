package service

import (
	"context"

	"transistor_bench/internal/models"
	"transistor_bench/internal/repository"
)

type CatalogService struct {
	coolingRepo repository.CoolingRepo
}

func NewCatalogService(coolingRepo repository.CoolingRepo) *CatalogService {
	return &CatalogService{coolingRepo: coolingRepo}
}

func (s *CatalogService) List(ctx context.Context) ([]models.CoolingProfile, error) {
	return s.coolingRepo.List(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id string) (models.CoolingProfile, error) {
	return s.coolingRepo.Get(ctx, id)
}

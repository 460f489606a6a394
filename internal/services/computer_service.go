package services

import (
	"context"

	"icafe-booking/internal/domain"
	"icafe-booking/internal/repository"
)

type ComputerService struct {
	catalog repository.CatalogRepository
}

func NewComputerService(c repository.CatalogRepository) *ComputerService {
	return &ComputerService{catalog: c}
}

func (s *ComputerService) List(ctx context.Context) ([]domain.Computer, error) {
	return s.catalog.ListComputers(ctx)
}

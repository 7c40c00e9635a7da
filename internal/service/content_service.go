package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/banbasresort/backoffice-api/internal/dto"
	"github.com/banbasresort/backoffice-api/internal/repository"
)

// ErrRoomTypeNotFound indicates a missing catalog entry.
var ErrRoomTypeNotFound = repository.ErrRoomTypeNotFound

// ContentService serves the public marketing catalog. No authorization gate
// applies; everything here is world-readable.
type ContentService interface {
	Rooms(ctx context.Context) ([]dto.RoomTypeResponse, error)
	Room(ctx context.Context, id uint) (dto.RoomTypeResponse, error)
	Amenities(ctx context.Context) ([]dto.AmenityResponse, error)
	Gallery(ctx context.Context, category string, page, pageSize int) (dto.GalleryListResponse, error)
	Resort(ctx context.Context) (dto.ResortInfoResponse, error)
}

type contentService struct {
	repo   repository.ContentRepository
	logger zerolog.Logger
}

// NewContentService constructs the public content service.
func NewContentService(repo repository.ContentRepository, logger zerolog.Logger) ContentService {
	return &contentService{
		repo:   repo,
		logger: logger.With().Str("component", "content_service").Logger(),
	}
}

func (s *contentService) Rooms(ctx context.Context) ([]dto.RoomTypeResponse, error) {
	rooms, err := s.repo.ListRoomTypes(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.RoomTypeResponse, 0, len(rooms))
	for _, room := range rooms {
		responses = append(responses, dto.NewRoomTypeResponse(room))
	}
	return responses, nil
}

func (s *contentService) Room(ctx context.Context, id uint) (dto.RoomTypeResponse, error) {
	room, err := s.repo.GetRoomType(ctx, id)
	if err != nil {
		return dto.RoomTypeResponse{}, err
	}
	return dto.NewRoomTypeResponse(room), nil
}

func (s *contentService) Amenities(ctx context.Context) ([]dto.AmenityResponse, error) {
	amenities, err := s.repo.ListAmenities(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.AmenityResponse, 0, len(amenities))
	for _, amenity := range amenities {
		responses = append(responses, dto.NewAmenityResponse(amenity))
	}
	return responses, nil
}

func (s *contentService) Gallery(ctx context.Context, category string, page, pageSize int) (dto.GalleryListResponse, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if pageSize <= 0 {
		pageSize = 12
	}

	items, total, err := s.repo.ListGallery(ctx, category, page, pageSize)
	if err != nil {
		return dto.GalleryListResponse{}, err
	}
	categories, err := s.repo.GalleryCategories(ctx)
	if err != nil {
		return dto.GalleryListResponse{}, err
	}

	responses := make([]dto.GalleryItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewGalleryItemResponse(item))
	}

	if category == "" {
		category = "all"
	}
	if page <= 0 {
		page = 1
	}
	return dto.GalleryListResponse{
		Items:      responses,
		Categories: categories,
		Category:   category,
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: dto.CalculateTotalPages(total, pageSize),
		},
	}, nil
}

func (s *contentService) Resort(ctx context.Context) (dto.ResortInfoResponse, error) {
	info, err := s.repo.ResortInfo(ctx)
	if err != nil {
		return dto.ResortInfoResponse{}, err
	}
	return dto.NewResortInfoResponse(info), nil
}

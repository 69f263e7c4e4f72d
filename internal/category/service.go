package category

import (
	"log/slog"

	"github.com/frahmantamala/expense-tracker/internal"
)

// Service resolves category labels and their images from the configured table.
type Service struct {
	labels        []string
	images        map[string]string
	fallbackImage string
	logger        *slog.Logger
}

func NewService(cfg internal.CategoriesConfig, logger *slog.Logger) *Service {
	images := make(map[string]string, len(cfg.Images))
	for _, img := range cfg.Images {
		images[normalize(img.Category)] = img.Image
	}
	return &Service{
		labels:        cfg.Labels,
		images:        images,
		fallbackImage: cfg.FallbackImage,
		logger:        logger,
	}
}

func (s *Service) GetAllCategories() []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(s.labels))
	for _, label := range s.labels {
		c := Category{Name: label, Image: s.ImageFor(label)}
		responses = append(responses, c.ToResponse())
	}
	return responses
}

// ImageFor returns the image of category, or the fallback image for free-text labels.
func (s *Service) ImageFor(category string) string {
	if img, ok := s.images[normalize(category)]; ok {
		return img
	}
	s.logger.Debug("no image for category, using fallback", "category", category)
	return s.fallbackImage
}

func (s *Service) IsKnown(category string) bool {
	for _, label := range s.labels {
		if label == category {
			return true
		}
	}
	return false
}

package services

import (
	"context"

	"github.com/yeremiapane/daie-pos/models"
	"gorm.io/gorm"
)

// RatingService records post-visit ratings. Ratings are append-only.
type RatingService struct {
	uow     *UnitOfWork
	catalog Catalog
}

func NewRatingService(uow *UnitOfWork, catalog Catalog) *RatingService {
	return &RatingService{uow: uow, catalog: catalog}
}

func (s *RatingService) Record(ctx context.Context, clientID uint, score int, description *string) (*models.Rating, error) {
	if score < models.MinRatingScore || score > models.MaxRatingScore {
		return nil, invalid("calificacion must be between %d and %d", models.MinRatingScore, models.MaxRatingScore)
	}
	rating := models.Rating{
		Description: description,
		Score:       score,
		ClientID:    clientID,
	}
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		ok, err := s.catalog.ClientExists(tx, clientID)
		if err != nil {
			return err
		}
		if !ok {
			return invalid("client %d does not exist", clientID)
		}
		return classify(tx.Create(&rating).Error, "rating")
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (s *RatingService) Get(ctx context.Context, id uint) (*models.Rating, error) {
	var rating models.Rating
	if err := s.uow.Read(ctx).First(&rating, id).Error; err != nil {
		return nil, classify(err, "rating")
	}
	return &rating, nil
}

// List returns all ratings, or those of one client when clientID is set.
func (s *RatingService) List(ctx context.Context, clientID *uint) ([]models.Rating, error) {
	q := s.uow.Read(ctx).Order("id")
	if clientID != nil {
		q = q.Where("cliente_id = ?", *clientID)
	}
	var ratings []models.Rating
	if err := q.Find(&ratings).Error; err != nil {
		return nil, classify(err, "rating")
	}
	return ratings, nil
}

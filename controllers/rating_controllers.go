package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/daie-pos/services"
	"github.com/yeremiapane/daie-pos/utils"
)

type RatingController struct {
	ratings *services.RatingService
}

func NewRatingController(ratings *services.RatingService) *RatingController {
	return &RatingController{ratings: ratings}
}

func (rc *RatingController) GetAllRatings(c *gin.Context) {
	ratings, err := rc.ratings.List(c.Request.Context(), nil)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of ratings", ratings)
}

func (rc *RatingController) GetRating(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rating, err := rc.ratings.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Rating details", rating)
}

func (rc *RatingController) GetRatingsByClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ratings, err := rc.ratings.List(c.Request.Context(), &id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of ratings", ratings)
}

// CreateRating -> append a rating; the score range is checked by the service
func (rc *RatingController) CreateRating(c *gin.Context) {
	var req struct {
		Description *string `json:"descripcion"`
		Score       int     `json:"calificacion"`
		ClientID    uint    `json:"cliente_id" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	rating, err := rc.ratings.Record(c.Request.Context(), req.ClientID, req.Score, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Rating recorded", rating)
}

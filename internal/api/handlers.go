package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurantlisting/internal/restaurant"
)

// Service — то, что хендлерам нужно от доменного слоя.
type Service interface {
	ListRestaurants(ctx context.Context) ([]restaurant.Dto, error)
	AddRestaurant(ctx context.Context, d restaurant.Dto) (restaurant.Dto, error)
	FetchRestaurant(ctx context.Context, id int64) (restaurant.Lookup, error)
}

// GET /restaurant/fetchAllRestaurants
func ListHandler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.ListRestaurants(c.Request.Context())
		if err != nil {
			storageError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// POST /restaurant/addRestaurant
func AddHandler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in restaurant.Dto
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		saved, err := svc.AddRestaurant(c.Request.Context(), in)
		if err != nil {
			storageError(c, err)
			return
		}
		c.JSON(http.StatusCreated, saved)
	}
}

// GET /restaurant/fetchRestaurant/:id
// Отсутствие записи — 404 с пустым телом.
func FetchHandler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}
		res, err := svc.FetchRestaurant(c.Request.Context(), id)
		if err != nil {
			storageError(c, err)
			return
		}
		d, ok := res.Get()
		if !ok {
			c.Status(http.StatusNotFound)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

func storageError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
}

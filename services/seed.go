package services

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"food-tracker/config"
	"food-tracker/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedEntries builds the development fixture. Dates are spread over today,
// earlier this week and last month relative to now so every report has
// data to show, and user02's totals intentionally pass both default limits.
func SeedEntries(now time.Time) []models.FoodEntry {
	entry := func(user string, taken time.Time, product string, calories, price float64) models.FoodEntry {
		return models.FoodEntry{
			ID:                primitive.NewObjectID(),
			User:              user,
			DateTimeFoodTaken: taken,
			ProductName:       product,
			CalorieValue:      calories,
			Price:             price,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
	}

	return []models.FoodEntry{
		entry("user01", now.Add(-2*time.Hour), "Oatmeal with banana", 350, 4),
		entry("user01", now.Add(-26*time.Hour), "Chicken burrito", 780, 12),
		entry("user01", now.AddDate(0, 0, -3), "Caesar salad", 420, 11),
		entry("user01", now.AddDate(0, -1, 0), "Margherita pizza", 910, 14),
		entry("user02", now.Add(-1*time.Hour), "Double cheeseburger", 1150, 9),
		entry("user02", now.Add(-5*time.Hour), "Milkshake", 620, 6),
		entry("user02", now.Add(-9*time.Hour), "Fries, large", 510, 5),
		entry("user02", now.AddDate(0, 0, -2), "Sushi set", 640, 28),
		entry("user02", now.AddDate(0, 0, -6), "Steak dinner", 980, 1200),
		entry("admin", now.AddDate(0, 0, -1), "Espresso", 5, 2),
	}
}

// InsertInitialData loads the seed fixture (admin maintenance).
func InsertInitialData(client *mongo.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries := SeedEntries(time.Now())
		docs := make([]interface{}, len(entries))
		for i, e := range entries {
			docs[i] = e
		}

		result, err := foodsCollection(client, cfg).InsertMany(c.Request.Context(), docs)
		if err != nil {
			log.Println("SEED FOODS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Some error occurred while inserting all Foods."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": strconv.Itoa(len(result.InsertedIDs)) + " Food entries were inserted successfully!"})
	}
}

package services

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"food-tracker/auth"
	"food-tracker/config"
	"food-tracker/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func parseDays(c *gin.Context) (int, bool) {
	days, err := strconv.Atoi(c.Query("days"))
	if err != nil || days < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "days query parameter must be a positive integer"})
		return 0, false
	}
	return days, true
}

// FindAllNDays counts entries taken in the trailing N-day window (admin).
func FindAllNDays(client *mongo.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, ok := parseDays(c)
		if !ok {
			return
		}

		count, err := CountEntriesInWindow(c.Request.Context(), foodsCollection(client, cfg), days, time.Now())
		if err != nil {
			log.Println("COUNT WINDOW ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Some error occurred while retrieving Food entries."})
			return
		}
		c.JSON(http.StatusOK, count)
	}
}

// AverageCalories reports each user's calorie total and per-day average
// over the trailing N-day window (admin).
func AverageCalories(client *mongo.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, ok := parseDays(c)
		if !ok {
			return
		}

		rows, err := CaloriesPerUser(c.Request.Context(), foodsCollection(client, cfg), days, time.Now())
		if err != nil {
			log.Println("AVERAGE CALORIES ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Some error occurred while retrieving Food entries."})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// TotalCalories lists the days on which the user's calorie total passed
// the configured threshold, newest first.
func TotalCalories(client *mongo.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.GetString(auth.EffectiveUserKey)

		rows, err := CaloriesOverLimitByDay(c.Request.Context(), foodsCollection(client, cfg), user, cfg.CaloriesThreshold, time.Now())
		if err != nil {
			log.Println("TOTAL CALORIES ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Some error occurred while retrieving Food entries."})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// TotalCaloriesInDate returns the user's calorie total for one calendar
// day, no threshold filter; the result may be an empty list.
func TotalCaloriesInDate(client *mongo.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.GetString(auth.EffectiveUserKey)
		date, ok := utils.ParseDate(c.Query("date"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "date query parameter must be a valid date"})
			return
		}

		rows, err := CaloriesForDay(c.Request.Context(), foodsCollection(client, cfg), user, date)
		if err != nil {
			log.Println("CALORIES IN DATE ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Some error occurred while retrieving Food entries."})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// TotalSpending lists the months in which the user's spending passed the
// configured threshold, newest first.
func TotalSpending(client *mongo.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.GetString(auth.EffectiveUserKey)

		rows, err := SpendingOverLimitByMonth(c.Request.Context(), foodsCollection(client, cfg), user, cfg.CostThreshold, time.Now())
		if err != nil {
			log.Println("TOTAL SPENDING ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Some error occurred while retrieving Food entries."})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// TotalSpendingInMonth returns the user's spending total for one calendar
// month, no threshold filter.
func TotalSpendingInMonth(client *mongo.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.GetString(auth.EffectiveUserKey)
		month, ok := utils.ParseDate(c.Query("month"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "month query parameter must be a valid date"})
			return
		}

		rows, err := SpendingForMonth(c.Request.Context(), foodsCollection(client, cfg), user, month)
		if err != nil {
			log.Println("SPENDING IN MONTH ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Some error occurred while retrieving Food entries."})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// ByDates lists the user's entries in an inclusive date range, newest
// first. Missing or unparsable bounds silently fall back to the earliest
// representable date and now.
func ByDates(client *mongo.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.GetString(auth.EffectiveUserKey)

		start, ok := utils.ParseDate(c.Query("startDate"))
		if !ok {
			start = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.Local)
		}
		end, ok := utils.ParseDate(c.Query("endDate"))
		if !ok {
			end = time.Now()
		}

		entries, err := EntriesBetween(c.Request.Context(), foodsCollection(client, cfg), user, start, end)
		if err != nil {
			log.Println("BY DATES ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Some error occurred while retrieving Foods."})
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

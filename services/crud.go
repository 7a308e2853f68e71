package services

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"food-tracker/auth"
	"food-tracker/config"
	"food-tracker/models"
	"food-tracker/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const foodsCollectionName = "foods"

// Bookkeeping timestamps never leave the database.
var hideTimestamps = bson.M{"createdAt": 0, "updatedAt": 0}

func foodsCollection(client *mongo.Client, cfg *config.Config) *mongo.Collection {
	return client.Database(cfg.Database).Collection(foodsCollectionName)
}

type createRequest struct {
	User               string      `json:"user"`
	DateTimeFoodTaken  time.Time   `json:"dateTimeFoodTaken"`
	ProductName        string      `json:"productName"`
	CalorieValue       interface{} `json:"calorieValue"`
	Price              interface{} `json:"price"`
	ConfirmedOverLimit bool        `json:"confirmedOverLimit"`
}

// parseNumberField accepts the numeric shapes the original form produced:
// a JSON number, or a string holding an integer/decimal with optional sign
// and exponent. Absent fields default to zero. Negative values are invalid.
func parseNumberField(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, true
	case float64:
		return n, n >= 0
	case string:
		if !utils.ValidNumberField(n) {
			return 0, false
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return value, value >= 0
	default:
		return 0, false
	}
}

// Create validates and persists a new food entry. The limit check runs
// first; when a limit would be exceeded and the request does not carry
// confirmedOverLimit, nothing is persisted and the evaluation is returned
// so the client can ask the user.
func Create(client *mongo.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Println("BIND JSON ERROR:", err)
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload"})
			return
		}

		if req.ProductName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Content can not be empty!"})
			return
		}

		// Ordinary users always create entries as themselves; the admin
		// must say who the entry belongs to.
		caller := c.GetString(auth.UserNameKey)
		user := req.User
		if caller != cfg.AdminUser {
			user = caller
		}
		if user == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "user is required"})
			return
		}

		calories, ok := parseNumberField(req.CalorieValue)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "calorieValue must be a non-negative number"})
			return
		}
		price, ok := parseNumberField(req.Price)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "price must be a non-negative number"})
			return
		}

		taken := req.DateTimeFoodTaken
		if taken.IsZero() {
			taken = time.Now()
		}

		now := time.Now()
		entry := models.FoodEntry{
			ID:                primitive.NewObjectID(),
			User:              user,
			DateTimeFoodTaken: taken,
			ProductName:       req.ProductName,
			CalorieValue:      calories,
			Price:             price,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		foods := foodsCollection(client, cfg)
		checker := NewLimitChecker(foods, cfg.CaloriesThreshold, cfg.CostThreshold)
		check, err := checker.Evaluate(c.Request.Context(), entry)
		if err != nil {
			log.Println("LIMIT CHECK ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Some error occurred while creating the Food entry."})
			return
		}
		if check.Exceeded() && !req.ConfirmedOverLimit {
			c.JSON(http.StatusConflict, gin.H{
				"message": "Saving this entry passes a configured limit; resubmit with confirmedOverLimit to save anyway.",
				"limits":  check,
			})
			return
		}

		if _, err := foods.InsertOne(c.Request.Context(), entry); err != nil {
			log.Println("INSERT FOOD ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Some error occurred while creating the Food entry."})
			return
		}

		c.JSON(http.StatusOK, entry)
	}
}

// FindAll lists entries newest first. The user filter (case-insensitive
// contains) comes from ScopeUser: admins see what they asked for, ordinary
// users only ever their own entries.
func FindAll(client *mongo.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.GetString(auth.EffectiveUserKey)
		isAdmin := c.GetString(auth.UserNameKey) == cfg.AdminUser
		condition := findAllCondition(user, isAdmin)

		opts := options.Find().
			SetProjection(hideTimestamps).
			SetSort(bson.D{{Key: "dateTimeFoodTaken", Value: -1}})

		cursor, err := foodsCollection(client, cfg).Find(c.Request.Context(), condition, opts)
		if err != nil {
			log.Println("FIND FOODS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Some error occurred while retrieving Foods."})
			return
		}
		defer cursor.Close(c.Request.Context())

		entries := []models.FoodEntry{}
		if err := cursor.All(c.Request.Context(), &entries); err != nil {
			log.Println("DECODE FOODS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Some error occurred while retrieving Foods."})
			return
		}

		c.JSON(http.StatusOK, entries)
	}
}

// findAllCondition builds the list filter. An admin-supplied filter keeps
// the case-insensitive contains semantics; a substituted non-admin
// identity matches exactly, so "bob" never sees "bobby"'s entries.
func findAllCondition(user string, isAdmin bool) bson.M {
	if user == "" {
		return bson.M{}
	}
	if isAdmin {
		return bson.M{"user": primitive.Regex{Pattern: user, Options: "i"}}
	}
	return bson.M{"user": user}
}

// FindOne returns a single entry by id, 404 when absent.
func FindOne(client *mongo.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		entryID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving Food entry with id=" + id})
			return
		}

		opts := options.FindOne().SetProjection(hideTimestamps)
		var entry models.FoodEntry
		err = foodsCollection(client, cfg).FindOne(c.Request.Context(), bson.M{"_id": entryID}, opts).Decode(&entry)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not found Food entry with id " + id})
			return
		}
		if err != nil {
			log.Println("FIND FOOD ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving Food entry with id=" + id})
			return
		}

		c.JSON(http.StatusOK, entry)
	}
}

// Update applies the supplied fields to an existing entry. Empty bodies
// are rejected; an absent id is 404, never an upsert.
func Update(client *mongo.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		entryID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating Food entry with id=" + id})
			return
		}

		var patch map[string]interface{}
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Data to update can not be empty!"})
			return
		}
		delete(patch, "id")
		delete(patch, "_id")
		delete(patch, "createdAt")
		delete(patch, "updatedAt")
		if len(patch) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Data to update can not be empty!"})
			return
		}

		update, ok := normalizePatch(patch)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid field value in update"})
			return
		}
		update["updatedAt"] = time.Now()

		result, err := foodsCollection(client, cfg).UpdateByID(c.Request.Context(), entryID, bson.M{"$set": update})
		if err != nil {
			log.Println("UPDATE FOOD ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating Food entry with id=" + id})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cannot update Food entry with id=" + id + ". Maybe Food was not found!"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Food entry was updated successfully."})
	}
}

// normalizePatch coerces updatable fields to their stored types so a patch
// cannot leave a string where a number or date belongs.
func normalizePatch(patch map[string]interface{}) (bson.M, bool) {
	update := bson.M{}
	for key, value := range patch {
		switch key {
		case "calorieValue", "price":
			number, ok := parseNumberField(value)
			if !ok {
				return nil, false
			}
			update[key] = number
		case "dateTimeFoodTaken":
			raw, ok := value.(string)
			if !ok {
				return nil, false
			}
			taken, ok := utils.ParseDate(raw)
			if !ok {
				return nil, false
			}
			update[key] = taken
		default:
			update[key] = value
		}
	}
	return update, true
}

// Delete removes one entry by id, 404 when absent (never reported as success).
func Delete(client *mongo.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		entryID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete Food entry with id=" + id})
			return
		}

		result, err := foodsCollection(client, cfg).DeleteOne(c.Request.Context(), bson.M{"_id": entryID})
		if err != nil {
			log.Println("DELETE FOOD ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete Food entry with id=" + id})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cannot delete Food entry with id=" + id + ". Maybe Food entry was not found!"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Food entry was deleted successfully!"})
	}
}

// DeleteAll is the admin maintenance bulk delete; it reports how many
// entries were removed.
func DeleteAll(client *mongo.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := foodsCollection(client, cfg).DeleteMany(c.Request.Context(), bson.M{})
		if err != nil {
			log.Println("DELETE ALL FOODS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Some error occurred while removing all Foods."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": strconv.FormatInt(result.DeletedCount, 10) + " Food entries were deleted successfully!"})
	}
}

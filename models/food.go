package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodEntry is the single persisted entity: one food consumption event.
// Field names on the wire follow the original API (dateTimeFoodTaken etc).
// CreatedAt/UpdatedAt are bookkeeping only and never appear in responses.
type FoodEntry struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User              string             `bson:"user" json:"user"`
	DateTimeFoodTaken time.Time          `bson:"dateTimeFoodTaken" json:"dateTimeFoodTaken"`
	ProductName       string             `bson:"productName" json:"productName"`
	CalorieValue      float64            `bson:"calorieValue" json:"calorieValue"`
	Price             float64            `bson:"price" json:"price"`
	CreatedAt         time.Time          `bson:"createdAt,omitempty" json:"-"`
	UpdatedAt         time.Time          `bson:"updatedAt,omitempty" json:"-"`
}

// DayCalories is one row of the per-day calorie reports.
type DayCalories struct {
	Date          time.Time `bson:"date" json:"date"`
	TotalCalories float64   `bson:"totalCalories" json:"totalCalories"`
}

// MonthSpending is one row of the per-month spending reports.
type MonthSpending struct {
	Date          time.Time `bson:"date" json:"date"`
	TotalSpending float64   `bson:"totalSpending" json:"totalSpending"`
}

// UserCalories is one row of the admin per-user average report.
type UserCalories struct {
	User            string  `bson:"user" json:"user"`
	TotalCalories   float64 `bson:"totalCalories" json:"totalCalories"`
	AverageCalories float64 `bson:"averageCalories" json:"averageCalories"`
}

// WindowCount is the admin trailing-window entry count.
type WindowCount struct {
	TotalEntries int64 `bson:"totalEntries" json:"totalEntries"`
}

package services

import (
	"context"
	"time"

	"food-tracker/models"
	"food-tracker/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The pipeline constructors are split from execution so the report shapes
// can be asserted in tests without a running database.

func countInWindowPipeline(start time.Time) mongo.Pipeline {
	return NewReportPipeline().
		MatchTakenSince(start).
		GroupSum(nil, "", "totalEntries").
		Project(bson.M{"_id": 0, "totalEntries": 1}).
		Build()
}

func caloriesPerUserPipeline(start time.Time, days int) mongo.Pipeline {
	return NewReportPipeline().
		MatchTakenSince(start).
		GroupSum("$user", "$calorieValue", "totalCalories").
		SortAscending("_id").
		Project(bson.M{
			"_id":             0,
			"user":            "$_id",
			"totalCalories":   1,
			"averageCalories": bson.M{"$divide": bson.A{"$totalCalories", days}},
		}).
		Build()
}

func caloriesOverLimitByDayPipeline(user string, limit float64, now time.Time) mongo.Pipeline {
	return NewReportPipeline().
		TruncateTaken(UnitDay, now, "user", "calorieValue").
		MatchUser(user).
		GroupSum("$date", "$calorieValue", "totalCalories").
		MatchTotalAbove("totalCalories", limit).
		Project(bson.M{"_id": 0, "date": "$_id", "totalCalories": 1}).
		SortNewestFirst("date").
		Build()
}

func caloriesForDayPipeline(user string, day time.Time) mongo.Pipeline {
	return NewReportPipeline().
		TruncateTaken(UnitDay, day, "user", "calorieValue").
		MatchUser(user).
		MatchDate(utils.JustDate(day)).
		GroupSum("$date", "$calorieValue", "totalCalories").
		Project(bson.M{"_id": 0, "date": "$_id", "totalCalories": 1}).
		Build()
}

func spendingOverLimitByMonthPipeline(user string, limit float64, now time.Time) mongo.Pipeline {
	return NewReportPipeline().
		TruncateTaken(UnitMonth, now, "user", "price").
		MatchUser(user).
		GroupSum("$date", "$price", "totalSpending").
		MatchTotalAbove("totalSpending", limit).
		Project(bson.M{"_id": 0, "date": "$_id", "totalSpending": 1}).
		SortNewestFirst("date").
		Build()
}

func spendingForMonthPipeline(user string, month time.Time) mongo.Pipeline {
	return NewReportPipeline().
		TruncateTaken(UnitMonth, month, "user", "price").
		MatchUser(user).
		MatchDate(utils.FirstDayOfMonth(month)).
		GroupSum("$date", "$price", "totalSpending").
		Project(bson.M{"_id": 0, "date": "$_id", "totalSpending": 1}).
		Build()
}

// CountEntriesInWindow counts entries taken in the trailing days window.
// The aggregation yields no row at all on an empty window; that case is
// collapsed to an explicit zero.
func CountEntriesInWindow(ctx context.Context, foods *mongo.Collection, days int, now time.Time) (models.WindowCount, error) {
	var counts []models.WindowCount
	if err := aggregate(ctx, foods, countInWindowPipeline(utils.WindowStart(days, now)), &counts); err != nil {
		return models.WindowCount{}, err
	}
	if len(counts) == 0 {
		return models.WindowCount{TotalEntries: 0}, nil
	}
	return counts[0], nil
}

// CaloriesPerUser sums calories per user over the trailing days window and
// reports sum/days as the average, ordered by user ascending.
func CaloriesPerUser(ctx context.Context, foods *mongo.Collection, days int, now time.Time) ([]models.UserCalories, error) {
	rows := []models.UserCalories{}
	err := aggregate(ctx, foods, caloriesPerUserPipeline(utils.WindowStart(days, now), days), &rows)
	return rows, err
}

// CaloriesOverLimitByDay returns the user's day buckets whose calorie sum
// is strictly above limit, newest first.
func CaloriesOverLimitByDay(ctx context.Context, foods *mongo.Collection, user string, limit float64, now time.Time) ([]models.DayCalories, error) {
	rows := []models.DayCalories{}
	err := aggregate(ctx, foods, caloriesOverLimitByDayPipeline(user, limit, now), &rows)
	return rows, err
}

// CaloriesForDay returns the user's calorie total for one calendar day,
// unfiltered by any limit. The result may be empty.
func CaloriesForDay(ctx context.Context, foods *mongo.Collection, user string, day time.Time) ([]models.DayCalories, error) {
	rows := []models.DayCalories{}
	err := aggregate(ctx, foods, caloriesForDayPipeline(user, day), &rows)
	return rows, err
}

// SpendingOverLimitByMonth returns the user's month buckets whose spending
// is strictly above limit, newest first.
func SpendingOverLimitByMonth(ctx context.Context, foods *mongo.Collection, user string, limit float64, now time.Time) ([]models.MonthSpending, error) {
	rows := []models.MonthSpending{}
	err := aggregate(ctx, foods, spendingOverLimitByMonthPipeline(user, limit, now), &rows)
	return rows, err
}

// SpendingForMonth returns the user's spending total for one calendar
// month, unfiltered by any limit.
func SpendingForMonth(ctx context.Context, foods *mongo.Collection, user string, month time.Time) ([]models.MonthSpending, error) {
	rows := []models.MonthSpending{}
	err := aggregate(ctx, foods, spendingForMonthPipeline(user, month), &rows)
	return rows, err
}

// EntriesBetween lists entries taken between start and end inclusive,
// newest first. An empty user means all users.
func EntriesBetween(ctx context.Context, foods *mongo.Collection, user string, start, end time.Time) ([]models.FoodEntry, error) {
	condition := bson.M{
		"dateTimeFoodTaken": bson.M{"$gte": start, "$lte": end},
	}
	if user != "" {
		condition["user"] = user
	}

	opts := options.Find().
		SetProjection(hideTimestamps).
		SetSort(bson.D{{Key: "dateTimeFoodTaken", Value: -1}})

	cursor, err := foods.Find(ctx, condition, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []models.FoodEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func aggregate(ctx context.Context, foods *mongo.Collection, pipeline mongo.Pipeline, out interface{}) error {
	cursor, err := foods.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

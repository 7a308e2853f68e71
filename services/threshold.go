package services

import (
	"context"
	"time"

	"food-tracker/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TotalsSource supplies the cumulative totals the limit check compares
// against. Backed by the report queries in production; stubbed in tests.
type TotalsSource interface {
	DayCalories(ctx context.Context, user string, day time.Time) (float64, error)
	MonthSpending(ctx context.Context, user string, month time.Time) (float64, error)
}

// LimitCheck is the outcome of evaluating a prospective entry against the
// configured limits. It is returned to the client verbatim when
// confirmation is required.
type LimitCheck struct {
	CaloriesExceeded bool    `json:"caloriesExceeded"`
	DayCalories      float64 `json:"dayCalories"`
	CaloriesLimit    float64 `json:"caloriesLimit"`
	SpendingExceeded bool    `json:"spendingExceeded"`
	MonthSpending    float64 `json:"monthSpending"`
	SpendingLimit    float64 `json:"spendingLimit"`
}

// Exceeded reports whether either limit would be passed.
func (lc LimitCheck) Exceeded() bool {
	return lc.CaloriesExceeded || lc.SpendingExceeded
}

// LimitChecker compares a candidate entry, including its own contribution,
// against the configured daily calorie and monthly spending limits. The
// check runs before every insert; it is deliberately not transactional
// with the insert (concurrent creates may both pass against stale totals,
// an accepted behavior for this application).
type LimitChecker struct {
	CaloriesLimit float64
	SpendingLimit float64
	Totals        TotalsSource
}

// Evaluate computes the same-day calorie total and same-month spending
// total that persisting entry would produce. Both comparisons are strict:
// landing exactly on a limit does not require confirmation.
func (l *LimitChecker) Evaluate(ctx context.Context, entry models.FoodEntry) (LimitCheck, error) {
	check := LimitCheck{
		CaloriesLimit: l.CaloriesLimit,
		SpendingLimit: l.SpendingLimit,
	}

	dayTotal, err := l.Totals.DayCalories(ctx, entry.User, entry.DateTimeFoodTaken)
	if err != nil {
		return check, err
	}
	check.DayCalories = dayTotal + entry.CalorieValue
	check.CaloriesExceeded = check.DayCalories > l.CaloriesLimit

	monthTotal, err := l.Totals.MonthSpending(ctx, entry.User, entry.DateTimeFoodTaken)
	if err != nil {
		return check, err
	}
	check.MonthSpending = monthTotal + entry.Price
	check.SpendingExceeded = check.MonthSpending > l.SpendingLimit

	return check, nil
}

// mongoTotals adapts the report queries to the TotalsSource interface.
type mongoTotals struct {
	foods *mongo.Collection
}

func (m mongoTotals) DayCalories(ctx context.Context, user string, day time.Time) (float64, error) {
	rows, err := CaloriesForDay(ctx, m.foods, user, day)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].TotalCalories, nil
}

func (m mongoTotals) MonthSpending(ctx context.Context, user string, month time.Time) (float64, error) {
	rows, err := SpendingForMonth(ctx, m.foods, user, month)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].TotalSpending, nil
}

// NewLimitChecker wires the evaluator to the foods collection.
func NewLimitChecker(foods *mongo.Collection, caloriesLimit, spendingLimit float64) *LimitChecker {
	return &LimitChecker{
		CaloriesLimit: caloriesLimit,
		SpendingLimit: spendingLimit,
		Totals:        mongoTotals{foods: foods},
	}
}

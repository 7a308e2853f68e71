package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"food-tracker/models"
)

type stubTotals struct {
	dayCalories   float64
	monthSpending float64
	err           error
}

func (s stubTotals) DayCalories(ctx context.Context, user string, day time.Time) (float64, error) {
	return s.dayCalories, s.err
}

func (s stubTotals) MonthSpending(ctx context.Context, user string, month time.Time) (float64, error) {
	return s.monthSpending, s.err
}

func TestLimitCheckerEvaluate(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name             string
		dayCalories      float64
		monthSpending    float64
		entry            models.FoodEntry
		caloriesExceeded bool
		spendingExceeded bool
	}{
		{
			name:  "WellWithinLimits",
			entry: models.FoodEntry{User: "alice", DateTimeFoodTaken: now, CalorieValue: 400, Price: 10},
		},
		{
			name:             "SingleEntryOverCalories",
			entry:            models.FoodEntry{User: "alice", DateTimeFoodTaken: now, CalorieValue: 2200, Price: 5},
			caloriesExceeded: true,
		},
		{
			name:             "CandidateContributionTipsCalories",
			dayCalories:      2000,
			entry:            models.FoodEntry{User: "alice", DateTimeFoodTaken: now, CalorieValue: 101, Price: 5},
			caloriesExceeded: true,
		},
		{
			name:        "ExactlyOnCaloriesLimitIsAllowed",
			dayCalories: 2000,
			entry:       models.FoodEntry{User: "alice", DateTimeFoodTaken: now, CalorieValue: 100, Price: 5},
		},
		{
			name:             "MonthSpendingTips",
			monthSpending:    995,
			entry:            models.FoodEntry{User: "alice", DateTimeFoodTaken: now, CalorieValue: 100, Price: 6},
			spendingExceeded: true,
		},
		{
			name:          "ExactlyOnSpendingLimitIsAllowed",
			monthSpending: 995,
			entry:         models.FoodEntry{User: "alice", DateTimeFoodTaken: now, CalorieValue: 100, Price: 5},
		},
		{
			name:             "BothExceeded",
			dayCalories:      2100,
			monthSpending:    1000,
			entry:            models.FoodEntry{User: "alice", DateTimeFoodTaken: now, CalorieValue: 1, Price: 1},
			caloriesExceeded: true,
			spendingExceeded: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checker := &LimitChecker{
				CaloriesLimit: 2100,
				SpendingLimit: 1000,
				Totals:        stubTotals{dayCalories: tc.dayCalories, monthSpending: tc.monthSpending},
			}

			check, err := checker.Evaluate(context.Background(), tc.entry)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if check.CaloriesExceeded != tc.caloriesExceeded {
				t.Errorf("CaloriesExceeded = %v, want %v (dayCalories=%v)", check.CaloriesExceeded, tc.caloriesExceeded, check.DayCalories)
			}
			if check.SpendingExceeded != tc.spendingExceeded {
				t.Errorf("SpendingExceeded = %v, want %v (monthSpending=%v)", check.SpendingExceeded, tc.spendingExceeded, check.MonthSpending)
			}
			if want := tc.caloriesExceeded || tc.spendingExceeded; check.Exceeded() != want {
				t.Errorf("Exceeded() = %v, want %v", check.Exceeded(), want)
			}
		})
	}
}

func TestLimitCheckerIncludesCandidateTotals(t *testing.T) {
	checker := &LimitChecker{
		CaloriesLimit: 2100,
		SpendingLimit: 1000,
		Totals:        stubTotals{dayCalories: 1500, monthSpending: 200},
	}

	check, err := checker.Evaluate(context.Background(), models.FoodEntry{
		User:              "alice",
		DateTimeFoodTaken: time.Now(),
		CalorieValue:      300,
		Price:             50,
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if check.DayCalories != 1800 {
		t.Errorf("Expected day total 1800 including candidate, got %v", check.DayCalories)
	}
	if check.MonthSpending != 250 {
		t.Errorf("Expected month spending 250 including candidate, got %v", check.MonthSpending)
	}
}

func TestLimitCheckerPropagatesStorageError(t *testing.T) {
	checker := &LimitChecker{
		CaloriesLimit: 2100,
		SpendingLimit: 1000,
		Totals:        stubTotals{err: errors.New("connection reset")},
	}

	if _, err := checker.Evaluate(context.Background(), models.FoodEntry{User: "alice", DateTimeFoodTaken: time.Now()}); err == nil {
		t.Error("Expected storage error to propagate")
	}
}

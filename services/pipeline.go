package services

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Every report is the same shape: filter, optionally truncate the taken
// timestamp to a calendar bucket, group-sum, optionally drop buckets at or
// below a limit, sort. ReportPipeline composes those stages so the reports
// share one vocabulary instead of five near-duplicate pipeline literals.
type ReportPipeline struct {
	stages mongo.Pipeline
}

func NewReportPipeline() *ReportPipeline {
	return &ReportPipeline{}
}

// Calendar units accepted by TruncateTaken.
const (
	UnitDay   = "day"
	UnitMonth = "month"
)

// timezoneFor names the server's calendar zone for $dateTrunc. An IANA
// name (available when TZ is set) buckets correctly across DST changes;
// without one, fall back to the local offset at the reference instant, so
// date-filtered pipelines must pass the queried date as the reference —
// today's offset can be an hour off for a date in the other DST phase.
func timezoneFor(reference time.Time) string {
	if name := time.Local.String(); name != "Local" && name != "" {
		return name
	}
	return reference.In(time.Local).Format("-07:00")
}

// MatchTakenSince keeps entries whose taken timestamp is at or after start.
func (p *ReportPipeline) MatchTakenSince(start time.Time) *ReportPipeline {
	p.stages = append(p.stages, bson.D{{Key: "$match", Value: bson.M{
		"dateTimeFoodTaken": bson.M{"$gte": start},
	}}})
	return p
}

// TruncateTaken projects the taken timestamp down to a calendar bucket
// ("date") in the server's local timezone, keeping the listed fields. The
// reference instant anchors the zone: pass the queried date when a later
// MatchDate must land on the same bucket, otherwise now.
func (p *ReportPipeline) TruncateTaken(unit string, reference time.Time, keep ...string) *ReportPipeline {
	project := bson.M{
		"date": bson.M{"$dateTrunc": bson.M{
			"date":     "$dateTimeFoodTaken",
			"unit":     unit,
			"timezone": timezoneFor(reference),
		}},
	}
	for _, field := range keep {
		project[field] = 1
	}
	p.stages = append(p.stages, bson.D{{Key: "$project", Value: project}})
	return p
}

func (p *ReportPipeline) MatchUser(user string) *ReportPipeline {
	p.stages = append(p.stages, bson.D{{Key: "$match", Value: bson.M{"user": user}}})
	return p
}

// MatchDate keeps only the bucket produced by TruncateTaken that equals date.
func (p *ReportPipeline) MatchDate(date time.Time) *ReportPipeline {
	p.stages = append(p.stages, bson.D{{Key: "$match", Value: bson.M{"date": date}}})
	return p
}

// GroupSum groups by id (a field expression such as "$date" or "$user",
// or nil for a single group) and sums field into as. An empty field counts
// documents instead.
func (p *ReportPipeline) GroupSum(id interface{}, field, as string) *ReportPipeline {
	var sum interface{} = 1
	if field != "" {
		sum = field
	}
	p.stages = append(p.stages, bson.D{{Key: "$group", Value: bson.M{
		"_id": id,
		as:    bson.M{"$sum": sum},
	}}})
	return p
}

// MatchTotalAbove drops buckets whose total is at or below limit. Strictly
// greater: a bucket summing exactly to the limit is excluded.
func (p *ReportPipeline) MatchTotalAbove(as string, limit float64) *ReportPipeline {
	p.stages = append(p.stages, bson.D{{Key: "$match", Value: bson.M{
		as: bson.M{"$gt": limit},
	}}})
	return p
}

// Project appends an arbitrary $project stage, used for the final row shape.
func (p *ReportPipeline) Project(spec bson.M) *ReportPipeline {
	p.stages = append(p.stages, bson.D{{Key: "$project", Value: spec}})
	return p
}

// SortNewestFirst orders rows by the named date field descending.
func (p *ReportPipeline) SortNewestFirst(field string) *ReportPipeline {
	p.stages = append(p.stages, bson.D{{Key: "$sort", Value: bson.D{{Key: field, Value: -1}}}})
	return p
}

// SortAscending orders rows by the named field ascending.
func (p *ReportPipeline) SortAscending(field string) *ReportPipeline {
	p.stages = append(p.stages, bson.D{{Key: "$sort", Value: bson.D{{Key: field, Value: 1}}}})
	return p
}

func (p *ReportPipeline) Build() mongo.Pipeline {
	return p.stages
}

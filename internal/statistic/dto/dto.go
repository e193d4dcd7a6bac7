package dto

import "github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"

const (
	ChartDay   = "day"
	ChartWeek  = "week"
	ChartMonth = "month"
)

type RevenueChartQuery struct {
	Type string
}

func (q *RevenueChartQuery) Validate() error {
	switch q.Type {
	case "":
		q.Type = ChartDay
	case ChartDay, ChartWeek, ChartMonth:
	default:
		return apperr.Validation("type must be day, week or month")
	}
	return nil
}

type PointValue struct {
	Revenue       int64 `json:"revenue"`
	NumberOfOrder int64 `json:"numberOfOrder"`
}

type ChartPoint struct {
	Label string     `json:"label"`
	Value PointValue `json:"value"`
}

type Overview struct {
	Revenue       int64 `json:"revenue"`
	NumberOfOrder int64 `json:"numberOfOrder"`
}

// ShareChart is a labelled breakdown, e.g. orders per type.
type ShareChart struct {
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
	Total  int64    `json:"total"`
}

type LabelCount struct {
	Label string `db:"label"`
	Value int64  `db:"value"`
}

type TopProduct struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Sales   int64  `db:"sales" json:"sales"`
	Revenue int64  `db:"revenue" json:"revenue"`
}

func NewShareChart(rows []LabelCount) ShareChart {
	c := ShareChart{Labels: []string{}, Values: []int64{}}
	for _, r := range rows {
		c.Labels = append(c.Labels, r.Label)
		c.Values = append(c.Values, r.Value)
		c.Total += r.Value
	}
	return c
}

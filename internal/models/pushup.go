package models

import "time"

type Pushup struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Reps      int       `json:"reps"`
	CreatedAt time.Time `json:"created_at"`
}

type PushupStats struct {
	UserID       string `json:"user_id"`
	TotalReps    int64  `json:"total_reps"`
	BestReps     int    `json:"best_reps"`
	TodayReps    int64  `json:"today_reps"`
	RecordsCount int64  `json:"records_count"`
}

// DailyReps is the sum of reps for one UTC calendar day.
type DailyReps struct {
	Date Date  `json:"date"`
	Reps int64 `json:"reps"`
}

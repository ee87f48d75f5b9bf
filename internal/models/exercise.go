package models

// ExercisePoint is one stored day of an exercise series. Rows are keyed by
// (user_id, exercise, entry_date); the key columns other than the date are
// implied by the query that produced the point.
type ExercisePoint struct {
	EntryDate Date `json:"entry_date"`
	Value     int  `json:"value"`
}

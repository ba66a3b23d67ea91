package plans

// WorkPlan is a named training plan a user follows. Day is the date the
// plan is scheduled for, rendered as "2006-01-02", empty when unset.
type WorkPlan struct {
	ID          int    `json:"workId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Day         string `json:"day,omitempty"`
}

// PlanEntry ties one exercise into a work plan with a set and rep target.
type PlanEntry struct {
	ID         int `json:"planEntryId"`
	WorkID     int `json:"workId"`
	ExerciseID int `json:"exerciseId"`
	Sets       int `json:"sets"`
	Reps       int `json:"reps"`
}

package meals

// MealCollection groups foods into a named plan, e.g. "High Protein" or
// "Cutting Week 1".
type MealCollection struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Food struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Calories float64 `json:"calories"`
}

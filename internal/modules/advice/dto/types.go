package dto

type AdviceOutput struct {
	Area         string   `json:"area"`
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Satisfaction float64  `json:"satisfaction"`
	Risk         float64  `json:"risk"`
	Suggestions  []string `json:"suggestions"`
}

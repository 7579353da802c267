package stats

import "github.com/examprep/backend/internal/domain/answer"

// Result holds answer counts for one slot.
type Result struct {
	TotalAttempts  int `json:"total_attempts"`
	CorrectAnswers int `json:"correct_answers"`
	WrongAnswers   int `json:"wrong_answers"`
	SuccessRate    int `json:"success_rate"` // percentage, 0-100
}

// NewResult derives the wrong count and success rate. correct is clamped
// to [0, total].
func NewResult(total, correct int) Result {
	if total < 0 {
		total = 0
	}
	if correct < 0 {
		correct = 0
	}
	if correct > total {
		correct = total
	}
	return Result{
		TotalAttempts:  total,
		CorrectAnswers: correct,
		WrongAnswers:   total - correct,
		SuccessRate:    Percent(correct, total),
	}
}

// Reduce counts the records.
func Reduce(records []answer.Record) Result {
	correct := 0
	for _, r := range records {
		if r.IsCorrect {
			correct++
		}
	}
	return NewResult(len(records), correct)
}

// Percent returns 100*part/whole rounded half up, or 0 when whole is 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}

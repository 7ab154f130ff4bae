package entities

// QuestionResult is the outcome of one answered question.
type QuestionResult struct {
	QuizID        string
	Correct       bool
	ElapsedMillis int64
}

// Submission is the payload sent to the result endpoint once a quiz set is finished.
type Submission struct {
	QuizSetID string
	Results   []QuestionResult
}

// CorrectCount returns the number of correctly answered questions.
func (s Submission) CorrectCount() int {
	n := 0
	for _, r := range s.Results {
		if r.Correct {
			n++
		}
	}
	return n
}

// TotalElapsedMillis sums the time spent on every question.
func (s Submission) TotalElapsedMillis() int64 {
	var total int64
	for _, r := range s.Results {
		total += r.ElapsedMillis
	}
	return total
}

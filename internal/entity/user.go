package entity

// User is the public view of an account.
type User struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	SourceLang Language `json:"source_lang"`
	TargetLang Language `json:"target_lang"`
}

// ProgressItem joins a progress record with its lesson title for display.
type ProgressItem struct {
	LessonID    string `json:"lesson_id"`
	LessonTitle string `json:"lesson_title"`
	Completed   bool   `json:"completed"`
	Score       int    `json:"score"`
}

// UserProfile is what the profile endpoint returns: account identity plus the
// title-joined progress list.
type UserProfile struct {
	Name       string         `json:"name"`
	SourceLang Language       `json:"source_lang"`
	TargetLang Language       `json:"target_lang"`
	Progress   []ProgressItem `json:"progress"`
}

// CompletedCount returns how many progress items are marked completed.
func (p *UserProfile) CompletedCount() int {
	count := 0
	for _, item := range p.Progress {
		if item.Completed {
			count++
		}
	}
	return count
}

// CompletionPercent returns the share of completed items as 0-100. An empty
// progress list yields 0, never a division by zero.
func (p *UserProfile) CompletionPercent() int {
	if len(p.Progress) == 0 {
		return 0
	}
	return Score(p.CompletedCount(), len(p.Progress))
}

package entity

import (
	"strings"
	"time"
)

// Account is the stored registration record. Its generated ID doubles as the
// bearer token for every authenticated call.
type Account struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Contact    string           `json:"contact"`
	SourceLang Language         `json:"source_lang"`
	TargetLang Language         `json:"target_lang"`
	Progress   []ProgressRecord `json:"progress"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// ProgressRecord is the durable summary of an account's last outcome on a
// lesson's quiz. An account holds at most one record per lesson.
type ProgressRecord struct {
	LessonID  string `json:"lesson_id"`
	Completed bool   `json:"completed"`
	Score     int    `json:"score"`
}

// Validate validates the account for registration.
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrInvalidAccountName
	}
	if a.SourceLang != LanguageUnspecified && a.SourceLang == a.TargetLang {
		return ErrSameLanguagePair
	}
	return nil
}

// Normalize ensures defaults & constraints before persistence.
func (a *Account) Normalize(now time.Time) {
	a.Name = strings.TrimSpace(a.Name)
	a.Contact = strings.TrimSpace(a.Contact)
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	if a.Progress == nil {
		a.Progress = []ProgressRecord{}
	}
}

// RecordProgress upserts the progress record for lessonID: an existing record
// is overwritten with completed=true and the new score, otherwise a record is
// appended. Last write wins.
func (a *Account) RecordProgress(lessonID string, score int) {
	for i := range a.Progress {
		if a.Progress[i].LessonID == lessonID {
			a.Progress[i].Completed = true
			a.Progress[i].Score = score
			return
		}
	}
	a.Progress = append(a.Progress, ProgressRecord{
		LessonID:  lessonID,
		Completed: true,
		Score:     score,
	})
}

// PublicUser returns the public view of the account handed out at
// registration and carried in the client session.
func (a *Account) PublicUser() User {
	return User{
		ID:         a.ID,
		Name:       a.Name,
		SourceLang: a.SourceLang,
		TargetLang: a.TargetLang,
	}
}

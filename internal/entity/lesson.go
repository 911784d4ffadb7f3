package entity

import "fmt"

// Lesson is a themed bundle of bilingual phrases plus an optional
// multiple-choice quiz, scoped to one source→target language pair. Lessons
// come from the seed catalog and are read-only at runtime.
type Lesson struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	SourceLang  Language   `json:"source_lang"`
	TargetLang  Language   `json:"target_lang"`
	Phrases     []Phrase   `json:"phrases"`
	Quiz        []Question `json:"quiz"`
}

// LessonSummary carries the listing fields of a lesson without its phrase and
// quiz payloads.
type LessonSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	SourceLang  Language `json:"source_lang"`
	TargetLang  Language `json:"target_lang"`
}

// Phrase is one bilingual card. Audio URLs may be empty; playback is optional.
type Phrase struct {
	ID             string `json:"id"`
	PhraseID       string `json:"phrase_id"`
	SourceText     string `json:"source_text"`
	TargetText     string `json:"target_text"`
	SourceAudioURL string `json:"source_audio_url"`
	TargetAudioURL string `json:"target_audio_url"`
}

// Summary strips the lesson down to its listing fields.
func (l *Lesson) Summary() LessonSummary {
	return LessonSummary{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		SourceLang:  l.SourceLang,
		TargetLang:  l.TargetLang,
	}
}

// HasQuiz reports whether quiz-taking is available for this lesson.
func (l *Lesson) HasQuiz() bool { return len(l.Quiz) > 0 }

// MatchesPair reports whether the lesson targets the given language pair.
func (s LessonSummary) MatchesPair(source, target Language) bool {
	return s.SourceLang == source && s.TargetLang == target
}

// Validate checks catalog invariants: a lesson needs an id, a title and at
// least one phrase, and every question's correct answer must be one of its
// options.
func (l *Lesson) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("lesson without id")
	}
	if l.Title == "" {
		return fmt.Errorf("lesson %s: title is required", l.ID)
	}
	if len(l.Phrases) == 0 {
		return fmt.Errorf("lesson %s: at least one phrase is required", l.ID)
	}
	for _, q := range l.Quiz {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("lesson %s: %w", l.ID, err)
		}
	}
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/eslsoft/setu/internal/entity"
	"github.com/eslsoft/setu/internal/repository"
)

// SeedCatalog is the built-in lesson set substituting for a real content
// backend. Order is catalog order; listings preserve it.
var SeedCatalog = []entity.Lesson{
	{
		ID:          "665f3a9e1e9b4d3e8c9c7f01",
		Title:       "Get Paid (Wage Negotiation)",
		Description: "Ask for your wages, talk about payment timing, and avoid being cheated.",
		SourceLang:  entity.LanguageHindi,
		TargetLang:  entity.LanguageKannada,
		Phrases: []entity.Phrase{
			{ID: "p1", PhraseID: "pay_1", SourceText: "Mujhe aaj ka pura paisa chahiye.", TargetText: "Eega naanu ivattu saampaadisirolLa duddu beku."},
			{ID: "p2", PhraseID: "pay_2", SourceText: "Aapne kal ka paisa nahi diya.", TargetText: "Neenu ninna haana kodlilla."},
			{ID: "p3", PhraseID: "pay_3", SourceText: "Kitna rate per din?", TargetText: "Ondu dina ge eshtu karchu?"},
		},
		Quiz: []entity.Question{
			{
				ID:            "q1",
				QuestionText:  "How do you say 'I need my full pay today' in Kannada?",
				CorrectAnswer: "Eega naanu ivattu saampaadisirolLa duddu beku.",
				Options: []string{
					"Eega naanu ivattu saampaadisirolLa duddu beku.",
					"Ondu dina ge eshtu karchu?",
					"Neenu ninna haana kodlilla.",
				},
			},
			{
				ID:            "q2",
				QuestionText:  "What is the Hindi meaning of 'Neenu ninna haana kodlilla'?",
				CorrectAnswer: "Aapne kal ka paisa nahi diya.",
				Options: []string{
					"Kitna rate per din?",
					"Aapne kal ka paisa nahi diya.",
					"Tum kahan rehte ho?",
				},
			},
		},
	},
	{
		ID:          "665f3a9e1e9b4d3e8c9c7f02",
		Title:       "At The Clinic",
		Description: "Explain your health issues to a doctor.",
		SourceLang:  entity.LanguageHindi,
		TargetLang:  entity.LanguageKannada,
		Phrases: []entity.Phrase{
			{ID: "p4", PhraseID: "clinic_1", SourceText: "Mera pet dard kar raha hai.", TargetText: "Nanna hotte novu maduttide."},
			{ID: "p5", PhraseID: "clinic_2", SourceText: "Mujhe bukhar hai.", TargetText: "Nanage jwara bandide."},
			{ID: "p6", PhraseID: "clinic_3", SourceText: "Dawaai kahan milegi?", TargetText: "Aushadhi elli siguttade?"},
		},
		Quiz: []entity.Question{
			{
				ID:            "q3",
				QuestionText:  "How do you say 'I have a fever' in Kannada?",
				CorrectAnswer: "Nanage jwara bandide.",
				Options: []string{
					"Nanna hotte novu maduttide.",
					"Nanage jwara bandide.",
					"Aushadhi elli siguttade?",
				},
			},
		},
	},
	{
		ID:          "665f3a9e1e9b4d3e8c9c7f03",
		Title:       "Renting a Room",
		Description: "Talk to a landlord and ask about rent.",
		SourceLang:  entity.LanguageBengali,
		TargetLang:  entity.LanguageMarathi,
		Phrases: []entity.Phrase{
			{ID: "p7", PhraseID: "rent_1", SourceText: "Ekta ghor bhara chai.", TargetText: "Mala ek खोली भाड्याने हवी आहे."},
			{ID: "p8", PhraseID: "rent_2", SourceText: "Bhara koto?", TargetText: "भाडे किती आहे?"},
		},
		Quiz: []entity.Question{
			{
				ID:            "q4",
				QuestionText:  "How do you ask 'What is the rent?' in Marathi?",
				CorrectAnswer: "भाडे किती आहे?",
				Options: []string{
					"Mala ek खोली भाड्याने हवी आहे.",
					"भाडे किती आहे?",
					"Jevan zal ka?",
				},
			},
		},
	},
}

// SeedLessonRepository serves the static catalog from memory. Lessons are
// read-only at runtime.
type SeedLessonRepository struct {
	lessons []entity.Lesson
	byID    map[string]*entity.Lesson
}

var _ repository.LessonRepository = (*SeedLessonRepository)(nil)

// NewSeedLessonRepository builds the catalog from the built-in seed plus any
// extra lessons, validating every entry.
func NewSeedLessonRepository(extra ...entity.Lesson) (*SeedLessonRepository, error) {
	lessons := make([]entity.Lesson, 0, len(SeedCatalog)+len(extra))
	lessons = append(lessons, SeedCatalog...)
	lessons = append(lessons, extra...)

	byID := make(map[string]*entity.Lesson, len(lessons))
	for i := range lessons {
		if err := lessons[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid lesson in catalog: %w", err)
		}
		if _, exists := byID[lessons[i].ID]; exists {
			return nil, fmt.Errorf("duplicate lesson id in catalog: %s", lessons[i].ID)
		}
		byID[lessons[i].ID] = &lessons[i]
	}
	return &SeedLessonRepository{lessons: lessons, byID: byID}, nil
}

func (r *SeedLessonRepository) List(ctx context.Context) ([]entity.Lesson, error) {
	out := make([]entity.Lesson, len(r.lessons))
	copy(out, r.lessons)
	return out, nil
}

func (r *SeedLessonRepository) GetByID(ctx context.Context, id string) (*entity.Lesson, error) {
	lesson, ok := r.byID[id]
	if !ok {
		return nil, entity.ErrLessonNotFound
	}
	found := *lesson
	return &found, nil
}

// LoadCatalogFile reads extra lessons from a JSON file (an array of lessons).
// An empty path returns no lessons.
func LoadCatalogFile(path string) ([]entity.Lesson, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var lessons []entity.Lesson
	if err := json.Unmarshal(data, &lessons); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	return lessons, nil
}

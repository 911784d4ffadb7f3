package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/eslsoft/setu/internal/entity"
	"github.com/eslsoft/setu/internal/repository"
)

// unknownLessonTitle is shown for progress records whose lesson has left the
// catalog since the quiz was taken.
const unknownLessonTitle = "Unknown Lesson"

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name       string
	Contact    string
	SourceLang entity.Language
	TargetLang entity.Language
}

// AccountUsecase encapsulates registration, the (disabled) login flow and the
// profile view.
type AccountUsecase interface {
	// Register creates a new account and returns its id as the bearer token
	// together with the public user view. Re-registration with an already
	// used contact deliberately creates a fresh account; deduplication is a
	// product decision that has not been made.
	Register(ctx context.Context, input RegisterInput) (string, *entity.User, error)
	// Login always fails with entity.ErrLoginDisabled.
	Login(ctx context.Context, contact, password string) error
	// Profile resolves the account behind token and joins each progress
	// record with its lesson title.
	Profile(ctx context.Context, token string) (*entity.UserProfile, error)
}

// NewAccountUsecase wires the repositories with default id generation and clock.
func NewAccountUsecase(accounts repository.AccountRepository, lessons repository.LessonRepository) AccountUsecase {
	return &accountUsecase{
		accounts: accounts,
		lessons:  lessons,
		newID:    uuid.NewString,
		clock:    time.Now,
	}
}

type accountUsecase struct {
	accounts repository.AccountRepository
	lessons  repository.LessonRepository
	newID    func() string
	clock    func() time.Time
}

func (u *accountUsecase) Register(ctx context.Context, input RegisterInput) (string, *entity.User, error) {
	account := &entity.Account{
		Name:       input.Name,
		Contact:    input.Contact,
		SourceLang: input.SourceLang,
		TargetLang: input.TargetLang,
	}
	if err := account.Validate(); err != nil {
		return "", nil, err
	}
	account.ID = u.newID()
	account.Normalize(u.clock())

	created, err := u.accounts.Create(ctx, account)
	if err != nil {
		return "", nil, err
	}
	user := created.PublicUser()
	return created.ID, &user, nil
}

func (u *accountUsecase) Login(ctx context.Context, contact, password string) error {
	return entity.ErrLoginDisabled
}

func (u *accountUsecase) Profile(ctx context.Context, token string) (*entity.UserProfile, error) {
	account, err := u.accounts.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	lessons, err := u.lessons.List(ctx)
	if err != nil {
		return nil, err
	}
	titles := lo.SliceToMap(lessons, func(l entity.Lesson) (string, string) {
		return l.ID, l.Title
	})

	progress := lo.Map(account.Progress, func(rec entity.ProgressRecord, _ int) entity.ProgressItem {
		title, ok := titles[rec.LessonID]
		if !ok {
			title = unknownLessonTitle
		}
		return entity.ProgressItem{
			LessonID:    rec.LessonID,
			LessonTitle: title,
			Completed:   rec.Completed,
			Score:       rec.Score,
		}
	})

	return &entity.UserProfile{
		Name:       account.Name,
		SourceLang: account.SourceLang,
		TargetLang: account.TargetLang,
		Progress:   progress,
	}, nil
}

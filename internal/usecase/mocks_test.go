package usecase

import (
	"context"

	"github.com/eslsoft/setu/internal/entity"
)

// minimal in-memory repositories for testing business logic

type mockAccountRepo struct {
	accounts  map[string]*entity.Account
	createErr error
	updateErr error
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{accounts: make(map[string]*entity.Account)}
}

func (m *mockAccountRepo) Create(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	saved := *account
	m.accounts[account.ID] = &saved
	return &saved, nil
}

func (m *mockAccountRepo) FindByToken(ctx context.Context, token string) (*entity.Account, error) {
	account, ok := m.accounts[token]
	if !ok {
		return nil, entity.ErrAccountNotFound
	}
	found := *account
	return &found, nil
}

func (m *mockAccountRepo) Update(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	if _, ok := m.accounts[account.ID]; !ok {
		return nil, entity.ErrAccountNotFound
	}
	saved := *account
	m.accounts[account.ID] = &saved
	return &saved, nil
}

func (m *mockAccountRepo) List(ctx context.Context) ([]entity.Account, error) {
	out := []entity.Account{}
	for _, account := range m.accounts {
		out = append(out, *account)
	}
	return out, nil
}

type mockLessonRepo struct {
	lessons []entity.Lesson
	listErr error
}

func (m *mockLessonRepo) List(ctx context.Context) ([]entity.Lesson, error) {
	return m.lessons, m.listErr
}

func (m *mockLessonRepo) GetByID(ctx context.Context, id string) (*entity.Lesson, error) {
	for i := range m.lessons {
		if m.lessons[i].ID == id {
			return &m.lessons[i], nil
		}
	}
	return nil, entity.ErrLessonNotFound
}

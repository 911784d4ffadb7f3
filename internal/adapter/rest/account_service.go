package rest

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/setu/internal/entity"
	"github.com/eslsoft/setu/internal/usecase"
)

// AccountService exposes registration, the disabled login and the profile view.
type AccountService struct {
	accounts usecase.AccountUsecase
	logger   *logrus.Logger
}

func NewAccountService(accounts usecase.AccountUsecase, logger *logrus.Logger) *AccountService {
	return &AccountService{accounts: accounts, logger: logger}
}

type registerRequest struct {
	Name       string `json:"name"`
	Contact    string `json:"contact"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type registerResponse struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

func (s *AccountService) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorEnvelope{
			Error: ErrorBody{Kind: KindValidation, Message: "invalid request payload"},
		})
		return
	}

	token, user, err := s.accounts.Register(r.Context(), usecase.RegisterInput{
		Name:       req.Name,
		Contact:    req.Contact,
		SourceLang: entity.ParseLanguage(req.SourceLang),
		TargetLang: entity.ParseLanguage(req.TargetLang),
	})
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, registerResponse{Token: token, User: *user})
}

type loginRequest struct {
	Contact  string `json:"contact"`
	Password string `json:"password"`
}

// Login is intentionally deactivated: accounts authenticate with the token
// handed out at registration.
func (s *AccountService) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorEnvelope{
			Error: ErrorBody{Kind: KindValidation, Message: "invalid request payload"},
		})
		return
	}
	respondError(w, s.logger, s.accounts.Login(r.Context(), req.Contact, req.Password))
}

func (s *AccountService) Profile(w http.ResponseWriter, r *http.Request) {
	token := TokenFromContext(r.Context())
	profile, err := s.accounts.Profile(r.Context(), token)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

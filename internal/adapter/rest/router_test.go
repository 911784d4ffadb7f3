package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/setu/internal/adapter/repository"
	"github.com/eslsoft/setu/internal/entity"
	"github.com/eslsoft/setu/internal/infrastructure/kvstore"
	"github.com/eslsoft/setu/internal/usecase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	accounts := repository.NewFileAccountRepository(
		kvstore.Open(filepath.Join(t.TempDir(), "accounts.json")), 0)
	lessons, err := repository.NewSeedLessonRepository()
	require.NoError(t, err)

	accountUC := usecase.NewAccountUsecase(accounts, lessons)
	lessonUC := usecase.NewLessonUsecase(lessons)
	progressUC := usecase.NewProgressUsecase(accounts)

	handler := Router(
		NewAccountService(accountUC, logger),
		NewLessonService(lessonUC, logger),
		NewProgressService(progressUC, logger),
		logger,
	)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, data
}

func register(t *testing.T, srv *httptest.Server, name, contact, source, target string) (string, entity.User) {
	t.Helper()
	resp, data := doJSON(t, http.MethodPost, srv.URL+"/api/register", "", map[string]string{
		"name":        name,
		"contact":     contact,
		"source_lang": source,
		"target_lang": target,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	var out struct {
		Token string      `json:"token"`
		User  entity.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	require.NotEmpty(t, out.Token)
	return out.Token, out.User
}

func errorKind(t *testing.T, data []byte) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(data, &envelope))
	return envelope.Error.Kind
}

func TestRegister(t *testing.T) {
	srv := newTestServer(t)

	token, user := register(t, srv, "Asha", "asha@example.com", "hi", "kn")
	assert.Equal(t, token, user.ID)
	assert.Equal(t, "Asha", user.Name)
	assert.Equal(t, entity.LanguageHindi, user.SourceLang)
	assert.Equal(t, entity.LanguageKannada, user.TargetLang)
}

func TestRegister_EmptyName(t *testing.T) {
	srv := newTestServer(t)

	resp, data := doJSON(t, http.MethodPost, srv.URL+"/api/register", "", map[string]string{
		"name": "", "source_lang": "hi", "target_lang": "kn",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, KindValidation, errorKind(t, data))
}

func TestRegister_SameLanguagePair(t *testing.T) {
	srv := newTestServer(t)

	resp, data := doJSON(t, http.MethodPost, srv.URL+"/api/register", "", map[string]string{
		"name": "Asha", "source_lang": "hi", "target_lang": "hi",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, KindValidation, errorKind(t, data))
}

func TestRegister_DuplicateContactCreatesNewAccount(t *testing.T) {
	srv := newTestServer(t)

	first, _ := register(t, srv, "Asha", "asha@example.com", "hi", "kn")
	second, _ := register(t, srv, "Asha", "asha@example.com", "hi", "kn")
	assert.NotEqual(t, first, second)
}

func TestLogin_AlwaysDisabled(t *testing.T) {
	srv := newTestServer(t)

	resp, data := doJSON(t, http.MethodPost, srv.URL+"/api/login", "", map[string]string{
		"contact": "asha@example.com", "password": "secret",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, KindFeatureDisabled, errorKind(t, data))
}

func TestListLessons_NoTokenReturnsEmptyList(t *testing.T) {
	srv := newTestServer(t)

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/api/lessons", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(data))
}

func TestListLessons_FilteredByPair(t *testing.T) {
	srv := newTestServer(t)
	token, _ := register(t, srv, "Asha", "asha@example.com", "hi", "kn")

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/api/lessons?source=hi&target=kn", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summaries []entity.LessonSummary
	require.NoError(t, json.Unmarshal(data, &summaries))
	require.Len(t, summaries, 2)
	assert.Equal(t, "Get Paid (Wage Negotiation)", summaries[0].Title)
	assert.Equal(t, "At The Clinic", summaries[1].Title)
}

func TestListLessons_UnfilteredReturnsWholeCatalog(t *testing.T) {
	srv := newTestServer(t)
	token, _ := register(t, srv, "Ravi", "ravi@example.com", "bn", "mr")

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/api/lessons", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summaries []entity.LessonSummary
	require.NoError(t, json.Unmarshal(data, &summaries))
	assert.Len(t, summaries, 3)
}

func TestGetLesson(t *testing.T) {
	srv := newTestServer(t)
	token, _ := register(t, srv, "Asha", "asha@example.com", "hi", "kn")

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/api/lessons/665f3a9e1e9b4d3e8c9c7f02", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var lesson entity.Lesson
	require.NoError(t, json.Unmarshal(data, &lesson))
	assert.Equal(t, "At The Clinic", lesson.Title)
	assert.Len(t, lesson.Phrases, 3)
	require.Len(t, lesson.Quiz, 1)
	assert.Contains(t, lesson.Quiz[0].Options, lesson.Quiz[0].CorrectAnswer)
}

func TestGetLesson_NoToken(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/lessons/665f3a9e1e9b4d3e8c9c7f02", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetLesson_Unknown(t *testing.T) {
	srv := newTestServer(t)
	token, _ := register(t, srv, "Asha", "asha@example.com", "hi", "kn")

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/api/lessons/no-such-lesson", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, KindNotFound, errorKind(t, data))
}

func TestSubmitQuiz_NoToken(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/lessons/665f3a9e1e9b4d3e8c9c7f02/quiz", "",
		map[string]any{"score": 100})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSubmitQuiz_ScoreOutOfRange(t *testing.T) {
	srv := newTestServer(t)
	token, _ := register(t, srv, "Asha", "asha@example.com", "hi", "kn")

	resp, data := doJSON(t, http.MethodPost, srv.URL+"/api/lessons/665f3a9e1e9b4d3e8c9c7f02/quiz", token,
		map[string]any{"score": 101})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, KindValidation, errorKind(t, data))
}

func TestSubmitQuiz_ThenProfileShowsLastScore(t *testing.T) {
	srv := newTestServer(t)
	token, _ := register(t, srv, "Asha", "asha@example.com", "hi", "kn")

	lessonID := "665f3a9e1e9b4d3e8c9c7f02"
	for _, score := range []int{40, 100} {
		resp, data := doJSON(t, http.MethodPost,
			fmt.Sprintf("%s/api/lessons/%s/quiz", srv.URL, lessonID), token,
			map[string]any{
				"score": score,
				"answers": []entity.QuizAnswer{
					{QuestionText: "How do you say 'I have a fever' in Kannada?", ChosenAnswer: "Nanage jwara bandide.", Correct: true},
				},
			})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

		var result usecase.SubmitResult
		require.NoError(t, json.Unmarshal(data, &result))
		assert.Equal(t, "Progress saved", result.Message)
		assert.Equal(t, score, result.Score)
	}

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/api/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile entity.UserProfile
	require.NoError(t, json.Unmarshal(data, &profile))
	require.Len(t, profile.Progress, 1)
	assert.Equal(t, lessonID, profile.Progress[0].LessonID)
	assert.Equal(t, "At The Clinic", profile.Progress[0].LessonTitle)
	assert.Equal(t, 100, profile.Progress[0].Score)
	assert.True(t, profile.Progress[0].Completed)
}

func TestProfile_FreshAccountHasEmptyProgress(t *testing.T) {
	srv := newTestServer(t)
	token, _ := register(t, srv, "Asha", "asha@example.com", "hi", "kn")

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/api/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, "[]", string(raw["progress"]))

	var profile entity.UserProfile
	require.NoError(t, json.Unmarshal(data, &profile))
	assert.Equal(t, 0, profile.CompletionPercent())
}

func TestProfile_UnknownToken(t *testing.T) {
	srv := newTestServer(t)

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/api/profile", "no-such-token", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, KindNotFound, errorKind(t, data))
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, KindNotFound, errorKind(t, data))
}

// Package client is a small Go client for the setu HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to one setu server. The zero token means unauthenticated;
// every method sends the token as a bearer credential when present.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithToken sets the bearer token for authenticated calls.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New builds a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token, e.g. right after registration.
func (c *Client) SetToken(token string) { c.token = token }

// APIError is the error envelope the server returns for failed calls.
type APIError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Error kinds mirrored from the server.
const (
	KindValidation      = "validation"
	KindNotFound        = "not_found"
	KindFeatureDisabled = "feature_disabled"
	KindTransport       = "transport"
)

type errorEnvelope struct {
	Error *APIError `json:"error"`
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name       string `json:"name"`
	Contact    string `json:"contact"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// RegisterResult is the registration payload: the token doubles as the
// account id.
type RegisterResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// User is the public account view.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// LessonSummary lists a lesson without its phrases and quiz.
type LessonSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SourceLang  string `json:"source_lang"`
	TargetLang  string `json:"target_lang"`
}

// Lesson is the full lesson payload.
type Lesson struct {
	LessonSummary
	Phrases []Phrase   `json:"phrases"`
	Quiz    []Question `json:"quiz"`
}

// Phrase is one bilingual card.
type Phrase struct {
	ID             string `json:"id"`
	PhraseID       string `json:"phrase_id"`
	SourceText     string `json:"source_text"`
	TargetText     string `json:"target_text"`
	SourceAudioURL string `json:"source_audio_url"`
	TargetAudioURL string `json:"target_audio_url"`
}

// Question is one multiple-choice question in display order.
type Question struct {
	ID            string   `json:"id"`
	QuestionText  string   `json:"question_text"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options"`
}

// QuizAnswer is one answered question of an attempt.
type QuizAnswer struct {
	QuestionText string `json:"question_text"`
	ChosenAnswer string `json:"chosen_answer"`
	Correct      bool   `json:"correct"`
}

// SubmitResult acknowledges a stored quiz submission.
type SubmitResult struct {
	Message string `json:"message"`
	Score   int    `json:"score"`
}

// ProgressItem is a progress record joined with its lesson title.
type ProgressItem struct {
	LessonID    string `json:"lesson_id"`
	LessonTitle string `json:"lesson_title"`
	Completed   bool   `json:"completed"`
	Score       int    `json:"score"`
}

// Profile is the account profile with its progress list.
type Profile struct {
	Name       string         `json:"name"`
	SourceLang string         `json:"source_lang"`
	TargetLang string         `json:"target_lang"`
	Progress   []ProgressItem `json:"progress"`
}

// Register creates a new account and returns its token and public view.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	var result RegisterResult
	if err := c.do(ctx, http.MethodPost, "/api/register", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Login always fails: the feature is deactivated server side.
func (c *Client) Login(ctx context.Context, contact, password string) error {
	payload := map[string]string{"contact": contact, "password": password}
	return c.do(ctx, http.MethodPost, "/api/login", payload, nil)
}

// ListLessons returns lesson summaries, optionally narrowed to one language
// pair. Without a token the server answers with an empty list.
func (c *Client) ListLessons(ctx context.Context, source, target string) ([]LessonSummary, error) {
	path := "/api/lessons"
	query := url.Values{}
	if source != "" {
		query.Set("source", source)
	}
	if target != "" {
		query.Set("target", target)
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var summaries []LessonSummary
	if err := c.do(ctx, http.MethodGet, path, nil, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetLesson returns one full lesson.
func (c *Client) GetLesson(ctx context.Context, lessonID string) (*Lesson, error) {
	var lesson Lesson
	if err := c.do(ctx, http.MethodGet, "/api/lessons/"+url.PathEscape(lessonID), nil, &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// SubmitQuiz stores a finished attempt's score for the lesson.
func (c *Client) SubmitQuiz(ctx context.Context, lessonID string, score int, answers []QuizAnswer) (*SubmitResult, error) {
	payload := map[string]any{"score": score, "answers": answers}
	var result SubmitResult
	if err := c.do(ctx, http.MethodPost, "/api/lessons/"+url.PathEscape(lessonID)+"/quiz", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Profile returns the account's profile with its progress list.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var envelope errorEnvelope
		if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error != nil {
			envelope.Error.Status = resp.StatusCode
			return envelope.Error
		}
		return &APIError{Kind: KindTransport, Message: http.StatusText(resp.StatusCode), Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

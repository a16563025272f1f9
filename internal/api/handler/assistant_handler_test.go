package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/domain"
	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/ports"
)

type stubAssistantService struct {
	correctFn  func(ctx context.Context, text string) (*ports.CorrectionResult, error)
	converseFn func(ctx context.Context, history []domain.ChatTurn) (*ports.ConversationResult, error)
}

func (s *stubAssistantService) CorrectText(ctx context.Context, text string) (*ports.CorrectionResult, error) {
	return s.correctFn(ctx, text)
}

func (s *stubAssistantService) Converse(ctx context.Context, history []domain.ChatTurn) (*ports.ConversationResult, error) {
	return s.converseFn(ctx, history)
}

func newAIContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/ai/response", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAssistantHandler_Converse_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAssistantService{
		converseFn: func(ctx context.Context, history []domain.ChatTurn) (*ports.ConversationResult, error) {
			if len(history) != 3 {
				t.Fatalf("expected history plus trailing user message, got %d turns", len(history))
			}
			last := history[len(history)-1]
			if last.Role != domain.RoleUser || last.Content != "what are your hours?" {
				t.Fatalf("user_message must be appended as the final user turn, got %+v", last)
			}
			return &ports.ConversationResult{Reply: "We're open 9 to 5."}, nil
		},
	}
	handler := NewAssistantHandler(stub)

	body := `{
		"request_type": "chatbot_response",
		"user_message": "what are your hours?",
		"conversation_history": [
			{"role": "assistant", "content": "Hello!"},
			{"role": "user", "content": "hi"}
		]
	}`
	c, rec := newAIContext(e, body)
	if err := handler.Respond(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["ai_response"] != "We're open 9 to 5." {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["next_node_keyword"]; ok {
		t.Fatalf("empty keyword must be omitted, got %+v", resp)
	}
	if _, ok := resp["degraded"]; ok {
		t.Fatalf("false degraded flag must be omitted, got %+v", resp)
	}
}

func TestAssistantHandler_Converse_RoutingKeyword(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAssistantService{
		converseFn: func(ctx context.Context, history []domain.ChatTurn) (*ports.ConversationResult, error) {
			return &ports.ConversationResult{Reply: "Okay, let's move on.", NextNodeKeyword: "multichoice"}, nil
		},
	}
	handler := NewAssistantHandler(stub)

	c, rec := newAIContext(e, `{"request_type":"chatbot_response","user_message":"show the menu"}`)
	if err := handler.Respond(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["next_node_keyword"] != "multichoice" {
		t.Fatalf("expected routing keyword, got %+v", resp)
	}
}

func TestAssistantHandler_Converse_DegradedStaysOK(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAssistantService{
		converseFn: func(ctx context.Context, history []domain.ChatTurn) (*ports.ConversationResult, error) {
			return &ports.ConversationResult{Reply: "Sorry, try again later.", Degraded: true}, nil
		},
	}
	handler := NewAssistantHandler(stub)

	c, rec := newAIContext(e, `{"request_type":"chatbot_response","user_message":"hi"}`)
	if err := handler.Respond(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("degraded replies must still be 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["degraded"] != true {
		t.Fatalf("expected degraded flag, got %+v", resp)
	}
}

func TestAssistantHandler_Correct_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAssistantService{
		correctFn: func(ctx context.Context, text string) (*ports.CorrectionResult, error) {
			if text != "she dont know" {
				t.Fatalf("unexpected text %q", text)
			}
			return &ports.CorrectionResult{CorrectedText: "She doesn't know."}, nil
		},
	}
	handler := NewAssistantHandler(stub)

	c, rec := newAIContext(e, `{"request_type":"correct_input","text":"she dont know"}`)
	if err := handler.Respond(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["corrected_text"] != "She doesn't know." {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAssistantHandler_Correct_FallsBackToUserMessage(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAssistantService{
		correctFn: func(ctx context.Context, text string) (*ports.CorrectionResult, error) {
			if text != "from user_message" {
				t.Fatalf("expected user_message fallback, got %q", text)
			}
			return &ports.CorrectionResult{CorrectedText: text}, nil
		},
	}
	handler := NewAssistantHandler(stub)

	c, _ := newAIContext(e, `{"request_type":"correct_input","user_message":"from user_message"}`)
	if err := handler.Respond(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAssistantHandler_EmptyInput(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAssistantService{
		correctFn: func(ctx context.Context, text string) (*ports.CorrectionResult, error) {
			return nil, domain.ErrEmptyInput
		},
	}
	handler := NewAssistantHandler(stub)

	c, _ := newAIContext(e, `{"request_type":"correct_input","text":""}`)
	if err := handler.Respond(c); !errors.Is(err, domain.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestAssistantHandler_UnknownRequestType(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAssistantService{
		converseFn: func(ctx context.Context, history []domain.ChatTurn) (*ports.ConversationResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAssistantHandler(stub)

	c, _ := newAIContext(e, `{"request_type":"summarize"}`)
	err := handler.Respond(c)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAssistantHandler_MissingRequestType(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	handler := NewAssistantHandler(&stubAssistantService{})

	c, _ := newAIContext(e, `{"user_message":"hi"}`)
	err := handler.Respond(c)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/api/metrics"
	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/domain"
	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/ports"
)

const (
	requestTypeResponse   = "chatbot_response"
	requestTypeCorrection = "correct_input"
)

// AssistantHandler handles the AI passthrough endpoint.
type AssistantHandler struct {
	assistant ports.AssistantService
}

func NewAssistantHandler(assistant ports.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

type chatTurnRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type aiRequest struct {
	RequestType         string            `json:"request_type" validate:"required,oneof=chatbot_response correct_input"`
	UserMessage         string            `json:"user_message"`
	ConversationHistory []chatTurnRequest `json:"conversation_history"`
	Text                string            `json:"text"`
}

type conversationResponse struct {
	AIResponse      string `json:"ai_response"`
	NextNodeKeyword string `json:"next_node_keyword,omitempty"`
	Degraded        bool   `json:"degraded,omitempty"`
}

type correctionResponse struct {
	CorrectedText string `json:"corrected_text"`
	Degraded      bool   `json:"degraded,omitempty"`
}

// Respond handles POST /ai/response, dispatching on request_type. Upstream
// failures never surface as 5xx: the adapter substitutes a safe fallback
// and flags the response as degraded.
//
// @Summary      AI response or text correction
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body      aiRequest  true  "request_type plus the transcript or text"
// @Success      200   {object}  conversationResponse
// @Failure      400   {object}  errorResponse
// @Router       /ai/response [post]
func (h *AssistantHandler) Respond(c echo.Context) error {
	var req aiRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	switch req.RequestType {
	case requestTypeCorrection:
		return h.correct(c, req)
	default:
		return h.converse(c, req)
	}
}

func (h *AssistantHandler) converse(c echo.Context, req aiRequest) error {
	history := make([]domain.ChatTurn, 0, len(req.ConversationHistory)+1)
	for _, turn := range req.ConversationHistory {
		history = append(history, domain.ChatTurn{Role: turn.Role, Content: turn.Content})
	}
	if req.UserMessage != "" {
		history = append(history, domain.ChatTurn{Role: domain.RoleUser, Content: req.UserMessage})
	}

	start := time.Now()
	result, err := h.assistant.Converse(c.Request().Context(), history)
	if err != nil {
		return err
	}
	metrics.AIRequestDuration.WithLabelValues(requestTypeResponse).Observe(time.Since(start).Seconds())
	metrics.AIRequestsTotal.WithLabelValues(requestTypeResponse, resultLabel(result.Degraded)).Inc()

	return c.JSON(http.StatusOK, conversationResponse{
		AIResponse:      result.Reply,
		NextNodeKeyword: result.NextNodeKeyword,
		Degraded:        result.Degraded,
	})
}

func (h *AssistantHandler) correct(c echo.Context, req aiRequest) error {
	text := req.Text
	if text == "" {
		text = req.UserMessage
	}

	start := time.Now()
	result, err := h.assistant.CorrectText(c.Request().Context(), text)
	if err != nil {
		return err
	}
	metrics.AIRequestDuration.WithLabelValues(requestTypeCorrection).Observe(time.Since(start).Seconds())
	metrics.AIRequestsTotal.WithLabelValues(requestTypeCorrection, resultLabel(result.Degraded)).Inc()

	return c.JSON(http.StatusOK, correctionResponse{
		CorrectedText: result.CorrectedText,
		Degraded:      result.Degraded,
	})
}

func resultLabel(degraded bool) string {
	if degraded {
		return "degraded"
	}
	return "ok"
}

package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/api/metrics"
	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/ports"
)

// ChatbotHandler handles HTTP requests for chatbot records.
type ChatbotHandler struct {
	service ports.ChatbotService
}

func NewChatbotHandler(service ports.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{service: service}
}

// List handles GET /chatbots.
//
// @Summary      List the caller's chatbots
// @Tags         chatbots
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   chatbotSummaryResponse
// @Failure      401  {object}  errorResponse
// @Router       /chatbots [get]
func (h *ChatbotHandler) List(c echo.Context) error {
	ownerID, err := ctxUser(c)
	if err != nil {
		return err
	}

	summaries, err := h.service.List(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryResponses(summaries))
}

// Create handles POST /chatbots.
//
// @Summary      Create a chatbot
// @Tags         chatbots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createChatbotRequest  true  "Name and optional configuration"
// @Success      201   {object}  chatbotResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /chatbots [post]
func (h *ChatbotHandler) Create(c echo.Context) error {
	ownerID, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createChatbotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	bot, err := h.service.Create(c.Request().Context(), ports.CreateChatbotInput{
		OwnerID:       ownerID,
		Name:          req.Name,
		Configuration: req.Configuration,
	})
	if err != nil {
		return err
	}

	metrics.ChatbotsSavedTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, toChatbotResponse(bot))
}

// CreateEmpty handles POST /chatbots/create_empty: a fresh record with the
// default single-start-node document.
//
// @Summary      Create an empty chatbot
// @Tags         chatbots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEmptyChatbotRequest  false  "Optional name"
// @Success      201   {object}  chatbotResponse
// @Failure      409   {object}  errorResponse
// @Router       /chatbots/create_empty [post]
func (h *ChatbotHandler) CreateEmpty(c echo.Context) error {
	ownerID, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createEmptyChatbotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	bot, err := h.service.Create(c.Request().Context(), ports.CreateChatbotInput{
		OwnerID: ownerID,
		Name:    req.Name,
	})
	if err != nil {
		return err
	}

	metrics.ChatbotsSavedTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, toChatbotResponse(bot))
}

// Get handles GET /chatbots/:id.
//
// @Summary      Get a chatbot by id
// @Tags         chatbots
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Chatbot id"
// @Success      200  {object}  chatbotResponse
// @Failure      404  {object}  errorResponse
// @Router       /chatbots/{id} [get]
func (h *ChatbotHandler) Get(c echo.Context) error {
	ownerID, err := ctxUser(c)
	if err != nil {
		return err
	}

	bot, err := h.service.Get(c.Request().Context(), ownerID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toChatbotResponse(bot))
}

// Update handles PUT /chatbots/:id.
//
// @Summary      Update a chatbot
// @Tags         chatbots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Chatbot id"
// @Param        body  body      updateChatbotRequest  true  "Fields to apply"
// @Success      200   {object}  chatbotResponse
// @Failure      404   {object}  errorResponse
// @Router       /chatbots/{id} [put]
func (h *ChatbotHandler) Update(c echo.Context) error {
	ownerID, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateChatbotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	bot, err := h.service.Update(c.Request().Context(), ports.UpdateChatbotInput{
		OwnerID:       ownerID,
		ID:            c.Param("id"),
		Name:          req.Name,
		Configuration: req.Configuration,
	})
	if err != nil {
		return err
	}

	metrics.ChatbotsSavedTotal.WithLabelValues("updated").Inc()
	return c.JSON(http.StatusOK, toChatbotResponse(bot))
}

// Delete handles DELETE /chatbots/:id.
//
// @Summary      Delete a chatbot
// @Tags         chatbots
// @Security     BearerAuth
// @Param        id  path  string  true  "Chatbot id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /chatbots/{id} [delete]
func (h *ChatbotHandler) Delete(c echo.Context) error {
	ownerID, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), ownerID, c.Param("id")); err != nil {
		return err
	}

	metrics.ChatbotsDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// SaveConfig handles POST /chatbots/config: the builder's flattened save.
// Responds 201 when the named record was created, 200 when its document
// was replaced.
//
// @Summary      Save a configuration by bot name
// @Tags         chatbots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      map[string]any  true  "Flattened configuration with botName"
// @Success      200   {object}  map[string]any
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  errorResponse
// @Router       /chatbots/config [post]
func (h *ChatbotHandler) SaveConfig(c echo.Context) error {
	ownerID, err := ctxUser(c)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	name, cfg, err := parseFlattened(body)
	if err != nil {
		if errors.Is(err, errBotNameRequired) {
			return echo.NewHTTPError(http.StatusBadRequest, errBotNameRequired.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bot, created, err := h.service.UpsertByName(c.Request().Context(), ownerID, name, cfg)
	if err != nil {
		return err
	}

	view, err := flattenedView(bot)
	if err != nil {
		return err
	}

	status := http.StatusOK
	result := "updated"
	if created {
		status = http.StatusCreated
		result = "created"
	}
	metrics.ChatbotsSavedTotal.WithLabelValues(result).Inc()
	return c.JSON(status, view)
}

// GetConfig handles GET /chatbots/config/:botName, serving the flattened
// shape the builder loads from.
//
// @Summary      Load a configuration by bot name
// @Tags         chatbots
// @Produce      json
// @Security     BearerAuth
// @Param        botName  path      string  true  "Chatbot name"
// @Success      200      {object}  map[string]any
// @Failure      404      {object}  errorResponse
// @Router       /chatbots/config/{botName} [get]
func (h *ChatbotHandler) GetConfig(c echo.Context) error {
	ownerID, err := ctxUser(c)
	if err != nil {
		return err
	}

	bot, err := h.service.GetByName(c.Request().Context(), ownerID, c.Param("botName"))
	if err != nil {
		return err
	}

	view, err := flattenedView(bot)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

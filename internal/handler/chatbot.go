package handler

import (
	"context"
	"database/sql"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/plastiside/plastiside/internal/model"
	"github.com/plastiside/plastiside/internal/repository"
)

// ChatbotHandler answers FAQ messages by keyword match.  Stored
// responses win over the built-in defaults; anything unmatched gets a
// generic hint listing topics the bot knows about.
type ChatbotHandler struct {
	Responses *repository.ChatbotRepo
}

func NewChatbotHandler(r *repository.ChatbotRepo) *ChatbotHandler {
	return &ChatbotHandler{Responses: r}
}

// Built-in answers keyed by normalized question fragments.  Checked
// only when the database has no match, so admins can override any of
// these by storing a response with the same keywords.
var defaultResponses = map[string]string{
	"how does plastisidework":    "PlastiSide is a plastic recycling platform where citizens submit plastic to vending machines, earn rewards, and get ranked based on their contributions.",
	"how do i earn rewards":      "You earn rewards by submitting plastic to our vending machines. The amount depends on the plastic type and weight submitted.",
	"how do i submit plastic":    "Register an account, find the nearest vending machine, and submit your clean plastic items. You'll instantly earn points!",
	"what are the plastic types": "We accept PET, HDPE, PVC, LDPE, PP, PS, and other plastics. Each type has different point values.",
	"what is my rank":            "Your rank is determined by your total points: Bronze (0-999), Silver (1000-2999), Gold (3000-4999), and Platinum (5000+).",
	"how do i become a buyer":    "Register as a buyer to purchase verified plastic from our marketplace. You'll have access to bulk ordering.",
	"what is a collector":        "Collectors manage plastic collection centers and handle verification, inventory, and payment processing.",
	"how do i contact support":   "You can reach us at hello@plastiside.com or call +1 (555) 123-4567.",
	"is my data secure":          "Yes, we use bank-level encryption and verified user profiles to ensure all transactions are secure.",
	"can i edit my profile":      "Yes, you can update your profile information and upload a profile picture from your dashboard.",
}

const genericAnswer = "I'm not sure about that. Try asking about how PlastiSide works, earning rewards, submitting plastic, or our contact information."

var nonWord = regexp.MustCompile(`[^\w\s]`)

// normalizeMessage lowercases the text and strips punctuation so
// "How do I earn rewards?" matches "how do i earn rewards".
func normalizeMessage(msg string) string {
	return nonWord.ReplaceAllString(strings.ToLower(msg), "")
}

type messageReq struct {
	Message string `json:"message"`
}

// Message answers a single chat message.  Lookup order: stored
// responses, built-in defaults (substring match in either direction),
// then the generic fallback.
func (h *ChatbotHandler) Message(c echo.Context) error {
	var req messageReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no message provided"})
	}
	normalized := normalizeMessage(req.Message)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stored, err := h.Responses.Match(ctx, normalized)
	if err == nil {
		return c.JSON(http.StatusOK, echo.Map{"message": stored.Answer, "source": "database"})
	}
	if err != sql.ErrNoRows {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	for key, answer := range defaultResponses {
		if strings.Contains(normalized, key) || strings.Contains(key, normalized) {
			return c.JSON(http.StatusOK, echo.Map{"message": answer, "source": "default"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": genericAnswer, "source": "default"})
}

type addResponseReq struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// AddResponse stores a new FAQ pair.  Admin only.
func (h *ChatbotHandler) AddResponse(c echo.Context) error {
	var req addResponseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "question and answer required"})
	}
	if req.Category == "" {
		req.Category = "general"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Responses.Create(ctx, req.Question, req.Answer, req.Category)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "chatbot response added", "id": id})
}

type chatbotResponseResp struct {
	ID        uint64 `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Category  string `json:"category"`
	CreatedAt string `json:"createdAt"`
}

func toChatbotResponseResp(r model.ChatbotResponse) chatbotResponseResp {
	return chatbotResponseResp{
		ID:        r.ID,
		Question:  r.Question,
		Answer:    r.Answer,
		Category:  r.Category,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ListResponses returns all stored FAQ pairs.  Admin only.
func (h *ChatbotHandler) ListResponses(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	all, err := h.Responses.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]chatbotResponseResp, 0, len(all))
	for _, r := range all {
		out = append(out, toChatbotResponseResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"responses": out})
}

package controllers

import (
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/nzzzzzw/COMP4537-AI-Project/config"
	"github.com/nzzzzzw/COMP4537-AI-Project/middleware"
	"github.com/nzzzzzw/COMP4537-AI-Project/store"
)

// ChatbotController turns the mood-survey answers into advice and meters
// usage against the free call quota.
type ChatbotController struct {
	Cfg   *config.Config
	Users *store.UserStore
}

func NewChatbotController(cfg *config.Config, users *store.UserStore) *ChatbotController {
	return &ChatbotController{Cfg: cfg, Users: users}
}

type GenerateResponseInput struct {
	Answers []string `json:"answers"`
}

// GenerateResponse builds the advice reply. The call counter is bumped before
// the quota check, so the over-limit call itself still counts.
func (cc *ChatbotController) GenerateResponse(c *fiber.Ctx) error {
	var input GenerateResponseInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized, no token"})
	}

	calls, err := cc.Users.IncrementAPICalls(user.ID)
	if err != nil {
		log.Printf("Increment api calls error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Database error"})
	}

	if calls > cc.Cfg.APICallLimit {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{
			"message": "You have exceeded the free API call limit",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"reply": buildReply(input.Answers)})
}

// buildReply maps the fixed-choice survey answers to a canned piece of
// advice, mirroring what the assessment survey offers.
func buildReply(answers []string) string {
	reply := "Thank you for sharing. "

	switch {
	case contains(answers, "Stressed"):
		reply += "I notice you're feeling stressed. Try taking deep breaths or going for a short walk."
	case contains(answers, "Tired"):
		reply += "It sounds like you need some rest. Consider taking a short break or getting some fresh air."
	case contains(answers, "Sad"):
		reply += "I'm sorry you're feeling down. Remember that it's okay to not be okay, and consider talking to someone you trust."
	case contains(answers, "Happy"):
		reply += "I'm glad you're feeling good! Keep up whatever is working well for you."
	}

	return reply
}

func contains(answers []string, answer string) bool {
	for _, a := range answers {
		if a == answer {
			return true
		}
	}
	return false
}

package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/metrics"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/repository"
	pkgdto "github.com/alimikegami/point-of-sales/storefront-service/pkg/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	historySize       = 5
	productMatchLimit = 3
	maxMessageLength  = 2000

	systemPreamble = "You are the shopping assistant of an online store. Answer in a friendly and concise way. " +
		"Only talk about the store, its products, orders, shipping and returns."
	fallbackReply = "Sorry, I can't answer that right now. Please try again in a moment."
)

var (
	orderStatusPattern   = regexp.MustCompile(`(?i)\b(my orders?|order status|where is my|track(ing)?|deliver(y|ed)|shipp(ed|ing))\b`)
	productSearchPattern = regexp.MustCompile(`(?i)\b(?:looking for|search(?:ing)? for|find(?: me)?|show me|do you (?:have|sell))\s+(?:an?\s+|some\s+|the\s+|any\s+)?(.+)`)
	greetingPattern      = regexp.MustCompile(`(?i)^\s*(hi|hello|hey|hai|good (morning|afternoon|evening))\b`)
)

// DetectIntent returns the routed intent and, for product searches, the search
// terms.
func DetectIntent(message string) (intent string, terms string) {
	switch {
	case orderStatusPattern.MatchString(message):
		return domain.IntentOrderStatus, ""
	case productSearchPattern.MatchString(message):
		match := productSearchPattern.FindStringSubmatch(message)
		return domain.IntentProductSearch, strings.Trim(match[1], " ?!.,")
	case greetingPattern.MatchString(message):
		return domain.IntentGreeting, ""
	default:
		return domain.IntentGeneral, ""
	}
}

// BuildPrompt renders the history oldest first, followed by the new message.
func BuildPrompt(history []domain.ChatMessage, message string) string {
	var sb strings.Builder
	sb.WriteString(systemPreamble)
	sb.WriteString("\n\n")

	for _, m := range history {
		speaker := "User"
		if m.Role == domain.ChatRoleAssistant {
			speaker = "Assistant"
		}
		fmt.Fprintf(&sb, "%s: %s\n", speaker, m.Content)
	}

	fmt.Fprintf(&sb, "User: %s\nAssistant:", message)
	return sb.String()
}

type ChatServiceImpl struct {
	chatRepo    repository.ChatRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	generator   TextGenerator
	validate    *validator.Validate
}

func CreateChatService(chatRepo repository.ChatRepository, orderRepo repository.OrderRepository, productRepo repository.ProductRepository, generator TextGenerator) ChatService {
	return &ChatServiceImpl{
		chatRepo:    chatRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		generator:   generator,
		validate:    utils.NewValidator(),
	}
}

// loadTranscript also enforces that a session started by a logged-in user is
// only read by that user.
func (s *ChatServiceImpl) loadTranscript(ctx context.Context, sessionID string, userID string) (transcript domain.Transcript, err error) {
	transcript, err = s.chatRepo.GetTranscript(ctx, sessionID)
	if errors.Is(err, errs.ErrNotFound) {
		return domain.Transcript{SessionID: sessionID, Messages: []domain.ChatMessage{}}, nil
	}
	if err != nil {
		return
	}

	if transcript.UserID != "" && transcript.UserID != userID {
		return domain.Transcript{}, errs.ErrForbidden
	}

	return transcript, nil
}

func (s *ChatServiceImpl) SendMessage(ctx context.Context, req dto.ChatRequest) (resp dto.ChatResponse, err error) {
	req.Message = strings.TrimSpace(req.Message)
	req.SessionID = strings.TrimSpace(req.SessionID)

	if err = s.validate.Struct(req); err != nil {
		return resp, errs.FromValidator(err)
	}
	if len(req.Message) > maxMessageLength {
		return resp, errs.NewValidationError("Invalid or missing fields: message", errs.FieldError{Field: "message", Tag: "max"})
	}

	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	transcript, err := s.loadTranscript(ctx, req.SessionID, req.UserID)
	if err != nil {
		return
	}

	intent, terms := DetectIntent(req.Message)

	var reply string
	switch intent {
	case domain.IntentGreeting:
		reply = "Hello! I can help you find products or check on your orders. What are you looking for?"
	case domain.IntentOrderStatus:
		reply, err = s.orderStatusReply(ctx, req.UserID)
	case domain.IntentProductSearch:
		reply, err = s.productSearchReply(ctx, terms)
	default:
		reply = s.generalReply(ctx, transcript.Recent(historySize), req.Message)
	}
	if err != nil {
		return
	}

	now := utils.NowUTC()
	err = s.chatRepo.AppendMessages(ctx, req.SessionID, req.UserID,
		domain.ChatMessage{Role: domain.ChatRoleUser, Content: req.Message, Intent: intent, CreatedAt: now},
		domain.ChatMessage{Role: domain.ChatRoleAssistant, Content: reply, Intent: intent, CreatedAt: now},
	)
	if err != nil {
		return
	}

	metrics.ChatReplies.WithLabelValues(intent).Inc()

	return dto.ChatResponse{
		SessionID: req.SessionID,
		Reply:     reply,
		Intent:    intent,
	}, nil
}

func (s *ChatServiceImpl) orderStatusReply(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "Please log in so I can look up your orders.", nil
	}

	orders, err := s.orderRepo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(orders) == 0 {
		return "You have not placed any orders yet.", nil
	}

	latest := orders[0]
	return fmt.Sprintf("Your latest order %s from %s is %s. Total: %s.",
		latest.ID.Hex(), latest.CreatedAt.Format("2006-01-02"), latest.Status, latest.TotalAmount.StringFixed(2)), nil
}

func (s *ChatServiceImpl) productSearchReply(ctx context.Context, terms string) (string, error) {
	if terms == "" {
		return "What product are you looking for?", nil
	}

	products, err := s.productRepo.GetProducts(ctx, pkgdto.Filter{Q: terms, Page: 1, Limit: productMatchLimit})
	if err != nil {
		return "", err
	}
	if len(products) == 0 {
		return fmt.Sprintf("I could not find any products matching %q.", terms), nil
	}

	names := make([]string, 0, len(products))
	for _, p := range products {
		entry := p.Name
		if p.Brand != "" {
			entry += " by " + p.Brand
		}
		names = append(names, fmt.Sprintf("%s (%s)", entry, p.Price.StringFixed(2)))
	}

	return "Here is what I found: " + strings.Join(names, "; ") + ".", nil
}

func (s *ChatServiceImpl) generalReply(ctx context.Context, history []domain.ChatMessage, message string) string {
	reply, err := s.generator.Generate(ctx, BuildPrompt(history, message))
	if err != nil {
		metrics.ChatFallbacks.Inc()
		log.Ctx(ctx).Warn().Err(err).Str("component", "SendMessage").Msg("using fallback reply")
		return fallbackReply
	}

	return reply
}

func (s *ChatServiceImpl) GetTranscript(ctx context.Context, sessionID string, userID string) (transcript domain.Transcript, err error) {
	return s.loadTranscript(ctx, strings.TrimSpace(sessionID), userID)
}

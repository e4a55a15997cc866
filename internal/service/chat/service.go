// Package chat runs the chat-turn pipeline: validate the message, take the
// emergency path or ask the model, record the turn, hand it back.
package chat

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/sehatlabs/healthchat/internal/analysis/emergency"
	"github.com/sehatlabs/healthchat/internal/model/chat"
	"github.com/sehatlabs/healthchat/internal/service/ai"
)

var ErrEmptyMessage = errors.New("message cannot be empty")

// EmergencyReply is returned verbatim for messages flagged by the emergency
// detector. The model is never consulted on this path.
const EmergencyReply = "🚨 This may be an emergency! Please seek urgent medical help immediately:\n\n" +
	"📞 Call 102 (Ambulance)\n📞 Call 108 (Emergency)\n🏥 Visit nearest hospital\n\n" +
	"Your safety is the priority!"

// Completer produces a model reply for a user message given prior turns.
// Implementations absorb upstream failures into the returned text.
type Completer interface {
	Complete(ctx context.Context, history []chat.Turn, userMessage string) string
}

// Service orchestrates one chat turn end to end.
type Service struct {
	store     chat.Store
	completer Completer
}

// NewService wires the pipeline. completer may be nil when no upstream key is
// configured; non-emergency messages then receive the auth warning.
func NewService(store chat.Store, completer Completer) *Service {
	return &Service{store: store, completer: completer}
}

// Send processes one user message and returns the recorded turn.
func (s *Service) Send(ctx context.Context, message string) (chat.Turn, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return chat.Turn{}, ErrEmptyMessage
	}

	log.Printf("[chat] user: %s", truncate(message, 100))

	history := s.store.Load(ctx)
	isEmergency := emergency.Detect(message)

	var reply string
	switch {
	case isEmergency:
		reply = EmergencyReply
	case s.completer == nil:
		reply = ai.WarnAuth
	default:
		reply = s.completer.Complete(ctx, history, message)
	}

	log.Printf("[chat] bot: %s", truncate(reply, 100))

	turn := chat.Turn{
		User:        message,
		Bot:         reply,
		Timestamp:   time.Now().UTC(),
		IsEmergency: isEmergency,
	}

	// A lost turn must not fail the user-visible request.
	if err := s.store.Append(ctx, turn); err != nil {
		log.Printf("[chat] failed to persist turn: %v", err)
	}

	return turn, nil
}

// History returns the full persisted transcript.
func (s *Service) History(ctx context.Context) []chat.Turn {
	return s.store.Load(ctx)
}

// Clear resets the transcript.
func (s *Service) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

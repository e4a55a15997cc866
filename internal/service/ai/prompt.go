package ai

import (
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"github.com/sehatlabs/healthchat/internal/model/chat"
)

// systemPrompt is the fixed persona instruction sent with every completion.
const systemPrompt = "You are a friendly healthcare assistant who can speak English, Hindi, and Punjabi. " +
	"Provide helpful health advice but always remind users to consult doctors for serious issues. " +
	"Keep responses concise and caring."

// historyWindow bounds how many stored turns are replayed as context. The
// window caps the outbound payload and is deliberately not configurable.
const historyWindow = 6

// composeMessages builds the outbound message list: the persona instruction,
// up to the last historyWindow turns, then the new user message. A stored
// turn contributes a user message and an assistant message independently, so
// malformed entries with one side missing still replay cleanly.
func composeMessages(history []chat.Turn, userMessage string) []llms.MessageContent {
	startIdx := 0
	if len(history) > historyWindow {
		startIdx = len(history) - historyWindow
	}

	messages := make([]llms.MessageContent, 0, 2*(len(history)-startIdx)+2)
	messages = append(messages, llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt))

	for _, turn := range history[startIdx:] {
		if turn.User != "" {
			messages = append(messages, llms.TextParts(schema.ChatMessageTypeHuman, turn.User))
		}
		if turn.Bot != "" {
			messages = append(messages, llms.TextParts(schema.ChatMessageTypeAI, turn.Bot))
		}
	}

	messages = append(messages, llms.TextParts(schema.ChatMessageTypeHuman, userMessage))
	return messages
}

// File: services/assistant/tools.go
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"glowdesk/models"

	genai "github.com/google/generative-ai-go/genai"
)

// maxToolRounds bounds how many tool-call/response exchanges one customer
// turn may trigger before the loop is cut off.
const maxToolRounds = 4

// runToolLoop drives a chat turn through the model, dispatching any tool
// calls to the booking orchestrator and feeding the results back until the
// model produces plain text.
func (s *DefaultAssistantService) runToolLoop(ctx context.Context, conv *models.Conversation, history []models.ConversationMessage, message string) (string, *models.BookingResult, error) {
	session := s.Gemini.startChat(history)

	resp, err := session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", nil, fmt.Errorf("gemini send error: %w", err)
	}

	var lastBooking *models.BookingResult
	for round := 0; round < maxToolRounds; round++ {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			break
		}

		var responses []genai.Part
		for _, call := range calls {
			output, booking := s.dispatchToolCall(ctx, conv, call)
			if booking != nil {
				lastBooking = booking
			}
			responses = append(responses, genai.FunctionResponse{
				Name:     call.Name,
				Response: output,
			})
		}

		resp, err = session.SendMessage(ctx, responses...)
		if err != nil {
			return "", lastBooking, fmt.Errorf("gemini tool response error: %w", err)
		}
	}

	return textOf(resp), lastBooking, nil
}

// dispatchToolCall routes one model function call to the orchestrator and
// shapes the result as a generic document for the FunctionResponse.
func (s *DefaultAssistantService) dispatchToolCall(ctx context.Context, conv *models.Conversation, call genai.FunctionCall) (map[string]any, *models.BookingResult) {
	log.Printf("dispatchToolCall: conversation %s -> %s", conv.ID, call.Name)

	switch call.Name {
	case "check_availability":
		date, _ := call.Args["date"].(string)
		serviceType, _ := call.Args["service_type"].(string)
		limit := 0
		if f, ok := call.Args["limit"].(float64); ok {
			limit = int(f)
		}
		result := s.Booking.CheckAvailability(ctx, conv, date, serviceType, limit)
		return toDocument(result), nil

	case "book_appointment":
		params := models.BookingParams{}
		if b, err := json.Marshal(call.Args); err == nil {
			_ = json.Unmarshal(b, &params)
		}
		result, err := s.Booking.BookAppointment(ctx, conv, params)
		if err != nil {
			// Normalization ceiling: surface as a failed tool result, the
			// model can't do anything smarter with it.
			log.Printf("dispatchToolCall: booking fault for conversation %s: %v", conv.ID, err)
			return map[string]any{"success": false, "error": "internal booking error"}, nil
		}
		return toDocument(result), result

	default:
		return map[string]any{"success": false, "error": fmt.Sprintf("unknown tool %q", call.Name)}, nil
	}
}

// toDocument flattens a typed result into the generic map shape the genai
// FunctionResponse requires.
func toDocument(v any) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]any{"success": false, "error": "failed to encode tool result"}
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return map[string]any{"success": false, "error": "failed to encode tool result"}
	}
	return doc
}

// File: services/assistant/gemini.go
package assistant

import (
	"context"
	"fmt"
	"strings"

	"glowdesk/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient wraps the generative model with the booking tools registered.
type GeminiClient struct {
	model *genai.GenerativeModel
}

func NewGeminiClient(apiKey, systemPrompt string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("models/gemini-1.5-pro")
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	model.Tools = []*genai.Tool{bookingTool()}
	return &GeminiClient{model: model}, nil
}

// bookingTool declares the two booking functions the model may call. The
// declarations mirror the orchestrator's tool-call schemas.
func bookingTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        "check_availability",
				Description: "Look up open appointment slots for a date. Always call this before offering times to the customer.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"date":         {Type: genai.TypeString, Description: "Requested date, YYYY-MM-DD"},
						"service_type": {Type: genai.TypeString, Description: "Catalog service key, e.g. botox"},
						"limit":        {Type: genai.TypeInteger, Description: "Max slots to present, default 3"},
					},
					Required: []string{"date", "service_type"},
				},
			},
			{
				Name:        "book_appointment",
				Description: "Book an appointment at one of the previously offered times. The start time must be a slot that was offered to the customer.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"customer_name":  {Type: genai.TypeString},
						"customer_phone": {Type: genai.TypeString},
						"customer_email": {Type: genai.TypeString},
						"start_time":     {Type: genai.TypeString, Description: "ISO-8601 start time of the chosen slot"},
						"service_type":   {Type: genai.TypeString},
						"provider":       {Type: genai.TypeString},
						"notes":          {Type: genai.TypeString},
					},
					Required: []string{"customer_name", "customer_phone", "start_time", "service_type"},
				},
			},
		},
	}
}

// startChat seeds a chat session from the stored conversation history.
func (g *GeminiClient) startChat(history []models.ConversationMessage) *genai.ChatSession {
	session := g.model.StartChat()
	for _, msg := range history {
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		session.History = append(session.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return session
}

// textOf concatenates the text parts of a model response.
func textOf(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}

// functionCalls extracts tool invocations from a model response.
func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	var calls []genai.FunctionCall
	for _, part := range resp.Candidates[0].Content.Parts {
		if call, ok := part.(genai.FunctionCall); ok {
			calls = append(calls, call)
		}
	}
	return calls
}

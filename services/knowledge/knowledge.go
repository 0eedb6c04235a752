// File: services/knowledge/knowledge.go
package knowledge

import (
	"fmt"
	"strings"

	"glowdesk/models"
)

// Sections groups clinic knowledge into typed sections used for FAQ answers
// and for grounding the assistant's prompt.
type Sections struct {
	ClinicName string
	Hours      string
	Address    string
	Phone      string
	Policies   PolicySection
	Providers  []ProviderItem
}

// PolicySection holds clinic policies surfaced in FAQ answers.
type PolicySection struct {
	Cancellation   string
	Deposit        string
	AgeRequirement string
}

// ProviderItem is a single provider for "who does X" questions.
type ProviderItem struct {
	Name        string
	Title       string
	Specialties []string
}

// Service answers FAQ-classified turns from structured clinic knowledge.
type Service interface {
	Answer(question string, catalog []models.ServiceType) (string, bool)
	ClinicSummary(catalog []models.ServiceType) string
}

// DefaultKnowledgeService implements Service with keyword lookup over the
// knowledge sections. It never guesses: an unanswerable question returns
// false so the assistant can fall back to the model.
type DefaultKnowledgeService struct {
	Sections Sections
}

type faqRule struct {
	keywords []string
	answer   func(s *DefaultKnowledgeService, catalog []models.ServiceType) string
}

var faqRules = []faqRule{
	{
		keywords: []string{"hours", "open", "close", "when are you"},
		answer: func(s *DefaultKnowledgeService, _ []models.ServiceType) string {
			return fmt.Sprintf("%s is open %s.", s.Sections.ClinicName, s.Sections.Hours)
		},
	},
	{
		keywords: []string{"location", "address", "where are you", "parking"},
		answer: func(s *DefaultKnowledgeService, _ []models.ServiceType) string {
			return fmt.Sprintf("We're located at %s.", s.Sections.Address)
		},
	},
	{
		keywords: []string{"cancellation", "cancel policy", "refund"},
		answer: func(s *DefaultKnowledgeService, _ []models.ServiceType) string {
			return s.Sections.Policies.Cancellation
		},
	},
	{
		keywords: []string{"deposit"},
		answer: func(s *DefaultKnowledgeService, _ []models.ServiceType) string {
			return s.Sections.Policies.Deposit
		},
	},
	{
		keywords: []string{"age", "old enough", "minor"},
		answer: func(s *DefaultKnowledgeService, _ []models.ServiceType) string {
			return s.Sections.Policies.AgeRequirement
		},
	},
	{
		keywords: []string{"price", "pricing", "cost", "how much"},
		answer: func(s *DefaultKnowledgeService, catalog []models.ServiceType) string {
			var sb strings.Builder
			sb.WriteString("Here's our current pricing:\n")
			for _, svc := range catalog {
				fmt.Fprintf(&sb, "- %s: %s\n", svc.Name, svc.Price)
			}
			return sb.String()
		},
	},
	{
		keywords: []string{"provider", "injector", "who does", "nurse", "esthetician"},
		answer: func(s *DefaultKnowledgeService, _ []models.ServiceType) string {
			var sb strings.Builder
			sb.WriteString("Our providers:\n")
			for _, p := range s.Sections.Providers {
				if p.Title != "" {
					fmt.Fprintf(&sb, "- %s, %s\n", p.Name, p.Title)
				} else {
					fmt.Fprintf(&sb, "- %s\n", p.Name)
				}
			}
			return sb.String()
		},
	},
}

// Answer matches the question against the FAQ rule table. The bool reports
// whether a rule fired.
func (s *DefaultKnowledgeService) Answer(question string, catalog []models.ServiceType) (string, bool) {
	lower := strings.ToLower(question)
	for _, rule := range faqRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.answer(s, catalog), true
			}
		}
	}

	// Service-specific questions: match catalog names and aliases.
	for _, svc := range catalog {
		names := append([]string{svc.Name}, svc.Aliases...)
		for _, name := range names {
			if strings.Contains(lower, strings.ToLower(name)) {
				return fmt.Sprintf("%s is %s (%d minutes). Would you like to book an appointment?", svc.Name, svc.Price, svc.DurationMinutes), true
			}
		}
	}

	return "", false
}

// ClinicSummary renders the knowledge sections for the assistant's system
// prompt.
func (s *DefaultKnowledgeService) ClinicSummary(catalog []models.ServiceType) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Clinic: %s\nHours: %s\nAddress: %s\nPhone: %s\n\nServices:\n",
		s.Sections.ClinicName, s.Sections.Hours, s.Sections.Address, s.Sections.Phone)
	for _, svc := range catalog {
		fmt.Fprintf(&sb, "- %s (%s, %d min): %s\n", svc.Name, svc.Price, svc.DurationMinutes, svc.Description)
	}
	fmt.Fprintf(&sb, "\nPolicies:\n- Cancellation: %s\n- Deposits: %s\n- Age: %s\n",
		s.Sections.Policies.Cancellation, s.Sections.Policies.Deposit, s.Sections.Policies.AgeRequirement)
	return sb.String()
}

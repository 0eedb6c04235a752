package knowledge

import (
	"testing"

	"glowdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *DefaultKnowledgeService {
	return &DefaultKnowledgeService{Sections: Sections{
		ClinicName: "Glow Aesthetics & Wellness",
		Hours:      "Tuesday to Saturday, 9 AM to 5 PM",
		Address:    "412 Harbor View Drive, Suite 210",
		Phone:      "(555) 014-2200",
		Policies: PolicySection{
			Cancellation:   "We ask for 24 hours notice.",
			Deposit:        "Injectables require a refundable deposit.",
			AgeRequirement: "Clients must be 18 or older.",
		},
		Providers: []ProviderItem{{Name: "Alex Marin", Title: "RN, Lead Injector"}},
	}}
}

func testCatalog() []models.ServiceType {
	return []models.ServiceType{
		{ID: "botox", Name: "Botox / Neurotoxin", Price: "$12/unit", DurationMinutes: 30, Aliases: []string{"tox"}},
		{ID: "hydrafacial", Name: "HydraFacial", Price: "$199", DurationMinutes: 45},
	}
}

func TestAnswer(t *testing.T) {
	svc := newTestService()
	catalog := testCatalog()

	t.Run("hours", func(t *testing.T) {
		got, ok := svc.Answer("what are your hours?", catalog)
		require.True(t, ok)
		assert.Contains(t, got, "Tuesday to Saturday")
	})

	t.Run("address", func(t *testing.T) {
		got, ok := svc.Answer("where are you located", catalog)
		require.True(t, ok)
		assert.Contains(t, got, "Harbor View Drive")
	})

	t.Run("deposit policy", func(t *testing.T) {
		got, ok := svc.Answer("do I need a deposit?", catalog)
		require.True(t, ok)
		assert.Contains(t, got, "refundable deposit")
	})

	t.Run("pricing lists the catalog", func(t *testing.T) {
		got, ok := svc.Answer("how much is treatment", catalog)
		require.True(t, ok)
		assert.Contains(t, got, "Botox / Neurotoxin: $12/unit")
		assert.Contains(t, got, "HydraFacial: $199")
	})

	t.Run("providers", func(t *testing.T) {
		got, ok := svc.Answer("who does your injections, which injector?", catalog)
		require.True(t, ok)
		assert.Contains(t, got, "Alex Marin")
	})

	t.Run("service alias falls through to the catalog", func(t *testing.T) {
		got, ok := svc.Answer("tell me about tox", catalog)
		require.True(t, ok)
		assert.Contains(t, got, "Botox / Neurotoxin")
		assert.Contains(t, got, "30 minutes")
	})

	t.Run("unanswerable question reports false", func(t *testing.T) {
		_, ok := svc.Answer("can you recommend a restaurant nearby", catalog)
		assert.False(t, ok)
	})
}

func TestClinicSummary(t *testing.T) {
	svc := newTestService()
	got := svc.ClinicSummary(testCatalog())
	assert.Contains(t, got, "Clinic: Glow Aesthetics & Wellness")
	assert.Contains(t, got, "Botox / Neurotoxin")
	assert.Contains(t, got, "Cancellation: We ask for 24 hours notice.")
}

package offers

import (
	"context"
	"testing"
	"time"

	"glowdesk/models"
	"glowdesk/services/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConversationRepo records SaveMetadata calls in memory.
type fakeConversationRepo struct {
	saved     map[string]map[string]any
	saveCalls int
}

func newFakeRepo() *fakeConversationRepo {
	return &fakeConversationRepo{saved: make(map[string]map[string]any)}
}

func (f *fakeConversationRepo) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	return nil, nil
}

func (f *fakeConversationRepo) GetOrCreate(ctx context.Context, channel, address string) (*models.Conversation, error) {
	return nil, nil
}

func (f *fakeConversationRepo) SaveMetadata(ctx context.Context, id string, metadata map[string]any) error {
	f.saveCalls++
	f.saved[id] = metadata
	return nil
}

func (f *fakeConversationRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func newTestOfferService(t *testing.T, now time.Time) (*DefaultOfferService, *fakeConversationRepo) {
	t.Helper()
	tz, err := timezone.New("America/New_York")
	require.NoError(t, err)
	repo := newFakeRepo()
	svc := &DefaultOfferService{
		Repo: repo,
		TZ:   tz,
		TTL:  30 * time.Minute,
		Now:  func() time.Time { return now },
	}
	return svc, repo
}

func newTestConversation() *models.Conversation {
	return &models.Conversation{ID: "conv-1", Channel: models.ChannelSMS}
}

func TestRecordAndGetOffers(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, repo := newTestOfferService(t, now)
	conv := newTestConversation()
	ctx := context.Background()

	err := svc.RecordOffers(ctx, conv, "botox", "2026-06-15", testSlots(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.saveCalls)

	offer := svc.GetPendingSlotOffers(conv)
	require.NotNil(t, offer)
	assert.Len(t, offer.Slots, 3)
	assert.Equal(t, 1, offer.Slots[0].Index)
	assert.Equal(t, 3, offer.Slots[2].Index)
	assert.Equal(t, "botox", offer.ServiceType)
	// AllSlots defaults to the display set when not supplied.
	assert.Len(t, offer.AllSlots, 3)
	assert.False(t, offer.HasSelection())
}

func TestGetPendingSlotOffersAbsentCases(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestOfferService(t, now)

	t.Run("nil conversation", func(t *testing.T) {
		assert.Nil(t, svc.GetPendingSlotOffers(nil))
	})

	t.Run("no metadata key", func(t *testing.T) {
		assert.Nil(t, svc.GetPendingSlotOffers(newTestConversation()))
	})

	t.Run("malformed document", func(t *testing.T) {
		conv := newTestConversation()
		conv.Metadata()[models.MetadataKeyPendingSlotOffers] = "not a document"
		assert.Nil(t, svc.GetPendingSlotOffers(conv))
	})

	t.Run("document missing timestamps", func(t *testing.T) {
		conv := newTestConversation()
		conv.Metadata()[models.MetadataKeyPendingSlotOffers] = map[string]any{"slots": []any{}}
		assert.Nil(t, svc.GetPendingSlotOffers(conv))
	})
}

func TestOfferExpiry(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestOfferService(t, now)
	conv := newTestConversation()
	ctx := context.Background()

	require.NoError(t, svc.RecordOffers(ctx, conv, "botox", "2026-06-15", testSlots(), nil))
	require.NotNil(t, svc.GetPendingSlotOffers(conv))

	t.Run("offer valid just before the deadline", func(t *testing.T) {
		svc.Now = func() time.Time { return now.Add(29 * time.Minute) }
		assert.NotNil(t, svc.GetPendingSlotOffers(conv))
	})

	t.Run("offer absent exactly at the deadline", func(t *testing.T) {
		svc.Now = func() time.Time { return now.Add(30 * time.Minute) }
		assert.Nil(t, svc.GetPendingSlotOffers(conv))
	})

	t.Run("expired offer blocks selection capture", func(t *testing.T) {
		svc.Now = func() time.Time { return now.Add(31 * time.Minute) }
		captured, err := svc.CaptureSelection(ctx, conv, "1")
		require.NoError(t, err)
		assert.False(t, captured)
	})

	t.Run("expired offer blocks enforcement", func(t *testing.T) {
		svc.Now = func() time.Time { return now.Add(31 * time.Minute) }
		_, _, err := svc.EnforceBooking(ctx, conv, map[string]any{"start_time": "2026-06-15T10:00:00"})
		assert.True(t, IsSlotSelectionError(err))
	})
}

func TestClearOffers(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, repo := newTestOfferService(t, now)
	conv := newTestConversation()
	ctx := context.Background()

	t.Run("clearing with no offer is a no-op", func(t *testing.T) {
		require.NoError(t, svc.ClearOffers(ctx, conv))
		assert.Equal(t, 0, repo.saveCalls)
	})

	require.NoError(t, svc.RecordOffers(ctx, conv, "botox", "2026-06-15", testSlots(), nil))

	t.Run("clearing removes the key and persists", func(t *testing.T) {
		require.NoError(t, svc.ClearOffers(ctx, conv))
		_, ok := conv.CustomMetadata[models.MetadataKeyPendingSlotOffers]
		assert.False(t, ok)
		assert.Nil(t, svc.GetPendingSlotOffers(conv))
	})

	t.Run("clearing twice stays a no-op", func(t *testing.T) {
		calls := repo.saveCalls
		require.NoError(t, svc.ClearOffers(ctx, conv))
		assert.Equal(t, calls, repo.saveCalls)
	})
}

func TestCaptureSelection(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("captures a bare number", func(t *testing.T) {
		svc, _ := newTestOfferService(t, now)
		conv := newTestConversation()
		require.NoError(t, svc.RecordOffers(ctx, conv, "botox", "2026-06-15", testSlots(), nil))

		captured, err := svc.CaptureSelection(ctx, conv, "3")
		require.NoError(t, err)
		assert.True(t, captured)

		offer := svc.GetPendingSlotOffers(conv)
		require.True(t, offer.HasSelection())
		assert.Equal(t, 3, offer.SelectedOptionIndex)
		require.NotNil(t, offer.SelectedSlot)
		assert.Equal(t, "2026-06-15T17:30:00-04:00", offer.SelectedSlot.Start)
	})

	t.Run("captures an option phrase", func(t *testing.T) {
		svc, _ := newTestOfferService(t, now)
		conv := newTestConversation()
		require.NoError(t, svc.RecordOffers(ctx, conv, "botox", "2026-06-15", testSlots(), nil))

		captured, err := svc.CaptureSelection(ctx, conv, "Option 2 sounds good")
		require.NoError(t, err)
		assert.True(t, captured)
		assert.Equal(t, 2, svc.GetPendingSlotOffers(conv).SelectedOptionIndex)
	})

	t.Run("non-selection text captures nothing", func(t *testing.T) {
		svc, repo := newTestOfferService(t, now)
		conv := newTestConversation()
		require.NoError(t, svc.RecordOffers(ctx, conv, "botox", "2026-06-15", testSlots(), nil))
		calls := repo.saveCalls

		captured, err := svc.CaptureSelection(ctx, conv, "do you have Friday instead?")
		require.NoError(t, err)
		assert.False(t, captured)
		assert.Equal(t, calls, repo.saveCalls)
	})

	t.Run("an existing selection is never overwritten", func(t *testing.T) {
		svc, _ := newTestOfferService(t, now)
		conv := newTestConversation()
		require.NoError(t, svc.RecordOffers(ctx, conv, "botox", "2026-06-15", testSlots(), nil))

		captured, err := svc.CaptureSelection(ctx, conv, "1")
		require.NoError(t, err)
		require.True(t, captured)

		captured, err = svc.CaptureSelection(ctx, conv, "2")
		require.NoError(t, err)
		assert.False(t, captured)
		assert.Equal(t, 1, svc.GetPendingSlotOffers(conv).SelectedOptionIndex)
	})
}

func TestRecordOffersPreservesSelection(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestOfferService(t, now)
	conv := newTestConversation()
	ctx := context.Background()

	require.NoError(t, svc.RecordOffers(ctx, conv, "botox", "2026-06-15", testSlots(), nil))
	captured, err := svc.CaptureSelection(ctx, conv, "2")
	require.NoError(t, err)
	require.True(t, captured)

	t.Run("re-offer within the window keeps the selection", func(t *testing.T) {
		require.NoError(t, svc.RecordOffers(ctx, conv, "botox", "2026-06-16", testSlots(), nil))
		offer := svc.GetPendingSlotOffers(conv)
		require.True(t, offer.HasSelection())
		assert.Equal(t, 2, offer.SelectedOptionIndex)
		assert.Equal(t, "2026-06-15T14:30:00-04:00", offer.SelectedSlot.Start)
	})

	t.Run("re-offer after expiry starts clean", func(t *testing.T) {
		svc.Now = func() time.Time { return now.Add(time.Hour) }
		require.NoError(t, svc.RecordOffers(ctx, conv, "botox", "2026-06-17", testSlots(), nil))
		offer := svc.GetPendingSlotOffers(conv)
		require.NotNil(t, offer)
		assert.False(t, offer.HasSelection())
	})
}

func TestEnforceBooking(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("no pending offer rejects the booking", func(t *testing.T) {
		svc, _ := newTestOfferService(t, now)
		conv := newTestConversation()
		_, _, err := svc.EnforceBooking(ctx, conv, map[string]any{"start_time": "2026-06-15T10:00:00"})
		require.Error(t, err)
		assert.True(t, IsSlotSelectionError(err))
	})

	t.Run("selection overrides the requested start time", func(t *testing.T) {
		svc, _ := newTestOfferService(t, now)
		conv := newTestConversation()
		require.NoError(t, svc.RecordOffers(ctx, conv, "botox", "2026-06-15", testSlots(), nil))
		captured, err := svc.CaptureSelection(ctx, conv, "3")
		require.NoError(t, err)
		require.True(t, captured)

		normalized, adjustments, err := svc.EnforceBooking(ctx, conv, map[string]any{
			"start_time":   "2026-06-15T10:00:00",
			"service_type": "botox",
		})
		require.NoError(t, err)
		assert.Equal(t, "2026-06-15T17:30:00-04:00", normalized["start_time"])
		assert.Equal(t, "botox", normalized["service_type"])
		require.Contains(t, adjustments, "start_time")
		assert.Equal(t, "2026-06-15T17:30:00-04:00", adjustments["start_time"].Normalized)
	})

	t.Run("matching request passes with the canonical start", func(t *testing.T) {
		svc, _ := newTestOfferService(t, now)
		conv := newTestConversation()
		require.NoError(t, svc.RecordOffers(ctx, conv, "botox", "2026-06-15", testSlots(), nil))

		// Naive wall-clock form of the second slot.
		normalized, _, err := svc.EnforceBooking(ctx, conv, map[string]any{
			"start_time": "2026-06-15T14:30:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "2026-06-15T14:30:00-04:00", normalized["start_time"])
	})

	t.Run("unoffered start time is rejected", func(t *testing.T) {
		svc, _ := newTestOfferService(t, now)
		conv := newTestConversation()
		require.NoError(t, svc.RecordOffers(ctx, conv, "botox", "2026-06-15", testSlots(), nil))

		_, _, err := svc.EnforceBooking(ctx, conv, map[string]any{
			"start_time": "2026-06-15T11:45:00",
		})
		require.Error(t, err)
		assert.True(t, IsSlotSelectionError(err))
	})

	t.Run("caller args are not mutated", func(t *testing.T) {
		svc, _ := newTestOfferService(t, now)
		conv := newTestConversation()
		require.NoError(t, svc.RecordOffers(ctx, conv, "botox", "2026-06-15", testSlots(), nil))

		args := map[string]any{"start_time": "2026-06-15T14:30:00"}
		_, _, err := svc.EnforceBooking(ctx, conv, args)
		require.NoError(t, err)
		assert.Equal(t, "2026-06-15T14:30:00", args["start_time"])
	})
}

func TestPendingSlotSummary(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestOfferService(t, now)
	conv := newTestConversation()
	ctx := context.Background()

	assert.Empty(t, svc.PendingSlotSummary(conv))

	require.NoError(t, svc.RecordOffers(ctx, conv, "botox", "2026-06-15", testSlots(), nil))
	summaries := svc.PendingSlotSummary(conv)
	require.Len(t, summaries, 3)
	assert.Equal(t, 1, summaries[0].Index)
	assert.Equal(t, "10:00 AM", summaries[0].StartTime)
	assert.Equal(t, "2026-06-15T17:30:00-04:00", summaries[2].Start)
}

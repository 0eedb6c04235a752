// File: services/booking/deposit.go
package booking

import (
	"fmt"

	"glowdesk/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// DepositHandler creates the refundable deposit charge that locks in a
// booking for services that require one.
type DepositHandler interface {
	CreateDepositIntent(svc *models.ServiceType, customerPhone, eventID string) (string, error)
}

// StripeDepositHandler implements DepositHandler with Stripe PaymentIntents.
// The global stripe.Key is set once at startup (main), matching the Stripe
// client's package-level configuration model.
type StripeDepositHandler struct {
	logger *zap.Logger
}

func NewStripeDepositHandler(logger *zap.Logger) *StripeDepositHandler {
	return &StripeDepositHandler{logger: logger}
}

// CreateDepositIntent creates the PaymentIntent and returns its client
// secret for the channel adapter to hand to the customer.
func (h *StripeDepositHandler) CreateDepositIntent(svc *models.ServiceType, customerPhone, eventID string) (string, error) {
	if svc.DepositAmountCents <= 0 {
		return "", nil
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(svc.DepositAmountCents)),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Description: stripe.String(fmt.Sprintf("Booking deposit: %s", svc.Name)),
	}
	params.AddMetadata("event_id", eventID)
	params.AddMetadata("service_type", svc.ID)
	params.AddMetadata("customer_phone", customerPhone)

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create deposit intent: %w", err)
	}

	h.logger.Sugar().Infof("created deposit intent %s for event %s (%d cents)", pi.ID, eventID, svc.DepositAmountCents)
	return pi.ClientSecret, nil
}

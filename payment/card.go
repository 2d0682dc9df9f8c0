package payment

import (
	"context"
	"strconv"
	"strings"
	"time"

	"conference-webapp/registration"
)

// declineTable maps well-known test card numbers to their decline reasons,
// so outcomes are reproducible instead of random.
var declineTable = map[string]string{
	"4000000000000002": "card declined by issuer",
	"4000000000009995": "insufficient funds",
	"4000000000000069": "card expired",
	"4000000000000119": "transaction limit exceeded",
}

// SimulatedCardProcessor validates card details and decides the outcome from
// the card number alone. Any syntactically valid card outside the decline
// table is approved.
type SimulatedCardProcessor struct {
	// Delay imitates processor latency; the caller's context bounds it.
	Delay time.Duration
}

func NewSimulatedCardProcessor() *SimulatedCardProcessor {
	return &SimulatedCardProcessor{}
}

func (p *SimulatedCardProcessor) Charge(ctx context.Context, req registration.ChargeRequest) error {
	if req.Amount < 0 {
		return &registration.PaymentError{Reason: "negative charge amount"}
	}
	if reason := validateCard(req.Card.Number, req.Card.Expiry, req.Card.CVV, req.Card.Name); reason != "" {
		return &registration.PaymentError{Reason: reason}
	}

	if p.Delay > 0 {
		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	number := strings.ReplaceAll(req.Card.Number, " ", "")
	if reason, declined := declineTable[number]; declined {
		return &registration.PaymentError{Reason: reason}
	}
	return nil
}

func validateCard(number, expiry, cvv, holder string) string {
	number = strings.ReplaceAll(number, " ", "")
	if len(number) < 13 || len(number) > 19 {
		return "invalid card number"
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return "invalid card number"
		}
	}

	if holder == "" {
		return "missing cardholder name"
	}
	if len(cvv) < 3 || len(cvv) > 4 {
		return "invalid CVV"
	}

	month, year, ok := parseExpiry(expiry)
	if !ok {
		return "invalid expiry date"
	}
	expires := time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	if !expires.After(time.Now().UTC()) {
		return "card has expired"
	}

	return ""
}

func parseExpiry(expiry string) (month, year int, ok bool) {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 {
		return 0, 0, false
	}
	month, merr := strconv.Atoi(strings.TrimSpace(parts[0]))
	year, yerr := strconv.Atoi(strings.TrimSpace(parts[1]))
	if merr != nil || yerr != nil || month < 1 || month > 12 || year < 0 || year > 99 {
		return 0, 0, false
	}
	return month, year, true
}

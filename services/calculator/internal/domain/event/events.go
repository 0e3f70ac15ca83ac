// Package event defines the calculator's published domain events.
package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/crestbank/crest/pkg/events"
)

const (
	// EventTypeCalculationPerformed is emitted after every successful
	// calculation, standalone or product-based.
	EventTypeCalculationPerformed = "calculator.calculation.performed"

	aggregateTypeCalculation = "Calculation"
)

// CalculationPerformedPayload is the serialized body of a
// CalculationPerformed event.
type CalculationPerformedPayload struct {
	CalculationID  uuid.UUID `json:"calculationId"`
	ProductID      *int64    `json:"productId,omitempty"`
	Principal      string    `json:"principal"`
	EffectiveRate  string    `json:"effectiveRate"`
	TenureValue    int       `json:"tenureValue"`
	TenureUnit     string    `json:"tenureUnit"`
	Type           string    `json:"calculationType"`
	MaturityAmount string    `json:"maturityAmount"`
	InterestEarned string    `json:"interestEarned"`
	MaturityDate   time.Time `json:"maturityDate"`
}

// CalculationPerformed records that a maturity calculation completed.
type CalculationPerformed struct {
	events.BaseEvent
	CalculationPerformedPayload
}

// NewCalculationPerformed builds the event, assigning the calculation a
// fresh aggregate ID.
func NewCalculationPerformed(p CalculationPerformedPayload) (*CalculationPerformed, error) {
	if p.CalculationID == uuid.Nil {
		p.CalculationID = uuid.New()
	}
	body, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return &CalculationPerformed{
		BaseEvent:                   events.NewBaseEvent(EventTypeCalculationPerformed, p.CalculationID, aggregateTypeCalculation, body),
		CalculationPerformedPayload: p,
	}, nil
}

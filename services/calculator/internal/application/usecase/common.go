package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crestbank/crest/services/calculator/internal/application/dto"
	"github.com/crestbank/crest/services/calculator/internal/domain/event"
	"github.com/crestbank/crest/services/calculator/internal/domain/port"
	"github.com/crestbank/crest/services/calculator/internal/domain/service"
	"github.com/crestbank/crest/services/calculator/internal/domain/valueobject"
)

// TopicCalculatorEvents is the Kafka topic calculation events land on.
const TopicCalculatorEvents = "crest.calculator.events"

const dateLayout = "2006-01-02"

// ErrInvalidInput marks malformed request fields caught before the domain
// layer sees them.
var ErrInvalidInput = errors.New("invalid input")

// maxClassifications bounds how many tags a single calculation honors after
// merging request and directory tags.
const maxClassifications = 2

// calcParams is a fully parsed and normalized calculation request.
type calcParams struct {
	principal        decimal.Decimal
	baseRate         decimal.Decimal
	tenure           valueobject.Tenure
	calcType         valueobject.CalculationType
	frequency        valueobject.CompoundingFrequency
	tdsApplicable    bool
	tdsRate          *decimal.Decimal
	tags             []valueobject.Classification
	customerID       *int64
	startDate        time.Time
	includeBreakdown bool
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q", ErrInvalidInput, field, s)
	}
	return d, nil
}

func parseStartDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: start date %q", ErrInvalidInput, s)
	}
	return d, nil
}

func includeBreakdown(flag *bool) bool {
	return flag == nil || *flag
}

// normalizeTags canonicalizes and deduplicates classification tags, request
// tags first, keeping at most maxClassifications of them.
func normalizeTags(requestTags, customerTags []string) []valueobject.Classification {
	seen := make(map[valueobject.Classification]struct{})
	var out []valueobject.Classification
	for _, raw := range append(append([]string{}, requestTags...), customerTags...) {
		tag := valueobject.NormalizeClassification(raw)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
		if len(out) == maxClassifications {
			break
		}
	}
	return out
}

// resolveCustomerTags merges directory tags for the customer, if any, into
// the request's tags.
func resolveCustomerTags(ctx context.Context, directory port.CustomerDirectory, customerID *int64, requestTags []string) ([]valueobject.Classification, error) {
	var customerTags []string
	if customerID != nil && directory != nil {
		var err error
		customerTags, err = directory.Classifications(ctx, *customerID)
		if err != nil {
			return nil, fmt.Errorf("customer %d classifications: %w", *customerID, err)
		}
	}
	return normalizeTags(requestTags, customerTags), nil
}

// cacheKey derives a stable key from everything that influences the result.
func cacheKey(p calcParams, productID *int64) string {
	var sb strings.Builder
	sb.WriteString(p.principal.String())
	sb.WriteByte('|')
	sb.WriteString(p.baseRate.String())
	sb.WriteByte('|')
	sb.WriteString(p.tenure.String())
	sb.WriteByte('|')
	sb.WriteString(string(p.calcType))
	sb.WriteByte('|')
	sb.WriteString(string(p.frequency))
	sb.WriteByte('|')
	fmt.Fprintf(&sb, "%t", p.tdsApplicable)
	if p.tdsRate != nil {
		sb.WriteByte('|')
		sb.WriteString(p.tdsRate.String())
	}
	for _, tag := range p.tags {
		sb.WriteByte('|')
		sb.WriteString(string(tag))
	}
	sb.WriteByte('|')
	sb.WriteString(p.startDate.Format(dateLayout))
	if productID != nil {
		fmt.Fprintf(&sb, "|p%d", *productID)
	}
	fmt.Fprintf(&sb, "|b%t", p.includeBreakdown)

	sum := sha256.Sum256([]byte(sb.String()))
	return "calc:" + hex.EncodeToString(sum[:])
}

// buildResponse maps engine output onto the wire shape. Amounts round to
// two decimals here; nothing upstream has been rounded beyond the engine's
// own output-boundary rounding.
func buildResponse(p calcParams, resolved service.ResolvedRate, result service.CalculationResult) dto.CalculationResponse {
	resp := dto.CalculationResponse{
		CalculationID:   uuid.NewString(),
		Principal:       p.principal.StringFixed(2),
		BaseRate:        resolved.Base.String(),
		AppliedBonus:    resolved.Bonus.String(),
		EffectiveRate:   resolved.Effective.String(),
		RateCapped:      resolved.Capped,
		CalculationType: string(p.calcType),
		TenureMonths:    result.TenureMonths,
		StartDate:       p.startDate.Format(dateLayout),
		MaturityDate:    result.MaturityDate.Format(dateLayout),
		MaturityAmount:  result.MaturityAmount.StringFixed(2),
		InterestEarned:  result.InterestEarned.StringFixed(2),
		TDSRate:         result.TDSRate.String(),
		TDSAmount:       result.TDSAmount.StringFixed(2),
		NetInterest:     result.NetInterest.StringFixed(2),
	}
	if p.calcType == valueobject.CalculationCompound {
		resp.CompoundingFrequency = string(p.frequency)
	}
	if p.includeBreakdown {
		rows := make([]dto.BreakdownRow, 0, result.BreakdownLen)
		for row := range result.Breakdown {
			rows = append(rows, dto.BreakdownRow{
				Period:             row.Period,
				EndDate:            row.EndDate.Format(dateLayout),
				OpeningBalance:     row.OpeningBalance.StringFixed(2),
				InterestEarned:     row.InterestEarned.StringFixed(2),
				CumulativeInterest: row.CumulativeInterest.StringFixed(2),
				ClosingBalance:     row.ClosingBalance.StringFixed(2),
			})
		}
		resp.Breakdown = rows
	}
	return resp
}

// publishCalculation emits the CalculationPerformed event. Failures are
// logged and swallowed: the calculation already succeeded.
func publishCalculation(ctx context.Context, logger *slog.Logger, publisher port.EventPublisher, p calcParams, resp dto.CalculationResponse, productID *int64) {
	if publisher == nil {
		return
	}
	calcID, err := uuid.Parse(resp.CalculationID)
	if err != nil {
		calcID = uuid.New()
	}
	evt, err := event.NewCalculationPerformed(event.CalculationPerformedPayload{
		CalculationID:  calcID,
		ProductID:      productID,
		Principal:      resp.Principal,
		EffectiveRate:  resp.EffectiveRate,
		TenureValue:    p.tenure.Value(),
		TenureUnit:     string(p.tenure.Unit()),
		Type:           string(p.calcType),
		MaturityAmount: resp.MaturityAmount,
		InterestEarned: resp.InterestEarned,
		MaturityDate:   mustParseDate(resp.MaturityDate),
	})
	if err != nil {
		logger.Warn("build calculation event", "error", err)
		return
	}
	if err := publisher.Publish(ctx, TopicCalculatorEvents, evt); err != nil {
		logger.Warn("publish calculation event", "error", err, "calculation_id", resp.CalculationID)
	}
}

func mustParseDate(s string) time.Time {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return d
}

// cacheLookup returns a memoized response for the key, treating any cache
// failure as a miss.
func cacheLookup(ctx context.Context, cache port.ResultCache, logger *slog.Logger, key string) (dto.CalculationResponse, bool) {
	if cache == nil {
		return dto.CalculationResponse{}, false
	}
	raw, hit, err := cache.Get(ctx, key)
	if err != nil {
		logger.Warn("result cache get", "error", err)
		return dto.CalculationResponse{}, false
	}
	if !hit {
		return dto.CalculationResponse{}, false
	}
	var resp dto.CalculationResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		logger.Warn("result cache decode", "error", err)
		return dto.CalculationResponse{}, false
	}
	resp.Cached = true
	return resp, true
}

func cacheStore(ctx context.Context, cache port.ResultCache, logger *slog.Logger, key string, ttl time.Duration, resp dto.CalculationResponse) {
	if cache == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := cache.Set(ctx, key, raw, ttl); err != nil {
		logger.Warn("result cache set", "error", err)
	}
}

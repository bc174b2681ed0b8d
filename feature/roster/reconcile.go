package roster

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"subscriber-desk/core/textutil"
	"subscriber-desk/feature/roster/models"
)

// Column candidates tried, in priority order, when matching a client
// name against the roster. Rosters come from several operators and
// never agree on headings.
var (
	nameColumns       = []string{"Nombre", "Razon Social", "Razon_Social", "Cliente", "Titular"}
	subscriberColumns = []string{"Abonado", "Numero", "Nro Abonado"}
	usuarioColumns    = []string{"Usuario", "Usuario GP", "User"}
	cicColumns        = []string{"CIC"}
)

// Service reconciles client names against the roster and answers
// either the matching row or a proposed unused credential.
type Service struct {
	source *Source
	logger *zap.Logger
}

func NewService(source *Source, logger *zap.Logger) *Service {
	return &Service{source: source, logger: logger}
}

// Source exposes the underlying roster source.
func (s *Service) Source() *Source { return s.source }

// Reconcile looks the full name up in the roster. Exactly one of
// Matched and Proposed is set when anything is found; both are nil
// when the name is absent and no credential remains unused. A read
// never mutates the roster, so calling twice yields the same answer.
func (s *Service) Reconcile(ctx context.Context, fullName string) (models.Reconciliation, error) {
	var result models.Reconciliation

	wanted := textutil.TokenSignature(fullName)
	if len(wanted) == 0 {
		return result, nil
	}

	records, err := s.source.Records(ctx, false)
	if err != nil {
		return result, err
	}

	if match := findMatch(records, wanted); match != nil {
		s.logger.Debug("roster match",
			zap.String("username", match.Username),
			zap.String("cic", match.CIC),
		)
		result.Matched = match
		return result, nil
	}

	available, err := s.source.FirstAvailable(ctx)
	if err != nil {
		return result, err
	}
	if available != nil {
		s.logger.Debug("roster proposal",
			zap.String("username", available.Username),
			zap.Int("row", available.RowIndex),
		)
	}
	result.Proposed = available
	return result, nil
}

// findMatch scans the records for a name whose token signature equals
// the wanted one. Token signatures make the comparison insensitive to
// word order, accents, and repeated whitespace.
func findMatch(records []models.Record, wanted textutil.Signature) *models.Match {
	for _, rec := range records {
		nameKey, ok := FindColumnKey(rec, nameColumns)
		if !ok {
			continue
		}
		if !textutil.TokenSignature(rec[nameKey]).Equal(wanted) {
			continue
		}

		match := &models.Match{Source: rec}
		if key, ok := FindColumnKey(rec, subscriberColumns); ok {
			match.SubscriberNumber = strings.TrimSpace(rec[key])
		}
		if key, ok := FindColumnKey(rec, cicColumns); ok {
			match.CIC = strings.TrimSpace(rec[key])
		}
		if key, ok := FindColumnKey(rec, usuarioColumns); ok {
			match.Username = strings.TrimSpace(rec[key])
		}
		return match
	}
	return nil
}

package roster

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"subscriber-desk/core/errs"
	"subscriber-desk/feature/roster/models"
)

// Columns written when a row is marked processed. The roster layout
// fixes these positions: column 3 carries the username, column 4 the
// contact channel, columns 6 and 7 the client identifier and name.
const (
	colUsername = 3
	colChannel  = 4
	colClientID = 6
	colName     = 7

	// Format is cleared across columns A through J.
	formatFirstCol = 1
	formatLastCol  = 10

	channelValue = "Mail"
)

// Marker records a handed-out credential on the roster and keeps an
// optional audit trail in the database.
type Marker struct {
	source *Source
	db     *gorm.DB
	logger *zap.Logger
}

// NewMarker creates a marker. db may be nil; the audit trail is then
// skipped entirely.
func NewMarker(source *Source, db *gorm.DB, logger *zap.Logger) *Marker {
	return &Marker{source: source, db: db, logger: logger}
}

// MarkProcessed stamps the roster row holding username as handed out:
// contact channel, client identifier, and client name are written and
// the row formatting is cleared. When rowIndex is at least 2 it is
// trusted directly; otherwise the username column is scanned for an
// exact match. Caches are invalidated after the write so the next read
// sees the updated roster.
func (m *Marker) MarkProcessed(ctx context.Context, username, ida, fullName string, rowIndex int, actor string) error {
	username = strings.TrimSpace(username)

	// An explicit row is trusted as-is; the username only drives the
	// scan when no row was supplied.
	row := rowIndex
	if row < 2 {
		found, err := m.findRowByUsername(ctx, username)
		if err != nil {
			return err
		}
		row = found
	}

	g := m.source.Grid()
	if err := g.UpdateCell(ctx, row, colChannel, channelValue); err != nil {
		return err
	}
	if err := g.UpdateCell(ctx, row, colClientID, ida); err != nil {
		return err
	}
	if err := g.UpdateCell(ctx, row, colName, fullName); err != nil {
		return err
	}
	if err := g.ClearRowFormat(ctx, row, formatFirstCol, formatLastCol); err != nil {
		return err
	}

	m.source.InvalidateCaches()
	m.logger.Info("roster row marked",
		zap.String("username", username),
		zap.String("ida", ida),
		zap.Int("row", row),
	)

	m.audit(username, ida, fullName, row, actor)
	return nil
}

// findRowByUsername scans the username column for an exact trimmed
// match, skipping the header row. The returned index is 1-based.
func (m *Marker) findRowByUsername(ctx context.Context, username string) (int, error) {
	if username == "" {
		return 0, errs.NotFoundf("roster: empty username")
	}
	values, err := m.source.Grid().ColumnValues(ctx, colUsername)
	if err != nil {
		return 0, err
	}
	for i := 1; i < len(values); i++ {
		if strings.TrimSpace(values[i]) == username {
			return i + 1, nil
		}
	}
	return 0, errs.NotFoundf("roster: username %q not found", username)
}

// audit persists the mark best-effort: a failing database never undoes
// a roster write that already happened.
func (m *Marker) audit(username, ida, fullName string, row int, actor string) {
	if m.db == nil {
		return
	}
	entry := models.AuditEntry{
		Username: username,
		IDA:      ida,
		FullName: fullName,
		Row:      row,
		Actor:    actor,
	}
	if err := m.db.Create(&entry).Error; err != nil {
		m.logger.Warn("audit insert failed", zap.Error(err))
	}
}

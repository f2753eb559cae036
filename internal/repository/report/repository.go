package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/domain/models"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/metrics"
	"github.com/tumbleweedd/shopify_klaviyo_sync/pkg/logger"
)

// outcomesPerInsert keeps a single statement under the postgres limit of
// 65535 bind parameters.
const outcomesPerInsert = 1000

const outcomeColumns = 7

type Repository struct {
	log *slog.Logger
	db  *sqlx.DB
}

func NewReportRepository(log *slog.Logger, db *sqlx.DB) *Repository {
	return &Repository{
		log: log,
		db:  db,
	}
}

type outcomeRow struct {
	orderID  int64
	kind     string
	eventID  int64
	success  bool
	response any
	err      any
}

// Publish stores the run and one row per delivered event in one transaction.
func (r *Repository) Publish(ctx context.Context, report models.Report) (err error) {
	const op = "repository.report.Publish"

	log := r.log.With(slog.String("op", op), slog.String("run_id", report.RunID.String()))

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", logger.Err(err))
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				log.Error("failed to rollback transaction", logger.Err(rollBackErr))
				err = errors.Join(err, fmt.Errorf("%s: rollback transaction: %w", op, rollBackErr))
			}
		}
	}()

	const runQuery = `INSERT INTO "sync_runs" (run_id, created_at_min, created_at_max, started_at, finished_at, orders_fetched, order_events, failed_events) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err = tx.ExecContext(ctx, runQuery,
		report.RunID,
		report.CreatedAtMin,
		report.CreatedAtMax,
		report.StartedAt,
		report.FinishedAt,
		report.OrdersFetched,
		report.OrderEvents,
		report.FailedEvents(),
	); err != nil {
		log.Error("failed to insert run", logger.Err(err))
		return fmt.Errorf("%s: sync_runs execute statement: %w", op, err)
	}

	rows := outcomeRows(report.Results)
	for start := 0; start < len(rows); start += outcomesPerInsert {
		end := start + outcomesPerInsert
		if end > len(rows) {
			end = len(rows)
		}

		if err = insertOutcomes(ctx, tx, report, rows[start:end]); err != nil {
			log.Error("failed to insert outcomes", logger.Err(err))
			return fmt.Errorf("%s: sync_event_outcomes execute statement: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Error("failed to commit transaction", logger.Err(err))
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	log.Debug("report stored", slog.Int("outcomes", len(rows)))

	return nil
}

func insertOutcomes(ctx context.Context, tx *sqlx.Tx, report models.Report, rows []outcomeRow) error {
	const outcomesQuery = `INSERT INTO "sync_event_outcomes" (run_id, order_id, event_kind, event_id, success, response, error) VALUES %s`

	values := make([]any, 0, len(rows)*outcomeColumns)
	placeholders := make([]string, 0, len(rows))

	for i, row := range rows {
		values = append(values, report.RunID, row.orderID, row.kind, row.eventID, row.success, row.response, row.err)

		argID := i * outcomeColumns
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			argID+1, argID+2, argID+3, argID+4, argID+5, argID+6, argID+7))
	}

	_, err := tx.ExecContext(ctx, fmt.Sprintf(outcomesQuery, strings.Join(placeholders, ",")), values...)

	return err
}

func outcomeRows(results []models.DeliveryResult) []outcomeRow {
	var rows []outcomeRow
	for _, result := range results {
		rows = append(rows, newOutcomeRow(result.Order, metrics.KindOrder, result.Order, result.OrderOutcome))
		for _, product := range result.Products {
			rows = append(rows, newOutcomeRow(result.Order, metrics.KindProduct, product.ID, product.Outcome))
		}
	}

	return rows
}

func newOutcomeRow(orderID int64, kind string, eventID int64, outcome models.Outcome) outcomeRow {
	row := outcomeRow{
		orderID: orderID,
		kind:    kind,
		eventID: eventID,
		success: outcome.Success,
	}
	if len(outcome.Response) > 0 {
		row.response = string(outcome.Response)
	}
	if outcome.Error != "" {
		row.err = outcome.Error
	}

	return row
}

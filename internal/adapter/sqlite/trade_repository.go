package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

// Compile-time check: TradeRepository implements domain.TradeRepository.
var _ domain.TradeRepository = (*TradeRepository)(nil)

// TradeRepository implements domain.TradeRepository using SQLite.
type TradeRepository struct {
	db *sql.DB
}

const tradeColumns = `id, proposer_id, receiver_id, proposer_service_id, receiver_service_id, status, created_at, updated_at`

func (r *TradeRepository) Create(ctx context.Context, t domain.TradeProposal) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO trade_proposals (`+tradeColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ProposerID, t.ReceiverID, t.ProposerServiceID, t.ReceiverServiceID,
		string(t.Status), formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting trade proposal: %w", err)
	}
	return nil
}

func (r *TradeRepository) GetByID(ctx context.Context, id string) (domain.TradeProposal, error) {
	var t domain.TradeProposal
	var status, createdAt, updatedAt string

	err := r.db.QueryRowContext(ctx,
		`SELECT `+tradeColumns+` FROM trade_proposals WHERE id = ?`, id,
	).Scan(&t.ID, &t.ProposerID, &t.ReceiverID, &t.ProposerServiceID, &t.ReceiverServiceID,
		&status, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TradeProposal{}, domain.ErrTradeNotFound
		}
		return domain.TradeProposal{}, fmt.Errorf("scanning trade proposal: %w", err)
	}

	t.Status = domain.Status(status)
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return t, nil
}

// UpdateStatus performs a compare-and-set on the status column, so two
// concurrent responders cannot both move the same trade out of "from".
func (r *TradeRepository) UpdateStatus(ctx context.Context, id string, from, to domain.Status) (domain.TradeProposal, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE trade_proposals SET status = ?, updated_at = ?
		 WHERE id = ? AND status = ?`,
		string(to), formatTime(time.Now()), id, string(from),
	)
	if err != nil {
		return domain.TradeProposal{}, fmt.Errorf("updating trade status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return domain.TradeProposal{}, fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return domain.TradeProposal{}, err
		}
		return domain.TradeProposal{}, domain.ErrStaleStatus
	}

	return r.GetByID(ctx, id)
}

func (r *TradeRepository) ListByReceiver(ctx context.Context, userID string) ([]domain.TradeDetail, error) {
	return r.listDetails(ctx, `t.receiver_id = ?`, userID)
}

func (r *TradeRepository) ListByProposer(ctx context.Context, userID string) ([]domain.TradeDetail, error) {
	return r.listDetails(ctx, `t.proposer_id = ?`, userID)
}

func (r *TradeRepository) listDetails(ctx context.Context, where string, args ...any) ([]domain.TradeDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.proposer_id, t.receiver_id, t.proposer_service_id, t.receiver_service_id,
		        t.status, t.created_at, t.updated_at,
		        pu.name, ru.name, ps.title, rs.title
		 FROM trade_proposals t
		 JOIN users pu ON pu.id = t.proposer_id
		 JOIN users ru ON ru.id = t.receiver_id
		 JOIN service_listings ps ON ps.id = t.proposer_service_id
		 JOIN service_listings rs ON rs.id = t.receiver_service_id
		 WHERE `+where+`
		 ORDER BY t.created_at DESC, t.rowid DESC`, args...,
	)
	if err != nil {
		return nil, fmt.Errorf("listing trade proposals: %w", err)
	}
	defer rows.Close()

	details := make([]domain.TradeDetail, 0)
	for rows.Next() {
		var d domain.TradeDetail
		var status, createdAt, updatedAt string

		err := rows.Scan(&d.ID, &d.ProposerID, &d.ReceiverID, &d.ProposerServiceID, &d.ReceiverServiceID,
			&status, &createdAt, &updatedAt,
			&d.ProposerName, &d.ReceiverName, &d.ProposerServiceTitle, &d.ReceiverServiceTitle)
		if err != nil {
			return nil, fmt.Errorf("scanning trade proposal row: %w", err)
		}

		d.Status = domain.Status(status)
		d.CreatedAt = parseTime(createdAt)
		d.UpdatedAt = parseTime(updatedAt)
		details = append(details, d)
	}

	return details, rows.Err()
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

// Compile-time check: ListingRepository implements domain.ListingRepository.
var _ domain.ListingRepository = (*ListingRepository)(nil)

// ListingRepository implements domain.ListingRepository using SQLite.
type ListingRepository struct {
	db *sql.DB
}

const listingColumns = `l.id, l.owner_id, u.name, l.title, l.description, l.category, l.created_at`

// likeEscaper escapes LIKE wildcards so a query matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchText folds title and description the same way List folds queries.
// SQLite's lower() only folds ASCII.
func searchText(l domain.Listing) string {
	return strings.ToLower(l.Title) + "\n" + strings.ToLower(l.Description)
}

func (r *ListingRepository) Create(ctx context.Context, l domain.Listing) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO service_listings (id, owner_id, title, description, category, search_text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.OwnerID, l.Title, l.Description, l.Category, searchText(l), formatTime(l.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting service listing: %w", err)
	}
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (domain.Listing, error) {
	l, err := scanListing(r.db.QueryRowContext(ctx,
		`SELECT `+listingColumns+`
		 FROM service_listings l JOIN users u ON u.id = l.owner_id
		 WHERE l.id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Listing{}, domain.ErrListingNotFound
	}
	return l, err
}

func (r *ListingRepository) List(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	query := `SELECT ` + listingColumns + `
		FROM service_listings l JOIN users u ON u.id = l.owner_id`
	var conds []string
	var args []any

	if filter.Category != "" {
		conds = append(conds, `l.category = ?`)
		args = append(args, filter.Category)
	}
	if filter.OwnerID != "" {
		conds = append(conds, `l.owner_id = ?`)
		args = append(args, filter.OwnerID)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		conds = append(conds, `l.search_text LIKE ? ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(q))+"%")
	}

	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY l.created_at DESC, l.rowid DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing service listings: %w", err)
	}
	defer rows.Close()

	listings := make([]domain.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}

	return listings, rows.Err()
}

func scanListing(row scanner) (domain.Listing, error) {
	var l domain.Listing
	var createdAt string

	err := row.Scan(&l.ID, &l.OwnerID, &l.OwnerName, &l.Title, &l.Description, &l.Category, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Listing{}, err
		}
		return domain.Listing{}, fmt.Errorf("scanning service listing: %w", err)
	}

	l.CreatedAt = parseTime(createdAt)
	return l, nil
}

package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// listingColumns is the enumerated column list shared by every listing query.
const listingColumns = `property_id, image_url, description, price_amount, price_currency,
	price_per, added_date, address, postcode, created_date`

// ListingRepository handles database operations for rental listings.
type ListingRepository struct {
	db *sqlx.DB
}

// NewListingRepository creates a new listing repository.
func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// GetByID retrieves a listing row by its property id. Returns ErrNotFound
// when no row exists.
func (r *ListingRepository) GetByID(ctx context.Context, propertyID string) (*ListingRow, error) {
	var row ListingRow
	query := `
		SELECT ` + listingColumns + `
		FROM rental_listings
		WHERE property_id = $1
	`

	err := r.db.GetContext(ctx, &row, query, propertyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, mapError(err)
	}

	return &row, nil
}

// ExistingIDs returns the subset of the given property ids that already have
// rows, as one bulk lookup.
func (r *ListingRepository) ExistingIDs(ctx context.Context, propertyIDs []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(propertyIDs))
	if len(propertyIDs) == 0 {
		return existing, nil
	}

	var found []string
	query := `SELECT property_id FROM rental_listings WHERE property_id = ANY($1)`

	err := r.db.SelectContext(ctx, &found, query, pq.Array(propertyIDs))
	if err != nil {
		return nil, mapError(err)
	}

	for _, id := range found {
		existing[id] = true
	}
	return existing, nil
}

// Upsert inserts the row or, when a row with the same property id exists,
// overwrites all its fields. The single statement is atomic: either the
// store reflects the full row or nothing changed.
func (r *ListingRepository) Upsert(ctx context.Context, row ListingRow) error {
	query := `
		INSERT INTO rental_listings (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (property_id) DO UPDATE SET
			image_url = EXCLUDED.image_url,
			description = EXCLUDED.description,
			price_amount = EXCLUDED.price_amount,
			price_currency = EXCLUDED.price_currency,
			price_per = EXCLUDED.price_per,
			added_date = EXCLUDED.added_date,
			address = EXCLUDED.address,
			postcode = EXCLUDED.postcode,
			created_date = EXCLUDED.created_date
	`

	_, err := r.db.ExecContext(ctx, query,
		row.PropertyID, row.ImageURL, row.Description,
		row.PriceAmount, row.PriceCurrency, row.PricePer,
		row.AddedDate, row.Address, row.Postcode, row.CreatedDate,
	)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// BulkUpsert applies a batch of rows in one transaction. The input is
// partitioned into present and new ids via a single existence lookup;
// present rows have every field updated, new rows are inserted. Any error
// rolls the whole batch back to its pre-call state.
func (r *ListingRepository) BulkUpsert(ctx context.Context, rows []ListingRow) error {
	if len(rows) == 0 {
		return nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PropertyID)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return mapError(err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	existing := make(map[string]bool, len(rows))
	var found []string
	err = tx.SelectContext(ctx, &found,
		`SELECT property_id FROM rental_listings WHERE property_id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return mapError(err)
	}
	for _, id := range found {
		existing[id] = true
	}

	for _, row := range rows {
		if existing[row.PropertyID] {
			err = r.updateTx(ctx, tx, row)
		} else {
			err = r.insertTx(ctx, tx, row)
		}
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return mapError(err)
	}

	return nil
}

// insertTx inserts one row inside the batch transaction.
func (r *ListingRepository) insertTx(ctx context.Context, tx *sqlx.Tx, row ListingRow) error {
	query := `
		INSERT INTO rental_listings (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := tx.ExecContext(ctx, query,
		row.PropertyID, row.ImageURL, row.Description,
		row.PriceAmount, row.PriceCurrency, row.PricePer,
		row.AddedDate, row.Address, row.Postcode, row.CreatedDate,
	)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// updateTx overwrites every mutable field of an existing row inside the
// batch transaction.
func (r *ListingRepository) updateTx(ctx context.Context, tx *sqlx.Tx, row ListingRow) error {
	query := `
		UPDATE rental_listings
		SET image_url = $1, description = $2, price_amount = $3,
		    price_currency = $4, price_per = $5, added_date = $6,
		    address = $7, postcode = $8, created_date = $9
		WHERE property_id = $10
	`

	_, err := tx.ExecContext(ctx, query,
		row.ImageURL, row.Description, row.PriceAmount,
		row.PriceCurrency, row.PricePer, row.AddedDate,
		row.Address, row.Postcode, row.CreatedDate,
		row.PropertyID,
	)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// List retrieves listings ordered by first observation, newest first.
func (r *ListingRepository) List(ctx context.Context, limit, offset int) ([]ListingRow, error) {
	var rows []ListingRow
	query := `
		SELECT ` + listingColumns + `
		FROM rental_listings
		ORDER BY created_date DESC
		LIMIT $1 OFFSET $2
	`

	err := r.db.SelectContext(ctx, &rows, query, limit, offset)
	if err != nil {
		return nil, mapError(err)
	}

	return rows, nil
}

// Count returns the total number of stored listings.
func (r *ListingRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM rental_listings`)
	if err != nil {
		return 0, mapError(err)
	}

	return count, nil
}

// Delete removes a listing from the database.
func (r *ListingRepository) Delete(ctx context.Context, propertyID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM rental_listings WHERE property_id = $1`, propertyID)
	if err != nil {
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

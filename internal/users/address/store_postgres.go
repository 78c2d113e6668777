// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package address

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/userdesk/internal/platform/database/schema"
	"github.com/taibuivan/userdesk/internal/platform/dberr"
	"github.com/taibuivan/userdesk/internal/platform/postgres"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed address store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var addressColumns = strings.Join(schema.UserAddress.Columns(), ", ")

// defaultAddressIndex is the partial unique index allowing one default per account.
const defaultAddressIndex = "address_account_default_key"

/*
List retrieves the account's addresses, newest first.

Description: Filters are exact matches. The total is computed in the same
query with COUNT(*) OVER().
*/
func (repository *PostgresRepository) List(context context.Context, accountID string, filter Filter, limit, offset int) ([]*Address, int, error) {
	table := schema.UserAddress

	var queryBuilder strings.Builder
	args := []any{accountID}

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE %s = $1`,
		addressColumns, table.Table, table.AccountID))

	// Optional exact-match filters
	for _, condition := range []struct {
		column string
		value  string
	}{
		{table.Title, filter.Title},
		{table.City, filter.City},
		{table.State, filter.State},
	} {
		if condition.value == "" {
			continue
		}
		args = append(args, condition.value)
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", condition.column, len(args)))
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC, %s DESC", table.CreatedAt, table.ID))

	if limit > 0 {
		args = append(args, limit, offset)
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))
	}

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_address_list_failed: %w", err)
	}
	defer rows.Close()

	addresses := make([]*Address, 0)
	var totalCount int

	for rows.Next() {
		var address Address
		if err := rows.Scan(append(addressTargets(&address), &totalCount)...); err != nil {
			return nil, 0, fmt.Errorf("postgres_address_scan_failed: %w", err)
		}
		addresses = append(addresses, &address)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_address_list_failed: %w", err)
	}

	return addresses, totalCount, nil
}

// Create inserts the address, demoting the current default first if needed.
func (repository *PostgresRepository) Create(context context.Context, address *Address) error {
	table := schema.UserAddress
	columns := table.Columns()
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	insert := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		table.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	return postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		if address.IsDefault {
			if err := clearDefault(context, tx, address.AccountID, address.ID); err != nil {
				return err
			}
		}

		_, err := tx.Exec(context, insert,
			address.ID,
			address.AccountID,
			address.Title,
			address.HouseNumber,
			address.BuildingName,
			address.AddressLine1,
			address.AddressLine2,
			address.City,
			address.State,
			address.ZipCode,
			address.IsDefault,
			address.CreatedAt,
			address.UpdatedAt,
		)
		if err != nil {
			if dberr.IsUniqueViolation(err, defaultAddressIndex) {
				return ErrDefaultRace.WithCause(err)
			}
			return fmt.Errorf("postgres_address_create_failed: %w", err)
		}
		return nil
	})
}

/*
Update applies patch to an owned address.

Description: The row is locked first so a concurrent default change on the
same account cannot interleave between the demotion and the update.
*/
func (repository *PostgresRepository) Update(context context.Context, accountID, id string, patch Patch) (*Address, error) {
	table := schema.UserAddress
	lock := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 FOR UPDATE`,
		addressColumns, table.Table, table.ID, table.AccountID)

	var result *Address
	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		current, err := scanAddress(tx.QueryRow(context, lock, id, accountID))
		if err != nil {
			if dberr.IsNoRows(err) {
				return ErrAddressNotFound
			}
			return fmt.Errorf("postgres_address_lock_failed: %w", err)
		}

		if patch.IsEmpty() {
			result = current
			return nil
		}

		if patch.IsDefault != nil && *patch.IsDefault {
			if err := clearDefault(context, tx, accountID, id); err != nil {
				return err
			}
		}

		sets, args := buildPatch(patch)
		args = append(args, id, accountID)
		update := fmt.Sprintf(`UPDATE %s SET %s, %s = NOW() WHERE %s = $%d AND %s = $%d RETURNING %s`,
			table.Table, strings.Join(sets, ", "), table.UpdatedAt,
			table.ID, len(args)-1, table.AccountID, len(args), addressColumns)

		result, err = scanAddress(tx.QueryRow(context, update, args...))
		if err != nil {
			if dberr.IsUniqueViolation(err, defaultAddressIndex) {
				return ErrDefaultRace.WithCause(err)
			}
			return fmt.Errorf("postgres_address_update_failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes an owned address.
func (repository *PostgresRepository) Delete(context context.Context, accountID, id string) error {
	table := schema.UserAddress
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, table.Table, table.ID, table.AccountID)

	tag, err := repository.pool.Exec(context, query, id, accountID)
	if err != nil {
		return fmt.Errorf("postgres_address_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAddressNotFound
	}
	return nil
}

// clearDefault unsets the default flag on every other address of the account.
func clearDefault(context context.Context, tx pgx.Tx, accountID, keepID string) error {
	table := schema.UserAddress
	query := fmt.Sprintf(`UPDATE %s SET %s = FALSE, %s = NOW() WHERE %s = $1 AND %s AND %s <> $2`,
		table.Table, table.IsDefault, table.UpdatedAt, table.AccountID, table.IsDefault, table.ID)

	if _, err := tx.Exec(context, query, accountID, keepID); err != nil {
		return fmt.Errorf("postgres_address_clear_default_failed: %w", err)
	}
	return nil
}

func buildPatch(patch Patch) (sets []string, args []any) {
	table := schema.UserAddress

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	for _, field := range []struct {
		column string
		value  *string
	}{
		{table.Title, patch.Title},
		{table.HouseNumber, patch.HouseNumber},
		{table.BuildingName, patch.BuildingName},
		{table.AddressLine1, patch.AddressLine1},
		{table.AddressLine2, patch.AddressLine2},
		{table.City, patch.City},
		{table.State, patch.State},
		{table.ZipCode, patch.ZipCode},
	} {
		if field.value != nil {
			add(field.column, *field.value)
		}
	}
	if patch.IsDefault != nil {
		add(table.IsDefault, *patch.IsDefault)
	}
	return sets, args
}

func scanAddress(row pgx.Row) (*Address, error) {
	var address Address
	if err := row.Scan(addressTargets(&address)...); err != nil {
		return nil, err
	}
	return &address, nil
}

// addressTargets lists scan destinations in [schema.UserAddressTable.Columns] order.
func addressTargets(address *Address) []any {
	return []any{
		&address.ID,
		&address.AccountID,
		&address.Title,
		&address.HouseNumber,
		&address.BuildingName,
		&address.AddressLine1,
		&address.AddressLine2,
		&address.City,
		&address.State,
		&address.ZipCode,
		&address.IsDefault,
		&address.CreatedAt,
		&address.UpdatedAt,
	}
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/userdesk/internal/platform/database/schema"
	"github.com/taibuivan/userdesk/internal/platform/dberr"
	"github.com/taibuivan/userdesk/internal/platform/postgres"
	"github.com/taibuivan/userdesk/internal/platform/sec"
)

// # Account Repository

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAccountRepository creates a new PostgreSQL implementation of [AccountRepository].
func NewPostgresAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// accountColumns is the SELECT list matching [scanAccount].
var accountColumns = strings.Join(schema.UserAccount.Columns(), ", ")

/*
FindByID retrieves an account by primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Account: Hydrated account entity
  - error: NOT_FOUND or database errors
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*Account, error) {
	table := schema.UserAccount
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, accountColumns, table.Table, table.ID)

	account, err := scanAccount(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Account", "postgres_account_find_by_id_failed")
	}
	return account, nil
}

/*
FindByEmailOrUsername retrieves the account matching either identifier.

Description: Usernames cannot contain '@' and emails must, so at most one row
matches in practice. The oldest row wins if that ever changes.
*/
func (repository *PostgresAccountRepository) FindByEmailOrUsername(context context.Context, email, username string) (*Account, error) {
	table := schema.UserAccount
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 OR %s = $2 ORDER BY %s LIMIT 1`,
		accountColumns, table.Table, table.Email, table.Username, table.CreatedAt)

	account, err := scanAccount(repository.pool.QueryRow(context, query, email, username))
	if err != nil {
		return nil, dberr.Wrap(err, "Account", "postgres_account_find_by_login_failed")
	}
	return account, nil
}

// ExistsByEmailOrUsername reports whether either identifier is already registered.
func (repository *PostgresAccountRepository) ExistsByEmailOrUsername(context context.Context, email, username string) (bool, error) {
	table := schema.UserAccount
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 OR %s = $2)`,
		table.Table, table.Email, table.Username)

	var exists bool
	if err := repository.pool.QueryRow(context, query, email, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_account_exists_failed: %w", err)
	}
	return exists, nil
}

/*
Create persists a new account.

Returns:
  - error: [ErrAccountConflict] when the email or username index rejects the row
*/
func (repository *PostgresAccountRepository) Create(context context.Context, account *Account) error {
	table := schema.UserAccount
	columns := table.Columns()
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		table.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	_, err := repository.pool.Exec(context, query,
		account.ID,
		account.Username,
		account.Email,
		account.PasswordHash,
		account.FirstName,
		account.LastName,
		account.DateOfBirth,
		string(account.Role),
		account.IsVerified,
		account.IsActive,
		account.FailedLoginAttempts,
		account.FailedLoginAt,
		account.BlockUntil,
		account.EmailVerificationToken,
		account.EmailVerificationExpires,
		account.LastLoginAt,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err, "") {
			return ErrAccountConflict.WithCause(err)
		}
		return fmt.Errorf("postgres_account_create_failed: %w", err)
	}
	return nil
}

// Update applies patch to the row with the given id and returns the result.
func (repository *PostgresAccountRepository) Update(context context.Context, id string, patch AccountPatch) (*Account, error) {
	if patch.IsEmpty() {
		return repository.FindByID(context, id)
	}

	account, err := updateAccount(context, repository.pool, id, patch)
	if err != nil {
		return nil, dberr.Wrap(err, "Account", "postgres_account_update_failed")
	}
	return account, nil
}

/*
Mutate locks the account row with SELECT ... FOR UPDATE, hands it to fn and
writes the returned patch in the same transaction.

Description: Two concurrent failed logins therefore read 1 and 2 (never 1 and 1),
so the counter cannot lose increments.
*/
func (repository *PostgresAccountRepository) Mutate(context context.Context, id string, fn MutateFunc) (*Account, error) {
	table := schema.UserAccount
	lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`, accountColumns, table.Table, table.ID)

	var result *Account
	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		current, err := scanAccount(tx.QueryRow(context, lockQuery, id))
		if err != nil {
			return dberr.Wrap(err, "Account", "postgres_account_lock_failed")
		}

		patch, err := fn(current.Clone())
		if err != nil {
			return err
		}

		if patch.IsEmpty() {
			result = current
			return nil
		}

		result, err = updateAccount(context, tx, id, patch)
		if err != nil {
			return dberr.Wrap(err, "Account", "postgres_account_mutate_failed")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// updateAccount runs the UPDATE built from patch and scans the returned row.
func updateAccount(context context.Context, db querier, id string, patch AccountPatch) (*Account, error) {
	table := schema.UserAccount
	sets, args := buildAccountPatch(patch)

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE %s SET %s, %s = NOW() WHERE %s = $%d RETURNING %s`,
		table.Table, strings.Join(sets, ", "), table.UpdatedAt, table.ID, len(args), accountColumns)

	return scanAccount(db.QueryRow(context, query, args...))
}

// buildAccountPatch turns the named patch fields into SET clauses.
func buildAccountPatch(patch AccountPatch) (sets []string, args []any) {
	table := schema.UserAccount

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.PasswordHash != nil {
		add(table.Password, *patch.PasswordHash)
	}
	if patch.FirstName != nil {
		add(table.FirstName, *patch.FirstName)
	}
	if patch.LastName != nil {
		add(table.LastName, *patch.LastName)
	}
	if patch.DateOfBirth.IsSet() {
		add(table.DateOfBirth, patch.DateOfBirth.Value())
	}
	if patch.IsVerified != nil {
		add(table.IsVerified, *patch.IsVerified)
	}
	if patch.IsActive != nil {
		add(table.IsActive, *patch.IsActive)
	}
	if patch.FailedLoginAttempts != nil {
		add(table.FailedLoginAttempts, *patch.FailedLoginAttempts)
	}
	if patch.FailedLoginAt.IsSet() {
		add(table.FailedLoginAt, patch.FailedLoginAt.Value())
	}
	if patch.BlockUntil.IsSet() {
		add(table.BlockUntil, patch.BlockUntil.Value())
	}
	if patch.EmailVerificationToken.IsSet() {
		add(table.EmailVerificationToken, patch.EmailVerificationToken.Value())
	}
	if patch.EmailVerificationExpires.IsSet() {
		add(table.EmailVerificationExpires, patch.EmailVerificationExpires.Value())
	}
	if patch.LastLoginAt.IsSet() {
		add(table.LastLoginAt, patch.LastLoginAt.Value())
	}

	return sets, args
}

// scanAccount hydrates an [Account] in [schema.UserAccountTable.Columns] order.
func scanAccount(row pgx.Row) (*Account, error) {
	var (
		account Account
		role    string
	)

	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&account.FirstName,
		&account.LastName,
		&account.DateOfBirth,
		&role,
		&account.IsVerified,
		&account.IsActive,
		&account.FailedLoginAttempts,
		&account.FailedLoginAt,
		&account.BlockUntil,
		&account.EmailVerificationToken,
		&account.EmailVerificationExpires,
		&account.LastLoginAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Role = sec.UserRole(role)
	return &account, nil
}

// Package repository implements credential persistence for PostgreSQL and MySQL.
// Repositories store only envelope fields (ciphertext, iv, tag); plaintext
// never reaches this layer.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/credvault/internal/database"
	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
)

// PostgreSQLCredentialRepository implements credential persistence for PostgreSQL databases.
type PostgreSQLCredentialRepository struct {
	db *sql.DB
}

// NewPostgreSQLCredentialRepository creates a new PostgreSQLCredentialRepository.
func NewPostgreSQLCredentialRepository(db *sql.DB) *PostgreSQLCredentialRepository {
	return &PostgreSQLCredentialRepository{db: db}
}

// Upsert inserts a credential or replaces the envelope of an existing
// (provider, type) row, bumping updated_at.
func (p *PostgreSQLCredentialRepository) Upsert(
	ctx context.Context,
	credential *credentialsDomain.Credential,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO credentials (id, provider, type, ciphertext, iv, tag, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  ON CONFLICT (provider, type) DO UPDATE
			  SET ciphertext = EXCLUDED.ciphertext,
				  iv = EXCLUDED.iv,
				  tag = EXCLUDED.tag,
				  updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		credential.ID,
		credential.Provider,
		credential.Type,
		credential.Envelope.Ciphertext,
		credential.Envelope.IV,
		credential.Envelope.Tag,
		credential.CreatedAt,
		credential.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert credential")
	}
	return nil
}

// GetByProviderAndType retrieves a credential by its provider and type.
func (p *PostgreSQLCredentialRepository) GetByProviderAndType(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
) (*credentialsDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, provider, type, ciphertext, iv, tag, created_at, updated_at
			  FROM credentials
			  WHERE provider = $1 AND type = $2`

	var credential credentialsDomain.Credential
	err := querier.QueryRowContext(ctx, query, provider, credentialType).Scan(
		&credential.ID,
		&credential.Provider,
		&credential.Type,
		&credential.Envelope.Ciphertext,
		&credential.Envelope.IV,
		&credential.Envelope.Tag,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential")
	}

	return &credential, nil
}

// List retrieves stored credentials ordered by provider and type.
// The envelope fields are included; callers exposing listings externally must
// strip them (the HTTP layer returns metadata only).
func (p *PostgreSQLCredentialRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, provider, type, ciphertext, iv, tag, created_at, updated_at
			  FROM credentials
			  ORDER BY provider, type
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list credentials")
	}
	defer rows.Close()

	var credentials []*credentialsDomain.Credential
	for rows.Next() {
		var credential credentialsDomain.Credential
		if err := rows.Scan(
			&credential.ID,
			&credential.Provider,
			&credential.Type,
			&credential.Envelope.Ciphertext,
			&credential.Envelope.IV,
			&credential.Envelope.Tag,
			&credential.CreatedAt,
			&credential.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan credential")
		}
		credentials = append(credentials, &credential)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate credentials")
	}

	return credentials, nil
}

// Delete removes a credential by provider and type.
func (p *PostgreSQLCredentialRepository) Delete(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM credentials WHERE provider = $1 AND type = $2`

	result, err := querier.ExecContext(ctx, query, provider, credentialType)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete credential")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

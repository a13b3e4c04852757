package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/credvault/internal/database"
	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
)

// MySQLCredentialRepository implements credential persistence for MySQL databases.
type MySQLCredentialRepository struct {
	db *sql.DB
}

// NewMySQLCredentialRepository creates a new MySQLCredentialRepository.
func NewMySQLCredentialRepository(db *sql.DB) *MySQLCredentialRepository {
	return &MySQLCredentialRepository{db: db}
}

// Upsert inserts a credential or replaces the envelope of an existing
// (provider, type) row, bumping updated_at.
func (m *MySQLCredentialRepository) Upsert(
	ctx context.Context,
	credential *credentialsDomain.Credential,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO credentials (id, provider, type, ciphertext, iv, tag, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			  ciphertext = VALUES(ciphertext),
			  iv = VALUES(iv),
			  tag = VALUES(tag),
			  updated_at = VALUES(updated_at)`

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
func (m *MySQLCredentialRepository) GetByProviderAndType(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
) (*credentialsDomain.Credential, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, provider, type, ciphertext, iv, tag, created_at, updated_at
			  FROM credentials
			  WHERE provider = ? AND type = ?`

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
func (m *MySQLCredentialRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, provider, type, ciphertext, iv, tag, created_at, updated_at
			  FROM credentials
			  ORDER BY provider, type
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
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
func (m *MySQLCredentialRepository) Delete(
	ctx context.Context,
	provider string,
	credentialType credentialsDomain.Type,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM credentials WHERE provider = ? AND type = ?`

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

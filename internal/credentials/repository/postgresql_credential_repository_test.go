package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
)

var credentialColumns = []string{
	"id", "provider", "type", "ciphertext", "iv", "tag", "created_at", "updated_at",
}

func testCredential() *credentialsDomain.Credential {
	now := time.Now().UTC()
	return &credentialsDomain.Credential{
		ID:       uuid.Must(uuid.NewV7()),
		Provider: "github",
		Type:     credentialsDomain.TypeOAuthToken,
		Envelope: cryptoDomain.Envelope{
			Ciphertext: "Y2lwaGVydGV4dA==",
			IV:         "bm9uY2Vub25jZQ==",
			Tag:        "dGFnZ3RhZ2d0YWdndGFnZw==",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostgreSQLCredentialRepository_Upsert(t *testing.T) {
	t.Run("inserts credential", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		credential := testCredential()

		mock.ExpectExec("INSERT INTO credentials").
			WithArgs(
				credential.ID,
				credential.Provider,
				credential.Type,
				credential.Envelope.Ciphertext,
				credential.Envelope.IV,
				credential.Envelope.Tag,
				credential.CreatedAt,
				credential.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLCredentialRepository(db)
		err = repo.Upsert(context.Background(), credential)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps database errors", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO credentials").
			WillReturnError(errors.New("connection reset"))

		repo := NewPostgreSQLCredentialRepository(db)
		err = repo.Upsert(context.Background(), testCredential())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upsert credential")
	})
}

func TestPostgreSQLCredentialRepository_GetByProviderAndType(t *testing.T) {
	t.Run("returns credential", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		credential := testCredential()

		rows := sqlmock.NewRows(credentialColumns).AddRow(
			credential.ID,
			credential.Provider,
			credential.Type,
			credential.Envelope.Ciphertext,
			credential.Envelope.IV,
			credential.Envelope.Tag,
			credential.CreatedAt,
			credential.UpdatedAt,
		)

		mock.ExpectQuery("SELECT (.+) FROM credentials").
			WithArgs("github", credentialsDomain.TypeOAuthToken).
			WillReturnRows(rows)

		repo := NewPostgreSQLCredentialRepository(db)
		got, err := repo.GetByProviderAndType(
			context.Background(),
			"github",
			credentialsDomain.TypeOAuthToken,
		)

		require.NoError(t, err)
		assert.Equal(t, credential.ID, got.ID)
		assert.Equal(t, credential.Provider, got.Provider)
		assert.Equal(t, credential.Type, got.Type)
		assert.Equal(t, credential.Envelope, got.Envelope)
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT (.+) FROM credentials").
			WithArgs("github", credentialsDomain.TypeAPIKey).
			WillReturnError(sql.ErrNoRows)

		repo := NewPostgreSQLCredentialRepository(db)
		_, err = repo.GetByProviderAndType(
			context.Background(),
			"github",
			credentialsDomain.TypeAPIKey,
		)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLCredentialRepository_List(t *testing.T) {
	t.Run("returns credentials", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		first := testCredential()
		second := testCredential()
		second.Provider = "google"
		second.Type = credentialsDomain.TypeAPIKey

		rows := sqlmock.NewRows(credentialColumns)
		for _, credential := range []*credentialsDomain.Credential{first, second} {
			rows.AddRow(
				credential.ID,
				credential.Provider,
				credential.Type,
				credential.Envelope.Ciphertext,
				credential.Envelope.IV,
				credential.Envelope.Tag,
				credential.CreatedAt,
				credential.UpdatedAt,
			)
		}

		mock.ExpectQuery("SELECT (.+) FROM credentials").
			WithArgs(0, 50).
			WillReturnRows(rows)

		repo := NewPostgreSQLCredentialRepository(db)
		credentials, err := repo.List(context.Background(), 0, 50)

		require.NoError(t, err)
		require.Len(t, credentials, 2)
		assert.Equal(t, "github", credentials[0].Provider)
		assert.Equal(t, "google", credentials[1].Provider)
	})

	t.Run("returns empty list", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT (.+) FROM credentials").
			WithArgs(0, 50).
			WillReturnRows(sqlmock.NewRows(credentialColumns))

		repo := NewPostgreSQLCredentialRepository(db)
		credentials, err := repo.List(context.Background(), 0, 50)

		require.NoError(t, err)
		assert.Empty(t, credentials)
	})
}

func TestPostgreSQLCredentialRepository_Delete(t *testing.T) {
	t.Run("deletes credential", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("DELETE FROM credentials").
			WithArgs("github", credentialsDomain.TypeOAuthToken).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLCredentialRepository(db)
		err = repo.Delete(context.Background(), "github", credentialsDomain.TypeOAuthToken)

		assert.NoError(t, err)
	})

	t.Run("maps zero affected rows to not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("DELETE FROM credentials").
			WithArgs("github", credentialsDomain.TypeOAuthToken).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewPostgreSQLCredentialRepository(db)
		err = repo.Delete(context.Background(), "github", credentialsDomain.TypeOAuthToken)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opergia/energia-backend/internal/model"
)

func TestPersonFindByID_NotFound(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewPersonRepo(pool)

	mock.ExpectQuery("FROM people").WillReturnRows(sqlmock.NewRows(personColumns))

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPersonFindByID_MapsMissingRelatedToDefaults(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewPersonRepo(pool)

	// A person with an identification but neither address nor document.
	mock.ExpectQuery("FROM people").WillReturnRows(personRow(1, 5, nil, nil))

	p, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", p.Identification.Name)
	assert.Zero(t, p.Address.ID)
	assert.Equal(t, "", p.Address.Street)
	assert.Zero(t, p.Document.ID)
	assert.Equal(t, "", p.Document.Number)
}

func TestPersonCreate_TransactionalInsertThenLink(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewPersonRepo(pool)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO identifications")).
		WithArgs("Maria Souza", nil, "maria@example.com", nil).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO people")).
		WithArgs("Física", nil, int64(5), nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM people").WillReturnRows(personRow(1, 5, nil, nil))

	p, err := repo.Create(context.Background(), model.PersonInput{
		Type: "Física",
		Identification: model.IdentificationInput{
			Name:  "Maria Souza",
			Email: strPtr("maria@example.com"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, int64(5), p.Identification.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonCreate_RollsBackOnPersonInsertFailure(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewPersonRepo(pool)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO identifications")).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO people")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), model.PersonInput{
		Type:           "Física",
		Identification: model.IdentificationInput{Name: "Maria Souza"},
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonUpdate_PatchesOwnedIdentification(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewPersonRepo(pool)

	mock.ExpectQuery("FROM people").WillReturnRows(personRow(1, 5, nil, nil))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE identifications SET name = ? WHERE id = ?")).
		WithArgs("Maria S.", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM people").WillReturnRows(personRow(1, 5, nil, nil))

	_, err := repo.Update(context.Background(), 1, model.PersonPatch{
		Identification: &model.IdentificationPatch{Name: strPtr("Maria S.")},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonUpdate_InsertsAndRepointsMissingAddress(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewPersonRepo(pool)

	mock.ExpectQuery("FROM people").WillReturnRows(personRow(1, 5, nil, nil))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO addresses")).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE people SET address_id = ? WHERE id = ?")).
		WithArgs(int64(9), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM people").WillReturnRows(personRow(1, 5, 9, nil))

	patch := addressPatch("Rua B", "Contagem")
	p, err := repo.Update(context.Background(), 1, model.PersonPatch{Address: &patch})
	require.NoError(t, err)
	assert.Equal(t, int64(9), p.Address.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonUpdate_EmptyPatchIssuesNoUpdate(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewPersonRepo(pool)

	mock.ExpectQuery("FROM people").WillReturnRows(personRow(1, 5, nil, nil))
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectQuery("FROM people").WillReturnRows(personRow(1, 5, nil, nil))

	_, err := repo.Update(context.Background(), 1, model.PersonPatch{})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonDelete_CascadesOwnedRows(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewPersonRepo(pool)

	mock.ExpectQuery("FROM people").WillReturnRows(personRow(1, 5, 9, 3))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM people WHERE id = ?")).
		WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM identifications WHERE id = ?")).
		WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM addresses WHERE id = ?")).
		WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE id = ?")).
		WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonDelete_AbsentIsNotAnError(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewPersonRepo(pool)

	mock.ExpectQuery("FROM people").WillReturnRows(sqlmock.NewRows(personColumns))

	deleted, err := repo.Delete(context.Background(), 404)
	require.NoError(t, err)
	assert.False(t, deleted)
}

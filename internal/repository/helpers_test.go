package repository

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/opergia/energia-backend/internal/database"
	"github.com/opergia/energia-backend/internal/model"
)

func newMockPool(t *testing.T) (*database.Pool, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return database.NewPoolWithOpener(func() (*sql.DB, error) { return db, nil }), mock
}

func strPtr(s string) *string { return &s }

// addressPatch builds a minimal patch touching street and city.
func addressPatch(street, city string) model.AddressPatch {
	var p model.AddressPatch
	if street != "" {
		p.Street = &street
	}
	if city != "" {
		p.City = &city
	}
	return p
}

var personColumns = []string{
	"id", "person_type", "nickname",
	"identification_id", "address_id", "document_id",
	"i_name", "i_nickname", "i_email", "i_phone",
	"cep", "street", "number", "complement", "reference", "neighborhood",
	"postal_code", "city", "state", "country",
	"doc_type", "doc_number",
}

// personRow builds a joined result row; zero-valued related ids become NULLs.
func personRow(id int64, identID, addrID, docID any) *sqlmock.Rows {
	rows := sqlmock.NewRows(personColumns)
	rows.AddRow(id, "Física", nil,
		identID, addrID, docID,
		"Maria Souza", nil, "maria@example.com", nil,
		"30110-000", "Rua A", "12", nil, nil, "Centro",
		nil, "Belo Horizonte", "MG", "Brasil",
		"CPF", "123.456.789-00")
	return rows
}

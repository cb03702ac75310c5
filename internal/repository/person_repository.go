package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/opergia/energia-backend/internal/database"
	"github.com/opergia/energia-backend/internal/model"
)

// PersonRepo persists people and their identification, address and document
// rows. The related tables are referenced by foreign key from the people row
// and joined on every read.
type PersonRepo struct{ pool *database.Pool }

func NewPersonRepo(pool *database.Pool) *PersonRepo { return &PersonRepo{pool: pool} }

const basePersonQuery = `
SELECT p.id, p.person_type, p.nickname,
       p.identification_id, p.address_id, p.document_id,
       i.name, i.nickname, i.email, i.phone,
       a.cep, a.street, a.number, a.complement, a.reference, a.neighborhood,
       a.postal_code, a.city, a.state, a.country,
       d.doc_type, d.doc_number
FROM people p
LEFT JOIN identifications i ON p.identification_id = i.id
LEFT JOIN addresses a ON p.address_id = a.id
LEFT JOIN documents d ON p.document_id = d.id`

type rowScanner interface{ Scan(dest ...any) error }

// scanPerson maps one joined row into the domain shape. Related rows that do
// not exist come back as NULLs and map to empty-default sub-objects, so
// downstream code never needs nil guards for "no address yet".
func scanPerson(row rowScanner) (*model.Person, error) {
	var (
		p model.Person

		nickname sql.NullString

		identID, addrID, docID sql.NullInt64

		iName, iNickname, iEmail, iPhone sql.NullString

		aCEP, aStreet, aNumber, aComplement, aReference  sql.NullString
		aNeighborhood, aPostalCode, aCity, aState, aCountry sql.NullString

		dType, dNumber sql.NullString
	)
	err := row.Scan(&p.ID, &p.Type, &nickname,
		&identID, &addrID, &docID,
		&iName, &iNickname, &iEmail, &iPhone,
		&aCEP, &aStreet, &aNumber, &aComplement, &aReference, &aNeighborhood,
		&aPostalCode, &aCity, &aState, &aCountry,
		&dType, &dNumber)
	if err != nil {
		return nil, err
	}
	if nickname.Valid {
		p.Nickname = &nickname.String
	}
	if identID.Valid {
		p.IdentificationID = identID.Int64
		p.Identification = model.Identification{ID: identID.Int64, Name: iName.String}
		if iNickname.Valid {
			p.Identification.Nickname = &iNickname.String
		}
		if iEmail.Valid {
			p.Identification.Email = &iEmail.String
		}
		if iPhone.Valid {
			p.Identification.Phone = &iPhone.String
		}
	}
	if addrID.Valid {
		p.AddressID = addrID.Int64
		p.Address = model.Address{
			ID:           addrID.Int64,
			CEP:          aCEP.String,
			Street:       aStreet.String,
			Number:       aNumber.String,
			Neighborhood: aNeighborhood.String,
			City:         aCity.String,
			State:        aState.String,
			Country:      aCountry.String,
		}
		if aComplement.Valid {
			p.Address.Complement = &aComplement.String
		}
		if aReference.Valid {
			p.Address.Reference = &aReference.String
		}
		if aPostalCode.Valid {
			p.Address.PostalCode = &aPostalCode.String
		}
	}
	if docID.Valid {
		p.DocumentID = docID.Int64
		p.Document = model.Document{ID: docID.Int64, Type: dType.String, Number: dNumber.String}
	}
	return &p, nil
}

// FindAll returns every person with related data joined in.
func (r *PersonRepo) FindAll(ctx context.Context) ([]*model.Person, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, basePersonQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	people := make([]*model.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

// FindByID returns one person or ErrNotFound.
func (r *PersonRepo) FindByID(ctx context.Context, id int64) (*model.Person, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	p, err := scanPerson(db.QueryRowContext(ctx, basePersonQuery+" WHERE p.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// Create inserts the related lookup rows in dependency order, then the person
// row referencing them, all in one transaction. Any failure rolls the whole
// write back so no partial person is ever visible. The committed entity is
// re-fetched so the returned shape matches a subsequent read.
func (r *PersonRepo) Create(ctx context.Context, in model.PersonInput) (*model.Person, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	identID, err := insertIdentification(ctx, tx, in.Identification)
	if err != nil {
		return nil, err
	}

	var addrID, docID *int64
	if in.Address != nil {
		id, err := insertAddress(ctx, tx, *in.Address)
		if err != nil {
			return nil, err
		}
		addrID = &id
	}
	if in.Document != nil {
		id, err := insertDocument(ctx, tx, *in.Document)
		if err != nil {
			return nil, err
		}
		docID = &id
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO people (person_type, nickname, identification_id, address_id, document_id) VALUES (?,?,?,?,?)",
		in.Type, in.Nickname, identID, addrID, docID)
	if err != nil {
		return nil, err
	}
	personID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, personID)
}

// Update applies a patch. Related rows the person already owns get a partial
// UPDATE limited to the provided fields; sub-objects the person does not own
// yet are inserted and the foreign key repointed, inside one transaction.
func (r *PersonRepo) Update(ctx context.Context, id int64, patch model.PersonPatch) (*model.Person, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if patch.Identification != nil {
		if current.IdentificationID != 0 {
			err = updateIdentification(ctx, tx, current.IdentificationID, *patch.Identification)
		} else {
			var identID int64
			identID, err = insertIdentification(ctx, tx, identificationInputFromPatch(*patch.Identification))
			if err == nil {
				_, err = tx.ExecContext(ctx, "UPDATE people SET identification_id = ? WHERE id = ?", identID, id)
			}
		}
		if err != nil {
			return nil, err
		}
	}

	if patch.Address != nil {
		if current.AddressID != 0 {
			err = updateAddress(ctx, tx, current.AddressID, *patch.Address)
		} else {
			var addrID int64
			addrID, err = insertAddress(ctx, tx, addressInputFromPatch(*patch.Address))
			if err == nil {
				_, err = tx.ExecContext(ctx, "UPDATE people SET address_id = ? WHERE id = ?", addrID, id)
			}
		}
		if err != nil {
			return nil, err
		}
	}

	if patch.Document != nil {
		if current.DocumentID != 0 {
			err = updateDocument(ctx, tx, current.DocumentID, *patch.Document)
		} else {
			var docID int64
			docID, err = insertDocument(ctx, tx, documentInputFromPatch(*patch.Document))
			if err == nil {
				_, err = tx.ExecContext(ctx, "UPDATE people SET document_id = ? WHERE id = ?", docID, id)
			}
		}
		if err != nil {
			return nil, err
		}
	}

	var b setBuilder
	addIf(&b, "person_type", patch.Type)
	addIf(&b, "nickname", patch.Nickname)
	if !b.empty() {
		if _, err := tx.ExecContext(ctx,
			"UPDATE people SET "+b.clause()+" WHERE id = ?", append(b.args, id)...); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete removes the person row and every lookup row it exclusively owns.
// Reports whether a row existed to delete.
func (r *PersonRepo) Delete(ctx context.Context, id int64) (bool, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM people WHERE id = ?", id); err != nil {
		return false, err
	}
	if current.IdentificationID != 0 {
		if _, err := tx.ExecContext(ctx, "DELETE FROM identifications WHERE id = ?", current.IdentificationID); err != nil {
			return false, err
		}
	}
	if current.AddressID != 0 {
		if _, err := tx.ExecContext(ctx, "DELETE FROM addresses WHERE id = ?", current.AddressID); err != nil {
			return false, err
		}
	}
	if current.DocumentID != 0 {
		if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", current.DocumentID); err != nil {
			return false, err
		}
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

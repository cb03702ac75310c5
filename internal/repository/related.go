package repository

import (
	"context"
	"database/sql"

	"github.com/opergia/energia-backend/internal/model"
)

// The identification, address and document lookup tables are shared by
// several parent entities. Inserts always run inside the parent's
// transaction so a failed parent insert never leaves a dangling lookup row.

func insertIdentification(ctx context.Context, tx *sql.Tx, in model.IdentificationInput) (int64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO identifications (name, nickname, email, phone) VALUES (?,?,?,?)",
		in.Name, in.Nickname, in.Email, in.Phone)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func insertAddress(ctx context.Context, tx *sql.Tx, in model.AddressInput) (int64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO addresses (cep, street, number, complement, reference, neighborhood, postal_code, city, state, country) VALUES (?,?,?,?,?,?,?,?,?,?)",
		in.CEP, in.Street, in.Number, in.Complement, in.Reference, in.Neighborhood, in.PostalCode, in.City, in.State, in.Country)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func insertDocument(ctx context.Context, tx *sql.Tx, in model.DocumentInput) (int64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO documents (doc_type, doc_number) VALUES (?,?)",
		in.Type, in.Number)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func updateIdentification(ctx context.Context, tx *sql.Tx, id int64, p model.IdentificationPatch) error {
	var b setBuilder
	addIf(&b, "name", p.Name)
	addIf(&b, "nickname", p.Nickname)
	addIf(&b, "email", p.Email)
	addIf(&b, "phone", p.Phone)
	if b.empty() {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		"UPDATE identifications SET "+b.clause()+" WHERE id = ?", append(b.args, id)...)
	return err
}

func updateAddress(ctx context.Context, tx *sql.Tx, id int64, p model.AddressPatch) error {
	var b setBuilder
	addIf(&b, "cep", p.CEP)
	addIf(&b, "street", p.Street)
	addIf(&b, "number", p.Number)
	addIf(&b, "complement", p.Complement)
	addIf(&b, "reference", p.Reference)
	addIf(&b, "neighborhood", p.Neighborhood)
	addIf(&b, "postal_code", p.PostalCode)
	addIf(&b, "city", p.City)
	addIf(&b, "state", p.State)
	addIf(&b, "country", p.Country)
	if b.empty() {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		"UPDATE addresses SET "+b.clause()+" WHERE id = ?", append(b.args, id)...)
	return err
}

func updateDocument(ctx context.Context, tx *sql.Tx, id int64, p model.DocumentPatch) error {
	var b setBuilder
	addIf(&b, "doc_type", p.Type)
	addIf(&b, "doc_number", p.Number)
	if b.empty() {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		"UPDATE documents SET "+b.clause()+" WHERE id = ?", append(b.args, id)...)
	return err
}

func deref(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}

// addressInputFromPatch fills an insert shape from a patch when the parent
// does not own an address row yet; absent fields default to empty strings.
func addressInputFromPatch(p model.AddressPatch) model.AddressInput {
	country := deref(p.Country)
	if country == "" {
		country = "Brasil"
	}
	return model.AddressInput{
		CEP:          deref(p.CEP),
		Street:       deref(p.Street),
		Number:       deref(p.Number),
		Complement:   p.Complement,
		Reference:    p.Reference,
		Neighborhood: deref(p.Neighborhood),
		PostalCode:   p.PostalCode,
		City:         deref(p.City),
		State:        deref(p.State),
		Country:      country,
	}
}

func documentInputFromPatch(p model.DocumentPatch) model.DocumentInput {
	return model.DocumentInput{Type: deref(p.Type), Number: deref(p.Number)}
}

func identificationInputFromPatch(p model.IdentificationPatch) model.IdentificationInput {
	return model.IdentificationInput{
		Name:     deref(p.Name),
		Nickname: p.Nickname,
		Email:    p.Email,
		Phone:    p.Phone,
	}
}

package store

import (
	"verdora/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type cartRow struct {
	ID        string  `db:"id"`
	ProductID string  `db:"prodotto_id"`
	Name      string  `db:"nome"`
	Price     float64 `db:"prezzo"`
	Quantity  int     `db:"quantita"`
}

func (r cartRow) toDomain() domain.CartLine {
	return domain.CartLine{ID: r.ID, ProductID: r.ProductID, Name: r.Name, Price: r.Price, Quantity: r.Quantity}
}

func (r *CartRepo) List() ([]domain.CartLine, error) {
	var rows []cartRow
	err := r.db.Select(&rows, `
	  SELECT id, prodotto_id, COALESCE(nome,'') AS nome, prezzo, quantita
	  FROM carrello
	  ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CartLine, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *CartRepo) Get(id string) (domain.CartLine, error) {
	var row cartRow
	err := r.db.Get(&row, `
	  SELECT id, prodotto_id, COALESCE(nome,'') AS nome, prezzo, quantita
	  FROM carrello
	  WHERE id = ?
	`, id)
	if err != nil {
		return domain.CartLine{}, err
	}
	return row.toDomain(), nil
}

func (r *CartRepo) Insert(l domain.CartLine) error {
	_, err := r.db.Exec(`
	  INSERT INTO carrello(id, prodotto_id, nome, prezzo, quantita, created_at)
	  VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, l.ID, l.ProductID, l.Name, l.Price, l.Quantity)
	return err
}

func (r *CartRepo) UpdateQuantity(id string, qty int) error {
	_, err := r.db.Exec(`
	  UPDATE carrello SET quantita = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, qty, id)
	return err
}

func (r *CartRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM carrello WHERE id = ?`, id)
	return err
}

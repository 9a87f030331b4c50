package store

import (
	"verdora/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type orderRow struct {
	ID            string `db:"id"`
	Name          string `db:"nome"`
	Surname       string `db:"cognome"`
	Email         string `db:"email"`
	Phone         string `db:"telefono"`
	DeliveryMode  string `db:"modalita_consegna"`
	Street        string `db:"via"`
	StreetNo      string `db:"civico"`
	PostalCode    string `db:"cap"`
	City          string `db:"citta"`
	Province      string `db:"provincia"`
	PaymentMethod string `db:"metodo_pagamento"`
	CardNumber    string `db:"numero_carta"`
	Status        string `db:"stato"`
	CreatedAt     string `db:"data_ordine"`
}

type orderLineRow struct {
	ProductID string  `db:"prodotto_id"`
	Name      string  `db:"nome"`
	Image     string  `db:"image"`
	Price     float64 `db:"prezzo"`
	Quantity  int     `db:"quantita"`
}

// Create persists the order header and its lines in one transaction.
func (r *OrderRepo) Create(o domain.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO ordini
	    (id, nome, cognome, email, telefono, modalita_consegna, via, civico, cap, citta, provincia, metodo_pagamento, numero_carta, stato, data_ordine)
	  VALUES
	    (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, o.ID, o.Name, o.Surname, o.Email, o.Phone, o.DeliveryMode, o.Street, o.StreetNo, o.PostalCode, o.City, o.Province, o.PaymentMethod, o.CardNumber, o.Status); err != nil {
		return err
	}

	for _, l := range o.Lines {
		if _, err := tx.Exec(`
		  INSERT INTO ordine_righe(ordine_id, prodotto_id, nome, image, prezzo, quantita)
		  VALUES(?, ?, ?, ?, ?, ?)
		`, o.ID, l.ProductID, l.Name, l.Image, l.Price, l.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var row orderRow
	if err := r.db.Get(&row, `
	  SELECT id, COALESCE(nome,'') AS nome, COALESCE(cognome,'') AS cognome,
	         COALESCE(email,'') AS email, COALESCE(telefono,'') AS telefono,
	         COALESCE(modalita_consegna,'') AS modalita_consegna,
	         COALESCE(via,'') AS via, COALESCE(civico,'') AS civico,
	         COALESCE(cap,'') AS cap, COALESCE(citta,'') AS citta,
	         COALESCE(provincia,'') AS provincia,
	         COALESCE(metodo_pagamento,'') AS metodo_pagamento,
	         COALESCE(numero_carta,'') AS numero_carta,
	         stato, COALESCE(data_ordine,'') AS data_ordine
	  FROM ordini WHERE id = ?
	`, id); err != nil {
		return domain.Order{}, err
	}

	var lineRows []orderLineRow
	if err := r.db.Select(&lineRows, `
	  SELECT prodotto_id, COALESCE(nome,'') AS nome, COALESCE(image,'') AS image, prezzo, quantita
	  FROM ordine_righe WHERE ordine_id = ?
	  ORDER BY nome
	`, id); err != nil {
		return domain.Order{}, err
	}

	o := domain.Order{
		ID:            row.ID,
		Name:          row.Name,
		Surname:       row.Surname,
		Email:         row.Email,
		Phone:         row.Phone,
		DeliveryMode:  row.DeliveryMode,
		Street:        row.Street,
		StreetNo:      row.StreetNo,
		PostalCode:    row.PostalCode,
		City:          row.City,
		Province:      row.Province,
		PaymentMethod: row.PaymentMethod,
		CardNumber:    row.CardNumber,
		Status:        row.Status,
		CreatedAt:     row.CreatedAt,
		Lines:         make([]domain.OrderLine, 0, len(lineRows)),
	}
	for _, l := range lineRows {
		o.Lines = append(o.Lines, domain.OrderLine{
			ProductID: l.ProductID, Name: l.Name, Image: l.Image, Price: l.Price, Quantity: l.Quantity,
		})
	}
	return o, nil
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE ordini SET stato = ? WHERE id = ?`, status, id)
	return err
}

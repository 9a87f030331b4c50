package store

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// in-memory sqlite is one database per connection
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed the catalog if the DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Catalog
CREATE TABLE IF NOT EXISTS plants(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price > 0),
  image TEXT,
  description TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_plants_name ON plants(LOWER(name));

-- Cart lines: one row per distinct product is the client's invariant,
-- the store just holds rows.
CREATE TABLE IF NOT EXISTS carrello(
  id TEXT PRIMARY KEY,
  prodotto_id TEXT NOT NULL,
  nome TEXT,
  prezzo NUMERIC NOT NULL,
  quantita INTEGER NOT NULL CHECK (quantita >= 1),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_carrello_prodotto ON carrello(prodotto_id);

-- Orders
CREATE TABLE IF NOT EXISTS ordini(
  id TEXT PRIMARY KEY,
  nome TEXT,
  cognome TEXT,
  email TEXT,
  telefono TEXT,
  modalita_consegna TEXT,
  via TEXT,
  civico TEXT,
  cap TEXT,
  citta TEXT,
  provincia TEXT,
  metodo_pagamento TEXT,
  numero_carta TEXT,
  stato TEXT NOT NULL,
  data_ordine TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_ordini_data ON ordini(data_ordine);

CREATE TABLE IF NOT EXISTS ordine_righe(
  ordine_id TEXT NOT NULL REFERENCES ordini(id) ON DELETE CASCADE,
  prodotto_id TEXT NOT NULL,
  nome TEXT,
  image TEXT,
  prezzo NUMERIC NOT NULL,
  quantita INTEGER NOT NULL,
  PRIMARY KEY (ordine_id, prodotto_id)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM plants`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo plants")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO plants(id,name,price,image,description) VALUES
	  ('p-monstera','Monstera Deliciosa',34.90,'img/monstera.svg','Pianta tropicale da interno con foglie fenestrate'),
	  ('p-ficus','Ficus Lyrata',49.50,'img/ficus.svg','Ficus a foglia di violino, ama la luce indiretta'),
	  ('p-pothos','Pothos',12.00,'img/pothos.svg','Rampicante resistente, perfetto per principianti'),
	  ('p-lavanda','Lavanda',8.50,'img/lavanda.svg','Profumata, da esterno, fiorisce in estate'),
	  ('p-aloe','Aloe Vera',10.00,'img/aloe.svg','Succulenta facile, poca acqua e molta luce'),
	  ('p-basilico','Basilico Genovese',3.90,'img/basilico.svg','Aromatica da vaso per la cucina')`)

	return tx.Commit()
}

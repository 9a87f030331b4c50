package store

import (
	"verdora/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PlantRepo struct{ db *sqlx.DB }

func NewPlantRepo(db *sqlx.DB) *PlantRepo { return &PlantRepo{db: db} }

type plantRow struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Price       float64 `db:"price"`
	Image       string  `db:"image"`
	Description string  `db:"description"`
}

func (r plantRow) toDomain() domain.Product {
	return domain.Product{ID: r.ID, Name: r.Name, Price: r.Price, Image: r.Image, Description: r.Description}
}

func (r *PlantRepo) List() ([]domain.Product, error) {
	var rows []plantRow
	err := r.db.Select(&rows, `
	  SELECT id, name, price, COALESCE(image,'') AS image, COALESCE(description,'') AS description
	  FROM plants
	  ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlantRepo) Get(id string) (domain.Product, error) {
	var row plantRow
	err := r.db.Get(&row, `
	  SELECT id, name, price, COALESCE(image,'') AS image, COALESCE(description,'') AS description
	  FROM plants
	  WHERE id = ?
	`, id)
	if err != nil {
		return domain.Product{}, err
	}
	return row.toDomain(), nil
}

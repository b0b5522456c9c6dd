package repos

import (
	"farmgate/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `SELECT id,name,description FROM product_categories ORDER BY name`)
	return out, err
}

func (r *CategoryRepo) Get(id int64) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT id,name,description FROM product_categories WHERE id=?`, id)
	return c, mapErr(err)
}

func (r *CategoryRepo) Create(name, description string) (domain.Category, error) {
	res, err := r.db.Exec(`INSERT INTO product_categories(name,description) VALUES(?,?)`, name, description)
	if err != nil {
		return domain.Category{}, mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Category{}, err
	}
	return r.Get(id)
}

func (r *CategoryRepo) Update(id int64, name, description string) (domain.Category, error) {
	res, err := r.db.Exec(`UPDATE product_categories SET name=?,description=? WHERE id=?`, name, description, id)
	if err != nil {
		return domain.Category{}, mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Category{}, ErrNotFound
	}
	return r.Get(id)
}

// Delete removes a category. The schema nullifies category_id on referencing
// products rather than cascading or blocking.
func (r *CategoryRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM product_categories WHERE id=?`, id)
	if err != nil {
		return mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

package repos

import (
	"strings"

	"farmgate/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id,name,description,price,image_url,stock,category_id,created_at,updated_at`

func (r *ProductRepo) List() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY created_at DESC`)
	return out, err
}

func (r *ProductRepo) ListByCategory(categoryID int64) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
		SELECT `+productCols+` FROM products
		WHERE category_id = ?
		ORDER BY created_at DESC
	`, categoryID)
	return out, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id=?`, id)
	return p, mapErr(err)
}

// Search matches a case-insensitive substring over name and description.
func (r *ProductRepo) Search(q string) ([]domain.Product, error) {
	like := "%" + strings.ToLower(q) + "%"
	out := []domain.Product{}
	err := r.db.Select(&out, `
		SELECT `+productCols+` FROM products
		WHERE LOWER(name) LIKE ? OR LOWER(description) LIKE ?
		ORDER BY created_at DESC
	`, like, like)
	return out, err
}

type InsertProduct struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
	ImageURL    string          `json:"imageUrl"`
	Stock       int             `json:"stock" validate:"gte=0"`
	CategoryID  *int64          `json:"categoryId"`
}

func (r *ProductRepo) Create(in InsertProduct) (domain.Product, error) {
	ts := now()
	res, err := r.db.Exec(`
		INSERT INTO products(name,description,price,image_url,stock,category_id,created_at,updated_at)
		VALUES(?,?,?,?,?,?,?,?)
	`, in.Name, in.Description, in.Price, in.ImageURL, in.Stock, in.CategoryID, ts, ts)
	if err != nil {
		return domain.Product{}, mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Product{}, err
	}
	return r.Get(id)
}

// UpdateProduct applies only the fields present in the patch and refreshes
// updated_at.
type UpdateProduct struct {
	Name        *string          `json:"name" validate:"omitempty,max=200"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gt=0"`
	ImageURL    *string          `json:"imageUrl"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *int64           `json:"categoryId"`
}

func (r *ProductRepo) Update(id int64, in UpdateProduct) (domain.Product, error) {
	set := []string{"updated_at = ?"}
	args := []any{now()}
	if in.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *in.Name)
	}
	if in.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *in.Description)
	}
	if in.Price != nil {
		set = append(set, "price = ?")
		args = append(args, *in.Price)
	}
	if in.ImageURL != nil {
		set = append(set, "image_url = ?")
		args = append(args, *in.ImageURL)
	}
	if in.Stock != nil {
		set = append(set, "stock = ?")
		args = append(args, *in.Stock)
	}
	if in.CategoryID != nil {
		set = append(set, "category_id = ?")
		args = append(args, *in.CategoryID)
	}
	args = append(args, id)

	res, err := r.db.Exec(`UPDATE products SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return domain.Product{}, mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Product{}, ErrNotFound
	}
	return r.Get(id)
}

func (r *ProductRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id=?`, id)
	if err != nil {
		return mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

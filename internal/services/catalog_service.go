package services

import (
	"farmgate/internal/domain"
	"farmgate/internal/repos"
	"farmgate/internal/validate"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) GetCategory(id int64) (domain.Category, error) {
	return s.Cats.Get(id)
}

type InsertCategory struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

func (s *CatalogService) CreateCategory(in InsertCategory) (domain.Category, error) {
	if fields := validate.Payload(in); fields != nil {
		return domain.Category{}, &ValidationError{Fields: fields}
	}
	return s.Cats.Create(in.Name, in.Description)
}

func (s *CatalogService) UpdateCategory(id int64, in InsertCategory) (domain.Category, error) {
	if fields := validate.Payload(in); fields != nil {
		return domain.Category{}, &ValidationError{Fields: fields}
	}
	return s.Cats.Update(id, in.Name, in.Description)
}

// DeleteCategory removes the category; products referencing it keep existing
// with a null categoryId.
func (s *CatalogService) DeleteCategory(id int64) error {
	return s.Cats.Delete(id)
}

func (s *CatalogService) ListProducts() ([]domain.Product, error) {
	return s.Prods.List()
}

func (s *CatalogService) ListProductsByCategory(categoryID int64) ([]domain.Product, error) {
	return s.Prods.ListByCategory(categoryID)
}

func (s *CatalogService) GetProduct(id int64) (domain.Product, error) {
	return s.Prods.Get(id)
}

// SearchProducts matches name and description, case-insensitive. Clients
// rely on this single server-side filter; there is no client re-filtering.
func (s *CatalogService) SearchProducts(q string) ([]domain.Product, error) {
	q, ok := validate.Query(q)
	if !ok {
		return []domain.Product{}, nil
	}
	return s.Prods.Search(q)
}

func (s *CatalogService) CreateProduct(in repos.InsertProduct) (domain.Product, error) {
	if fields := validate.Payload(in); fields != nil {
		return domain.Product{}, &ValidationError{Fields: fields}
	}
	return s.Prods.Create(in)
}

func (s *CatalogService) UpdateProduct(id int64, in repos.UpdateProduct) (domain.Product, error) {
	if fields := validate.Payload(in); fields != nil {
		return domain.Product{}, &ValidationError{Fields: fields}
	}
	return s.Prods.Update(id, in)
}

func (s *CatalogService) DeleteProduct(id int64) error {
	return s.Prods.Delete(id)
}

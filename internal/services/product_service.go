package services

import (
	"fmt"
	"time"

	"github.com/harhspalod/ecommerce-main/internal/apperrors"
	"github.com/harhspalod/ecommerce-main/internal/database/repository"
	"github.com/harhspalod/ecommerce-main/internal/models"
)

type ProductService struct {
	productRepo *repository.ProductRepository
}

func NewProductService(productRepo *repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(req *models.CreateProductRequest) (*models.ProductResponse, error) {
	if err := validateSalePrice(req.Price, req.SalePrice); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		Stock:       req.Stock,
		Description: req.Description,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return toProductResponse(product), nil
}

// GetProducts retrieves all products
func (s *ProductService) GetProducts() ([]*models.ProductResponse, error) {
	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	responses := make([]*models.ProductResponse, len(products))
	for i, product := range products {
		responses[i] = toProductResponse(product)
	}
	return responses, nil
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(id string) (*models.ProductResponse, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Product")
	}
	return toProductResponse(product), nil
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(id string, req *models.UpdateProductRequest) (*models.ProductResponse, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Product")
	}
	if err := validateSalePrice(req.Price, req.SalePrice); err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Category = req.Category
	product.Price = req.Price
	product.SalePrice = req.SalePrice
	product.Stock = req.Stock
	product.Description = req.Description

	if err := s.productRepo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return toProductResponse(product), nil
}

// DeleteProduct deletes a product; purchases, campaigns and call triggers
// referencing it stay behind
func (s *ProductService) DeleteProduct(id string) error {
	if _, err := s.productRepo.GetByID(id); err != nil {
		return notFoundOr(err, "Product")
	}
	if err := s.productRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// validateSalePrice enforces that a sale price, when present, is strictly
// below the list price
func validateSalePrice(price float64, salePrice *float64) error {
	if salePrice != nil && *salePrice >= price {
		return apperrors.NewValidation("Sale price must be lower than price")
	}
	return nil
}

func toProductResponse(product *models.Product) *models.ProductResponse {
	return &models.ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Category:    product.Category,
		Price:       product.Price,
		SalePrice:   product.SalePrice,
		Stock:       product.Stock,
		StockStatus: product.StockStatus(),
		Description: product.Description,
		CreatedAt:   product.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   product.UpdatedAt.Format(time.RFC3339),
	}
}

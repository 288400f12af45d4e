package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/drvet-api/internal/application/dto"
	"github.com/jhoicas/drvet-api/internal/domain"
	"github.com/jhoicas/drvet-api/internal/domain/entity"
	"github.com/jhoicas/drvet-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes. Last-write-wins, sin control de concurrencia.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	now  func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, now: time.Now}
}

// Create crea un cliente. Name es obligatorio.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	now := uc.now()
	customer := &entity.Customer{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	applyCustomer(customer, in)
	if strings.TrimSpace(customer.Name) == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	out := dto.FromCustomer(customer)
	return &out, nil
}

// GetByID obtiene un cliente; NotFoundError si no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NewNotFoundError("customer", id)
	}
	out := dto.FromCustomer(customer)
	return &out, nil
}

// List lista todos los clientes en orden de alta.
func (uc *CustomerUseCase) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.FromCustomer(c))
	}
	return out, nil
}

// Update mezcla los campos no nil sobre el cliente existente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NewNotFoundError("customer", id)
	}
	applyCustomer(customer, in)
	if strings.TrimSpace(customer.Name) == "" {
		return nil, domain.NewValidationError("name", "cannot be empty")
	}
	customer.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	out := dto.FromCustomer(customer)
	return &out, nil
}

// Delete elimina el cliente; las órdenes conservan customerName. Un id inexistente no es error.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func applyCustomer(c *entity.Customer, in dto.CustomerRequest) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&c.Name, in.Name)
	set(&c.Email, in.Email)
	set(&c.Phone, in.Phone)
	set(&c.Address, in.Address)
	set(&c.City, in.City)
	set(&c.State, in.State)
	set(&c.Pincode, in.Pincode)
}

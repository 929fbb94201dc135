package services

import (
	"context"
	"errors"

	"toko/internal/models"
	"toko/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// AddressService manages a user's shipping addresses.
type AddressService struct {
	repo     repositories.AddressRepository
	validate *validator.Validate
}

func NewAddressService(repo repositories.AddressRepository) *AddressService {
	return &AddressService{repo: repo, validate: validator.New()}
}

func (s *AddressService) ListAddresses(ctx context.Context, userID string) ([]models.Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

// CreateAddress stores a new address for userID. Any ID or owner set by the
// caller is overwritten.
func (s *AddressService) CreateAddress(ctx context.Context, userID string, address *models.Address) error {
	address.ID = ""
	address.UserID = userID
	if err := validateStruct(s.validate, address); err != nil {
		return err
	}
	return s.repo.Create(ctx, address)
}

func (s *AddressService) UpdateAddress(ctx context.Context, userID string, address *models.Address) error {
	address.UserID = userID
	if err := validateStruct(s.validate, address); err != nil {
		return err
	}
	return translateAddressErr(address.ID, s.repo.Update(ctx, address))
}

func (s *AddressService) DeleteAddress(ctx context.Context, userID, id string) error {
	return translateAddressErr(id, s.repo.Delete(ctx, id, userID))
}

func translateAddressErr(id string, err error) error {
	if err != nil && errors.Is(err, repositories.ErrAddressNotFound) {
		return &AddressNotFoundError{AddressID: id}
	}
	return err
}

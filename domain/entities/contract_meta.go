package entities

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a package-level singleton; validator caches struct metadata.
var validate = validator.New()

// ContractMeta describes the code and metadata of a contract migration.
type ContractMeta struct {
	Code        []byte `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required,max=64"`
	Version     string `json:"version" validate:"required,max=32"`
	Author      string `json:"author" validate:"max=128"`
	Email       string `json:"email" validate:"omitempty,email"`
	Description string `json:"description" validate:"max=1024"`
}

// Validate checks the metadata before it is sent to the host.
func (m ContractMeta) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("contract metadata validation failed: %w", err)
	}
	return nil
}

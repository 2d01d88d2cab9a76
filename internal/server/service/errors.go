package service

import (
	"errors"
	"fmt"

	"github.com/iudanet/starmap/internal/server/storage"
)

// Error kinds produced by the service layer in addition to storage kinds
var (
	// ErrUnauthenticated indicates missing, invalid or expired credentials
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden indicates that the caller lacks the required role
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials unknown user or wrong password, deliberately indistinguishable
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthenticated)
)

// invalidInput оборачивает ошибку валидации в вид ErrInvalidInput
func invalidInput(err error) error {
	return fmt.Errorf("%w: %s", storage.ErrInvalidInput, err.Error())
}

func invalidInputf(format string, args ...any) error {
	return invalidInput(fmt.Errorf(format, args...))
}

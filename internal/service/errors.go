package service

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConstraint = errors.New("constraint violated")

	ErrLoginUserNotFound         = errors.New("user not found")
	ErrLoginPasswordDoesNotMatch = errors.New("password does not match")
)

func notFound(entity string, id uint64) error {
	return errors.Wrapf(ErrNotFound, "%s %d", entity, id)
}

func invalid(msg string) error {
	return errors.Wrap(ErrValidation, msg)
}

// translate converts gorm's translated driver errors into the service
// taxonomy. Anything else passes through untouched.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Wrap(ErrConstraint, "duplicate key")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errors.Wrap(ErrConstraint, "foreign key violated")
	default:
		return err
	}
}

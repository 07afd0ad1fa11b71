package service

import (
	"github.com/learncss/Annotum/internal/domain"

	"github.com/pkg/errors"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

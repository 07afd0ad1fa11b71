package model

import (
	"database/sql/driver"
	"fmt"

	"github.com/bytedance/sonic"
)

// JSON stores V in a text column as JSON.
type JSON[T any] struct {
	V T
}

func NewJSON[T any](v T) JSON[T] {
	return JSON[T]{V: v}
}

// Value implements driver.Valuer.
func (j JSON[T]) Value() (driver.Value, error) {
	b, err := sonic.Marshal(j.V)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner. NULL and "" leave V at its zero value.
func (j *JSON[T]) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("model.JSON: unsupported scan type %T", src)
	}
	if len(b) == 0 {
		return nil
	}
	return sonic.Unmarshal(b, &j.V)
}

// GormDataType keeps the column a portable text type on every dialect.
func (JSON[T]) GormDataType() string {
	return "text"
}

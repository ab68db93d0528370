// Package pgerrors классифицирует ошибки PostgreSQL, возвращаемые драйвером lib/pq
package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL (SQLSTATE)
const (
	CodeUniqueViolation      = pq.ErrorCode("23505")
	CodeForeignKeyViolation  = pq.ErrorCode("23503")
	CodeCheckViolation       = pq.ErrorCode("23514")
	CodeSerializationFailure = pq.ErrorCode("40001")
)

// Code возвращает SQLSTATE ошибки, если это ошибка PostgreSQL
func Code(err error) (pq.ErrorCode, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code, true
	}
	return "", false
}

// Constraint возвращает имя нарушенного ограничения (если известно)
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

// IsUniqueViolation нарушение уникального индекса
func IsUniqueViolation(err error) bool {
	return hasCode(err, CodeUniqueViolation)
}

// IsForeignKeyViolation нарушение внешнего ключа
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, CodeForeignKeyViolation)
}

// IsCheckViolation нарушение CHECK ограничения
func IsCheckViolation(err error) bool {
	return hasCode(err, CodeCheckViolation)
}

// IsSerializationFailure конфликт сериализуемой транзакции
func IsSerializationFailure(err error) bool {
	return hasCode(err, CodeSerializationFailure)
}

func hasCode(err error, code pq.ErrorCode) bool {
	c, ok := Code(err)
	return ok && c == code
}

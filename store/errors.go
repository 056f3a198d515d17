package store

import (
	"errors"
	"fmt"
)

// ErrOrderNotFound indica que o id referenciado nao existe na tabela de
// pedidos. Distinto de erro de validacao: o caller mapeia para 404.
var ErrOrderNotFound = errors.New("order not found")

// ValidationError carrega o campo invalido para o caller expor na resposta.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

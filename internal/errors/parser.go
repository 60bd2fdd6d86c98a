package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo carries a parsed error code plus a user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a raw storage error into an ErrorInfo, hiding
// driver details from the response while keeping the cause actionable.
// context names the resource being touched ("produto", "categoria", "pedido").
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Ocorreu um erro no servidor",
		}
	}

	errStrLower := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    notFoundCode(context),
			Message: notFoundMessage(context),
		}
	}

	// PostgreSQL constraint violations
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Já existe um registro com esses dados",
		}
	}
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "Registro referenciado não existe",
		}
	}
	if strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "Campos obrigatórios não preenchidos",
		}
	}

	// Connectivity
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Falha de conexão com o banco de dados. Tente novamente em instantes",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "Ocorreu um erro no servidor",
	}
}

func notFoundCode(context string) string {
	switch context {
	case "produto":
		return ProductNotFound
	case "categoria":
		return CategoryNotFound
	case "pedido":
		return OrderNotFound
	default:
		return ResourceNotFound
	}
}

func notFoundMessage(context string) string {
	switch context {
	case "produto":
		return "Produto não encontrado"
	case "categoria":
		return "Categoria não encontrada"
	case "pedido":
		return "Pedido não encontrado"
	default:
		return "Registro não encontrado"
	}
}

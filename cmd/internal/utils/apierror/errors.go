package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
// User-facing messages are in pt-BR, the page's language.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

var (
	MalformedJSONError  = NewSimple(400, "Corpo JSON malformado")
	InternalServerError = NewSimple(500, "Erro interno do servidor")

	InvalidCNPJError     = NewSimple(400, "CNPJ inválido: informe os 14 dígitos")
	CompanyNotFoundError = NewSimple(404, "CNPJ não encontrado na base do registro")
	RateLimitedError     = NewSimple(429, "Limite de consultas atingido, tente novamente em alguns minutos")
	RegistryDownError    = NewSimple(503, "Não foi possível conectar ao serviço de consulta")
	LookupInFlightError  = NewSimple(409, "Já existe uma consulta em andamento, aguarde a conclusão")
	NoActiveLookupError  = NewSimple(404, "Nenhuma consulta ativa: realize uma consulta antes de exportar")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range err.(validator.ValidationErrors) {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "Este campo é obrigatório")
		case "min":
			problems[field] = append(problems[field], "Valor muito curto, mínimo: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Valor muito longo, máximo: "+fe.Param())
		case "cnpj":
			problems[field] = append(problems[field], "CNPJ inválido: informe os 14 dígitos")

		default:
			problems[field] = append(problems[field], "Valor inválido")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

// NewRegistryStatusError covers any registry HTTP status that is neither
// success, not-found nor rate-limiting.
func NewRegistryStatusError(status int) *APIError {
	return NewSimple(http.StatusBadGateway, "O serviço de consulta retornou um erro inesperado (HTTP %d)", status)
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parâmetro '%s' com tipo inválido, esperado: %s", name, dataType)
}

package apperrors

import (
	"errors"
	"net/http"
)

// ErrValidacao indica dados de entrada inválidos (valores não positivos,
// justificativa vazia, transição de estado não permitida).
var ErrValidacao = errors.New("dados inválidos")

// ErrNaoEncontrado indica que o registro pedido não existe.
var ErrNaoEncontrado = errors.New("registro não encontrado")

// ErrIntegridadeReferencial indica exclusão bloqueada por vínculo ativo
// (ex.: venda com comissão associada).
var ErrIntegridadeReferencial = errors.New("registro possui vínculos ativos")

// ErrConsistencia indica que uma escrita concorrente impediu a operação de
// ser aplicada atomicamente; o chamador pode repetir a chamada.
var ErrConsistencia = errors.New("conflito de escrita, tente novamente")

// HTTPStatus mapeia a taxonomia de erros para códigos HTTP.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidacao):
		return http.StatusBadRequest
	case errors.Is(err, ErrNaoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, ErrIntegridadeReferencial):
		return http.StatusConflict
	case errors.Is(err, ErrConsistencia):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

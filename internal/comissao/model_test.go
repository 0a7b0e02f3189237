package comissao

import (
	"testing"
	"time"

	"github.com/CorretorPro/api-corretor/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcularStatus(t *testing.T) {
	casos := []struct {
		nome     string
		total    float64
		alvo     float64
		esperado string
	}{
		{"sem recebimentos", 0, 1000, StatusPendente},
		{"total negativo", -10, 1000, StatusPendente},
		{"parcial", 400, 1000, StatusParcial},
		{"exato", 1000, 1000, StatusRecebida},
		{"acima do alvo satura em recebida", 1200, 1000, StatusRecebida},
		{"alvo zero com recebimento", 50, 0, StatusRecebida},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			assert.Equal(t, c.esperado, CalcularStatus(c.total, c.alvo))
		})
	}
}

func TestStatusValido(t *testing.T) {
	assert.True(t, StatusValido(StatusPendente))
	assert.True(t, StatusValido(StatusParcial))
	assert.True(t, StatusValido(StatusRecebida))
	assert.False(t, StatusValido("Pago"))
	assert.False(t, StatusValido(""))
}

func TestAplicarDivergenciaFixaValorBase(t *testing.T) {
	c := &Comissao{StatusValor: ValorAtualizado}

	mudou := c.AplicarDivergencia(500000, 520000)
	require.True(t, mudou)
	assert.Equal(t, ValorDesatualizado, c.StatusValor)
	require.NotNil(t, c.ValorVendaOriginal)
	assert.Equal(t, 500000.0, *c.ValorVendaOriginal)
	assert.Equal(t, 520000.0, *c.ValorVendaAtual)
	assert.Equal(t, 20000.0, *c.DiferencaValor)

	// segunda edição no mesmo episódio não move o valor base
	mudou = c.AplicarDivergencia(520000, 530000)
	require.True(t, mudou)
	assert.Equal(t, 500000.0, *c.ValorVendaOriginal)
	assert.Equal(t, 530000.0, *c.ValorVendaAtual)
	assert.Equal(t, 30000.0, *c.DiferencaValor)
}

func TestAplicarDivergenciaIdempotente(t *testing.T) {
	c := &Comissao{StatusValor: ValorAtualizado}

	require.True(t, c.AplicarDivergencia(500000, 520000))
	assert.False(t, c.AplicarDivergencia(500000, 520000))
	assert.Equal(t, 500000.0, *c.ValorVendaOriginal)
	assert.Equal(t, 20000.0, *c.DiferencaValor)
}

func TestJustificarEncerraEpisodio(t *testing.T) {
	c := &Comissao{StatusValor: ValorAtualizado}
	require.True(t, c.AplicarDivergencia(500000, 520000))

	require.NoError(t, c.Justificar("cliente renegociou o preço"))
	assert.Equal(t, ValorJustificado, c.StatusValor)
	assert.Equal(t, "cliente renegociou o preço", c.Justificativa)

	// trilha preservada como auditoria
	assert.Equal(t, 500000.0, *c.ValorVendaOriginal)
	assert.Equal(t, 520000.0, *c.ValorVendaAtual)
	assert.Equal(t, 20000.0, *c.DiferencaValor)
}

func TestJustificarValidacoes(t *testing.T) {
	c := &Comissao{StatusValor: ValorAtualizado}
	err := c.Justificar("qualquer coisa")
	assert.ErrorIs(t, err, apperrors.ErrValidacao)

	require.True(t, c.AplicarDivergencia(100, 200))
	err = c.Justificar("   ")
	assert.ErrorIs(t, err, apperrors.ErrValidacao)
	assert.Equal(t, ValorDesatualizado, c.StatusValor)
}

func TestNovaEdicaoAposJustificativaAbreNovoEpisodio(t *testing.T) {
	c := &Comissao{StatusValor: ValorAtualizado}
	require.True(t, c.AplicarDivergencia(500000, 520000))
	require.NoError(t, c.Justificar("renegociação"))

	// novo episódio parte do valor vigente, não do original antigo
	require.True(t, c.AplicarDivergencia(520000, 510000))
	assert.Equal(t, ValorDesatualizado, c.StatusValor)
	assert.Equal(t, 520000.0, *c.ValorVendaOriginal)
	assert.Equal(t, 510000.0, *c.ValorVendaAtual)
	assert.Equal(t, -10000.0, *c.DiferencaValor)
	// justificativa antiga permanece até a próxima
	assert.Equal(t, "renegociação", c.Justificativa)
}

func TestAplicarTotalRecebido(t *testing.T) {
	quando := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	c := &Comissao{ComissaoCorretor: 15000, Status: StatusPendente}

	c.AplicarTotalRecebido(5000, quando)
	assert.Equal(t, StatusParcial, c.Status)
	assert.Nil(t, c.DataPagamento)

	c.AplicarTotalRecebido(15000, quando)
	assert.Equal(t, StatusRecebida, c.Status)
	require.NotNil(t, c.DataPagamento)
	assert.Equal(t, quando, *c.DataPagamento)

	// data de pagamento não é sobrescrita por novo recálculo já recebido
	depois := quando.AddDate(0, 1, 0)
	c.AplicarTotalRecebido(16000, depois)
	assert.Equal(t, quando, *c.DataPagamento)

	// sair de Recebida limpa a data
	c.AplicarTotalRecebido(5000, depois)
	assert.Equal(t, StatusParcial, c.Status)
	assert.Nil(t, c.DataPagamento)
}

package cliente

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataNasc(ano, mes, dia int) time.Time {
	return time.Date(ano, time.Month(mes), dia, 0, 0, 0, 0, time.UTC)
}

func TestProximosAniversariantesJanela(t *testing.T) {
	ref := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)
	clientes := []Cliente{
		{Nome: "Ana", DataNascimento: dataNasc(1990, 6, 12)},   // em 2 dias
		{Nome: "Bruno", DataNascimento: dataNasc(1985, 6, 10)}, // hoje
		{Nome: "Carla", DataNascimento: dataNasc(1992, 8, 1)},  // fora da janela
		{Nome: "Davi"},                                         // sem data de nascimento
	}

	out := ProximosAniversariantes(clientes, ref, 30)

	require.Len(t, out, 2)
	assert.Equal(t, "Bruno", out[0].Nome)
	assert.Equal(t, 0, out[0].DiasRestantes)
	assert.Equal(t, 40, out[0].IdadeQueCompleta)
	assert.Equal(t, "Ana", out[1].Nome)
	assert.Equal(t, 2, out[1].DiasRestantes)
}

func TestProximosAniversariantesViraAno(t *testing.T) {
	ref := time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC)
	clientes := []Cliente{
		{Nome: "Elisa", DataNascimento: dataNasc(2000, 1, 3)},
	}

	out := ProximosAniversariantes(clientes, ref, 10)

	require.Len(t, out, 1)
	assert.Equal(t, 6, out[0].DiasRestantes)
	assert.Equal(t, 2026, out[0].ProximoAniversario.Year())
	assert.Equal(t, 26, out[0].IdadeQueCompleta)
}

func TestProximosAniversariantesNaoAlteraCliente(t *testing.T) {
	ref := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	original := Cliente{Nome: "Ana", DataNascimento: dataNasc(1990, 6, 12)}
	clientes := []Cliente{original}

	_ = ProximosAniversariantes(clientes, ref, 30)

	assert.Equal(t, original, clientes[0])
}

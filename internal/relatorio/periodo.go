package relatorio

import (
	"fmt"
	"time"

	"github.com/CorretorPro/api-corretor/internal/apperrors"
)

// Periodo delimita uma janela de apuração: um mês específico ou, quando
// Mes == 0, o ano inteiro.
type Periodo struct {
	Mes int
	Ano int
}

// Validar confere os limites do período.
func (p Periodo) Validar() error {
	if p.Ano < 2000 || p.Ano > 9999 {
		return fmt.Errorf("ano fora do intervalo: %w", apperrors.ErrValidacao)
	}
	if p.Mes < 0 || p.Mes > 12 {
		return fmt.Errorf("mês fora do intervalo: %w", apperrors.ErrValidacao)
	}
	return nil
}

// Limites devolve o intervalo [inicio, fim) coberto pelo período.
func (p Periodo) Limites() (time.Time, time.Time) {
	if p.Mes == 0 {
		inicio := time.Date(p.Ano, time.January, 1, 0, 0, 0, 0, time.UTC)
		return inicio, inicio.AddDate(1, 0, 0)
	}
	inicio := time.Date(p.Ano, time.Month(p.Mes), 1, 0, 0, 0, 0, time.UTC)
	return inicio, inicio.AddDate(0, 1, 0)
}

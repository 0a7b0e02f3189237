package comissao

import (
	"fmt"
	"strings"
	"time"

	"github.com/CorretorPro/api-corretor/internal/apperrors"
	"gorm.io/gorm"
)

// Status de pagamento da comissão (eixo A).
const (
	StatusPendente = "Pendente"
	StatusParcial  = "Parcial"
	StatusRecebida = "Recebida"
)

// Situação do valor registrado frente ao valor atual da venda (eixo B).
const (
	ValorAtualizado    = "Atualizado"
	ValorDesatualizado = "Desatualizado"
	ValorJustificado   = "Justificado"
)

// Comissao é o registro derivado de uma venda que acompanha o valor a
// receber do corretor e da imobiliária, os pagamentos parciais e a
// divergência entre o valor registrado e o valor atual da venda.
type Comissao struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	VendaID    uint `gorm:"not null;uniqueIndex" json:"vendaId"`
	CorretorID uint `gorm:"not null;index" json:"corretorId"`

	// Snapshots tirados no momento da criação
	Cliente           string  `gorm:"size:255" json:"cliente"`
	Imovel            string  `gorm:"size:255" json:"imovel"`
	ValorVendaInicial float64 `gorm:"not null;default:0" json:"valorVendaInicial"`

	ComissaoImobiliaria float64 `gorm:"not null;default:0" json:"comissaoImobiliaria"`
	ComissaoCorretor    float64 `gorm:"not null;default:0" json:"comissaoCorretor"`

	DataContrato  time.Time  `json:"dataContrato"`
	DataVenda     time.Time  `gorm:"not null;index" json:"dataVenda"`
	DataPagamento *time.Time `json:"dataPagamento"`

	Status      string `gorm:"size:50;not null;default:'Pendente';index" json:"status"`
	StatusValor string `gorm:"size:50;not null;default:'Atualizado'" json:"statusValor"`

	// Trilha do episódio de divergência corrente; preservada após justificativa.
	ValorVendaOriginal *float64 `json:"valorVendaOriginal,omitempty"`
	ValorVendaAtual    *float64 `json:"valorVendaAtual,omitempty"`
	DiferencaValor     *float64 `json:"diferencaValor,omitempty"`
	Justificativa      string   `gorm:"type:text" json:"justificativa,omitempty"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Comissao{})
}

// CalcularStatus deriva o status de pagamento pela soma dos recebimentos
// contra o valor da comissão do corretor. A soma pode ultrapassar o alvo;
// o status satura em Recebida.
func CalcularStatus(totalRecebido, alvo float64) string {
	switch {
	case totalRecebido <= 0:
		return StatusPendente
	case totalRecebido < alvo:
		return StatusParcial
	default:
		return StatusRecebida
	}
}

// StatusValido informa se o status de pagamento é um dos três conhecidos.
func StatusValido(s string) bool {
	return s == StatusPendente || s == StatusParcial || s == StatusRecebida
}

// AplicarDivergencia registra uma edição do valor da venda. O valor base do
// episódio só é fixado na primeira divergência detectada (ou quando um
// episódio anterior já foi justificado); edições seguintes apenas movem o
// valor atual e a diferença. Retorna false quando o novo valor coincide com
// o já registrado (evento duplicado, aplicação idempotente).
func (c *Comissao) AplicarDivergencia(valorAnterior, valorNovo float64) bool {
	if c.ValorVendaAtual != nil && *c.ValorVendaAtual == valorNovo {
		return false
	}
	if c.StatusValor == ValorAtualizado || c.StatusValor == ValorJustificado || c.ValorVendaOriginal == nil {
		base := valorAnterior
		c.ValorVendaOriginal = &base
	}
	atual := valorNovo
	c.ValorVendaAtual = &atual
	diff := valorNovo - *c.ValorVendaOriginal
	c.DiferencaValor = &diff
	c.StatusValor = ValorDesatualizado
	return true
}

// Justificar encerra o episódio de divergência corrente. Os campos da
// trilha (valor original, atual e diferença) são mantidos como auditoria.
func (c *Comissao) Justificar(texto string) error {
	if strings.TrimSpace(texto) == "" {
		return fmt.Errorf("justificativa obrigatória: %w", apperrors.ErrValidacao)
	}
	if c.StatusValor != ValorDesatualizado {
		return fmt.Errorf("comissão não está desatualizada: %w", apperrors.ErrValidacao)
	}
	c.StatusValor = ValorJustificado
	c.Justificativa = texto
	return nil
}

// AplicarTotalRecebido recalcula o status de pagamento e ajusta a data de
// pagamento: preenchida ao entrar em Recebida, limpa ao sair.
func (c *Comissao) AplicarTotalRecebido(total float64, quando time.Time) {
	novo := CalcularStatus(total, c.ComissaoCorretor)
	if novo == StatusRecebida {
		if c.DataPagamento == nil {
			t := quando
			c.DataPagamento = &t
		}
	} else {
		c.DataPagamento = nil
	}
	c.Status = novo
}

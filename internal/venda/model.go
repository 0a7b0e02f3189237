package venda

import (
	"time"

	"gorm.io/gorm"
)

// Venda representa uma transação de imóvel registrada por um corretor.
// Toda venda origina exatamente uma comissão no momento da criação.
type Venda struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	ClienteID  uint `gorm:"not null;index" json:"clienteId"`
	CorretorID uint `gorm:"not null;index" json:"corretorId"`

	TipoImovel string    `gorm:"size:100" json:"tipoImovel"`
	Endereco   string    `gorm:"size:255" json:"endereco"`
	Valor      float64   `gorm:"not null" json:"valor"`
	DataVenda  time.Time `gorm:"not null;index" json:"dataVenda"`

	ComissaoCorretor    float64 `gorm:"not null;default:0" json:"comissaoCorretor"`
	ComissaoImobiliaria float64 `gorm:"not null;default:0" json:"comissaoImobiliaria"`

	Observacoes string `gorm:"type:text" json:"observacoes"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Venda{})
}

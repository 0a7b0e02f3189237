package recebimento

import (
	"time"

	"gorm.io/gorm"
)

// Recebimento registra um pagamento parcial ou total aplicado sobre uma
// comissão. É imutável após a criação: não há caminho de atualização.
type Recebimento struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ComissaoID uint      `gorm:"not null;index;uniqueIndex:ux_recebimento_comissao_chave" json:"comissaoId"`
	Valor      float64   `gorm:"not null" json:"valor"`
	Data       time.Time `gorm:"not null;index" json:"data"`

	// Chave fornecida pelo cliente para tornar o reenvio de um mesmo
	// recebimento inofensivo (retry de rede não duplica o valor).
	ChaveIdempotencia *string `gorm:"size:64;uniqueIndex:ux_recebimento_comissao_chave" json:"chaveIdempotencia,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Recebimento{})
}

package meta

import (
	"time"

	"gorm.io/gorm"
)

// MetaMensal é o alvo de comissão recebida de um corretor para um mês.
// Uma linha por (corretor, mês, ano); gravação sempre por upsert.
type MetaMensal struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CorretorID uint      `gorm:"not null;uniqueIndex:ux_meta_mensal" json:"corretorId"`
	Mes        int       `gorm:"not null;uniqueIndex:ux_meta_mensal" json:"mes"`
	Ano        int       `gorm:"not null;uniqueIndex:ux_meta_mensal" json:"ano"`
	Valor      float64   `gorm:"not null;default:0" json:"valor"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// MetaAnual é o alvo de comissão recebida de um corretor para um ano.
type MetaAnual struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CorretorID uint      `gorm:"not null;uniqueIndex:ux_meta_anual" json:"corretorId"`
	Ano        int       `gorm:"not null;uniqueIndex:ux_meta_anual" json:"ano"`
	Valor      float64   `gorm:"not null;default:0" json:"valor"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Migrate cria as tabelas no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&MetaMensal{}, &MetaAnual{})
}

package anotacao

import "gorm.io/gorm"

// Anotacao é uma nota livre do corretor sobre um cliente (histórico de
// contatos, negociações em andamento, preferências).
type Anotacao struct {
	gorm.Model
	Texto      string `gorm:"type:text;not null" json:"texto"`
	ClienteID  uint   `gorm:"not null;index" json:"clienteId"`
	CorretorID uint   `gorm:"not null;index" json:"corretorId"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Anotacao{})
}

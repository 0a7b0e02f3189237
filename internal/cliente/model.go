package cliente

import (
	"time"

	"gorm.io/gorm"
)

// Cliente representa um cliente da carteira de um corretor.
type Cliente struct {
	gorm.Model
	Nome           string    `json:"nome"`
	Email          string    `json:"email"`
	Telefone       string    `json:"telefone"`
	CPF            string    `json:"cpf"`
	DataNascimento time.Time `json:"dataNascimento"`
	Endereco       string    `json:"endereco"`
	Cidade         string    `json:"cidade"`
	UF             string    `gorm:"size:2" json:"uf"`
	CEP            string    `gorm:"size:9" json:"cep"`
	Observacoes    string    `gorm:"type:text" json:"observacoes"`
	CorretorID     uint      `gorm:"not null;index" json:"corretorId"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Cliente{})
}

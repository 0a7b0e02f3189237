package recebimento

import (
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de Recebimentos.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

// Criar insere um novo recebimento.
func (r *Repository) Criar(rec *Recebimento) error {
	return r.DB.Create(rec).Error
}

// BuscarPorID busca um único recebimento pelo seu ID.
func (r *Repository) BuscarPorID(id uint) (*Recebimento, error) {
	var rec Recebimento
	if err := r.DB.First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// BuscarPorChave localiza o recebimento já gravado para uma chave de
// idempotência, se houver.
func (r *Repository) BuscarPorChave(comissaoID uint, chave string) (*Recebimento, error) {
	var rec Recebimento
	err := r.DB.
		Where("comissao_id = ? AND chave_idempotencia = ?", comissaoID, chave).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListarPorComissaoID busca todos os recebimentos de uma comissão,
// ordenados pela data de pagamento.
func (r *Repository) ListarPorComissaoID(comissaoID uint) ([]Recebimento, error) {
	var recs []Recebimento
	err := r.DB.
		Where("comissao_id = ?", comissaoID).
		Order("data ASC").
		Find(&recs).Error
	return recs, err
}

// SumValorByComissaoID soma os valores recebidos de uma comissão.
// Se db == nil, usa o r.DB. Permite usar dentro de transação.
func (r *Repository) SumValorByComissaoID(db *gorm.DB, comissaoID uint) (float64, error) {
	if db == nil {
		db = r.DB
	}
	var total float64
	err := db.Model(&Recebimento{}).
		Where("comissao_id = ?", comissaoID).
		Select("COALESCE(SUM(valor), 0)").
		Scan(&total).Error
	return total, err
}

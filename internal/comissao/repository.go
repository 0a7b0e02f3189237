package comissao

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Comissao.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
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

// Criar insere uma nova comissão.
func (r *Repository) Criar(c *Comissao) error {
	return r.DB.Create(c).Error
}

// BuscarPorID retorna uma comissão pelo ID.
func (r *Repository) BuscarPorID(id uint) (*Comissao, error) {
	var c Comissao
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// BuscarPorVendaID retorna a comissão derivada de uma venda (relação 1:1).
func (r *Repository) BuscarPorVendaID(vendaID uint) (*Comissao, error) {
	var c Comissao
	if err := r.DB.Where("venda_id = ?", vendaID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ExistePorVendaID informa se alguma comissão referencia a venda.
func (r *Repository) ExistePorVendaID(vendaID uint) (bool, error) {
	var n int64
	err := r.DB.Model(&Comissao{}).Where("venda_id = ?", vendaID).Count(&n).Error
	return n > 0, err
}

// ListarPorCorretor retorna as comissões de um corretor, opcionalmente
// filtradas por status de pagamento.
func (r *Repository) ListarPorCorretor(corretorID uint, status string) ([]Comissao, error) {
	q := r.DB.Where("corretor_id = ?", corretorID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []Comissao
	err := q.Order("data_venda DESC").Find(&list).Error
	return list, err
}

// ListarPorCorretorEPeriodo retorna as comissões cuja data de venda cai no
// intervalo [inicio, fim).
func (r *Repository) ListarPorCorretorEPeriodo(corretorID uint, inicio, fim time.Time) ([]Comissao, error) {
	var list []Comissao
	err := r.DB.
		Where("corretor_id = ? AND data_venda >= ? AND data_venda < ?", corretorID, inicio, fim).
		Order("data_venda ASC").
		Find(&list).Error
	return list, err
}

// Atualizar salva alterações em uma comissão existente.
func (r *Repository) Atualizar(c *Comissao) error {
	return r.DB.Save(c).Error
}

// Deletar remove a comissão (soft delete). Exclusão é manual e terminal;
// os recebimentos associados não são removidos em cascata.
func (r *Repository) Deletar(c *Comissao) error {
	return r.DB.Delete(c).Error
}

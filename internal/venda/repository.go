package venda

import (
	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Venda.
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

// Criar insere uma nova venda.
func (r *Repository) Criar(v *Venda) error {
	return r.DB.Create(v).Error
}

// BuscarPorID retorna uma venda pelo ID.
func (r *Repository) BuscarPorID(id uint) (*Venda, error) {
	var v Venda
	if err := r.DB.First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// ListarPorCorretor retorna as vendas de um corretor, mais recentes primeiro.
func (r *Repository) ListarPorCorretor(corretorID uint) ([]Venda, error) {
	var list []Venda
	err := r.DB.
		Where("corretor_id = ?", corretorID).
		Order("data_venda DESC").
		Find(&list).Error
	return list, err
}

// ListarPorCliente retorna as vendas registradas para um cliente.
func (r *Repository) ListarPorCliente(clienteID uint) ([]Venda, error) {
	var list []Venda
	err := r.DB.
		Where("cliente_id = ?", clienteID).
		Order("data_venda DESC").
		Find(&list).Error
	return list, err
}

// Atualizar salva alterações em uma venda existente.
func (r *Repository) Atualizar(v *Venda) error {
	return r.DB.Save(v).Error
}

// Deletar remove a venda (soft delete).
func (r *Repository) Deletar(id uint) error {
	res := r.DB.Delete(&Venda{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

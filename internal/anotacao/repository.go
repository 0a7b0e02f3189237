package anotacao

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, a *Anotacao) error
	ListarPorCliente(db *gorm.DB, clienteID uint) ([]Anotacao, error)
	BuscarPorID(db *gorm.DB, id uint) (*Anotacao, error)
	Atualizar(db *gorm.DB, id uint, novoTexto string) error
	Remover(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, a *Anotacao) error {
	return db.Create(a).Error
}

func (r *repositoryImpl) ListarPorCliente(db *gorm.DB, clienteID uint) ([]Anotacao, error) {
	var anotacoes []Anotacao
	err := db.
		Where("cliente_id = ?", clienteID).
		Order("created_at DESC").
		Find(&anotacoes).Error
	return anotacoes, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Anotacao, error) {
	var a Anotacao
	if err := db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, novoTexto string) error {
	return db.Model(&Anotacao{}).Where("id = ?", id).Update("texto", novoTexto).Error
}

func (r *repositoryImpl) Remover(db *gorm.DB, id uint) error {
	return db.Delete(&Anotacao{}, id).Error
}

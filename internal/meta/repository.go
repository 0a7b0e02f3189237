package meta

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsula o acesso a dados de metas.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// UpsertMensal grava a meta do mês, substituindo o valor se a linha já existe.
func (r *Repository) UpsertMensal(m *MetaMensal) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "corretor_id"}, {Name: "mes"}, {Name: "ano"}},
		DoUpdates: clause.AssignmentColumns([]string{"valor", "updated_at"}),
	}).Create(m).Error
}

// UpsertAnual grava a meta do ano, substituindo o valor se a linha já existe.
func (r *Repository) UpsertAnual(m *MetaAnual) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "corretor_id"}, {Name: "ano"}},
		DoUpdates: clause.AssignmentColumns([]string{"valor", "updated_at"}),
	}).Create(m).Error
}

// BuscarMensal retorna a meta do mês; valor zero quando não cadastrada.
func (r *Repository) BuscarMensal(corretorID uint, mes, ano int) (*MetaMensal, error) {
	var m MetaMensal
	err := r.DB.
		Where("corretor_id = ? AND mes = ? AND ano = ?", corretorID, mes, ano).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &MetaMensal{CorretorID: corretorID, Mes: mes, Ano: ano}, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// BuscarAnual retorna a meta do ano; valor zero quando não cadastrada.
func (r *Repository) BuscarAnual(corretorID uint, ano int) (*MetaAnual, error) {
	var m MetaAnual
	err := r.DB.
		Where("corretor_id = ? AND ano = ?", corretorID, ano).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &MetaAnual{CorretorID: corretorID, Ano: ano}, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

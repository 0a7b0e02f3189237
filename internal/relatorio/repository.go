package relatorio

import (
	"time"

	"github.com/CorretorPro/api-corretor/internal/comissao"
	"gorm.io/gorm"
)

// Repository reúne as consultas de agregação. Recebimentos são sempre
// ligados às comissões pela chave estrangeira explícita, nunca por posição.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// SomaRecebimentosPorComissao soma, por comissão do corretor, os
// recebimentos cuja data cai em [inicio, fim).
func (r *Repository) SomaRecebimentosPorComissao(corretorID uint, inicio, fim time.Time) (map[uint]float64, error) {
	var rows []struct {
		ComissaoID uint
		Total      float64
	}
	err := r.DB.Table("recebimentos").
		Select("recebimentos.comissao_id AS comissao_id, COALESCE(SUM(recebimentos.valor), 0) AS total").
		Joins("JOIN comissoes ON comissoes.id = recebimentos.comissao_id").
		Where("comissoes.corretor_id = ? AND comissoes.deleted_at IS NULL", corretorID).
		Where("recebimentos.data >= ? AND recebimentos.data < ?", inicio, fim).
		Group("recebimentos.comissao_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	somas := make(map[uint]float64, len(rows))
	for _, row := range rows {
		somas[row.ComissaoID] = row.Total
	}
	return somas, nil
}

// ComissoesEmAberto retorna as comissões Pendente/Parcial do corretor cuja
// data de venda cai em [inicio, fim).
func (r *Repository) ComissoesEmAberto(corretorID uint, inicio, fim time.Time) ([]comissao.Comissao, error) {
	var list []comissao.Comissao
	err := r.DB.
		Where("corretor_id = ?", corretorID).
		Where("status IN ?", []string{comissao.StatusPendente, comissao.StatusParcial}).
		Where("data_venda >= ? AND data_venda < ?", inicio, fim).
		Find(&list).Error
	return list, err
}

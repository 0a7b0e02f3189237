package relatorio

import (
	"github.com/CorretorPro/api-corretor/internal/meta"
	"gorm.io/gorm"
)

// BucketMensal é a fatia de um mês no resumo anual.
type BucketMensal struct {
	Mes      int     `json:"mes"`
	Recebido float64 `json:"recebido"`
}

// ResumoAnual alimenta o gráfico de progresso do ano.
type ResumoAnual struct {
	Ano            int            `json:"ano"`
	MetaAnual      float64        `json:"metaAnual"`
	TotalRecebido  float64        `json:"totalRecebido"`
	PercentualMeta float64        `json:"percentualMeta"`
	Meses          []BucketMensal `json:"meses"`
}

// Service calcula os totais de comissão recebida e pendente por período e o
// progresso contra as metas. Recebimentos contam no período em que foram
// pagos, não no período da venda de origem: uma venda de dezembro com
// recebimento em janeiro aparece no recebido de janeiro.
type Service struct {
	Repo  *Repository
	Metas *meta.Repository
}

// NewService cria o serviço de relatórios.
func NewService(db *gorm.DB) *Service {
	return &Service{
		Repo:  NewRepository(db),
		Metas: meta.NewRepository(db),
	}
}

// PercentualMeta devolve o progresso linear contra a meta; 0 quando não há
// meta cadastrada.
func PercentualMeta(recebido, metaValor float64) float64 {
	if metaValor <= 0 {
		return 0
	}
	return recebido / metaValor * 100
}

// TotalRecebido soma os recebimentos do corretor pagos dentro do período.
func (s *Service) TotalRecebido(corretorID uint, p Periodo) (float64, error) {
	if err := p.Validar(); err != nil {
		return 0, err
	}
	inicio, fim := p.Limites()
	somas, err := s.Repo.SomaRecebimentosPorComissao(corretorID, inicio, fim)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, v := range somas {
		total += v
	}
	return total, nil
}

// TotalPendente soma, para as comissões Pendente/Parcial com venda no
// período, o que falta receber de cada uma considerando só os recebimentos
// do próprio período. Comissões sem recebimento contribuem o valor cheio.
func (s *Service) TotalPendente(corretorID uint, p Periodo) (float64, error) {
	if err := p.Validar(); err != nil {
		return 0, err
	}
	inicio, fim := p.Limites()

	abertas, err := s.Repo.ComissoesEmAberto(corretorID, inicio, fim)
	if err != nil {
		return 0, err
	}
	somas, err := s.Repo.SomaRecebimentosPorComissao(corretorID, inicio, fim)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, c := range abertas {
		falta := c.ComissaoCorretor - somas[c.ID]
		if falta > 0 {
			total += falta
		}
	}
	return total, nil
}

// ResumoAnual monta os 12 baldes mensais de recebido e o progresso contra a
// meta anual.
func (s *Service) ResumoAnual(corretorID uint, ano int) (*ResumoAnual, error) {
	p := Periodo{Ano: ano}
	if err := p.Validar(); err != nil {
		return nil, err
	}

	resumo := &ResumoAnual{
		Ano:   ano,
		Meses: make([]BucketMensal, 0, 12),
	}
	for mes := 1; mes <= 12; mes++ {
		recebido, err := s.TotalRecebido(corretorID, Periodo{Mes: mes, Ano: ano})
		if err != nil {
			return nil, err
		}
		resumo.Meses = append(resumo.Meses, BucketMensal{Mes: mes, Recebido: recebido})
		resumo.TotalRecebido += recebido
	}

	metaAnual, err := s.Metas.BuscarAnual(corretorID, ano)
	if err != nil {
		return nil, err
	}
	resumo.MetaAnual = metaAnual.Valor
	resumo.PercentualMeta = PercentualMeta(resumo.TotalRecebido, metaAnual.Valor)
	return resumo, nil
}

package comissao

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/CorretorPro/api-corretor/internal/apperrors"
	"github.com/CorretorPro/api-corretor/internal/recebimento"
	"gorm.io/gorm"
)

// DadosVenda carrega o que o motor precisa da venda recém-criada sem
// depender do pacote de vendas.
type DadosVenda struct {
	VendaID    uint
	CorretorID uint
	Cliente    string
	Imovel     string
	Valor      float64
	DataVenda  time.Time
}

// ValoresComissao é o patch de edição direta dos valores de comissão.
type ValoresComissao struct {
	ComissaoImobiliaria *float64 `json:"comissaoImobiliaria"`
	ComissaoCorretor    *float64 `json:"comissaoCorretor"`
}

// Service concentra as regras que mantêm a comissão consistente com a venda
// de origem e com os recebimentos lançados contra ela.
type Service struct {
	DB           *gorm.DB
	Repo         *Repository
	Recebimentos *recebimento.Repository

	// trava por comissão: a leitura-decisão-escrita de AplicarDivergencia e
	// a soma-recálculo de RegistrarRecebimento não podem intercalar.
	travas sync.Map
}

// NewService cria o serviço de comissões.
func NewService(db *gorm.DB) *Service {
	return &Service{
		DB:           db,
		Repo:         NewRepository(db),
		Recebimentos: recebimento.NewRepository(db),
	}
}

func (s *Service) trava(comissaoID uint) *sync.Mutex {
	m, _ := s.travas.LoadOrStore(comissaoID, &sync.Mutex{})
	return m.(*sync.Mutex)
}

func traduzErro(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("comissão não encontrada: %w", apperrors.ErrNaoEncontrado)
	}
	return err
}

// InicializarParaVenda cria a comissão derivada de uma venda recém-criada:
// valores de comissão zerados (preenchidos depois pelo usuário), snapshot do
// valor da venda, status Pendente e valor Atualizado. Deve rodar dentro da
// transação que cria a venda.
func (s *Service) InicializarParaVenda(tx *gorm.DB, d DadosVenda) (*Comissao, error) {
	c := &Comissao{
		VendaID:           d.VendaID,
		CorretorID:        d.CorretorID,
		Cliente:           d.Cliente,
		Imovel:            d.Imovel,
		ValorVendaInicial: d.Valor,
		DataContrato:      d.DataVenda,
		DataVenda:         d.DataVenda,
		Status:            StatusPendente,
		StatusValor:       ValorAtualizado,
	}
	if err := s.Repo.WithDB(tx).Criar(c); err != nil {
		return nil, err
	}
	return c, nil
}

// AplicarDivergencia consome o evento de edição do valor da venda e marca a
// comissão como desatualizada. Idempotente para eventos repetidos com o
// mesmo valor final. Deve rodar na transação que atualizou a venda.
func (s *Service) AplicarDivergencia(tx *gorm.DB, vendaID uint, valorAnterior, valorNovo float64) (*Comissao, error) {
	repo := s.Repo.WithDB(tx)
	c, err := repo.BuscarPorVendaID(vendaID)
	if err != nil {
		return nil, traduzErro(err)
	}

	mu := s.trava(c.ID)
	mu.Lock()
	defer mu.Unlock()

	// relê sob a trava para decidir sobre o valor base com estado fresco
	c, err = repo.BuscarPorVendaID(vendaID)
	if err != nil {
		return nil, traduzErro(err)
	}
	if !c.AplicarDivergencia(valorAnterior, valorNovo) {
		return c, nil
	}
	if err := repo.Atualizar(c); err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrConsistencia)
	}
	return c, nil
}

// Justificar encerra o episódio de divergência corrente com um texto
// obrigatório. A trilha de valores é preservada como auditoria.
func (s *Service) Justificar(id uint, texto string) (*Comissao, error) {
	mu := s.trava(id)
	mu.Lock()
	defer mu.Unlock()

	c, err := s.Repo.BuscarPorID(id)
	if err != nil {
		return nil, traduzErro(err)
	}
	if err := c.Justificar(texto); err != nil {
		return nil, err
	}
	if err := s.Repo.Atualizar(c); err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrConsistencia)
	}
	return c, nil
}

// DefinirStatus aplica um status de pagamento escolhido manualmente pelo
// usuário. Vale até o próximo recebimento recalcular o status; nunca toca o
// eixo de valor.
func (s *Service) DefinirStatus(id uint, status string, dataPagamento *time.Time) (*Comissao, error) {
	if !StatusValido(status) {
		return nil, fmt.Errorf("status desconhecido %q: %w", status, apperrors.ErrValidacao)
	}

	mu := s.trava(id)
	mu.Lock()
	defer mu.Unlock()

	c, err := s.Repo.BuscarPorID(id)
	if err != nil {
		return nil, traduzErro(err)
	}
	c.Status = status
	if status == StatusRecebida {
		if dataPagamento != nil {
			c.DataPagamento = dataPagamento
		} else if c.DataPagamento == nil {
			agora := time.Now()
			c.DataPagamento = &agora
		}
	} else {
		c.DataPagamento = nil
	}
	if err := s.Repo.Atualizar(c); err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrConsistencia)
	}
	return c, nil
}

// AtualizarValores edita os valores de comissão e recalcula o status de
// pagamento contra a soma dos recebimentos já lançados.
func (s *Service) AtualizarValores(id uint, patch ValoresComissao) (*Comissao, error) {
	if patch.ComissaoImobiliaria != nil && *patch.ComissaoImobiliaria < 0 {
		return nil, fmt.Errorf("comissão da imobiliária negativa: %w", apperrors.ErrValidacao)
	}
	if patch.ComissaoCorretor != nil && *patch.ComissaoCorretor < 0 {
		return nil, fmt.Errorf("comissão do corretor negativa: %w", apperrors.ErrValidacao)
	}

	mu := s.trava(id)
	mu.Lock()
	defer mu.Unlock()

	c, err := s.Repo.BuscarPorID(id)
	if err != nil {
		return nil, traduzErro(err)
	}
	if patch.ComissaoImobiliaria != nil {
		c.ComissaoImobiliaria = *patch.ComissaoImobiliaria
	}
	if patch.ComissaoCorretor != nil {
		c.ComissaoCorretor = *patch.ComissaoCorretor
	}

	total, err := s.Recebimentos.SumValorByComissaoID(nil, c.ID)
	if err != nil {
		return nil, err
	}
	c.AplicarTotalRecebido(total, time.Now())

	if err := s.Repo.Atualizar(c); err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrConsistencia)
	}
	return c, nil
}

// EspelharValores copia os campos de comissão editados na venda para a
// comissão derivada, quando o usuário pede o espelhamento explícito.
// Deve rodar na transação que atualizou a venda.
func (s *Service) EspelharValores(tx *gorm.DB, vendaID uint, imobiliaria, corretor float64) (*Comissao, error) {
	repo := s.Repo.WithDB(tx)
	c, err := repo.BuscarPorVendaID(vendaID)
	if err != nil {
		return nil, traduzErro(err)
	}

	mu := s.trava(c.ID)
	mu.Lock()
	defer mu.Unlock()

	c, err = repo.BuscarPorVendaID(vendaID)
	if err != nil {
		return nil, traduzErro(err)
	}
	c.ComissaoImobiliaria = imobiliaria
	c.ComissaoCorretor = corretor

	total, err := s.Recebimentos.SumValorByComissaoID(tx, c.ID)
	if err != nil {
		return nil, err
	}
	c.AplicarTotalRecebido(total, time.Now())

	if err := repo.Atualizar(c); err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrConsistencia)
	}
	return c, nil
}

// RegistrarRecebimento lança um pagamento parcial contra a comissão e
// recalcula o status. Quando uma chave de idempotência é informada e já foi
// usada, o lançamento anterior é devolvido sem dupla contagem.
func (s *Service) RegistrarRecebimento(id uint, valor float64, data time.Time, chave string) (*Comissao, *recebimento.Recebimento, error) {
	if valor <= 0 {
		return nil, nil, fmt.Errorf("valor do recebimento deve ser positivo: %w", apperrors.ErrValidacao)
	}

	mu := s.trava(id)
	mu.Lock()
	defer mu.Unlock()

	if chave != "" {
		if existente, err := s.Recebimentos.BuscarPorChave(id, chave); err == nil {
			c, err := s.Repo.BuscarPorID(id)
			if err != nil {
				return nil, nil, traduzErro(err)
			}
			return c, existente, nil
		}
	}

	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, nil, fmt.Errorf("%v: %w", tx.Error, apperrors.ErrConsistencia)
	}

	c, err := s.Repo.WithDB(tx).BuscarPorID(id)
	if err != nil {
		tx.Rollback()
		return nil, nil, traduzErro(err)
	}

	rec := &recebimento.Recebimento{
		ComissaoID: c.ID,
		Valor:      valor,
		Data:       data,
	}
	if chave != "" {
		rec.ChaveIdempotencia = &chave
	}
	if err := s.Recebimentos.WithDB(tx).Criar(rec); err != nil {
		tx.Rollback()
		return nil, nil, fmt.Errorf("%v: %w", err, apperrors.ErrConsistencia)
	}

	total, err := s.Recebimentos.SumValorByComissaoID(tx, c.ID)
	if err != nil {
		tx.Rollback()
		return nil, nil, err
	}
	c.AplicarTotalRecebido(total, data)

	if err := s.Repo.WithDB(tx).Atualizar(c); err != nil {
		tx.Rollback()
		return nil, nil, fmt.Errorf("%v: %w", err, apperrors.ErrConsistencia)
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, nil, fmt.Errorf("%v: %w", err, apperrors.ErrConsistencia)
	}
	return c, rec, nil
}

// ListarRecebimentos devolve o histórico de pagamentos de uma comissão.
func (s *Service) ListarRecebimentos(id uint) ([]recebimento.Recebimento, error) {
	if _, err := s.Repo.BuscarPorID(id); err != nil {
		return nil, traduzErro(err)
	}
	return s.Recebimentos.ListarPorComissaoID(id)
}

// ExistePorVenda informa se a venda ainda tem comissão associada (bloqueio
// de exclusão da venda).
func (s *Service) ExistePorVenda(vendaID uint) (bool, error) {
	return s.Repo.ExistePorVendaID(vendaID)
}

// Deletar remove a comissão manualmente; estado terminal. Os recebimentos
// permanecem como histórico financeiro.
func (s *Service) Deletar(id uint) error {
	c, err := s.Repo.BuscarPorID(id)
	if err != nil {
		return traduzErro(err)
	}
	return s.Repo.Deletar(c)
}

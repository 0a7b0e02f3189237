package venda

import (
	"errors"
	"fmt"
	"time"

	"github.com/CorretorPro/api-corretor/internal/apperrors"
	"github.com/CorretorPro/api-corretor/internal/cliente"
	"github.com/CorretorPro/api-corretor/internal/comissao"
	"github.com/CorretorPro/api-corretor/internal/notificacao"
	"gorm.io/gorm"
)

// Service aplica as regras do registro de vendas: validação, criação da
// comissão derivada, emissão do evento de divergência quando o valor da
// venda muda e bloqueio de exclusão enquanto a comissão existir.
type Service struct {
	DB        *gorm.DB
	Repo      *Repository
	Clientes  cliente.Repository
	Comissoes *comissao.Service
}

// NewService cria o serviço de vendas.
func NewService(db *gorm.DB, comissoes *comissao.Service) *Service {
	return &Service{
		DB:        db,
		Repo:      NewRepository(db),
		Clientes:  cliente.NewRepository(),
		Comissoes: comissoes,
	}
}

func parseDataVenda(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("dataVenda é obrigatória: %w", apperrors.ErrValidacao)
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("dataVenda inválida (use AAAA-MM-DD): %w", apperrors.ErrValidacao)
	}
	return t, nil
}

// Criar valida e persiste a venda e, na mesma transação, inicializa a
// comissão derivada com snapshots do cliente e do imóvel.
func (s *Service) Criar(corretorID uint, dto CriarVendaDTO) (*Venda, *comissao.Comissao, error) {
	if dto.Valor <= 0 {
		return nil, nil, fmt.Errorf("valor da venda deve ser positivo: %w", apperrors.ErrValidacao)
	}
	dataVenda, err := parseDataVenda(dto.DataVenda)
	if err != nil {
		return nil, nil, err
	}

	cli, err := s.Clientes.BuscarPorID(s.DB, dto.ClienteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("cliente não encontrado: %w", apperrors.ErrNaoEncontrado)
		}
		return nil, nil, err
	}
	if cli.CorretorID != corretorID {
		return nil, nil, fmt.Errorf("cliente pertence a outro corretor: %w", apperrors.ErrValidacao)
	}

	v := &Venda{
		ClienteID:           dto.ClienteID,
		CorretorID:          corretorID,
		TipoImovel:          dto.TipoImovel,
		Endereco:            dto.Endereco,
		Valor:               dto.Valor,
		DataVenda:           dataVenda,
		ComissaoCorretor:    dto.ComissaoCorretor,
		ComissaoImobiliaria: dto.ComissaoImobiliaria,
		Observacoes:         dto.Observacoes,
	}

	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, nil, fmt.Errorf("%v: %w", tx.Error, apperrors.ErrConsistencia)
	}
	if err := s.Repo.WithDB(tx).Criar(v); err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	c, err := s.Comissoes.InicializarParaVenda(tx, comissao.DadosVenda{
		VendaID:    v.ID,
		CorretorID: corretorID,
		Cliente:    cli.Nome,
		Imovel:     fmt.Sprintf("%s - %s", v.TipoImovel, v.Endereco),
		Valor:      v.Valor,
		DataVenda:  v.DataVenda,
	})
	if err != nil {
		tx.Rollback()
		return nil, nil, err
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, nil, fmt.Errorf("%v: %w", err, apperrors.ErrConsistencia)
	}
	return v, c, nil
}

// Atualizar aplica o patch à venda. Quando o valor muda, o evento de
// divergência (vendaID, valorAnterior, valorNovo) é aplicado na comissão na
// mesma transação, e o webhook de alerta é disparado após o commit.
func (s *Service) Atualizar(id uint, dto AtualizarVendaDTO) (*Venda, error) {
	if dto.Valor != nil && *dto.Valor <= 0 {
		return nil, fmt.Errorf("valor da venda deve ser positivo: %w", apperrors.ErrValidacao)
	}

	v, err := s.Repo.BuscarPorID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("venda não encontrada: %w", apperrors.ErrNaoEncontrado)
		}
		return nil, err
	}

	valorAnterior := v.Valor
	if dto.TipoImovel != nil {
		v.TipoImovel = *dto.TipoImovel
	}
	if dto.Endereco != nil {
		v.Endereco = *dto.Endereco
	}
	if dto.Valor != nil {
		v.Valor = *dto.Valor
	}
	if dto.DataVenda != nil {
		dataVenda, err := parseDataVenda(*dto.DataVenda)
		if err != nil {
			return nil, err
		}
		v.DataVenda = dataVenda
	}
	if dto.ComissaoCorretor != nil {
		v.ComissaoCorretor = *dto.ComissaoCorretor
	}
	if dto.ComissaoImobiliaria != nil {
		v.ComissaoImobiliaria = *dto.ComissaoImobiliaria
	}
	if dto.Observacoes != nil {
		v.Observacoes = *dto.Observacoes
	}

	valorMudou := v.Valor != valorAnterior

	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("%v: %w", tx.Error, apperrors.ErrConsistencia)
	}
	if err := s.Repo.WithDB(tx).Atualizar(v); err != nil {
		tx.Rollback()
		return nil, err
	}
	if valorMudou {
		if _, err := s.Comissoes.AplicarDivergencia(tx, v.ID, valorAnterior, v.Valor); err != nil {
			// venda sem comissão (já excluída manualmente) não bloqueia a edição
			if !errors.Is(err, apperrors.ErrNaoEncontrado) {
				tx.Rollback()
				return nil, err
			}
			valorMudou = false
		}
	}
	if dto.EspelharComissao {
		if _, err := s.Comissoes.EspelharValores(tx, v.ID, v.ComissaoImobiliaria, v.ComissaoCorretor); err != nil {
			if !errors.Is(err, apperrors.ErrNaoEncontrado) {
				tx.Rollback()
				return nil, err
			}
		}
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrConsistencia)
	}

	if valorMudou {
		notificacao.EnviarWebhookDivergencia(v.ID, valorAnterior, v.Valor)
	}
	return v, nil
}

// Deletar remove a venda. Falha com erro de integridade enquanto existir
// comissão referenciando a venda.
func (s *Service) Deletar(id uint) error {
	if _, err := s.Repo.BuscarPorID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("venda não encontrada: %w", apperrors.ErrNaoEncontrado)
		}
		return err
	}

	temComissao, err := s.Comissoes.ExistePorVenda(id)
	if err != nil {
		return err
	}
	if temComissao {
		return fmt.Errorf("venda possui comissão associada: %w", apperrors.ErrIntegridadeReferencial)
	}
	return s.Repo.Deletar(id)
}

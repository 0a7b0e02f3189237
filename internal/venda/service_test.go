package venda

import (
	"testing"
	"time"

	"github.com/CorretorPro/api-corretor/internal/apperrors"
	"github.com/CorretorPro/api-corretor/internal/cliente"
	"github.com/CorretorPro/api-corretor/internal/comissao"
	"github.com/CorretorPro/api-corretor/internal/recebimento"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func abrirBancoTeste(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&cliente.Cliente{},
		&Venda{},
		&comissao.Comissao{},
		&recebimento.Recebimento{},
	))
	return db
}

func novoServicoTeste(t *testing.T) *Service {
	t.Helper()
	db := abrirBancoTeste(t)
	return NewService(db, comissao.NewService(db))
}

func criarClienteTeste(t *testing.T, db *gorm.DB, corretorID uint) *cliente.Cliente {
	t.Helper()
	cli := &cliente.Cliente{Nome: "Maria Souza", CorretorID: corretorID}
	require.NoError(t, db.Create(cli).Error)
	return cli
}

func TestCriarVendaGeraComissao(t *testing.T) {
	s := novoServicoTeste(t)
	cli := criarClienteTeste(t, s.DB, 1)

	v, c, err := s.Criar(1, CriarVendaDTO{
		ClienteID:  cli.ID,
		TipoImovel: "Apartamento",
		Endereco:   "Rua das Flores, 100",
		Valor:      500000,
		DataVenda:  "2025-06-01",
	})
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Equal(t, v.ID, c.VendaID)
	assert.Equal(t, uint(1), c.CorretorID)
	assert.Equal(t, "Maria Souza", c.Cliente)
	assert.Equal(t, "Apartamento - Rua das Flores, 100", c.Imovel)
	assert.Equal(t, 500000.0, c.ValorVendaInicial)
	assert.Equal(t, comissao.StatusPendente, c.Status)
	assert.Equal(t, comissao.ValorAtualizado, c.StatusValor)
	assert.Equal(t, v.DataVenda, c.DataVenda)
}

func TestCriarVendaValidacoes(t *testing.T) {
	s := novoServicoTeste(t)
	cli := criarClienteTeste(t, s.DB, 1)

	_, _, err := s.Criar(1, CriarVendaDTO{ClienteID: cli.ID, Valor: 0, DataVenda: "2025-06-01"})
	assert.ErrorIs(t, err, apperrors.ErrValidacao)

	_, _, err = s.Criar(1, CriarVendaDTO{ClienteID: cli.ID, Valor: 100000, DataVenda: "01/06/2025"})
	assert.ErrorIs(t, err, apperrors.ErrValidacao)

	_, _, err = s.Criar(1, CriarVendaDTO{ClienteID: 999, Valor: 100000, DataVenda: "2025-06-01"})
	assert.ErrorIs(t, err, apperrors.ErrNaoEncontrado)

	// cliente de outro corretor
	_, _, err = s.Criar(2, CriarVendaDTO{ClienteID: cli.ID, Valor: 100000, DataVenda: "2025-06-01"})
	assert.ErrorIs(t, err, apperrors.ErrValidacao)
}

func TestAtualizarValorMarcaComissaoDesatualizada(t *testing.T) {
	s := novoServicoTeste(t)
	cli := criarClienteTeste(t, s.DB, 1)

	v, c, err := s.Criar(1, CriarVendaDTO{
		ClienteID: cli.ID,
		Valor:     500000,
		DataVenda: "2025-06-01",
	})
	require.NoError(t, err)

	novoValor := 520000.0
	v, err = s.Atualizar(v.ID, AtualizarVendaDTO{Valor: &novoValor})
	require.NoError(t, err)
	assert.Equal(t, 520000.0, v.Valor)

	salva, err := s.Comissoes.Repo.BuscarPorID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, comissao.ValorDesatualizado, salva.StatusValor)
	require.NotNil(t, salva.ValorVendaOriginal)
	assert.Equal(t, 500000.0, *salva.ValorVendaOriginal)
	assert.Equal(t, 520000.0, *salva.ValorVendaAtual)
	assert.Equal(t, 20000.0, *salva.DiferencaValor)
}

func TestAtualizarSemMudarValorNaoAbreDivergencia(t *testing.T) {
	s := novoServicoTeste(t)
	cli := criarClienteTeste(t, s.DB, 1)

	v, c, err := s.Criar(1, CriarVendaDTO{
		ClienteID: cli.ID,
		Valor:     500000,
		DataVenda: "2025-06-01",
	})
	require.NoError(t, err)

	obs := "escritura agendada"
	_, err = s.Atualizar(v.ID, AtualizarVendaDTO{Observacoes: &obs})
	require.NoError(t, err)

	salva, err := s.Comissoes.Repo.BuscarPorID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, comissao.ValorAtualizado, salva.StatusValor)
	assert.Nil(t, salva.ValorVendaOriginal)
}

func TestAtualizarComEspelhamentoDeComissao(t *testing.T) {
	s := novoServicoTeste(t)
	cli := criarClienteTeste(t, s.DB, 1)

	v, c, err := s.Criar(1, CriarVendaDTO{
		ClienteID: cli.ID,
		Valor:     500000,
		DataVenda: "2025-06-01",
	})
	require.NoError(t, err)

	corretor := 15000.0
	imobiliaria := 25000.0
	_, err = s.Atualizar(v.ID, AtualizarVendaDTO{
		ComissaoCorretor:    &corretor,
		ComissaoImobiliaria: &imobiliaria,
		EspelharComissao:    true,
	})
	require.NoError(t, err)

	salva, err := s.Comissoes.Repo.BuscarPorID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, 15000.0, salva.ComissaoCorretor)
	assert.Equal(t, 25000.0, salva.ComissaoImobiliaria)
	// espelhar valores não mexe no eixo de divergência
	assert.Equal(t, comissao.ValorAtualizado, salva.StatusValor)
}

func TestDeletarVendaBloqueadaPorComissao(t *testing.T) {
	s := novoServicoTeste(t)
	cli := criarClienteTeste(t, s.DB, 1)

	v, c, err := s.Criar(1, CriarVendaDTO{
		ClienteID: cli.ID,
		Valor:     500000,
		DataVenda: "2025-06-01",
	})
	require.NoError(t, err)

	err = s.Deletar(v.ID)
	assert.ErrorIs(t, err, apperrors.ErrIntegridadeReferencial)

	// removida a comissão, a exclusão passa a ser permitida
	require.NoError(t, s.Comissoes.Deletar(c.ID))
	require.NoError(t, s.Deletar(v.ID))

	_, err = s.Repo.BuscarPorID(v.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeletarVendaInexistente(t *testing.T) {
	s := novoServicoTeste(t)

	err := s.Deletar(999)
	assert.ErrorIs(t, err, apperrors.ErrNaoEncontrado)
}

func TestAtualizarVendaSemComissaoNaoFalha(t *testing.T) {
	s := novoServicoTeste(t)
	cli := criarClienteTeste(t, s.DB, 1)

	v, c, err := s.Criar(1, CriarVendaDTO{
		ClienteID: cli.ID,
		Valor:     500000,
		DataVenda: "2025-06-01",
	})
	require.NoError(t, err)
	require.NoError(t, s.Comissoes.Deletar(c.ID))

	novoValor := 450000.0
	v, err = s.Atualizar(v.ID, AtualizarVendaDTO{Valor: &novoValor})
	require.NoError(t, err)
	assert.Equal(t, 450000.0, v.Valor)
}

func TestParseDataVenda(t *testing.T) {
	data, err := parseDataVenda("2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), data)

	_, err = parseDataVenda("")
	assert.ErrorIs(t, err, apperrors.ErrValidacao)
}

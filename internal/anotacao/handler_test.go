package anotacao

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CorretorPro/api-corretor/internal/auth"
	"github.com/CorretorPro/api-corretor/internal/cliente"
	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
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

	require.NoError(t, cliente.Migrate(db))
	require.NoError(t, Migrate(db))
	return db
}

// monta o router com os mesmos padrões de rota do servidor
func novoRouterTeste(t *testing.T) (*mux.Router, *gorm.DB) {
	t.Helper()
	db := abrirBancoTeste(t)
	h := NewHandler(db)

	r := mux.NewRouter()
	r.HandleFunc("/clientes/{clienteId}/anotacoes", h.Criar).Methods("POST")
	r.HandleFunc("/clientes/{clienteId}/anotacoes", h.ListarPorCliente).Methods("GET")
	r.HandleFunc("/anotacoes/{id}", h.Atualizar).Methods("PUT")
	r.HandleFunc("/anotacoes/{id}", h.Remover).Methods("DELETE")
	return r, db
}

func criarClienteTeste(t *testing.T, db *gorm.DB, corretorID uint) *cliente.Cliente {
	t.Helper()
	cli := &cliente.Cliente{Nome: "Maria Souza", CorretorID: corretorID}
	require.NoError(t, db.Create(cli).Error)
	return cli
}

func requisicaoAutenticada(method, url string, body []byte, corretorID uint) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), auth.CtxUserID, corretorID)
	ctx = context.WithValue(ctx, auth.CtxIsAdmin, false)
	return req.WithContext(ctx)
}

func TestCriarEListarAnotacoesPorCliente(t *testing.T) {
	r, db := novoRouterTeste(t)
	cli := criarClienteTeste(t, db, 1)

	corpo := []byte(`{"texto":"cliente quer visitar o imóvel no sábado"}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, requisicaoAutenticada("POST", "/clientes/1/anotacoes", corpo, 1))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var criada Anotacao
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &criada))
	assert.Equal(t, "cliente quer visitar o imóvel no sábado", criada.Texto)
	assert.Equal(t, cli.ID, criada.ClienteID)
	assert.Equal(t, uint(1), criada.CorretorID)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, requisicaoAutenticada("GET", "/clientes/1/anotacoes", nil, 1))
	require.Equal(t, http.StatusOK, rec.Code)

	var lista []Anotacao
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lista))
	require.Len(t, lista, 1)
	assert.Equal(t, criada.ID, lista[0].ID)
}

func TestCriarAnotacaoClienteDeOutroCorretor(t *testing.T) {
	r, db := novoRouterTeste(t)
	criarClienteTeste(t, db, 1)

	corpo := []byte(`{"texto":"não deveria entrar"}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, requisicaoAutenticada("POST", "/clientes/1/anotacoes", corpo, 2))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, requisicaoAutenticada("GET", "/clientes/1/anotacoes", nil, 2))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCriarAnotacaoValidacoes(t *testing.T) {
	r, db := novoRouterTeste(t)
	criarClienteTeste(t, db, 1)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, requisicaoAutenticada("POST", "/clientes/1/anotacoes", []byte(`{"texto":""}`), 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, requisicaoAutenticada("POST", "/clientes/999/anotacoes", []byte(`{"texto":"x"}`), 1))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAtualizarERemoverAnotacao(t *testing.T) {
	r, db := novoRouterTeste(t)
	criarClienteTeste(t, db, 1)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, requisicaoAutenticada("POST", "/clientes/1/anotacoes", []byte(`{"texto":"primeira versão"}`), 1))
	require.Equal(t, http.StatusCreated, rec.Code)

	var criada Anotacao
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &criada))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, requisicaoAutenticada("PUT", "/anotacoes/1", []byte(`{"texto":"versão corrigida"}`), 1))
	require.Equal(t, http.StatusOK, rec.Code)

	var atualizada Anotacao
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &atualizada))
	assert.Equal(t, "versão corrigida", atualizada.Texto)

	// outro corretor não remove
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, requisicaoAutenticada("DELETE", "/anotacoes/1", nil, 2))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, requisicaoAutenticada("DELETE", "/anotacoes/1", nil, 1))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

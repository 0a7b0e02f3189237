package comissao

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CorretorPro/api-corretor/internal/auth"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func novoRouterTeste(t *testing.T) (*mux.Router, *Service) {
	t.Helper()
	s := NewService(abrirBancoTeste(t))
	h := NewHandler(s)

	r := mux.NewRouter()
	r.HandleFunc("/comissoes", h.Listar).Methods("GET")
	return r, s
}

func requisicaoAutenticada(method, url string, corretorID uint) *http.Request {
	req := httptest.NewRequest(method, url, nil)
	ctx := context.WithValue(req.Context(), auth.CtxUserID, corretorID)
	ctx = context.WithValue(ctx, auth.CtxIsAdmin, false)
	return req.WithContext(ctx)
}

func criarComissaoComData(t *testing.T, db *gorm.DB, vendaID uint, dataVenda time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&Comissao{
		VendaID:     vendaID,
		CorretorID:  1,
		DataVenda:   dataVenda,
		Status:      StatusPendente,
		StatusValor: ValorAtualizado,
	}).Error)
}

func listarComissoes(t *testing.T, r *mux.Router, url string) (int, []Comissao) {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, requisicaoAutenticada("GET", url, 1))
	var list []Comissao
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	}
	return rec.Code, list
}

func TestListarComissoesPorPeriodo(t *testing.T) {
	r, s := novoRouterTeste(t)
	criarComissaoComData(t, s.DB, 1, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC))
	criarComissaoComData(t, s.DB, 2, time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC))
	criarComissaoComData(t, s.DB, 3, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))

	// mês específico
	code, list := listarComissoes(t, r, "/comissoes?mes=6&ano=2025")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, list, 1)
	assert.Equal(t, uint(1), list[0].VendaID)

	// só o ano: cobre o ano inteiro
	code, list = listarComissoes(t, r, "/comissoes?ano=2025")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, list, 2)

	// sem filtro: tudo do corretor
	code, list = listarComissoes(t, r, "/comissoes")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, list, 3)
}

func TestListarComissoesPeriodoInvalido(t *testing.T) {
	r, _ := novoRouterTeste(t)

	code, _ := listarComissoes(t, r, "/comissoes?mes=6")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = listarComissoes(t, r, "/comissoes?mes=13&ano=2025")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = listarComissoes(t, r, "/comissoes?status=Pago")
	assert.Equal(t, http.StatusBadRequest, code)
}

package meta

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/CorretorPro/api-corretor/internal/auth"
	"gorm.io/gorm"
)

// Handler gerencia as rotas de metas mensais e anuais.
type Handler struct {
	Repo *Repository
}

// NewHandler cria um novo Handler.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db)}
}

type metaMensalRequest struct {
	Mes   int     `json:"mes"`
	Ano   int     `json:"ano"`
	Valor float64 `json:"valor"`
}

type metaAnualRequest struct {
	Ano   int     `json:"ano"`
	Valor float64 `json:"valor"`
}

// DefinirMensal trata PUT /metas/mensal
func (h *Handler) DefinirMensal(w http.ResponseWriter, r *http.Request) {
	corretorID, _ := r.Context().Value(auth.CtxUserID).(uint)

	var req metaMensalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Mes < 1 || req.Mes > 12 || req.Ano < 2000 || req.Valor < 0 {
		http.Error(w, "mes, ano ou valor inválido", http.StatusBadRequest)
		return
	}

	m := MetaMensal{CorretorID: corretorID, Mes: req.Mes, Ano: req.Ano, Valor: req.Valor}
	if err := h.Repo.UpsertMensal(&m); err != nil {
		http.Error(w, "Erro ao salvar meta mensal", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m)
}

// BuscarMensal trata GET /metas/mensal?mes=6&ano=2025
func (h *Handler) BuscarMensal(w http.ResponseWriter, r *http.Request) {
	corretorID, _ := r.Context().Value(auth.CtxUserID).(uint)

	agora := time.Now()
	mes := int(agora.Month())
	ano := agora.Year()
	if v := r.URL.Query().Get("mes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			http.Error(w, "parâmetro 'mes' inválido", http.StatusBadRequest)
			return
		}
		mes = n
	}
	if v := r.URL.Query().Get("ano"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "parâmetro 'ano' inválido", http.StatusBadRequest)
			return
		}
		ano = n
	}

	m, err := h.Repo.BuscarMensal(corretorID, mes, ano)
	if err != nil {
		http.Error(w, "Erro ao buscar meta mensal", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m)
}

// DefinirAnual trata PUT /metas/anual
func (h *Handler) DefinirAnual(w http.ResponseWriter, r *http.Request) {
	corretorID, _ := r.Context().Value(auth.CtxUserID).(uint)

	var req metaAnualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Ano < 2000 || req.Valor < 0 {
		http.Error(w, "ano ou valor inválido", http.StatusBadRequest)
		return
	}

	m := MetaAnual{CorretorID: corretorID, Ano: req.Ano, Valor: req.Valor}
	if err := h.Repo.UpsertAnual(&m); err != nil {
		http.Error(w, "Erro ao salvar meta anual", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m)
}

// BuscarAnual trata GET /metas/anual?ano=2025
func (h *Handler) BuscarAnual(w http.ResponseWriter, r *http.Request) {
	corretorID, _ := r.Context().Value(auth.CtxUserID).(uint)

	ano := time.Now().Year()
	if v := r.URL.Query().Get("ano"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "parâmetro 'ano' inválido", http.StatusBadRequest)
			return
		}
		ano = n
	}

	m, err := h.Repo.BuscarAnual(corretorID, ano)
	if err != nil {
		http.Error(w, "Erro ao buscar meta anual", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m)
}

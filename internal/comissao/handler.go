package comissao

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/CorretorPro/api-corretor/internal/apperrors"
	"github.com/CorretorPro/api-corretor/internal/auth"
	"github.com/gorilla/mux"
)

// Handler gerencia as rotas de comissões e de seus recebimentos.
type Handler struct {
	Service *Service
}

// NewHandler cria um novo Handler.
func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

type justificarRequest struct {
	Justificativa string `json:"justificativa"`
}

type definirStatusRequest struct {
	Status        string     `json:"status"`
	DataPagamento *time.Time `json:"dataPagamento"`
}

type registrarRecebimentoRequest struct {
	Valor             float64 `json:"valor"`
	Data              string  `json:"data"` // "2006-01-02"
	ChaveIdempotencia string  `json:"chaveIdempotencia"`
}

// buscarDoCorretor carrega a comissão e garante que pertence ao corretor logado.
func (h *Handler) buscarDoCorretor(w http.ResponseWriter, r *http.Request) *Comissao {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de comissão inválido", http.StatusBadRequest)
		return nil
	}
	c, err := h.Service.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Comissão não encontrada", http.StatusNotFound)
		return nil
	}
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	if !isAdmin && c.CorretorID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return nil
	}
	return c
}

func respondeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Listar trata GET /comissoes?status=Pendente, GET /comissoes?ano=2025 e
// GET /comissoes?mes=6&ano=2025
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	corretorID, _ := r.Context().Value(auth.CtxUserID).(uint)
	status := r.URL.Query().Get("status")
	if status != "" && !StatusValido(status) {
		http.Error(w, "status desconhecido", http.StatusBadRequest)
		return
	}

	var list []Comissao
	var err error
	if r.URL.Query().Get("mes") != "" || r.URL.Query().Get("ano") != "" {
		ano, errAno := strconv.Atoi(r.URL.Query().Get("ano"))
		if errAno != nil {
			http.Error(w, "ano inválido", http.StatusBadRequest)
			return
		}
		inicio := time.Date(ano, time.January, 1, 0, 0, 0, 0, time.UTC)
		fim := inicio.AddDate(1, 0, 0)
		if v := r.URL.Query().Get("mes"); v != "" {
			mes, errMes := strconv.Atoi(v)
			if errMes != nil || mes < 1 || mes > 12 {
				http.Error(w, "mês inválido", http.StatusBadRequest)
				return
			}
			inicio = time.Date(ano, time.Month(mes), 1, 0, 0, 0, 0, time.UTC)
			fim = inicio.AddDate(0, 1, 0)
		}
		list, err = h.Service.Repo.ListarPorCorretorEPeriodo(corretorID, inicio, fim)
	} else {
		list, err = h.Service.Repo.ListarPorCorretor(corretorID, status)
	}
	if err != nil {
		http.Error(w, "Erro ao listar comissões", http.StatusInternalServerError)
		return
	}
	respondeJSON(w, http.StatusOK, list)
}

// BuscarPorID trata GET /comissoes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	c := h.buscarDoCorretor(w, r)
	if c == nil {
		return
	}
	respondeJSON(w, http.StatusOK, c)
}

// Justificar trata POST /comissoes/{id}/justificativa
func (h *Handler) Justificar(w http.ResponseWriter, r *http.Request) {
	c := h.buscarDoCorretor(w, r)
	if c == nil {
		return
	}

	var req justificarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	atualizada, err := h.Service.Justificar(c.ID, req.Justificativa)
	if err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		return
	}
	respondeJSON(w, http.StatusOK, atualizada)
}

// DefinirStatus trata PATCH /comissoes/{id}/status
func (h *Handler) DefinirStatus(w http.ResponseWriter, r *http.Request) {
	c := h.buscarDoCorretor(w, r)
	if c == nil {
		return
	}

	var req definirStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		http.Error(w, "O campo 'status' é obrigatório", http.StatusBadRequest)
		return
	}

	atualizada, err := h.Service.DefinirStatus(c.ID, req.Status, req.DataPagamento)
	if err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		return
	}
	respondeJSON(w, http.StatusOK, atualizada)
}

// AtualizarValores trata PATCH /comissoes/{id}/valores
func (h *Handler) AtualizarValores(w http.ResponseWriter, r *http.Request) {
	c := h.buscarDoCorretor(w, r)
	if c == nil {
		return
	}

	var patch ValoresComissao
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	atualizada, err := h.Service.AtualizarValores(c.ID, patch)
	if err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		return
	}
	respondeJSON(w, http.StatusOK, atualizada)
}

// RegistrarRecebimento trata POST /comissoes/{id}/recebimentos
func (h *Handler) RegistrarRecebimento(w http.ResponseWriter, r *http.Request) {
	c := h.buscarDoCorretor(w, r)
	if c == nil {
		return
	}

	var req registrarRecebimentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	data := time.Now()
	if req.Data != "" {
		t, err := time.Parse("2006-01-02", req.Data)
		if err != nil {
			http.Error(w, "data inválida (use AAAA-MM-DD)", http.StatusBadRequest)
			return
		}
		data = t
	}

	atualizada, rec, err := h.Service.RegistrarRecebimento(c.ID, req.Valor, data, req.ChaveIdempotencia)
	if err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		return
	}
	respondeJSON(w, http.StatusCreated, map[string]interface{}{
		"comissao":    atualizada,
		"recebimento": rec,
	})
}

// ListarRecebimentos trata GET /comissoes/{id}/recebimentos
func (h *Handler) ListarRecebimentos(w http.ResponseWriter, r *http.Request) {
	c := h.buscarDoCorretor(w, r)
	if c == nil {
		return
	}

	recs, err := h.Service.ListarRecebimentos(c.ID)
	if err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		return
	}
	respondeJSON(w, http.StatusOK, recs)
}

// Deletar trata DELETE /comissoes/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	c := h.buscarDoCorretor(w, r)
	if c == nil {
		return
	}

	if err := h.Service.Deletar(c.ID); err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package venda

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/CorretorPro/api-corretor/internal/apperrors"
	"github.com/CorretorPro/api-corretor/internal/auth"
	"github.com/gorilla/mux"
)

// Handler gerencia as rotas de vendas.
type Handler struct {
	Service *Service
}

// NewHandler cria um novo Handler.
func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// buscarDoCorretor carrega a venda e garante que pertence ao corretor logado.
func (h *Handler) buscarDoCorretor(w http.ResponseWriter, r *http.Request) *Venda {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de venda inválido", http.StatusBadRequest)
		return nil
	}
	v, err := h.Service.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Venda não encontrada", http.StatusNotFound)
		return nil
	}
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	if !isAdmin && v.CorretorID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return nil
	}
	return v
}

// Criar trata POST /vendas
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	userVal := r.Context().Value(auth.CtxUserID)
	if userVal == nil {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	corretorID := userVal.(uint)

	var dto CriarVendaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	v, c, err := h.Service.Criar(corretorID, dto)
	if err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"venda":    v,
		"comissao": c,
	})
}

// Listar trata GET /vendas
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	corretorID, _ := r.Context().Value(auth.CtxUserID).(uint)

	list, err := h.Service.Repo.ListarPorCorretor(corretorID)
	if err != nil {
		http.Error(w, "Erro ao listar vendas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// ListarPorCliente trata GET /clientes/{clienteId}/vendas
func (h *Handler) ListarPorCliente(w http.ResponseWriter, r *http.Request) {
	clienteID, err := strconv.Atoi(mux.Vars(r)["clienteId"])
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return
	}

	cli, err := h.Service.Clientes.BuscarPorID(h.Service.DB, uint(clienteID))
	if err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	if !isAdmin && cli.CorretorID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	list, err := h.Service.Repo.ListarPorCliente(cli.ID)
	if err != nil {
		http.Error(w, "Erro ao listar vendas do cliente", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// BuscarPorID trata GET /vendas/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	v := h.buscarDoCorretor(w, r)
	if v == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// Atualizar trata PUT /vendas/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	v := h.buscarDoCorretor(w, r)
	if v == nil {
		return
	}

	var dto AtualizarVendaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	atualizada, err := h.Service.Atualizar(v.ID, dto)
	if err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizada)
}

// Deletar trata DELETE /vendas/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	v := h.buscarDoCorretor(w, r)
	if v == nil {
		return
	}

	if err := h.Service.Deletar(v.ID); err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package anotacao

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/CorretorPro/api-corretor/internal/auth"
	"github.com/CorretorPro/api-corretor/internal/cliente"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula o DB e o Repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Clientes   cliente.Repository
}

// NewHandler cria um novo handler de anotações
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Clientes:   cliente.NewRepository(),
	}
}

// CriarAnotacaoRequest define o corpo da requisição para criar uma anotação.
type CriarAnotacaoRequest struct {
	Texto string `json:"texto"`
}

// buscarClienteDoCorretor garante que o cliente existe e pertence ao corretor logado.
func (h *Handler) buscarClienteDoCorretor(r *http.Request, clienteID uint) (*cliente.Cliente, int) {
	c, err := h.Clientes.BuscarPorID(h.DB, clienteID)
	if err != nil {
		return nil, http.StatusNotFound
	}
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	if !isAdmin && c.CorretorID != userID {
		return nil, http.StatusForbidden
	}
	return c, 0
}

// Criar trata POST /clientes/{clienteId}/anotacoes
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	clienteID, err := strconv.Atoi(mux.Vars(r)["clienteId"])
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return
	}

	var req CriarAnotacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Texto == "" {
		http.Error(w, "O campo 'texto' é obrigatório", http.StatusBadRequest)
		return
	}

	if _, status := h.buscarClienteDoCorretor(r, uint(clienteID)); status != 0 {
		http.Error(w, "Cliente não encontrado ou acesso negado", status)
		return
	}
	corretorID, _ := r.Context().Value(auth.CtxUserID).(uint)

	a := Anotacao{
		Texto:      req.Texto,
		ClienteID:  uint(clienteID),
		CorretorID: corretorID,
	}
	if err := h.Repository.Criar(h.DB, &a); err != nil {
		http.Error(w, "Erro ao salvar anotação", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(a)
}

// ListarPorCliente trata GET /clientes/{clienteId}/anotacoes
func (h *Handler) ListarPorCliente(w http.ResponseWriter, r *http.Request) {
	clienteID, err := strconv.Atoi(mux.Vars(r)["clienteId"])
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return
	}

	if _, status := h.buscarClienteDoCorretor(r, uint(clienteID)); status != 0 {
		http.Error(w, "Cliente não encontrado ou acesso negado", status)
		return
	}

	anotacoes, err := h.Repository.ListarPorCliente(h.DB, uint(clienteID))
	if err != nil {
		http.Error(w, "Erro ao listar anotações", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(anotacoes)
}

// Atualizar trata PUT /anotacoes/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	a, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Anotação não encontrada", http.StatusNotFound)
		return
	}
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	if !isAdmin && a.CorretorID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var req CriarAnotacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Texto == "" {
		http.Error(w, "O campo 'texto' é obrigatório", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Atualizar(h.DB, uint(id), req.Texto); err != nil {
		http.Error(w, "Erro ao atualizar anotação", http.StatusInternalServerError)
		return
	}
	a.Texto = req.Texto

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a)
}

// Remover trata DELETE /anotacoes/{id}
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	a, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Anotação não encontrada", http.StatusNotFound)
		return
	}
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	if !isAdmin && a.CorretorID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	if err := h.Repository.Remover(h.DB, uint(id)); err != nil {
		http.Error(w, "Erro ao remover anotação", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package cliente

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/CorretorPro/api-corretor/internal/auth"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

// NewHandler cria um novo handler de clientes
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

type clienteRequest struct {
	Nome           string `json:"nome"`
	Email          string `json:"email"`
	Telefone       string `json:"telefone"`
	CPF            string `json:"cpf"`
	DataNascimento string `json:"dataNascimento"` // "2006-01-02"
	Endereco       string `json:"endereco"`
	Cidade         string `json:"cidade"`
	UF             string `json:"uf"`
	CEP            string `json:"cep"`
	Observacoes    string `json:"observacoes"`
}

func parseDataNascimento(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Criar trata POST /clientes
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	userVal := r.Context().Value(auth.CtxUserID)
	if userVal == nil {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	corretorID := userVal.(uint)

	var req clienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Nome == "" {
		http.Error(w, "O campo 'nome' é obrigatório", http.StatusBadRequest)
		return
	}
	nascimento, ok := parseDataNascimento(req.DataNascimento)
	if !ok {
		http.Error(w, "dataNascimento inválida (use AAAA-MM-DD)", http.StatusBadRequest)
		return
	}

	c := Cliente{
		Nome:           req.Nome,
		Email:          req.Email,
		Telefone:       req.Telefone,
		CPF:            req.CPF,
		DataNascimento: nascimento,
		Endereco:       req.Endereco,
		Cidade:         req.Cidade,
		UF:             req.UF,
		CEP:            req.CEP,
		Observacoes:    req.Observacoes,
		CorretorID:     corretorID,
	}
	if err := h.Repository.Criar(h.DB, &c); err != nil {
		http.Error(w, "Erro ao salvar cliente", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// Listar trata GET /clientes
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	corretorID, _ := r.Context().Value(auth.CtxUserID).(uint)

	list, err := h.Repository.ListarPorCorretor(h.DB, corretorID)
	if err != nil {
		http.Error(w, "Erro ao listar clientes", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Aniversariantes trata GET /clientes/aniversariantes?dias=30
func (h *Handler) Aniversariantes(w http.ResponseWriter, r *http.Request) {
	corretorID, _ := r.Context().Value(auth.CtxUserID).(uint)

	dias := 30
	if v := r.URL.Query().Get("dias"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "parâmetro 'dias' inválido", http.StatusBadRequest)
			return
		}
		dias = n
	}

	clientes, err := h.Repository.ListarPorCorretor(h.DB, corretorID)
	if err != nil {
		http.Error(w, "Erro ao listar clientes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ProximosAniversariantes(clientes, time.Now(), dias))
}

// BuscarPorID trata GET /clientes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}

	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	if !isAdmin && c.CorretorID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Atualizar trata PUT /clientes/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	existente, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}

	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	if !isAdmin && existente.CorretorID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var req clienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	nascimento, ok := parseDataNascimento(req.DataNascimento)
	if !ok {
		http.Error(w, "dataNascimento inválida (use AAAA-MM-DD)", http.StatusBadRequest)
		return
	}

	existente.Nome = req.Nome
	existente.Email = req.Email
	existente.Telefone = req.Telefone
	existente.CPF = req.CPF
	existente.DataNascimento = nascimento
	existente.Endereco = req.Endereco
	existente.Cidade = req.Cidade
	existente.UF = req.UF
	existente.CEP = req.CEP
	existente.Observacoes = req.Observacoes

	if err := h.Repository.Atualizar(h.DB, existente); err != nil {
		http.Error(w, "Erro ao atualizar cliente", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(existente)
}

// Deletar trata DELETE /clientes/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	existente, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}

	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	if !isAdmin && existente.CorretorID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Cliente não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao excluir cliente", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package relatorio

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/CorretorPro/api-corretor/internal/apperrors"
	"github.com/CorretorPro/api-corretor/internal/auth"
	"gorm.io/gorm"
)

// Handler gerencia as rotas de relatórios do corretor autenticado.
type Handler struct {
	Service *Service
}

// NewHandler cria um novo Handler.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Service: NewService(db)}
}

type resumoResponse struct {
	Mes            int     `json:"mes,omitempty"`
	Ano            int     `json:"ano"`
	TotalRecebido  float64 `json:"totalRecebido"`
	TotalPendente  float64 `json:"totalPendente"`
	Meta           float64 `json:"meta"`
	PercentualMeta float64 `json:"percentualMeta"`
}

// Resumo trata GET /relatorios/resumo?mes=6&ano=2025. Sem mes, o resumo
// cobre o ano inteiro e usa a meta anual; com mes, a meta mensal.
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	corretorID, _ := r.Context().Value(auth.CtxUserID).(uint)

	agora := time.Now()
	p := Periodo{Mes: int(agora.Month()), Ano: agora.Year()}
	if v := r.URL.Query().Get("ano"); v != "" {
		ano, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "ano inválido", http.StatusBadRequest)
			return
		}
		p.Ano = ano
	}
	if v := r.URL.Query().Get("mes"); v != "" {
		mes, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "mês inválido", http.StatusBadRequest)
			return
		}
		p.Mes = mes
	}
	if err := p.Validar(); err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		return
	}

	recebido, err := h.Service.TotalRecebido(corretorID, p)
	if err != nil {
		http.Error(w, "Erro ao calcular total recebido", http.StatusInternalServerError)
		return
	}
	pendente, err := h.Service.TotalPendente(corretorID, p)
	if err != nil {
		http.Error(w, "Erro ao calcular total pendente", http.StatusInternalServerError)
		return
	}

	var metaValor float64
	if p.Mes == 0 {
		m, err := h.Service.Metas.BuscarAnual(corretorID, p.Ano)
		if err != nil {
			http.Error(w, "Erro ao buscar meta", http.StatusInternalServerError)
			return
		}
		metaValor = m.Valor
	} else {
		m, err := h.Service.Metas.BuscarMensal(corretorID, p.Mes, p.Ano)
		if err != nil {
			http.Error(w, "Erro ao buscar meta", http.StatusInternalServerError)
			return
		}
		metaValor = m.Valor
	}

	resp := resumoResponse{
		Mes:            p.Mes,
		Ano:            p.Ano,
		TotalRecebido:  recebido,
		TotalPendente:  pendente,
		Meta:           metaValor,
		PercentualMeta: PercentualMeta(recebido, metaValor),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Anual trata GET /relatorios/anual?ano=2025
func (h *Handler) Anual(w http.ResponseWriter, r *http.Request) {
	corretorID, _ := r.Context().Value(auth.CtxUserID).(uint)

	ano := time.Now().Year()
	if v := r.URL.Query().Get("ano"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "ano inválido", http.StatusBadRequest)
			return
		}
		ano = parsed
	}

	resumo, err := h.Service.ResumoAnual(corretorID, ano)
	if err != nil {
		http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resumo)
}

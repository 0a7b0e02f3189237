// internal/venda/dto.go
package venda

type CriarVendaDTO struct {
	ClienteID           uint    `json:"clienteId"`
	TipoImovel          string  `json:"tipoImovel"`
	Endereco            string  `json:"endereco"`
	Valor               float64 `json:"valor"`
	DataVenda           string  `json:"dataVenda"` // "2006-01-02"
	ComissaoCorretor    float64 `json:"comissaoCorretor"`
	ComissaoImobiliaria float64 `json:"comissaoImobiliaria"`
	Observacoes         string  `json:"observacoes"`
}

// AtualizarVendaDTO é um patch: só os campos presentes são alterados.
// EspelharComissao pede a cópia explícita dos valores de comissão da venda
// para a comissão derivada.
type AtualizarVendaDTO struct {
	TipoImovel          *string  `json:"tipoImovel"`
	Endereco            *string  `json:"endereco"`
	Valor               *float64 `json:"valor"`
	DataVenda           *string  `json:"dataVenda"`
	ComissaoCorretor    *float64 `json:"comissaoCorretor"`
	ComissaoImobiliaria *float64 `json:"comissaoImobiliaria"`
	Observacoes         *string  `json:"observacoes"`
	EspelharComissao    bool     `json:"espelharComissao"`
}

package cliente

import (
	"sort"
	"time"
)

// Aniversariante é uma projeção somente leitura usada pelos lembretes de
// aniversário. O Cliente de origem nunca é alterado.
type Aniversariante struct {
	ClienteID          uint      `json:"clienteId"`
	Nome               string    `json:"nome"`
	Telefone           string    `json:"telefone"`
	DataNascimento     time.Time `json:"dataNascimento"`
	ProximoAniversario time.Time `json:"proximoAniversario"`
	DiasRestantes      int       `json:"diasRestantes"`
	IdadeQueCompleta   int       `json:"idadeQueCompleta"`
}

// ProximosAniversariantes projeta os clientes cujo aniversário cai nos
// próximos `dias` dias contados a partir de `ref`, ordenados do mais próximo
// para o mais distante. Clientes sem data de nascimento são ignorados.
// Nascidos em 29/02 são normalizados para 01/03 em anos não bissextos.
func ProximosAniversariantes(clientes []Cliente, ref time.Time, dias int) []Aniversariante {
	hoje := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)

	out := []Aniversariante{}
	for _, c := range clientes {
		if c.DataNascimento.IsZero() {
			continue
		}
		nasc := c.DataNascimento
		prox := time.Date(hoje.Year(), nasc.Month(), nasc.Day(), 0, 0, 0, 0, time.UTC)
		if prox.Before(hoje) {
			prox = time.Date(hoje.Year()+1, nasc.Month(), nasc.Day(), 0, 0, 0, 0, time.UTC)
		}
		restantes := int(prox.Sub(hoje).Hours() / 24)
		if restantes > dias {
			continue
		}
		out = append(out, Aniversariante{
			ClienteID:          c.ID,
			Nome:               c.Nome,
			Telefone:           c.Telefone,
			DataNascimento:     nasc,
			ProximoAniversario: prox,
			DiasRestantes:      restantes,
			IdadeQueCompleta:   prox.Year() - nasc.Year(),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DiasRestantes != out[j].DiasRestantes {
			return out[i].DiasRestantes < out[j].DiasRestantes
		}
		return out[i].Nome < out[j].Nome
	})
	return out
}

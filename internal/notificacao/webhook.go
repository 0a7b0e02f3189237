package notificacao

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
)

// EnviarWebhookDivergencia avisa um webhook externo que o valor de uma venda
// foi editado depois da comissão existir. Falhas são apenas logadas; a
// operação que detectou a divergência nunca depende do aviso.
func EnviarWebhookDivergencia(vendaID uint, valorAnterior, valorNovo float64) {
	url := os.Getenv("WEBHOOK_URL")
	if url == "" {
		return
	}

	payload := map[string]interface{}{
		"mensagem":      "Alerta: valor da venda alterado após criação da comissão",
		"vendaId":       vendaID,
		"valorAnterior": valorAnterior,
		"valorNovo":     valorNovo,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("Erro ao enviar webhook de divergência: %v", err)
		return
	}
	defer resp.Body.Close()
}

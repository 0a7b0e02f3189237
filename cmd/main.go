package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/CorretorPro/api-corretor/internal/anotacao"
	"github.com/CorretorPro/api-corretor/internal/auth"
	"github.com/CorretorPro/api-corretor/internal/cliente"
	"github.com/CorretorPro/api-corretor/internal/comissao"
	"github.com/CorretorPro/api-corretor/internal/corretor"
	"github.com/CorretorPro/api-corretor/internal/meta"
	"github.com/CorretorPro/api-corretor/internal/recebimento"
	"github.com/CorretorPro/api-corretor/internal/relatorio"
	"github.com/CorretorPro/api-corretor/internal/utils/db"
	"github.com/CorretorPro/api-corretor/internal/venda"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis do ambiente")
	}

	conn, err := db.ConectarBanco()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	for _, migrar := range []func(*gorm.DB) error{
		corretor.Migrate,
		cliente.Migrate,
		anotacao.Migrate,
		venda.Migrate,
		comissao.Migrate,
		recebimento.Migrate,
		meta.Migrate,
	} {
		if err := migrar(conn); err != nil {
			log.Fatal("Erro no AutoMigrate:", err)
		}
	}

	// Handlers
	corretorHandler := corretor.NewHandler(conn)
	clienteHandler := cliente.NewHandler(conn)
	anotacaoHandler := anotacao.NewHandler(conn)
	comissaoService := comissao.NewService(conn)
	comissaoHandler := comissao.NewHandler(comissaoService)
	vendaHandler := venda.NewHandler(venda.NewService(conn, comissaoService))
	metaHandler := meta.NewHandler(conn)
	relatorioHandler := relatorio.NewHandler(conn)

	// Router
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/login", corretorHandler.Login).Methods("POST")
	r.HandleFunc("/corretores", corretorHandler.CriarCorretor).Methods("POST")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	// Rotas de corretores
	api.Handle("/corretores", auth.RequireAdmin(http.HandlerFunc(corretorHandler.ListarCorretores))).Methods("GET")
	api.HandleFunc("/corretores/{id}", corretorHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/corretores/{id}", corretorHandler.AtualizarCorretor).Methods("PUT")
	api.Handle("/corretores/{id}/resetar-senha", auth.RequireAdmin(http.HandlerFunc(corretorHandler.ResetarSenha))).Methods("POST")
	api.Handle("/corretores/{id}", auth.RequireAdmin(http.HandlerFunc(corretorHandler.DeletarCorretor))).Methods("DELETE")

	// Rotas de clientes
	api.HandleFunc("/clientes", clienteHandler.Criar).Methods("POST")
	api.HandleFunc("/clientes", clienteHandler.Listar).Methods("GET")
	api.HandleFunc("/clientes/aniversariantes", clienteHandler.Aniversariantes).Methods("GET")
	api.HandleFunc("/clientes/{id}", clienteHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/clientes/{id}", clienteHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/clientes/{id}", clienteHandler.Deletar).Methods("DELETE")

	// Rotas de anotações
	api.HandleFunc("/clientes/{clienteId}/anotacoes", anotacaoHandler.Criar).Methods("POST")
	api.HandleFunc("/clientes/{clienteId}/anotacoes", anotacaoHandler.ListarPorCliente).Methods("GET")
	api.HandleFunc("/clientes/{clienteId}/vendas", vendaHandler.ListarPorCliente).Methods("GET")
	api.HandleFunc("/anotacoes/{id}", anotacaoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/anotacoes/{id}", anotacaoHandler.Remover).Methods("DELETE")

	// Rotas de vendas
	api.HandleFunc("/vendas", vendaHandler.Criar).Methods("POST")
	api.HandleFunc("/vendas", vendaHandler.Listar).Methods("GET")
	api.HandleFunc("/vendas/{id}", vendaHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/vendas/{id}", vendaHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/vendas/{id}", vendaHandler.Deletar).Methods("DELETE")

	// Rotas de comissões
	api.HandleFunc("/comissoes", comissaoHandler.Listar).Methods("GET")
	api.HandleFunc("/comissoes/{id}", comissaoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/comissoes/{id}", comissaoHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/comissoes/{id}/justificativa", comissaoHandler.Justificar).Methods("POST")
	api.HandleFunc("/comissoes/{id}/status", comissaoHandler.DefinirStatus).Methods("PATCH")
	api.HandleFunc("/comissoes/{id}/valores", comissaoHandler.AtualizarValores).Methods("PATCH")
	api.HandleFunc("/comissoes/{id}/recebimentos", comissaoHandler.RegistrarRecebimento).Methods("POST")
	api.HandleFunc("/comissoes/{id}/recebimentos", comissaoHandler.ListarRecebimentos).Methods("GET")

	// Rotas de metas
	api.HandleFunc("/metas/mensal", metaHandler.DefinirMensal).Methods("PUT")
	api.HandleFunc("/metas/mensal", metaHandler.BuscarMensal).Methods("GET")
	api.HandleFunc("/metas/anual", metaHandler.DefinirAnual).Methods("PUT")
	api.HandleFunc("/metas/anual", metaHandler.BuscarAnual).Methods("GET")

	// Rotas de relatórios
	api.HandleFunc("/relatorios/resumo", relatorioHandler.Resumo).Methods("GET")
	api.HandleFunc("/relatorios/anual", relatorioHandler.Anual).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}

	fmt.Println("Servidor rodando na porta " + porta)
	log.Fatal(http.ListenAndServe(":"+porta, handler))
}

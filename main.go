package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PIX_QRCODE_GO/config"
	"PIX_QRCODE_GO/database"
	"PIX_QRCODE_GO/handlers"
	"PIX_QRCODE_GO/qrcode"
	"PIX_QRCODE_GO/routes"
)

func main() {
	// Carregar configuração
	config.LoadEnv()

	renderer, err := qrcode.NewRenderer(config.GetQRLevel(), config.GetQRBoxSize(), config.GetQRBorder())
	if err != nil {
		log.Fatalf("Configuração de QR Code inválida: %v", err)
	}

	qrDir := config.GetQRCodeDir()
	if err := os.MkdirAll(qrDir, 0o755); err != nil {
		log.Fatalf("Erro ao criar diretório de QR Codes %s: %v", qrDir, err)
	}

	// Histórico em banco é opcional
	var store handlers.PixStore
	if config.GetDatabaseURL() != "" {
		db, err := database.Connect()
		if err != nil {
			log.Fatalf("Erro ao conectar ao banco de dados: %v", err)
		}
		defer db.Close()

		if err := database.RunMigrations(db); err != nil {
			log.Fatalf("Erro ao executar migrações: %v", err)
		}
		log.Println("Migrações executadas com sucesso!")
		store = database.NewPixQRCodeRepository(db)
	} else {
		log.Println("DATABASE_URL não definida, histórico desativado.")
	}

	// Configurar as rotas
	router := routes.SetupRoutes(routes.Options{
		Store:        store,
		Renderer:     renderer,
		QRCodeDir:    qrDir,
		JwtSecret:    config.GetJwtSecret(),
		AdminKeyHash: config.GetAdminKeyHash(),
		CorsOrigin:   config.GetCorsOrigin(),
	})

	portServerRum := config.GetPortServerStart()
	srv := &http.Server{
		Addr:              ":" + portServerRum,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		log.Println("Servidor rodando na porta :", portServerRum, "...")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Erro no servidor: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Encerrando servidor...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Erro ao encerrar servidor: %v", err)
	}
}

package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"PIX_QRCODE_GO/handlers"
	"PIX_QRCODE_GO/middleware"
	"PIX_QRCODE_GO/qrcode"
)

// Options reúne as dependências das rotas.
type Options struct {
	Store        handlers.PixStore
	Renderer     *qrcode.Renderer
	QRCodeDir    string
	JwtSecret    string
	AdminKeyHash string
	CorsOrigin   string
}

func SetupRoutes(opts Options) *mux.Router {
	router := mux.NewRouter()
	router.Use(mux.MiddlewareFunc(middleware.CorsMiddleware(opts.CorsOrigin)))
	router.NotFoundHandler = handlers.NotFoundHandler()
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"success":false,"error":"Método não permitido"}`))
	})

	// Health Check
	router.HandleFunc("/api/v1/health", handlers.HealthCheckHandler()).Methods("GET")

	// Rotas PIX
	pix := router.PathPrefix("/api/v1/pix").Subrouter()
	pix.Handle("/download/{filename}", handlers.DownloadQRCodeHandler(opts.QRCodeDir)).Methods("GET")

	protected := pix.NewRoute().Subrouter()
	protected.Use(mux.MiddlewareFunc(middleware.JWTMiddleware(opts.JwtSecret)))
	protected.Handle("/generate", handlers.GeneratePixHandler(opts.Store, opts.Renderer, opts.QRCodeDir)).Methods("POST", "OPTIONS")
	protected.Handle("/validate", handlers.ValidatePixHandler()).Methods("POST", "OPTIONS")

	admin := pix.NewRoute().Subrouter()
	admin.Use(mux.MiddlewareFunc(middleware.AdminKeyMiddleware(opts.AdminKeyHash)))
	admin.Handle("/history", handlers.PixHistoryHandler(opts.Store)).Methods("GET")

	return router
}

package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/konnect-platform/konnect/internal/config"
	"github.com/konnect-platform/konnect/internal/database"
	"github.com/konnect-platform/konnect/internal/gateway"
	"github.com/teris-io/shortid"
)

type KonnectApp struct {
	log             *log.Logger
	db              database.KonnectRepository
	mux             *http.Server
	gw              *gateway.Gateway
	auth            *gateway.Authenticator
	signingKey      []byte
	allowedOrigins  []string
	generateShortId func() (string, error)
}

func NewKonnectApp(mux *http.ServeMux, logger *log.Logger, gw *gateway.Gateway, db database.KonnectRepository, cfg *config.Config) *KonnectApp {
	s := &KonnectApp{
		log:             logger,
		db:              db,
		gw:              gw,
		auth:            gateway.NewAuthenticator(cfg.SigningKey),
		signingKey:      cfg.SigningKey,
		allowedOrigins:  cfg.AllowedOrigins,
		generateShortId: shortid.Generate,
	}

	mux.HandleFunc("GET /healthz", s.healthCheck)
	mux.HandleFunc("POST /api/auth/register", s.createAccount)
	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.Handle("GET /api/auth/session", s.authMiddleware(s.session))
	mux.Handle("GET /api/auth/logout", s.authMiddleware(s.logout))
	mux.Handle("/api/account", s.authMiddleware(s.account))
	mux.Handle("POST /api/groups", s.authMiddleware(s.createGroup))
	mux.Handle("GET /api/groups", s.authMiddleware(s.getGroups))
	mux.Handle("POST /api/groups/join", s.authMiddleware(s.joinGroup))
	mux.Handle("POST /api/groups/leave", s.authMiddleware(s.leaveGroup))
	mux.Handle("GET /api/messages", s.authMiddleware(s.getMessages))
	mux.Handle("GET /api/conversations", s.authMiddleware(s.getConversations))
	mux.Handle("GET /api/notifications", s.authMiddleware(s.getNotifications))
	mux.Handle("POST /api/notifications", s.authMiddleware(s.createNotification))
	mux.HandleFunc("GET /ws", s.serveWs)

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept", "Authorization"}),
		handlers.AllowCredentials(),
	)(mux)

	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s
}

func (s *KonnectApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *KonnectApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}

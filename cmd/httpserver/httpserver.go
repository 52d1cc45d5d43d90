// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/middleware"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/sessiondelivery"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/sessionrepo"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/sessionservice"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/suggestiondelivery"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/suggestionservice"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/transactiondelivery"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/transactionrepo"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/transactionservice"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/userdelivery"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/userrepo"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/userservice"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/categorypkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/configpkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes. The
// classifier backing the suggestion endpoint is passed in so callers
// without model credentials can supply their own.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config, classifier suggestionservice.Classifier) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)
	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	userService := userservice.New(userRepo, sessionService)
	transactionService := transactionservice.New(transactionRepo)

	suggestionService := suggestionservice.New(classifier,
		config.SuggestionDebounce, config.SuggestionMinLength)

	userHandler := userdelivery.NewHandler(userService, sessionService, config.RecentLoginWindow)
	transactionHandler := transactiondelivery.NewHandler(transactionService)
	suggestionHandler := suggestiondelivery.NewHandler(suggestionService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.POST("/transactions", transactionHandler.Create)
	authRoutes.GET("/transactions", transactionHandler.List)
	authRoutes.GET("/transactions/report", transactionHandler.SpendingReport)
	authRoutes.DELETE("/transactions/:id", transactionHandler.Delete)

	authRoutes.POST("/suggestions", suggestionHandler.Suggest)

	authRoutes.PUT("/users/password", userHandler.ChangePassword)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("category", categorypkg.ValidCategory)
		if err != nil {
			return nil, errors.New("cannot register category validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}

package server

import (
	"net/http"

	"user-service/confs"
	"user-service/db"
	httpHandler "user-service/handlers/http"
	"user-service/repositories"
	"user-service/usecases"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	app *gin.Engine
	cfg *confs.Config
	db  db.Database
	log *zap.SugaredLogger
}

func NewServer(cfg *confs.Config, database db.Database, log *zap.SugaredLogger) *Server {
	gin.SetMode(cfg.GinMode)
	return &Server{
		app: gin.New(),
		cfg: cfg,
		db:  database,
		log: log,
	}
}

func (s *Server) Start() error {
	// Any uncaught failure becomes the generic 500 envelope; internal
	// detail stays in the server log.
	s.app.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.log.Errorw("panic recovered", "error", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, httpHandler.ResponseWrapper{
			Status:  httpHandler.StatusFailure,
			Message: httpHandler.MessageSomethingWentWrong,
		})
	}))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))

	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)

	// Initialize use cases
	userUseCase := usecases.NewUserUseCase(userRepo, s.log)

	// Initialize handlers
	userHandler := httpHandler.NewUserHandler(userUseCase, s.log)

	users := s.app.Group(httpHandler.URLUserBase)
	{
		users.POST("", userHandler.CreateUser)
		users.GET("", userHandler.GetUsersPage)
		users.DELETE("/:uid", userHandler.DeleteUser)
	}

	s.log.Infow("starting http server", "addr", s.cfg.HTTPAddr)
	return s.app.Run(s.cfg.HTTPAddr)
}

package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/clubeativo/hub-api/docs"
	v1 "github.com/clubeativo/hub-api/internal/api/handler/v1"
	"github.com/clubeativo/hub-api/internal/api/middleware"
	"github.com/clubeativo/hub-api/internal/config"
	"github.com/clubeativo/hub-api/internal/repository"
	"github.com/clubeativo/hub-api/internal/repository/dao"
	"github.com/clubeativo/hub-api/internal/service"
)

const uploadsDir = "./uploads"

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	clubHandler := s.initClubHandler(db)
	eventHandler := s.initEventHandler(db)
	forumHandler := s.initForumHandler(db)
	newsHandler := s.initNewsHandler(db)
	hubHandler := s.initHubHandler(db)
	s.MountHandlers(authHandler, userHandler, clubHandler, eventHandler, forumHandler, newsHandler, hubHandler)

	return s
}

func (s *Server) initBadgeService(db *gorm.DB) *service.BadgeService {
	badgeRepo := repository.NewBadgeRepository(dao.NewBadgeDAO(db))
	clubRepo := repository.NewClubRepository(dao.NewClubDAO(db))

	return service.NewBadgeService(badgeRepo, clubRepo, service.NewLogNotifier())
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo, s.initBadgeService(db))
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	badgeRepo := repository.NewBadgeRepository(dao.NewBadgeDAO(db))
	svc := service.NewAccountService(userRepo, eventRepo, badgeRepo)
	pwSvc := service.NewAuthService(userRepo, s.initBadgeService(db))
	handler := v1.NewUserHandler(svc, pwSvc, uploadsDir)

	return handler
}

func (s *Server) initClubHandler(db *gorm.DB) *v1.ClubHandler {
	clubRepo := repository.NewClubRepository(dao.NewClubDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewDirectoryService(clubRepo, eventRepo)
	mSvc := service.NewEnrollmentService(eventRepo, clubRepo, s.initBadgeService(db), service.NewLogNotifier())
	handler := v1.NewClubHandler(svc, mSvc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	clubRepo := repository.NewClubRepository(dao.NewClubDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewDirectoryService(clubRepo, eventRepo)
	eSvc := service.NewEnrollmentService(eventRepo, clubRepo, s.initBadgeService(db), service.NewLogNotifier())
	handler := v1.NewEventHandler(svc, eSvc)

	return handler
}

func (s *Server) initForumHandler(db *gorm.DB) *v1.ForumHandler {
	repo := repository.NewForumRepository(dao.NewForumDAO(db))
	svc := service.NewForumService(repo)
	handler := v1.NewForumHandler(svc)

	return handler
}

func (s *Server) initNewsHandler(db *gorm.DB) *v1.NewsHandler {
	repo := repository.NewNewsRepository(dao.NewNewsDAO(db))
	svc := service.NewNewsService(repo)
	handler := v1.NewNewsHandler(svc)

	return handler
}

func (s *Server) initHubHandler(db *gorm.DB) *v1.HubHandler {
	repo := repository.NewScheduleRepository(dao.NewScheduleDAO(db))
	svc := service.NewScheduleService(repo)
	handler := v1.NewHubHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	clubHandler *v1.ClubHandler,
	eventHandler *v1.EventHandler,
	forumHandler *v1.ForumHandler,
	newsHandler *v1.NewsHandler,
	hubHandler *v1.HubHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/me", userHandler.HandleGetAccount)
		authed.GET("/users/me/badges", userHandler.HandleGetBadges)
		authed.PUT("/users/me/password", userHandler.HandleChangePassword)
		authed.POST("/users/me/picture", userHandler.HandleUploadPicture)
		authed.DELETE("/users/me", userHandler.HandleDeleteAccount)

		authed.GET("/clubs", clubHandler.HandleGetClubs)
		authed.GET("/clubs/ranking", clubHandler.HandleGetRanking)
		authed.GET("/clubs/:clubID", clubHandler.HandleGetClub)
		authed.GET("/clubs/:clubID/members/count", clubHandler.HandleGetMemberCount)
		authed.POST("/clubs/:clubID/join", clubHandler.HandleJoinClub)

		authed.GET("/events", eventHandler.HandleGetEvents)
		authed.GET("/events/:eventID", eventHandler.HandleGetEvent)
		authed.GET("/events/:eventID/seats", eventHandler.HandleGetSeats)
		authed.POST("/events/:eventID/enroll", eventHandler.HandleEnroll)

		authed.GET("/forum/topics", forumHandler.HandleGetTopics)
		authed.GET("/forum/topics/:topicID", forumHandler.HandleGetTopic)
		authed.POST("/forum/topics", forumHandler.HandleCreateTopic)
		authed.POST("/forum/topics/:topicID/posts", forumHandler.HandleCreatePost)

		authed.GET("/news", newsHandler.HandleGetNews)
		authed.POST("/news", newsHandler.HandleCreateNews)

		authed.GET("/hub/menu", hubHandler.HandleGetMenu)
		authed.GET("/hub/calendar", hubHandler.HandleGetCalendar)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.Static("/uploads", uploadsDir)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Clube Ativo Hub API"
	docs.SwaggerInfo.Description = "Membership and enrollment ledger for the campus club hub."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

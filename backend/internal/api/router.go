package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"social-demo/backend/internal/constants"
	"social-demo/backend/internal/social"
	"social-demo/backend/pkg/logger"
)

// RouterConfig holds the HTTP-facing settings
type RouterConfig struct {
	StaticDir       string
	UploadDir       string
	CORSAllowOrigin string
	MaxUploadBytes  int64 // request body cap for uploads, 0 disables it
}

// Handler serves the HTTP surface on top of a social.Service
type Handler struct {
	svc    *social.Service
	logger *zap.Logger
}

// NewRouter builds the gin engine with every route registered
func NewRouter(svc *social.Service, cfg RouterConfig, log *zap.Logger) *gin.Engine {
	log = logger.Named(log, constants.ComponentHTTP)
	h := &Handler{svc: svc, logger: log}

	router := gin.New()
	router.Use(requestLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors(cfg.CORSAllowOrigin))
	router.SetHTMLTemplate(pages)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Form endpoints answering with HTML
	router.POST("/addprofile", h.addProfile)
	router.POST("/login", h.login)
	router.POST("/upload-video", limitUpload(cfg.MaxUploadBytes, linkVideos), h.uploadVideo)
	router.POST("/upload-profile-picture", limitUpload(cfg.MaxUploadBytes, linkProfilePictures), h.uploadProfilePicture)

	// JSON API
	api := router.Group("/api")
	{
		api.GET("/videos", h.listVideos)
		api.GET("/profiles", h.listProfiles)

		api.POST("/add-friend", h.addFriend)
		api.GET("/friends/:userEmail", h.listFriends)

		api.POST("/send-message", h.sendMessage)
		api.GET("/messages/:user1/:user2", h.getConversation)
	}

	// Uploaded media and the static front-end
	router.StaticFS(constants.UploadsURLPrefix, newPublicFS(cfg.UploadDir))
	files := http.FileServer(newPublicFS(cfg.StaticDir))
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	})

	return router
}

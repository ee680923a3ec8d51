package main

import (
	"log"
	"server/auth"
	"server/config"
	"server/db"
	"server/utils"
	"strings"
	"time"

	"server/handlers"
	"server/models"
	"server/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 365 * 86400 // 1 year
)

func main() {
	db.Init()
	models.Init()
	storage.Init()

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	sessionKey := config.SESSION_KEY
	if sessionKey == "" {
		// Sessions won't survive a restart without a configured key
		sessionKey = utils.RandSalt(32)
	}
	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(sessionKey))
	cookieStore.Options(sessions.Options{MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/image/fetch", "/member/image"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, individual end-points can override that
	// Custom Auth Router
	authRouter := &auth.Router{Base: router}
	// Member handlers
	router.POST("/member/register", handlers.MemberRegister)
	router.POST("/member/login", handlers.MemberLogin)
	authRouter.POST("/member/logout", handlers.MemberLogout)
	authRouter.GET("/member/status", handlers.MemberGetStatus)
	authRouter.POST("/member/delete", handlers.MemberDelete)
	authRouter.PUT("/member/image", handlers.MemberSetProfileImage)
	authRouter.GET("/member/image", handlers.MemberImageFetch)
	// Post handlers
	authRouter.GET("/post/list", handlers.PostList)
	authRouter.GET("/post/get", handlers.PostGet)
	authRouter.POST("/post/create", handlers.PostCreate)
	authRouter.POST("/post/save", handlers.PostSave)
	authRouter.POST("/post/delete", handlers.PostDelete)
	authRouter.POST("/post/like", handlers.PostLike)
	authRouter.POST("/post/unlike", handlers.PostUnlike)
	// Comment handlers
	authRouter.GET("/comment/list", handlers.CommentList)
	authRouter.POST("/comment/create", handlers.CommentCreate)
	authRouter.POST("/comment/reply", handlers.CommentReply)
	authRouter.POST("/comment/save", handlers.CommentSave)
	authRouter.POST("/comment/delete", handlers.CommentDelete)
	// Image handlers
	authRouter.PUT("/image/upload", handlers.ImageUpload)
	authRouter.GET("/image/fetch", handlers.ImageFetch)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}

package main

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/api"
	"github.com/PatrickFoster659/pdfoster-creative-api/internal/archive"
	"github.com/PatrickFoster659/pdfoster-creative-api/internal/config"
	"github.com/PatrickFoster659/pdfoster-creative-api/internal/model"
)

func main() {
	// 初始化配置
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		return
	}

	// 初始化logger
	logrus.SetFormatter(&logrus.JSONFormatter{})
	if cfg.DevMode {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		return
	}

	store, err := archive.NewArchive(cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise archive backend")
		return
	}

	httpHandler, err := api.NewHTTPHandler(cfg, repo, store)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		return
	}

	// 设置Gin模式
	if cfg.DevMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// 添加中间件
	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware())
	r.Use(RecoveryMiddleware(cfg.DevMode))

	// 非法方法统一返回 405
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) { api.MethodNotAllowed(c) })

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")
	apiGroup.POST("/generate-creative", httpHandler.GenerateCreative)
	apiGroup.GET("/video-status", httpHandler.VideoStatus)

	apiGroup.POST("/auth/token", httpHandler.IssueToken)

	protected := apiGroup.Group("")
	protected.Use(httpHandler.AuthMiddleware())
	protected.GET("/usage-records", httpHandler.ListUsageEvents)
	protected.GET("/usage-records/:id", httpHandler.GetUsageEvent)
	protected.DELETE("/usage-records/:id", httpHandler.DeleteUsageEvent)

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logrus.WithField("host", serverHost).Info("服务器启动")
	// 创建HTTP服务器；视频生成链路可能长时间挂起，超时设置放宽
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  900 * time.Second,
		WriteTimeout: 900 * time.Second,
		IdleTimeout:  1200 * time.Second,
	}
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logrus.WithError(err).Error("服务器启动失败")
	}
}

// allowedMethods 按路径返回 CORS 允许的方法集合
func allowedMethods(path string) string {
	switch {
	case path == "/api/generate-creative", path == "/api/auth/token":
		return "POST, OPTIONS"
	case path == "/api/video-status", path == "/health":
		return "GET, OPTIONS"
	case strings.HasPrefix(path, "/api/usage-records"):
		return "GET, DELETE, OPTIONS"
	default:
		return "GET, POST, DELETE, OPTIONS"
	}
}

// CORSMiddleware CORS跨域中间件；预检请求直接返回 200 空响应体
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", allowedMethods(c.Request.URL.Path))
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

// RecoveryMiddleware 捕获未处理的 panic 并返回 500；调用栈仅在开发模式下暴露
func RecoveryMiddleware(devMode bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logrus.WithField("panic", recovered).Error("handler panicked")
		payload := gin.H{"error": fmt.Sprintf("%v", recovered)}
		if devMode {
			payload["stack"] = string(debug.Stack())
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, payload)
	})
}

// LoggingMiddleware 日志记录中间件
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		// 处理请求
		c.Next()
		// 记录请求结束
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"size":      c.Writer.Size(),
			"client_ip": c.ClientIP(),
		}).Info("http_request")
	}
}

package main

import (
	"log"
	"strings"
	"time"

	"brutus/config"
	"brutus/handlers"
	"brutus/recognition"
	"brutus/speech"
	"brutus/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

func main() {
	eyes, err := recognition.NewClient()
	if err != nil {
		log.Fatalf("Failed to initialize recognition client: %v", err)
	}
	synthesizer, err := speech.NewGenerator()
	if err != nil {
		log.Fatalf("Failed to initialize speech generator: %v", err)
	}
	api := &handlers.API{Eyes: eyes, Speech: synthesizer}

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/images/analyzed"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default

	router.GET("/", api.Info)
	router.GET("/health", api.Health)
	router.POST("/upload/image", api.UploadImage)
	router.GET("/analyze/image", api.AnalyzeImage)
	router.GET("/analyze/faces", api.AnalyzeFaces)
	router.GET("/analyze/facial-recognition", api.FacialRecognition)
	router.GET("/analyze/all", api.AnalyzeAll)
	router.POST("/analyze/save-image", api.SaveAnalyzedImage)
	router.GET("/images/analyzed", api.GetAnalyzedImage)
	router.POST("/speech/synthesize", api.Synthesize)

	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}

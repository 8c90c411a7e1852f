package restapi

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"portfolio_tracker/internal/config"
)

// SetupRouter builds the gin engine and registers every route.
func SetupRouter(portfolioHandler *PortfolioHandler, cfg *config.Config, zapLogger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) == 0 || containsWildcard(cfg.Server.AllowedOrigins) {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.Use(ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/portfolio", portfolioHandler.GetPortfolioHandler)
		v1.POST("/portfolio/refresh", portfolioHandler.RefreshPortfolioHandler)
		v1.POST("/portfolio/summary", portfolioHandler.SummarizeHandler)

		v1.GET("/account", portfolioHandler.GetAccountHandler)
		v1.POST("/account/connect", portfolioHandler.ConnectHandler)
		v1.POST("/account/network", portfolioHandler.SwitchNetworkHandler)
		v1.POST("/account/disconnect", portfolioHandler.DisconnectHandler)

		v1.GET("/networks", portfolioHandler.ListNetworksHandler)
		v1.GET("/app", portfolioHandler.AppInfoHandler)
	}

	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.Swagger.Enabled {
		// docs/swagger.yaml is maintained by hand, not generated by swag init.
		router.StaticFile("/docs/swagger.yaml", cfg.Swagger.SpecFile)
		swaggerURL := ginSwagger.URL("/docs/swagger.yaml")
		router.GET(strings.TrimRight(cfg.Swagger.Path, "/")+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))
		zapLogger.Info("Swagger UI enabled", zap.String("path", cfg.Swagger.Path+"/index.html"))
	}

	return router
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

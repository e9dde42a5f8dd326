package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yery-max/Proyecto-final/internal/config"
	"github.com/yery-max/Proyecto-final/internal/handler"
	"github.com/yery-max/Proyecto-final/internal/infra"
	"github.com/yery-max/Proyecto-final/internal/middleware"
	"github.com/yery-max/Proyecto-final/internal/service"
)

// New wires the handlers and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Store ← Repository.
// healthCheck backs /health; it may be nil.
func New(cfg *config.Config, svcs *service.Services, metrics *infra.Metrics, healthCheck func(ctx context.Context) error) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())

	// ── Handlers ─────────────────────────────────────────────────────────────
	productosH := handler.NewProductosHandler(svcs.Products, svcs.Query)
	ventasH := handler.NewVentasHandler(svcs.Sales, svcs.Query)
	inventarioH := handler.NewInventarioHandler(svcs.Inventory, svcs.Query)
	csvH := handler.NewCSVHandler(svcs.Import)
	reportesH := handler.NewReportesHandler(svcs.Reports)

	var heavy gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.HeavyRateLimit > 0 {
		heavy = middleware.NewRateLimiter(cfg.HeavyRateLimit, time.Minute).Middleware()
	}

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(cfg.StorageDriver, healthCheck))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := r.Group("/v1")
	{
		v1.GET("/sucursales", inventarioH.Sucursales)

		prods := v1.Group("/productos")
		{
			prods.GET("", productosH.Listar)
			prods.POST("", productosH.Crear)
			prods.GET("/:sucursal/:sku", productosH.Obtener)
			prods.PUT("/:sucursal/:sku", productosH.Actualizar)
			prods.DELETE("/:sucursal/:sku", productosH.Eliminar)
		}

		ventas := v1.Group("/ventas")
		{
			ventas.POST("", ventasH.Registrar)
			ventas.GET("", ventasH.Listar)
			ventas.GET("/:id", ventasH.Obtener)
		}

		inv := v1.Group("/inventario")
		{
			inv.POST("/transferencias", inventarioH.Transferir)
			inv.GET("/resumen", inventarioH.Resumen)
			inv.GET("/alertas", inventarioH.Alertas)
		}

		v1.POST("/csv/import", heavy, csvH.Importar)
		v1.POST("/sistema/reinicializar", heavy, inventarioH.Reinicializar)

		rep := v1.Group("/reportes", heavy)
		{
			rep.POST("/inventario", reportesH.Inventario)
			rep.POST("/ventas/:id/recibo", reportesH.Recibo)
			rep.POST("/cierre", reportesH.Cierre)
		}
	}

	return r
}

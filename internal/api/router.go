package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Options struct {
	CORSOrigins []string
	Log         *slog.Logger
}

func NewRouter(svc Service, opts Options) *gin.Engine {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()
	r.Use(RequestID(), AccessLog(log), recovery(log), CORS(opts.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	g := r.Group("/restaurant")
	{
		g.GET("/fetchAllRestaurants", ListHandler(svc))
		g.POST("/addRestaurant", AddHandler(svc))
		g.GET("/fetchRestaurant/:id", FetchHandler(svc))
	}
	return r
}

// RunServer слушает addr до отмены ctx, затем корректно останавливается.
func RunServer(ctx context.Context, addr string, h http.Handler, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http.listen", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("http.shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

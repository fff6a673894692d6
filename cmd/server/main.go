package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookit/config"
	"bookit/internal/cache"
	"bookit/internal/database"
	"bookit/internal/handler"
	"bookit/internal/notifier"
	"bookit/internal/queue"
	"bookit/internal/repository"
	"bookit/internal/service"
	"bookit/internal/worker"
	"bookit/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	log := logger.WithComponent("main")

	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	defer rdb.Close()

	// repositories
	experienceRepo := repository.NewExperienceRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	promoRepo := repository.NewPromoRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	// cache + queue
	slotCache := cache.NewSlotAvailabilityCache(rdb, cfg.Cache.SlotTTL)
	bookingQueue, err := queue.NewRedisStreamBookingQueue(rdb, "", nil)
	if err != nil {
		log.Fatal("Failed to initialize booking queue", zap.Error(err))
	}

	// services
	bookingService := service.NewBookingService(pool, bookingRepo, slotRepo, experienceRepo, promoRepo, slotCache, bookingQueue)
	promoService := service.NewPromoService(promoRepo)
	experienceService := service.NewExperienceService(experienceRepo, slotRepo, slotCache)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// notification worker
	notificationWorker := worker.NewNotificationWorker(notifier.NewLogNotifier(), bookingQueue)
	if err := notificationWorker.Start(ctx); err != nil {
		log.Fatal("Failed to start notification worker", zap.Error(err))
	}

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	handler.NewExperienceHandler(experienceService).RegisterRoutes(router)
	handler.NewBookingHandler(bookingService).RegisterRoutes(router)
	handler.NewPromoHandler(promoService).RegisterRoutes(router)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
	log.Info("server stopped gracefully")
}

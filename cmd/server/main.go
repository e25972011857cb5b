package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"social-stats-service/internal/api"
	"social-stats-service/internal/bootstrap"
	"social-stats-service/internal/config"
	"social-stats-service/internal/domain/repositories"
	"social-stats-service/internal/messaging"
	"social-stats-service/internal/services"
	"social-stats-service/pkg/logger"
	"social-stats-service/pkg/nacos"
)

func main() {
	log, err := logger.InitLogger("social-stats-service")
	if err != nil {
		panic(err)
	}
	log.Info("社交账号统计服务启动中...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("加载配置失败: %v", err)
	}
	gin.SetMode(cfg.Server.Mode)

	var opts []services.Option

	// 快照存储，可选
	var snapshotRepo *repositories.SnapshotRepository
	if cfg.Database.Enabled() {
		db, err := repositories.NewDBConnection(cfg.Database)
		if err != nil {
			log.Fatal("%v", err)
		}
		snapshotRepo = repositories.NewSnapshotRepository(db)
		defer snapshotRepo.Close()

		if err := snapshotRepo.EnsureSchema(context.Background()); err != nil {
			log.Fatal("%v", err)
		}
		opts = append(opts, services.WithSnapshotRepo(snapshotRepo))
		log.Info("已启用统计快照存储")
	}

	// 事件发送，可选
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := messaging.NewKafkaProducer(cfg.Kafka, log)
		if err != nil {
			log.Fatal("%v", err)
		}
		defer producer.Close()
		opts = append(opts, services.WithEventPublisher(producer))
		log.Info("已启用统计事件发送，主题: %s", cfg.Kafka.Topic)
	}

	statsService := bootstrap.NewStatsService(cfg, log, opts...)
	log.Info("已注册平台适配器: %v", statsService.SupportedPlatforms().Dedicated)

	if snapshotRepo != nil && cfg.Refresh.IntervalMinutes > 0 {
		scheduler := services.NewStatsScheduler(statsService, snapshotRepo, log)
		scheduler.SetRefreshPeriod(cfg.Refresh.Interval())
		scheduler.SetStaleAfter(cfg.Refresh.StaleAfter())
		scheduler.SetBatchSize(cfg.Refresh.BatchSize)
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := api.NewRouter(cfg, statsService, log)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	// 注册到Nacos，可选
	var nacosClient *nacos.Client
	var registeredIP string
	port, _ := strconv.Atoi(cfg.Server.Port)
	if cfg.Nacos.Enable {
		nacosClient, err = nacos.NewClient(nacos.Config{
			ServerAddr:  cfg.Nacos.ServerAddr,
			NamespaceID: cfg.Nacos.NamespaceID,
			Group:       cfg.Nacos.Group,
			Username:    cfg.Nacos.Username,
			Password:    cfg.Nacos.Password,
			LogDir:      cfg.Nacos.LogDir,
			CacheDir:    cfg.Nacos.CacheDir,
		})
		if err != nil {
			log.Error("初始化Nacos客户端失败: %v", err)
		} else {
			registeredIP, err = nacosClient.RegisterService(cfg.Nacos.ServiceName, "", port, cfg.Nacos.Metadata)
			if err != nil {
				log.Error("注册服务到Nacos失败: %v", err)
			} else {
				log.Info("已成功注册到Nacos，服务名: %s, 地址: %s:%d", cfg.Nacos.ServiceName, registeredIP, port)
			}
		}
	}

	go func() {
		log.Info("社交账号统计服务已启动，端口: %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("监听错误: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭社交账号统计服务...")

	if nacosClient != nil {
		if registeredIP != "" {
			if err := nacosClient.DeregisterService(cfg.Nacos.ServiceName, registeredIP, port); err != nil {
				log.Error("从Nacos注销服务失败: %v", err)
			} else {
				log.Info("已从Nacos注销服务")
			}
		}
		nacosClient.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("服务器关闭错误: %v", err)
	}

	log.Info("社交账号统计服务已关闭")
}

package main

import (
	"context"
	"log"

	"Reddit_MVP/internal/config"
	"Reddit_MVP/internal/handler"
	"Reddit_MVP/internal/pkg"
	miniorepo "Reddit_MVP/internal/repository/minio"
	mongorepo "Reddit_MVP/internal/repository/mongo"
	"Reddit_MVP/internal/repository/mysql"
	redisrepo "Reddit_MVP/internal/repository/redis"
	"Reddit_MVP/internal/router"
	"Reddit_MVP/internal/service"
)

func main() {
	cfg := config.Load()
	pkg.SetSecrets(cfg.JWTAccessSecret, cfg.JWTRefreshSecret)

	// 连接句柄进程内只建一次，之后注入各层复用
	db, err := mysql.InitDB(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("mysql init: %v", err)
	}
	if err = mysql.AutoMigrate(db); err != nil {
		log.Fatalf("mysql migrate: %v", err)
	}

	mongoDB, err := mongorepo.Init(cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		log.Fatalf("mongo init: %v", err)
	}

	redisClient, err := redisrepo.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis init: %v", err)
	}

	mediaStore, err := miniorepo.NewMediaStore(miniorepo.Config{
		Endpoint:       cfg.MinioEndpoint,
		PublicEndpoint: cfg.MinioPublicEndpoint,
		AccessKey:      cfg.MinioAccessKey,
		SecretKey:      cfg.MinioSecretKey,
		Bucket:         cfg.MinioBucket,
		UseSSL:         cfg.MinioUseSSL,
	})
	if err != nil {
		log.Fatalf("minio init: %v", err)
	}
	if err = mediaStore.EnsureBucket(context.Background()); err != nil {
		log.Fatalf("minio bucket: %v", err)
	}

	// 分析事件：配了 kafka 走 kafka，否则落数据湖目录
	var sink pkg.EventSink
	if len(cfg.KafkaBrokers) > 0 {
		producer := pkg.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		sink = &pkg.KafkaEventSink{Producer: producer}
	} else {
		sink = pkg.NewFileEventSink(cfg.EventLogDir)
	}

	userRepo := &mysql.UserRepository{DB: db}
	communityRepo := &mysql.CommunityRepository{DB: db}
	memberRepo := &mysql.CommunityMemberRepository{DB: db}
	postRepo := mongorepo.NewPostRepository(mongoDB)
	commentRepo := mongorepo.NewCommentRepository(mongoDB)
	tokenRepo := &redisrepo.TokenRepository{Client: redisClient}

	gate := service.NewMembershipGate(communityRepo, memberRepo, postRepo)
	userSvc := service.NewUserService(userRepo, tokenRepo, sink)
	communitySvc := service.NewCommunityService(communityRepo, memberRepo, sink)
	contentSvc := service.NewContentService(postRepo, commentRepo, userRepo, gate, sink)
	mediaSvc := service.NewMediaService(mediaStore, sink)

	r := router.InitRouter(router.Handlers{
		User:      handler.NewUserHandler(userSvc, communitySvc),
		Community: handler.NewCommunityHandler(communitySvc),
		Post:      handler.NewPostHandler(contentSvc),
		Comment:   handler.NewCommentHandler(contentSvc),
		Media:     handler.NewMediaHandler(mediaSvc),
		Sessions:  tokenRepo,
	})

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}

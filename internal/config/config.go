package config

import (
	"os"
	"strconv"
	"strings"
)

// Config 进程级配置，全部来自环境变量，缺省值对齐 docker-compose 部署
type Config struct {
	ListenAddr string

	MySQLDSN string

	MongoURL string
	MongoDB  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// minio 在容器部署里常有内外两条网络路径：
	// 直接读写走内网地址，presign 必须用外部可达地址签名
	MinioEndpoint       string
	MinioPublicEndpoint string
	MinioAccessKey      string
	MinioSecretKey      string
	MinioBucket         string
	MinioUseSSL         bool

	JWTAccessSecret  string
	JWTRefreshSecret string

	EventLogDir  string
	KafkaBrokers []string
	KafkaTopic   string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	redisDB, _ := strconv.Atoi(getenv("REDIS_DB", "0"))
	useSSL, _ := strconv.ParseBool(getenv("MINIO_USE_SSL", "false"))

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return &Config{
		ListenAddr: getenv("LISTEN_ADDR", ":8080"),

		MySQLDSN: getenv("MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/reddit?charset=utf8mb4&parseTime=True"),

		MongoURL: getenv("MONGO_URL", "mongodb://127.0.0.1:27017"),
		MongoDB:  getenv("MONGO_DB", "reddit"),

		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		MinioEndpoint:       getenv("MINIO_ENDPOINT", "minio:9000"),
		MinioPublicEndpoint: getenv("MINIO_PUBLIC_ENDPOINT", "localhost:9000"),
		MinioAccessKey:      getenv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey:      getenv("MINIO_SECRET_KEY", "minioadminpass"),
		MinioBucket:         getenv("MINIO_BUCKET", "media"),
		MinioUseSSL:         useSSL,

		JWTAccessSecret:  getenv("JWT_ACCESS_SECRET", "change-me"),
		JWTRefreshSecret: getenv("JWT_REFRESH_SECRET", "change-me-too"),

		EventLogDir:  getenv("EVENT_LOG_DIR", "/datalake/events"),
		KafkaBrokers: brokers,
		KafkaTopic:   getenv("KAFKA_TOPIC", "forum-events"),
	}
}

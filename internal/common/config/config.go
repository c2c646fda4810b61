package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Consul   ConsulConfig   `json:"consul"`
	Jaeger   JaegerConfig   `json:"jaeger"`
	CORS     CORSConfig     `json:"cors"`
	Log      LogConfig      `json:"log"`
	Auth     AuthConfig     `json:"auth"`
}

// ServerConfig 服务配置
type ServerConfig struct {
	Name     string `json:"name"`      // 服务名称
	Host     string `json:"host"`      // 服务地址
	HTTPPort int    `json:"http_port"` // HTTP API 端口
	GRPCPort int    `json:"grpc_port"` // gRPC 健康检查端口（供 Consul GRPC check 探测）
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver   string `json:"driver"`   // 数据库驱动
	Host     string `json:"host"`     // 数据库地址
	Port     int    `json:"port"`     // 数据库端口
	User     string `json:"user"`     // 用户名
	Password string `json:"password"` // 密码
	Database string `json:"database"` // 数据库名
	MaxIdle  int    `json:"max_idle"` // 最大空闲连接
	MaxOpen  int    `json:"max_open"` // 最大打开连接
}

// ConsulConfig Consul配置
type ConsulConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// JaegerConfig Jaeger配置
type JaegerConfig struct {
	Endpoint string  `json:"endpoint"`
	Sampler  float64 `json:"sampler"` // 采样率 0.0-1.0
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins []string `json:"allowed_origins"`
}

// LogConfig 日志配置
type LogConfig struct {
	Driver string `json:"driver"` // logrus, zap
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, text
	Output string `json:"output"` // stdout, file
	Path   string `json:"path"`   // 日志文件路径
}

// AuthConfig 认证配置
type AuthConfig struct {
	Enabled         bool   `json:"enabled"`           // 关闭后写接口不做鉴权（仅限开发环境）
	JWTSecret       string `json:"jwt_secret"`        // HS256 签名密钥
	Issuer          string `json:"issuer"`            // 签发方（可选校验）
	Audience        string `json:"audience"`          // 受众（可选校验）
	TokenTTLMinutes int    `json:"token_ttl_minutes"` // access token 有效期（分钟）
}

// LoadConfig 加载配置。配置文件不存在时回退到默认配置（开发环境）。
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		logrus.Warnf("Config file not found: %s, using default config", configPath)
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// defaultConfig 默认配置（开发环境）
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name:     "carshare-server",
			Host:     "0.0.0.0",
			HTTPPort: 8080,
			GRPCPort: 50051,
		},
		Database: DatabaseConfig{
			Driver:   "mysql",
			Host:     "localhost",
			Port:     3306,
			User:     "root",
			Password: "root",
			Database: "carsharing",
			MaxIdle:  10,
			MaxOpen:  100,
		},
		Consul: ConsulConfig{
			Host: "localhost",
			Port: 8500,
		},
		Jaeger: JaegerConfig{
			Endpoint: "http://localhost:14268/api/traces",
			Sampler:  1.0,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:8000", "http://localhost:8080"},
		},
		Log: LogConfig{
			Driver: "logrus",
			Level:  "debug",
			Format: "text",
			Output: "stdout",
			Path:   "logs/app.log",
		},
		Auth: AuthConfig{
			Enabled:         true,
			JWTSecret:       "dev-secret-change-me",
			Issuer:          "carsharelink",
			Audience:        "carsharelink",
			TokenTTLMinutes: 24 * 60,
		},
	}
}

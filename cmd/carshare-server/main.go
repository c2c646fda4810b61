package main

import (
	"flag"

	"github.com/CarShareLink/CarShareLink/internal/booking"
	"github.com/CarShareLink/CarShareLink/internal/car"
	"github.com/CarShareLink/CarShareLink/internal/common/config"
	"github.com/CarShareLink/CarShareLink/internal/common/db"
	"github.com/CarShareLink/CarShareLink/internal/common/logger"
	"github.com/CarShareLink/CarShareLink/internal/common/server"
	"github.com/CarShareLink/CarShareLink/internal/common/tracing"
	handler "github.com/CarShareLink/CarShareLink/internal/delivery/http"
	"github.com/CarShareLink/CarShareLink/internal/trip"
	"github.com/CarShareLink/CarShareLink/internal/user"
	"github.com/CarShareLink/CarShareLink/internal/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func main() {
	configPath := flag.String("config", "configs/carshare-server.json", "配置文件路径")
	consulKV := flag.String("consul-kv", "", "从 Consul KV 读取配置的 key（设置后优先于 -config）")
	consulHost := flag.String("consul-host", "localhost", "Consul 地址（配合 -consul-kv）")
	consulPort := flag.Int("consul-port", 8500, "Consul 端口（配合 -consul-kv）")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *consulKV != "" {
		cfg, err = config.LoadConfigFromConsulKV(*consulHost, *consulPort, *consulKV)
	} else {
		cfg, err = config.LoadConfig(*configPath)
	}
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(cfg.Log.Driver, cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.Path)
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}

	tracer, closer, err := tracing.InitTracer(cfg.Server.Name, cfg.Jaeger.Endpoint, cfg.Jaeger.Sampler)
	if err != nil {
		log.Warnf("failed to init tracer: %v", err)
	} else {
		defer closer.Close()
		_ = tracer
	}

	gdb, err := db.NewMySQL(
		cfg.Database.Host, cfg.Database.Port,
		cfg.Database.User, cfg.Database.Password, cfg.Database.Database,
		cfg.Database.MaxIdle, cfg.Database.MaxOpen,
	)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := gdb.AutoMigrate(&car.Car{}, &trip.Trip{}, &user.User{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// 组装领域服务
	fleet := car.NewService(car.NewRepo(gdb))
	ledger := trip.NewLedger(gdb)
	bookingSvc := booking.NewService(fleet, ledger)
	users := user.NewService(user.NewRepo(gdb), user.BcryptHasher{})

	// HTTP 路由
	r := chi.NewRouter()
	r.Use(server.Recovery(log))
	r.Use(server.AccessLog(log))
	r.Use(server.Tracing(cfg.Server.Name))
	r.Use(server.CarsCookie())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	requireAuth := server.JWTAuth(cfg.Auth, log)
	handler.NewCarHandler(r, fleet, bookingSvc, ledger, requireAuth)
	handler.NewAuthHandler(r, users, cfg.Auth)
	web.NewHandler(r, fleet)

	if err := server.Run(cfg, log, r); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/CarShareLink/CarShareLink/internal/common/config"
	"github.com/CarShareLink/CarShareLink/internal/common/db"
	"github.com/CarShareLink/CarShareLink/internal/user"
)

// create-user 运维小工具：在数据库里创建一个可登录的用户。
func main() {
	configPath := flag.String("config", "configs/carshare-server.json", "配置文件路径")
	username := flag.String("username", "", "用户名")
	flag.Parse()

	if *username == "" {
		fmt.Fprintln(os.Stderr, "usage: create-user -username <name> [-config <path>]")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Print("Password: ")
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read password: %v\n", err)
		os.Exit(1)
	}
	password = strings.TrimSpace(password)

	gdb, err := db.NewMySQL(
		cfg.Database.Host, cfg.Database.Port,
		cfg.Database.User, cfg.Database.Password, cfg.Database.Database,
		cfg.Database.MaxIdle, cfg.Database.MaxOpen,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect database: %v\n", err)
		os.Exit(1)
	}
	if err := gdb.AutoMigrate(&user.User{}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to migrate database: %v\n", err)
		os.Exit(1)
	}

	users := user.NewService(user.NewRepo(gdb), user.BcryptHasher{})
	u, err := users.Register(context.Background(), *username, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("created user id=%d username=%s\n", u.ID, u.Username)
}

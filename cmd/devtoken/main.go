package main

import (
	"flag"
	"fmt"
	"os"

	"clinic-admin/config"
	"clinic-admin/pkg/jwt"
)

// devtoken 按当前配置签发一个 Access Token，用于本地联调
func main() {
	userID := flag.String("user", "dev-admin", "操作人 ID")
	role := flag.String("role", "admin", "角色")
	branchID := flag.Int64("branch", 0, "所属分院 ID")
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	token, err := jwt.NewManager(&cfg.Auth).GenerateAccessToken(*userID, *role, *branchID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "签发 Token 失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}

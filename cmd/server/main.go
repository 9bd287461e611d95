// @title           WaLink CRM Service API
// @version         1.0
// @description     WhatsApp客户关系管理后台，提供联系人、会话、需求、预约、群发与报表能力

// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer: ` prefix
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"
	"walink-crm-service/internal/app/routes"
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/domain/services"
	"walink-crm-service/internal/infrastructure/config"
	"walink-crm-service/internal/infrastructure/database"
	Logger "walink-crm-service/pkg/logger"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	// 设置最大处理器数量，提高并发性能
	runtime.GOMAXPROCS(runtime.NumCPU())

	// 初始化日志配置
	if err := Logger.SetupLogger(); err != nil {
		fmt.Printf("初始化日志配置失败: %v\n", err)
		os.Exit(1)
	}

	// 加载.env文件
	if err := godotenv.Load(); err != nil {
		Logger.Warning("无法加载.env文件: %v", err)
		// 即使加载失败也继续执行，可能环境变量已经通过其他方式设置
	} else {
		Logger.Info("成功加载.env文件")
	}

	// 获取配置
	cfg := config.GetConfig()

	// 创建优化的数据库连接池
	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		log.Fatalf("无法创建数据库连接池: %v", err)
	}
	db := pool.GetDB()

	// 根据配置执行不同的数据库操作
	if cfg.DBMigrationMode == "drop" {
		// 删除并重建表
		log.Println("警告: 在drop模式下运行，将删除并重建所有表")
		if err := dropAndRecreateTables(db); err != nil {
			log.Fatalf("删除并重建表失败: %v", err)
		}
	} else {
		// 默认AutoMigrate，只会添加新列和新表，不会删除或修改列
		log.Println("在标准模式下运行，将只添加新列和新表")
		if err := autoMigrate(db); err != nil {
			log.Fatalf("自动迁移失败: %v", err)
		}
	}

	// 确保系统中有超级管理员账户
	ensureSuperAdminExists(db, cfg)

	// 初始化路由
	r, serviceContainer := routes.SetupRouter(pool, cfg, true)

	// 使用配置中的端口，而不是直接从环境变量获取
	port := cfg.ServerPort

	// 打印系统信息
	printSystemInfo(pool)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: r,
	}

	// 启动服务器 - 注意监听所有接口(0.0.0.0)而不是只监听localhost
	go func() {
		Logger.Info("服务器启动在: http://0.0.0.0:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			Logger.Error("启动服务器失败: %v", err)
			os.Exit(1)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	Logger.Info("收到退出信号，开始优雅关闭")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		Logger.Error("HTTP服务关闭失败: %v", err)
	}

	// 断开消息网关并释放数据库连接
	if gateway, ok := serviceContainer.GetService("gateway").(services.InterfaceGatewayService); ok && gateway != nil {
		gateway.Disconnect()
	}
	if err := pool.Close(); err != nil {
		Logger.Error("关闭数据库连接池失败: %v", err)
	}
	Logger.Info("服务已退出")
}

// autoMigrate 自动迁移所有模型（只添加新列和新表）
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.AdminAccount{},
		&models.Contact{},
		&models.Message{},
		&models.Requirement{},
		&models.Need{},
		&models.Broadcast{},
		&models.MessageTemplate{},
	)

	if err != nil {
		return err
	}

	fmt.Println("Database migration completed")
	return nil
}

// dropAndRecreateTables 删除并重建所有表
func dropAndRecreateTables(db *gorm.DB) error {
	// 按依赖关系倒序删除，Migrator负责处理方言差异
	err := db.Migrator().DropTable(
		&models.MessageTemplate{},
		&models.Broadcast{},
		&models.Need{},
		&models.Requirement{},
		&models.Message{},
		&models.Contact{},
		&models.AdminAccount{},
	)
	if err != nil {
		log.Printf("删除表失败: %v", err)
	}

	// 重新创建表
	return autoMigrate(db)
}

// ensureSuperAdminExists 确保系统中有超级管理员账户
// 仅在账号表为空且设置了 DEFAULT_ADMIN_PASSWORD 时写入种子账号，
// 否则首个注册账号自动成为超级管理员
func ensureSuperAdminExists(db *gorm.DB, cfg *config.Config) {
	if cfg.DefaultAdminPassword == "" {
		return
	}

	var count int64
	db.Model(&models.AdminAccount{}).Count(&count)

	if count == 0 {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.DefaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("生成密码哈希失败: %v", err)
		}

		admin := models.AdminAccount{
			Name:     "admin",
			Phone:    "0000000000",
			Password: string(hashedPassword),
			Tier:     models.TierSuperAdmin,
			Status:   "active",
		}

		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("创建默认管理员失败: %v", err)
		}

		log.Println("已创建默认超级管理员账户")
	}
}

// printSystemInfo 打印系统信息
func printSystemInfo(pool *database.ConnectionPool) {
	// 打印数据库连接池信息
	stats, err := pool.Stats()
	if err == nil {
		log.Printf("数据库连接池状态: %+v", stats)
	}

	// 打印系统资源信息
	log.Printf("系统CPU核心数: %d", runtime.NumCPU())
	log.Printf("当前Go协程数: %d", runtime.NumGoroutine())
}

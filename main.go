package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"chainclub/internal/config"
	"chainclub/internal/handler"
	"chainclub/internal/logic/reconcile"
	"chainclub/internal/svc"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"
)

var configFile = flag.String("f", "etc/chainclub-api.yaml", "the config file")

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)

	server := rest.MustNewServer(c.RestConf)
	defer server.Stop()

	ctx := svc.NewServiceContext(c)
	handler.RegisterHandlers(server, ctx)

	// 对账任务：补记链上已成功但本地仍待铸造的会员卡
	reconciler := reconcile.NewReconciler(ctx)
	reconciler.Start()

	// 设置优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("Starting server at %s:%d...\n", c.Host, c.Port)
	if c.OnChainEnabled() {
		fmt.Printf("🔗 链上铸造已启用, 合约: %s\n", c.Chain.ContractAddress)
	} else {
		fmt.Println("⚠️ 未配置合约地址/铸造私钥，链上铸造为开发模式（模拟）")
	}

	// 在独立的goroutine中启动服务器
	go func() {
		server.Start()
	}()

	// 等待退出信号
	<-quit
	fmt.Println("\n🛑 收到退出信号，正在优雅关闭服务...")

	// 停止对账任务
	reconciler.Stop()

	fmt.Println("✅ 服务已安全退出")
}

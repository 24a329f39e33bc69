package config

import (
	"errors"

	"github.com/zeromicro/go-zero/rest"
)

// ChainConf holds the target network configuration.
type ChainConf struct {
	Name            string `json:"Name"`
	RpcUrl          string `json:"RpcUrl"`
	ChainId         int64  `json:"ChainId"`
	ContractAddress string `json:",optional"`
}

// IpfsConf 元数据存储配置。ApiUrl 为空时服务进入占位符模式（开发环境）
type IpfsConf struct {
	ApiUrl        string `json:",optional"`
	ProjectId     string `json:",optional"`
	ProjectSecret string `json:",optional"`
}

type Config struct {
	rest.RestConf
	Postgres struct {
		DSN string
	}
	Chain ChainConf
	Ipfs  IpfsConf
	Auth  struct {
		JwtSecret     string
		ExpireSeconds int64 `json:",default=604800"` // 默认 7 天
	}
	Crypto struct {
		// MasterKey 用于加密托管私钥，启动时必须存在
		MasterKey string
	}
	Minter struct {
		// PrivateKey 平台铸造签名私钥（deployer key），与用户托管私钥严格区分。
		// 为空时跳过链上铸造（开发模式）
		PrivateKey string `json:",optional"`
	}
	Reconcile struct {
		IntervalSeconds int64 `json:",default=60"`
	}
}

// Validate 启动时校验必填的密钥配置，缺失直接失败，避免运行期才暴露
func (c Config) Validate() error {
	if c.Postgres.DSN == "" {
		return errors.New("config: Postgres.DSN is required")
	}
	if c.Crypto.MasterKey == "" {
		return errors.New("config: Crypto.MasterKey is required")
	}
	if c.Auth.JwtSecret == "" {
		return errors.New("config: Auth.JwtSecret is required")
	}
	if c.Chain.RpcUrl == "" {
		return errors.New("config: Chain.RpcUrl is required")
	}
	// 合约地址和铸造私钥必须同时配置或同时缺省
	if (c.Chain.ContractAddress == "") != (c.Minter.PrivateKey == "") {
		return errors.New("config: Chain.ContractAddress and Minter.PrivateKey must be set together")
	}
	return nil
}

// OnChainEnabled 是否配置了真实链上铸造
func (c Config) OnChainEnabled() bool {
	return c.Chain.ContractAddress != "" && c.Minter.PrivateKey != ""
}

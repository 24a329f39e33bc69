package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"

	"github.com/ethereum/go-ethereum/crypto"
)

// 生成部署配置需要的全部密钥：主加密密钥、JWT 密钥、平台铸造密钥对。
// 输出直接填入 etc/chainclub-api.yaml
func main() {
	withMinter := flag.Bool("minter", true, "是否生成平台铸造密钥对 (deployer key)")
	flag.Parse()

	fmt.Println("--- ChainClub 密钥引导 ---")

	// 1. 主加密密钥（32 字节，hex 编码）
	masterKey := make([]byte, 32)
	if _, err := rand.Read(masterKey); err != nil {
		log.Fatalf("错误: 生成主加密密钥失败: %v", err)
	}
	fmt.Printf("Crypto.MasterKey:  %s\n", hex.EncodeToString(masterKey))

	// 2. JWT 密钥
	jwtSecret := make([]byte, 32)
	if _, err := rand.Read(jwtSecret); err != nil {
		log.Fatalf("错误: 生成 JWT 密钥失败: %v", err)
	}
	fmt.Printf("Auth.JwtSecret:    %s\n", hex.EncodeToString(jwtSecret))

	// 3. 平台铸造密钥对
	if *withMinter {
		minterKey, err := crypto.GenerateKey()
		if err != nil {
			log.Fatalf("错误: 生成铸造密钥失败: %v", err)
		}
		fmt.Printf("Minter.PrivateKey: %s\n", hex.EncodeToString(crypto.FromECDSA(minterKey)))
		fmt.Printf("Minter 地址:       %s\n", crypto.PubkeyToAddress(minterKey.PublicKey).Hex())
		fmt.Println("\n⚠️ 请给 Minter 地址充值 gas，并将其设为合约的铸造权限账户")
	}

	fmt.Println("\n⚠️ 以上密钥只输出这一次，请立即妥善保存，切勿提交到版本库")
}

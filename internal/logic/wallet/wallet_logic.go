package wallet

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"chainclub/internal/errorx"
	"chainclub/internal/model"
	"chainclub/internal/svc"
	"chainclub/internal/types"
	"chainclub/internal/vault"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/params"
	"github.com/zeromicro/go-zero/core/logx"
)

type WalletLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewWalletLogic(ctx context.Context, svcCtx *svc.ServiceContext) *WalletLogic {
	return &WalletLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// generatedWallet 新生成的密钥对，只在创建流程内部短暂存在
type generatedWallet struct {
	address       string
	privateKeyHex string
}

// generateWallet 生成一个全新的 EVM 密钥对
func generateWallet() (*generatedWallet, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate private key: %v", err)
	}

	publicKey := privateKey.Public()
	publicKeyECDSA, ok := publicKey.(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("failed to cast public key to ECDSA")
	}

	return &generatedWallet{
		address:       crypto.PubkeyToAddress(*publicKeyECDSA).Hex(),
		privateKeyHex: hex.EncodeToString(crypto.FromECDSA(privateKey)),
	}, nil
}

// CreateWalletForUser 为用户创建托管钱包，每用户至多一个。
// 私钥经 vault 加密后入库，明文私钥不离开本函数
func (l *WalletLogic) CreateWalletForUser(userId string) (*types.WalletView, error) {
	l.Infof("--- 开始为用户 %s 创建托管钱包 ---", userId)

	// 1. 先查重，避免无谓的密钥生成
	if _, err := l.svcCtx.WalletsDao.FindOneByUserId(l.ctx, userId); err == nil {
		l.Infof("用户 %s 已有钱包，拒绝重复创建", userId)
		return nil, errorx.Conflict("user already has a wallet")
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing wallet: %v", err)
	}

	// 2. 生成密钥对
	l.Infof("步骤 1: 生成 EVM 密钥对...")
	generated, err := generateWallet()
	if err != nil {
		l.Errorf("密钥对生成失败: %v", err)
		return nil, err
	}
	l.Infof("密钥对生成成功, 地址: %s", generated.address)

	// 3. 加密私钥
	l.Infof("步骤 2: 加密私钥...")
	encrypted, err := vault.Encrypt(generated.privateKeyHex, l.svcCtx.Config.Crypto.MasterKey)
	if err != nil {
		l.Errorf("私钥加密失败: %v", err)
		return nil, err
	}

	// 4. 入库。唯一约束兜底并发的重复创建
	l.Infof("步骤 3: 保存钱包记录...")
	newWallet := &model.Wallets{
		UserId:              userId,
		Address:             generated.address,
		EncryptedPrivateKey: encrypted,
		Balance:             "0",
	}
	if err := l.svcCtx.WalletsDao.Insert(l.ctx, newWallet); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			l.Infof("并发创建被唯一约束拦截, user: %s", userId)
			return nil, errorx.Conflict("user already has a wallet")
		}
		return nil, fmt.Errorf("failed to save wallet to database: %v", err)
	}

	l.Infof("--- ✅ 用户 %s 钱包创建成功: %s ---", userId, generated.address)
	return &types.WalletView{
		Address:   newWallet.Address,
		Balance:   newWallet.Balance,
		CreatedAt: newWallet.CreatedAt.Format(time.RFC3339),
	}, nil
}

// CreateWallet 显式创建钱包接口（POST /api/wallet/create）
func (l *WalletLogic) CreateWallet(userId string) (*types.WalletCreateResp, error) {
	view, err := l.CreateWalletForUser(userId)
	if err != nil {
		return nil, err
	}
	return &types.WalletCreateResp{Wallet: *view}, nil
}

// WalletInfo 查询钱包信息并刷新缓存余额。
// 链上查询失败时返回 ChainUnavailableError，缓存保持原值不被污染
func (l *WalletLogic) WalletInfo(userId string) (*types.WalletInfoResp, error) {
	wallet, err := l.findWallet(userId)
	if err != nil {
		return nil, err
	}

	l.Infof("查询链上余额, address: %s", wallet.Address)
	balance, err := l.FetchChainBalance(wallet.Address)
	if err != nil {
		l.Errorf("链上余额查询失败: %v", err)
		return nil, err
	}

	// 回写缓存，失败只记日志，不影响响应
	if err := l.svcCtx.WalletsDao.UpdateBalance(l.ctx, userId, balance); err != nil {
		l.Errorf("余额缓存回写失败: %v", err)
	}

	return &types.WalletInfoResp{
		Wallet: types.WalletView{
			Address:   wallet.Address,
			Balance:   balance,
			CreatedAt: wallet.CreatedAt.Format(time.RFC3339),
		},
	}, nil
}

// WalletBalance 实时查询余额，不回写缓存
func (l *WalletLogic) WalletBalance(userId string) (*types.WalletBalanceResp, error) {
	wallet, err := l.findWallet(userId)
	if err != nil {
		return nil, err
	}

	balance, err := l.FetchChainBalance(wallet.Address)
	if err != nil {
		return nil, err
	}

	return &types.WalletBalanceResp{
		Address: wallet.Address,
		Balance: balance,
	}, nil
}

// WalletAddress 查询钱包地址
func (l *WalletLogic) WalletAddress(userId string) (*types.WalletAddressResp, error) {
	wallet, err := l.findWallet(userId)
	if err != nil {
		return nil, err
	}
	return &types.WalletAddressResp{Address: wallet.Address}, nil
}

func (l *WalletLogic) findWallet(userId string) (*model.Wallets, error) {
	wallet, err := l.svcCtx.WalletsDao.FindOneByUserId(l.ctx, userId)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errorx.NotFound("wallet not found")
		}
		return nil, err
	}
	return wallet, nil
}

// FetchChainBalance 查询地址的链上余额，返回以 ether 计的十进制字符串
func (l *WalletLogic) FetchChainBalance(address string) (string, error) {
	client, err := ethclient.Dial(l.svcCtx.Config.Chain.RpcUrl)
	if err != nil {
		return "", errorx.ChainUnavailable("failed to connect to chain", err)
	}
	defer client.Close()

	wei, err := client.BalanceAt(l.ctx, common.HexToAddress(address), nil)
	if err != nil {
		return "", errorx.ChainUnavailable("failed to fetch balance", err)
	}

	return formatEther(wei), nil
}

// formatEther 将 wei 渲染为 ether 十进制字符串，去掉多余的尾零
func formatEther(wei *big.Int) string {
	rat := new(big.Rat).SetFrac(wei, big.NewInt(params.Ether))
	s := rat.FloatString(18)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" {
		return "0"
	}
	return s
}

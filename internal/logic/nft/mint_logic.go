package nft

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"chainclub/internal/constant"
	"chainclub/internal/errorx"
	"chainclub/internal/ipfs"
	"chainclub/internal/model"
	"chainclub/internal/svc"
	"chainclub/internal/types"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	evmTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/zeromicro/go-zero/core/logx"
)

// memberCardABIJson mintNFT(to, tokenURI) 入口的最小 ABI
const memberCardABIJson = `[
	{"name":"mintNFT","type":"function","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"tokenURI","type":"string"}],
	 "outputs":[{"name":"","type":"uint256"}]}
]`

// receiptWaitTimeout 等待交易确认的上限，超时按失败处理，
// 待铸造记录保留给对账任务
const receiptWaitTimeout = 2 * time.Minute

var memberCardABI abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(memberCardABIJson))
	if err != nil {
		panic(fmt.Sprintf("invalid member card ABI: %v", err))
	}
	memberCardABI = parsed
}

type NftLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewNftLogic(ctx context.Context, svcCtx *svc.ServiceContext) *NftLogic {
	return &NftLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// MintMemberCard 为用户铸造会员卡。
// 流程: 资格检查 -> 发布元数据 -> 落库待铸造记录 -> 链上提交 -> 确认后置为已铸造。
// 未配置合约或铸造私钥时跳过链上提交（开发模式）
func (l *NftLogic) MintMemberCard(userId string) (*types.MintMemberCardResp, error) {
	l.Infof("--- 开始处理会员卡铸造请求, user: %s ---", userId)

	user, err := l.svcCtx.UsersDao.FindOneById(l.ctx, userId)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errorx.NotFound("user not found")
		}
		return nil, err
	}

	wallet, err := l.svcCtx.WalletsDao.FindOneByUserId(l.ctx, userId)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errorx.NotFound("wallet not found")
		}
		return nil, err
	}

	// 1. 资格检查：每个用户至多持有一张已铸造的会员卡
	l.Infof("步骤 1: 检查铸造资格...")
	minted, err := l.svcCtx.NftsDao.HasMinted(l.ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("failed to check minting eligibility: %v", err)
	}
	if minted {
		l.Infof("用户 %s 已持有会员卡，拒绝重复铸造", userId)
		return nil, errorx.AlreadyMinted("user already has a minted member card")
	}

	// 2. 分配 token id（毫秒时间戳，唯一性由数据库约束兜底）
	tokenId := strconv.FormatInt(time.Now().UnixMilli(), 10)
	l.Infof("步骤 2: 分配 tokenId: %s", tokenId)

	// 3. 发布元数据。存储不可用时降级为占位符 CID，铸造继续
	l.Infof("步骤 3: 发布元数据...")
	metadata := generateMetadata(user)
	cid, err := l.svcCtx.Publisher.Publish(l.ctx, metadata)
	if err != nil {
		l.Errorf("元数据发布失败，降级为占位符 CID: %v", err)
		cid = ipfs.PlaceholderCid()
	}
	metadataUrl := "ipfs://" + cid
	l.Infof("元数据 CID: %s", cid)

	// 4. 落库待铸造记录。token_id 冲突说明分配撞车，本次请求失败，
	// 已有记录保留不回滚
	l.Infof("步骤 4: 保存待铸造记录...")
	pending := &model.Nfts{
		UserId:          userId,
		TokenId:         tokenId,
		Name:            metadata.Name,
		Description:     metadata.Description,
		ImageUrl:        metadata.Image,
		MetadataUrl:     metadataUrl,
		ContractAddress: l.svcCtx.Config.Chain.ContractAddress,
		Network:         l.networkName(),
		IsMinted:        false,
	}
	if err := l.svcCtx.NftsDao.Insert(l.ctx, pending); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			l.Errorf("待铸造记录写入冲突, tokenId: %s", tokenId)
			return nil, errorx.Conflict("token id already exists")
		}
		return nil, fmt.Errorf("failed to store pending token: %v", err)
	}

	// 5. 链上提交。开发模式直接置为已铸造
	if !l.svcCtx.Config.OnChainEnabled() {
		l.Infof("步骤 5: 未配置合约地址或铸造私钥，跳过链上铸造（开发模式）")
		return l.finalizeMint(tokenId, constant.DevTxHash, 0)
	}

	l.Infof("步骤 5: 提交链上铸造交易, to: %s", wallet.Address)
	txHash, blockNumber, err := l.mintOnChain(wallet.Address, metadataUrl, tokenId)
	if err != nil {
		// 待铸造记录保留，由对账任务或人工处理
		l.Errorf("链上铸造失败, tokenId %s 保持待铸造状态: %v", tokenId, err)
		return nil, err
	}

	return l.finalizeMint(tokenId, txHash, blockNumber)
}

// finalizeMint 把待铸造记录置为已铸造并组装响应
func (l *NftLogic) finalizeMint(tokenId, txHash string, blockNumber int64) (*types.MintMemberCardResp, error) {
	nft, err := l.svcCtx.NftsDao.MarkMinted(context.Background(), tokenId, txHash, blockNumber)
	if err != nil {
		if errors.Is(err, model.ErrAlreadyMinted) {
			return nil, errorx.Conflict("token already marked as minted")
		}
		// 并发铸造的败者：每用户一张的唯一约束拦下了第二行
		if errors.Is(err, model.ErrDuplicate) {
			l.Errorf("并发铸造冲突, tokenId %s 保持待铸造状态", tokenId)
			return nil, errorx.AlreadyMinted("user already has a minted member card")
		}
		return nil, fmt.Errorf("failed to mark token as minted: %v", err)
	}

	l.Infof("--- ✅ 会员卡铸造完成, tokenId: %s, tx: %s, block: %d ---", tokenId, txHash, blockNumber)
	return &types.MintMemberCardResp{
		Nft:             toNftView(nft),
		TransactionHash: txHash,
		BlockNumber:     blockNumber,
	}, nil
}

// mintOnChain 用平台铸造私钥调用合约的 mintNFT(to, tokenURI) 并等待一次确认。
// 注意：签名用的是平台 deployer key，绝不使用用户的托管私钥。
// 提交开始后使用独立的 context，客户端断开不能把交易丢在半路
func (l *NftLogic) mintOnChain(toAddress, tokenURI, tokenId string) (string, int64, error) {
	ctx := context.Background()

	client, err := ethclient.Dial(l.svcCtx.Config.Chain.RpcUrl)
	if err != nil {
		return "", 0, errorx.ChainUnavailable("failed to connect to chain", err)
	}
	defer client.Close()

	minterKey, err := crypto.HexToECDSA(strings.TrimPrefix(l.svcCtx.Config.Minter.PrivateKey, "0x"))
	if err != nil {
		return "", 0, errorx.Crypto("invalid minter private key", nil)
	}
	minterAddr := crypto.PubkeyToAddress(minterKey.PublicKey)

	// 构建 mintNFT 调用数据
	data, err := memberCardABI.Pack("mintNFT", common.HexToAddress(toAddress), tokenURI)
	if err != nil {
		return "", 0, fmt.Errorf("failed to pack mint calldata: %v", err)
	}

	contractAddr := common.HexToAddress(l.svcCtx.Config.Chain.ContractAddress)

	nonce, err := client.PendingNonceAt(ctx, minterAddr)
	if err != nil {
		return "", 0, errorx.ChainUnavailable("failed to get nonce", err)
	}

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return "", 0, errorx.ChainUnavailable("failed to get gas price", err)
	}

	gasLimit, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From: minterAddr,
		To:   &contractAddr,
		Data: data,
	})
	if err != nil {
		l.Infof("Gas 估算失败，使用默认值: %v", err)
		gasLimit = 300000
	}
	// 增加缓冲
	gasLimit = gasLimit * 120 / 100

	tx := evmTypes.NewTx(&evmTypes.LegacyTx{
		Nonce:    nonce,
		To:       &contractAddr,
		Value:    big.NewInt(0),
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signedTx, err := evmTypes.SignTx(tx, evmTypes.NewEIP155Signer(big.NewInt(l.svcCtx.Config.Chain.ChainId)), minterKey)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign mint transaction: %v", err)
	}
	txHash := signedTx.Hash().Hex()
	l.Infof("铸造交易已签名, TxHash: %s", txHash)

	if err := client.SendTransaction(ctx, signedTx); err != nil {
		return "", 0, errorx.ChainUnavailable("failed to send mint transaction", err)
	}

	// 交易已上链广播，先把哈希落库，崩溃后对账任务还能找回这笔交易
	if err := l.svcCtx.NftsDao.SetTxHash(ctx, tokenId, txHash); err != nil {
		l.Errorf("交易哈希落库失败, tokenId: %s, tx: %s: %v", tokenId, txHash, err)
	}

	l.Infof("铸造交易已发送，等待确认: %s", txHash)
	receipt, err := l.waitForReceipt(ctx, client, signedTx.Hash())
	if err != nil {
		return "", 0, errorx.ChainUnavailable("failed waiting for mint confirmation", err)
	}
	if receipt.Status != evmTypes.ReceiptStatusSuccessful {
		return "", 0, errorx.ChainUnavailable(fmt.Sprintf("mint transaction reverted: %s", txHash), nil)
	}

	l.Infof("铸造交易已确认, block: %d", receipt.BlockNumber.Int64())
	return txHash, receipt.BlockNumber.Int64(), nil
}

// waitForReceipt 轮询交易回执，超时即失败
func (l *NftLogic) waitForReceipt(ctx context.Context, client *ethclient.Client, txHash common.Hash) (*evmTypes.Receipt, error) {
	waitCtx, cancel := context.WithTimeout(ctx, receiptWaitTimeout)
	defer cancel()

	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-waitCtx.Done():
			return nil, waitCtx.Err()
		case <-ticker.C:
			receipt, err := client.TransactionReceipt(waitCtx, txHash)
			if err != nil {
				if errors.Is(err, ethereum.NotFound) {
					l.Infof("交易尚未确认，继续等待...")
					continue
				}
				return nil, err
			}
			return receipt, nil
		}
	}
}

func (l *NftLogic) networkName() string {
	if l.svcCtx.Config.Chain.Name != "" {
		return l.svcCtx.Config.Chain.Name
	}
	return constant.NetworkSepolia
}

// Package reconcile 周期性回查待铸造记录。
// 铸造流程崩溃或确认超时后，链上可能已经成功而本地仍是待铸造；
// 对账任务按已落库的交易哈希重新核对回执，把这类记录补记为已铸造。
package reconcile

import (
	"context"
	"errors"
	"time"

	"chainclub/internal/model"
	"chainclub/internal/svc"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	evmTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/zeromicro/go-zero/core/logx"
)

type Reconciler struct {
	svcCtx   *svc.ServiceContext
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
	logx.Logger
}

func NewReconciler(svcCtx *svc.ServiceContext) *Reconciler {
	interval := time.Duration(svcCtx.Config.Reconcile.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	return &Reconciler{
		svcCtx:   svcCtx,
		interval: interval,
		done:     make(chan struct{}),
		Logger:   logx.WithContext(context.Background()),
	}
}

// Start 启动后台对账循环
func (r *Reconciler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	go func() {
		defer close(r.done)
		r.Infof("对账任务已启动, 间隔: %s", r.interval)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				r.Infof("对账任务已停止")
				return
			case <-ticker.C:
				if err := r.runOnce(ctx); err != nil {
					r.Errorf("对账执行失败: %v", err)
				}
			}
		}
	}()
}

// Stop 停止对账循环并等待退出
func (r *Reconciler) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}

// runOnce 单轮对账：回查所有带交易哈希的待铸造记录
func (r *Reconciler) runOnce(ctx context.Context) error {
	pending, err := r.svcCtx.NftsDao.FindPendingWithTxHash(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}
	r.Infof("发现 %d 条待对账记录", len(pending))

	client, err := ethclient.Dial(r.svcCtx.Config.Chain.RpcUrl)
	if err != nil {
		return err
	}
	defer client.Close()

	for _, nft := range pending {
		r.reconcileOne(ctx, client, nft)
	}
	return nil
}

// reconcileOne 核对单条记录的链上回执
func (r *Reconciler) reconcileOne(ctx context.Context, client *ethclient.Client, nft *model.Nfts) {
	txHash := common.HexToHash(nft.TxHash.String)

	receipt, err := client.TransactionReceipt(ctx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			// 交易还没上链，下一轮再看
			return
		}
		r.Errorf("回执查询失败, tokenId: %s, tx: %s: %v", nft.TokenId, nft.TxHash.String, err)
		return
	}

	if receipt.Status != evmTypes.ReceiptStatusSuccessful {
		// 交易被回滚，记录保持待铸造，留给人工处理
		r.Errorf("铸造交易已回滚, tokenId: %s, tx: %s", nft.TokenId, nft.TxHash.String)
		return
	}

	if _, err := r.svcCtx.NftsDao.MarkMinted(ctx, nft.TokenId, nft.TxHash.String, receipt.BlockNumber.Int64()); err != nil {
		if errors.Is(err, model.ErrAlreadyMinted) {
			// 已被别处补记，无事可做
			return
		}
		r.Errorf("对账补记失败, tokenId: %s: %v", nft.TokenId, err)
		return
	}
	r.Infof("✅ 对账补记成功, tokenId: %s, block: %d", nft.TokenId, receipt.BlockNumber.Int64())
}

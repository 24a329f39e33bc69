package reconcile

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainclub/internal/config"
	"chainclub/internal/model"
	"chainclub/internal/svc"
)

// fakeNftsDao 只实现对账路径需要的方法，其余不会被调用
type fakeNftsDao struct {
	pending []*model.Nfts
	calls   int
}

func (f *fakeNftsDao) Insert(context.Context, *model.Nfts) error { panic("not used") }

func (f *fakeNftsDao) FindOneByTokenId(context.Context, string) (*model.Nfts, error) {
	panic("not used")
}

func (f *fakeNftsDao) FindByUserId(context.Context, string) ([]*model.Nfts, error) {
	panic("not used")
}

func (f *fakeNftsDao) HasMinted(context.Context, string) (bool, error) { panic("not used") }

func (f *fakeNftsDao) VerifyOwnership(context.Context, string, string) (bool, error) {
	panic("not used")
}

func (f *fakeNftsDao) SetTxHash(context.Context, string, string) error { panic("not used") }

func (f *fakeNftsDao) MarkMinted(_ context.Context, tokenId, txHash string, blockNumber int64) (*model.Nfts, error) {
	panic("not used")
}

func (f *fakeNftsDao) FindPendingWithTxHash(context.Context) ([]*model.Nfts, error) {
	f.calls++
	return f.pending, nil
}

func newTestReconciler(dao model.NftsDao) *Reconciler {
	var c config.Config
	c.Chain.RpcUrl = "http://127.0.0.1:1" // 不可达，空队列时不应被访问
	c.Reconcile.IntervalSeconds = 1
	return NewReconciler(&svc.ServiceContext{Config: c, NftsDao: dao})
}

func TestRunOnceNoPendingRows(t *testing.T) {
	dao := &fakeNftsDao{}
	r := newTestReconciler(dao)

	// 没有待对账记录时不访问链，直接返回
	err := r.runOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, dao.calls)
}

func TestRunOnceChainUnavailable(t *testing.T) {
	dao := &fakeNftsDao{pending: []*model.Nfts{{
		TokenId: "tok-1",
		TxHash:  sql.NullString{String: "0xabc", Valid: true},
	}}}
	r := newTestReconciler(dao)

	// RPC 不可达时返回错误，不 panic，记录保持原状
	err := r.runOnce(context.Background())
	require.Error(t, err)
	assert.False(t, dao.pending[0].IsMinted)
}

func TestStartStop(t *testing.T) {
	r := newTestReconciler(&fakeNftsDao{})
	r.Start()

	done := make(chan struct{})
	go func() {
		r.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("reconciler did not stop in time")
	}
}

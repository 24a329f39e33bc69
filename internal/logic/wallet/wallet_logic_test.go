package wallet

import (
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainclub/internal/config"
	"chainclub/internal/errorx"
	"chainclub/internal/model"
	"chainclub/internal/svc"
	"chainclub/internal/vault"
)

// fakeWalletsDao 内存实现，按 user_id 和 address 模拟唯一约束
type fakeWalletsDao struct {
	byUser map[string]*model.Wallets
	byAddr map[string]*model.Wallets
}

func newFakeWalletsDao() *fakeWalletsDao {
	return &fakeWalletsDao{
		byUser: make(map[string]*model.Wallets),
		byAddr: make(map[string]*model.Wallets),
	}
}

func (f *fakeWalletsDao) Insert(_ context.Context, data *model.Wallets) error {
	if _, ok := f.byUser[data.UserId]; ok {
		return model.ErrDuplicate
	}
	if _, ok := f.byAddr[data.Address]; ok {
		return model.ErrDuplicate
	}
	f.byUser[data.UserId] = data
	f.byAddr[data.Address] = data
	return nil
}

func (f *fakeWalletsDao) FindOneByUserId(_ context.Context, userId string) (*model.Wallets, error) {
	if w, ok := f.byUser[userId]; ok {
		return w, nil
	}
	return nil, model.ErrNotFound
}

func (f *fakeWalletsDao) FindOneByAddress(_ context.Context, address string) (*model.Wallets, error) {
	if w, ok := f.byAddr[address]; ok {
		return w, nil
	}
	return nil, model.ErrNotFound
}

func (f *fakeWalletsDao) UpdateBalance(_ context.Context, userId string, balance string) error {
	if w, ok := f.byUser[userId]; ok {
		w.Balance = balance
		return nil
	}
	return model.ErrNotFound
}

func newTestLogic(dao model.WalletsDao) *WalletLogic {
	var c config.Config
	c.Crypto.MasterKey = "test-master-key"
	c.Chain.RpcUrl = "http://127.0.0.1:1" // 链上调用在这些测试里不会发生
	return NewWalletLogic(context.Background(), &svc.ServiceContext{
		Config:     c,
		WalletsDao: dao,
	})
}

func TestGenerateWallet(t *testing.T) {
	first, err := generateWallet()
	require.NoError(t, err)
	second, err := generateWallet()
	require.NoError(t, err)

	assert.True(t, common.IsHexAddress(first.address))
	assert.True(t, common.IsHexAddress(second.address))
	assert.NotEqual(t, first.address, second.address)
	assert.Len(t, first.privateKeyHex, 64)
}

func TestCreateWalletForUser(t *testing.T) {
	dao := newFakeWalletsDao()
	l := newTestLogic(dao)

	view, err := l.CreateWalletForUser("user-1")
	require.NoError(t, err)
	assert.True(t, common.IsHexAddress(view.Address))
	assert.Equal(t, "0", view.Balance)

	// 入库的必须是密文，且可以用主密钥还原
	stored := dao.byUser["user-1"]
	require.NotNil(t, stored)
	assert.NotEqual(t, view.Address, stored.EncryptedPrivateKey)
	assert.Contains(t, stored.EncryptedPrivateKey, ":")
	plaintext, err := vault.Decrypt(stored.EncryptedPrivateKey, "test-master-key")
	require.NoError(t, err)
	assert.Len(t, plaintext, 64)
}

func TestCreateWalletForUserConflict(t *testing.T) {
	dao := newFakeWalletsDao()
	l := newTestLogic(dao)

	view, err := l.CreateWalletForUser("user-1")
	require.NoError(t, err)

	// 第二次创建必须失败，且原地址保持不变
	_, err = l.CreateWalletForUser("user-1")
	require.Error(t, err)
	assert.Equal(t, errorx.KindConflict, errorx.KindOf(err))
	assert.Equal(t, view.Address, dao.byUser["user-1"].Address)
}

func TestWalletAddressNotFound(t *testing.T) {
	l := newTestLogic(newFakeWalletsDao())

	_, err := l.WalletAddress("missing-user")
	require.Error(t, err)
	assert.Equal(t, errorx.KindNotFound, errorx.KindOf(err))
}

func TestFormatEther(t *testing.T) {
	cases := []struct {
		wei  string
		want string
	}{
		{"0", "0"},
		{"1000000000000000000", "1"},
		{"1500000000000000000", "1.5"},
		{"1", "0.000000000000000001"},
		{"2340000000000000000000", "2340"},
	}
	for _, tc := range cases {
		wei, ok := new(big.Int).SetString(tc.wei, 10)
		require.True(t, ok)
		got := formatEther(wei)
		assert.Equal(t, tc.want, got, "wei=%s", tc.wei)
		assert.False(t, strings.HasSuffix(got, "."))
	}
}

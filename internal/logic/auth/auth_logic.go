package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"chainclub/internal/errorx"
	"chainclub/internal/logic/nft"
	"chainclub/internal/logic/wallet"
	"chainclub/internal/model"
	"chainclub/internal/svc"
	"chainclub/internal/types"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost 与既有存量密码哈希保持一致
const bcryptCost = 12

type AuthLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewAuthLogic(ctx context.Context, svcCtx *svc.ServiceContext) *AuthLogic {
	return &AuthLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// Register 注册新用户：建档 -> 创建托管钱包 -> 尽力铸造会员卡 -> 签发 JWT。
// 铸卡失败不阻断注册，用户稍后可在 /api/nft/mint-member-card 重试
func (l *AuthLogic) Register(req *types.RegisterReq) (*types.RegisterResp, error) {
	l.Infof("--- 开始处理注册请求, email: %s ---", req.Email)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errorx.Conflict("a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, errorx.Conflict("password must be at least 8 characters")
	}

	// 1. 邮箱与用户名查重
	if _, err := l.svcCtx.UsersDao.FindOneByEmail(l.ctx, email); err == nil {
		return nil, errorx.Conflict("user with this email already exists")
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %v", err)
	}
	if req.Username != "" {
		if _, err := l.svcCtx.UsersDao.FindOneByUsername(l.ctx, req.Username); err == nil {
			return nil, errorx.Conflict("username is already taken")
		} else if !errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("failed to check existing username: %v", err)
		}
	}

	// 2. 密码哈希
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	// 3. 建档
	user := &model.Users{
		Id:        uuid.NewString(),
		Email:     email,
		Password:  string(hashed),
		Username:  sql.NullString{String: req.Username, Valid: req.Username != ""},
		FirstName: sql.NullString{String: req.FirstName, Valid: req.FirstName != ""},
		LastName:  sql.NullString{String: req.LastName, Valid: req.LastName != ""},
	}
	if err := l.svcCtx.UsersDao.Insert(l.ctx, user); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, errorx.Conflict("user with this email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %v", err)
	}
	l.Infof("用户建档成功, id: %s", user.Id)

	// 4. 创建托管钱包
	walletLogic := wallet.NewWalletLogic(l.ctx, l.svcCtx)
	walletView, err := walletLogic.CreateWalletForUser(user.Id)
	if err != nil {
		l.Errorf("注册时创建钱包失败, user: %s: %v", user.Id, err)
		return nil, err
	}

	// 5. 尽力铸造会员卡，失败不影响注册
	var nftView *types.NftView
	mintResp, mintErr := nft.NewNftLogic(l.ctx, l.svcCtx).MintMemberCard(user.Id)
	if mintErr != nil {
		l.Errorf("注册时铸造会员卡失败（注册继续）, user: %s: %v", user.Id, mintErr)
	} else {
		nftView = &mintResp.Nft
	}

	// 6. 签发 JWT
	token, err := l.issueToken(user)
	if err != nil {
		return nil, err
	}

	l.Infof("--- ✅ 注册完成, user: %s ---", user.Id)
	return &types.RegisterResp{
		User:   toUserView(user),
		Wallet: walletView,
		Nft:    nftView,
		Token:  token,
	}, nil
}

// Login 邮箱密码登录
func (l *AuthLogic) Login(req *types.LoginReq) (*types.LoginResp, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	l.Infof("--- 开始处理登录请求, email: %s ---", email)

	user, err := l.svcCtx.UsersDao.FindOneByEmail(l.ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// 统一返回无效凭证，不暴露账号是否存在
			return nil, errorx.Unauthorized("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errorx.Unauthorized("invalid email or password")
	}

	// 带上钱包信息；没有钱包的老账号不报错。
	// 余额尽力刷新：链上查询成功就回写缓存，失败用缓存值兜底
	var walletView *types.WalletView
	if w, err := l.svcCtx.WalletsDao.FindOneByUserId(l.ctx, user.Id); err == nil {
		balance := w.Balance
		if fresh, err := wallet.NewWalletLogic(l.ctx, l.svcCtx).FetchChainBalance(w.Address); err == nil {
			balance = fresh
			if err := l.svcCtx.WalletsDao.UpdateBalance(l.ctx, user.Id, fresh); err != nil {
				l.Errorf("登录时余额缓存回写失败, user: %s: %v", user.Id, err)
			}
		} else {
			l.Infof("登录时链上余额刷新失败，使用缓存值: %v", err)
		}
		walletView = &types.WalletView{
			Address:   w.Address,
			Balance:   balance,
			CreatedAt: w.CreatedAt.Format(time.RFC3339),
		}
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	// 会员卡列表随登录响应返回，查询失败只记日志
	var nftViews []types.NftView
	if nftsResp, err := nft.NewNftLogic(l.ctx, l.svcCtx).MyNfts(user.Id); err == nil {
		nftViews = nftsResp.Nfts
	} else {
		l.Errorf("登录时查询会员卡失败, user: %s: %v", user.Id, err)
	}

	token, err := l.issueToken(user)
	if err != nil {
		return nil, err
	}

	l.Infof("--- ✅ 登录成功, user: %s ---", user.Id)
	return &types.LoginResp{
		User:   toUserView(user),
		Wallet: walletView,
		Nfts:   nftViews,
		Token:  token,
	}, nil
}

// Profile 返回当前用户信息
func (l *AuthLogic) Profile(userId string) (*types.ProfileResp, error) {
	user, err := l.svcCtx.UsersDao.FindOneById(l.ctx, userId)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errorx.NotFound("user not found")
		}
		return nil, err
	}
	return &types.ProfileResp{User: toUserView(user)}, nil
}

// issueToken 签发携带 userId 和 email 的 HS256 JWT
func (l *AuthLogic) issueToken(user *model.Users) (string, error) {
	expire := l.svcCtx.Config.Auth.ExpireSeconds
	claims := jwt.MapClaims{
		"userId": user.Id,
		"email":  user.Email,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(time.Duration(expire) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(l.svcCtx.Config.Auth.JwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %v", err)
	}
	return signed, nil
}

func toUserView(u *model.Users) types.UserView {
	return types.UserView{
		Id:        u.Id,
		Email:     u.Email,
		FirstName: u.FirstName.String,
		LastName:  u.LastName.String,
		Username:  u.Username.String,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

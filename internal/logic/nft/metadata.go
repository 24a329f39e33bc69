package nft

import (
	"fmt"
	"strings"
	"time"

	"chainclub/internal/constant"
	"chainclub/internal/model"
)

// MetadataAttribute 标准 NFT 元数据的单个属性
type MetadataAttribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// MetadataDocument 会员卡元数据文档，结构与既有已发布的元数据保持一致
type MetadataDocument struct {
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	Image           string              `json:"image"`
	Attributes      []MetadataAttribute `json:"attributes"`
	ExternalUrl     string              `json:"external_url"`
	BackgroundColor string              `json:"background_color"`
}

// displayName 取展示名：姓名优先，否则用邮箱 @ 前缀
func displayName(user *model.Users) string {
	first := strings.TrimSpace(user.FirstName.String)
	last := strings.TrimSpace(user.LastName.String)
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	default:
		return strings.SplitN(user.Email, "@", 2)[0]
	}
}

// generateMetadata 构建会员卡元数据文档
func generateMetadata(user *model.Users) *MetadataDocument {
	name := displayName(user)
	memberSince := time.Now().Format("2006-01-02")

	return &MetadataDocument{
		Name: fmt.Sprintf("%s's ChainClub Membership", name),
		Description: fmt.Sprintf(
			"Welcome to ChainClub! This is %s's exclusive membership card. "+
				"Join our community of blockchain enthusiasts and innovators.", name),
		Image: constant.SharedArtworkUrl,
		Attributes: []MetadataAttribute{
			{TraitType: "Member Name", Value: name},
			{TraitType: "Membership Level", Value: constant.MembershipLevel},
			{TraitType: "Member Since", Value: memberSince},
			{TraitType: "Member ID", Value: user.Id},
			{TraitType: "Membership Type", Value: constant.MembershipType},
			{TraitType: "Status", Value: constant.MembershipState},
		},
		ExternalUrl:     constant.ExternalUrl,
		BackgroundColor: constant.BackgroundColor,
	}
}

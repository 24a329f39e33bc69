package constant

// Network identifiers supported for membership minting.
const (
	NetworkSepolia = "sepolia"
	NetworkMainnet = "mainnet"
)

// 会员卡元数据的固定属性值
const (
	MembershipLevel = "Level 1 Member"
	MembershipType  = "Founding Member"
	MembershipState = "Active"

	// SharedArtworkUrl 所有会员卡共用的艺术图资源
	SharedArtworkUrl = "https://ipfs.io/ipfs/QmYourImageHashHere"
	ExternalUrl      = "https://chainclub.com"
	BackgroundColor  = "000000"
)

// DevTxHash 开发模式下跳过链上铸造时使用的占位交易哈希
const DevTxHash = "mock-tx-hash"

// SupportedNetworks lists the networks the contract may be deployed on.
var SupportedNetworks = []string{NetworkSepolia, NetworkMainnet}

// IsNetworkSupported checks if a given network is in the supported list.
func IsNetworkSupported(network string) bool {
	for _, n := range SupportedNetworks {
		if n == network {
			return true
		}
	}
	return false
}

package chains

// Family groups a mainnet with its canonical testnets.
type Family string

const (
	FamilyEthereum  Family = "ethereum"
	FamilyPolygon   Family = "polygon"
	FamilyBSC       Family = "bsc"
	FamilyAvalanche Family = "avalanche"
	FamilyOptimism  Family = "optimism"
	FamilyArbitrum  Family = "arbitrum"
)

type NetworkData struct {
	NetworkName string
	ChainID     uint64
	Family      Family
	Testnet     bool

	NativeToken         string
	NativeTokenDecimals int
}

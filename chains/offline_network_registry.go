package chains

import (
	"math/big"
	"sort"

	"github.com/tessellated-io/foresight/arrays"
)

// OfflineNetworkRegistry holds the EVM networks the Tenderly simulator can run against.
type OfflineNetworkRegistry struct {
	ChainIDToData     map[uint64]*NetworkData
	NetworkNameToData map[string]*NetworkData
	FamilyToData      map[Family][]*NetworkData
}

var defaultRegistry = NewOfflineNetworkRegistry()

func NewOfflineNetworkRegistry() *OfflineNetworkRegistry {
	registry := &OfflineNetworkRegistry{
		ChainIDToData:     make(map[uint64]*NetworkData),
		NetworkNameToData: make(map[string]*NetworkData),
		FamilyToData:      make(map[Family][]*NetworkData),
	}

	registry.addToRegistry("ethereum", 1, FamilyEthereum, false, "ETH", 18)
	registry.addToRegistry("goerli", 5, FamilyEthereum, true, "ETH", 18)
	registry.addToRegistry("sepolia", 11155111, FamilyEthereum, true, "ETH", 18)
	registry.addToRegistry("polygon", 137, FamilyPolygon, false, "MATIC", 18)
	registry.addToRegistry("polygon-mumbai", 80001, FamilyPolygon, true, "MATIC", 18)
	registry.addToRegistry("bsc", 56, FamilyBSC, false, "BNB", 18)
	registry.addToRegistry("bsc-testnet", 97, FamilyBSC, true, "tBNB", 18)
	registry.addToRegistry("avalanche", 43114, FamilyAvalanche, false, "AVAX", 18)
	registry.addToRegistry("avalanche-fuji", 43113, FamilyAvalanche, true, "AVAX", 18)
	registry.addToRegistry("optimism", 10, FamilyOptimism, false, "ETH", 18)
	registry.addToRegistry("optimism-goerli", 420, FamilyOptimism, true, "ETH", 18)
	registry.addToRegistry("arbitrum", 42161, FamilyArbitrum, false, "ETH", 18)
	registry.addToRegistry("arbitrum-goerli", 421613, FamilyArbitrum, true, "ETH", 18)

	return registry
}

func (nr *OfflineNetworkRegistry) addToRegistry(
	networkName string,
	chainID uint64,
	family Family,
	testnet bool,
	nativeToken string,
	nativeTokenDecimals int,
) {
	networkData := &NetworkData{
		NetworkName: networkName,
		ChainID:     chainID,
		Family:      family,
		Testnet:     testnet,

		NativeToken:         nativeToken,
		NativeTokenDecimals: nativeTokenDecimals,
	}

	nr.ChainIDToData[chainID] = networkData
	nr.NetworkNameToData[networkName] = networkData
	nr.FamilyToData[family] = append(nr.FamilyToData[family], networkData)
}

// SupportsChainID is a pure membership check against the registry.
func (nr *OfflineNetworkRegistry) SupportsChainID(chainID *big.Int) bool {
	if chainID == nil || !chainID.IsUint64() {
		return false
	}
	_, ok := nr.ChainIDToData[chainID.Uint64()]
	return ok
}

// Networks returns every registered network ordered by chain ID.
func (nr *OfflineNetworkRegistry) Networks() []*NetworkData {
	networks := make([]*NetworkData, 0, len(nr.ChainIDToData))
	for _, networkData := range nr.ChainIDToData {
		networks = append(networks, networkData)
	}
	sort.Slice(networks, func(i, j int) bool { return networks[i].ChainID < networks[j].ChainID })
	return networks
}

func (nr *OfflineNetworkRegistry) Mainnets() []*NetworkData {
	return arrays.Filter(nr.Networks(), func(n *NetworkData) bool { return !n.Testnet })
}

func (nr *OfflineNetworkRegistry) ChainIDs() []uint64 {
	return arrays.Map(nr.Networks(), func(n *NetworkData) uint64 { return n.ChainID })
}

// SupportsNetwork reports whether the chain ID is one of the networks simulations are offered on.
func SupportsNetwork(chainID *big.Int) bool {
	return defaultRegistry.SupportsChainID(chainID)
}

// Lookup returns the registered network for a chain ID, if any.
func Lookup(chainID uint64) (*NetworkData, bool) {
	networkData, ok := defaultRegistry.ChainIDToData[chainID]
	return networkData, ok
}

func Default() *OfflineNetworkRegistry {
	return defaultRegistry
}

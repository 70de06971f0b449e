package networking

// DefaultNetworkName identifies the network in gossip topic strings. Nodes on
// different networks never share a mesh even when directly connected.
const DefaultNetworkName = "tontine-devnet0"

// Topic format: /tontine/<network>/<type>/ssz_snappy
func EventTopic(network string) string {
	return "/tontine/" + network + "/event/ssz_snappy"
}

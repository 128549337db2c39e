package testutil

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-vanity/pkg/lib/crypto"
)

// RFC 8032 测试向量 1
const (
	KnownSeedHex   = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	KnownPublicHex = "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"
	KnownAddress   = "FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS96Z"
)

// KnownKeypair 返回测试向量对应的密钥对，测试结束时自动销毁
func KnownKeypair(t *testing.T) *crypto.Keypair {
	t.Helper()

	seed, err := hex.DecodeString(KnownSeedHex)
	require.NoError(t, err)
	kp, err := crypto.NewKeypairFromSeed(seed)
	require.NoError(t, err)
	t.Cleanup(kp.Destroy)
	return kp
}

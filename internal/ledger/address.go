package ledger

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"ecopickup/internal/apperr"
)

// NormalizeAddress parses a hex wallet address. The zero address is rejected.
func NormalizeAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q is not a wallet address", apperr.ErrInvalid, s)
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: zero wallet address", apperr.ErrInvalid)
	}
	return addr, nil
}

// Checksum returns the EIP-55 form of a wallet address.
func Checksum(s string) (string, error) {
	addr, err := NormalizeAddress(s)
	if err != nil {
		return "", err
	}
	return addr.Hex(), nil
}

// splitSignature turns a 65-byte r||s||v signature into its components.
func splitSignature(sig string) (v uint8, r, s [32]byte, err error) {
	sig = strings.TrimSpace(sig)
	if !strings.HasPrefix(sig, "0x") && !strings.HasPrefix(sig, "0X") {
		sig = "0x" + sig
	}
	raw, err := hexutil.Decode(sig)
	if err != nil {
		return 0, r, s, fmt.Errorf("%w: courier signature is not hex: %v", apperr.ErrInvalid, err)
	}
	if len(raw) != 65 {
		return 0, r, s, fmt.Errorf("%w: courier signature must be 65 bytes, got %d", apperr.ErrInvalid, len(raw))
	}
	copy(r[:], raw[:32])
	copy(s[:], raw[32:64])
	v = raw[64]
	if v < 27 {
		v += 27
	}
	return v, r, s, nil
}

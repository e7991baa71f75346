package lifecycle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"ecopickup/internal/apperr"
	"ecopickup/internal/ledger"
)

func TestCourierNonce(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true)
	f.assign(t)

	got, err := f.svc.CourierNonce(context.Background(), " "+courierWallet+" ")
	require.NoError(t, err)
	require.Equal(t, "0x2222222222222222222222222222222222222222", got.Wallet)
	require.Equal(t, int64(1), got.Nonce.Int64())
}

func TestCourierNonce_Rejects(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true)
	_, err := f.svc.CourierNonce(context.Background(), "  ")
	require.ErrorIs(t, err, apperr.ErrInvalid)

	_, err = f.svc.CourierNonce(context.Background(), "0xnope")
	require.ErrorIs(t, err, apperr.ErrInvalid)
	require.Zero(t, f.chain.Calls())

	f.chain.failOn["NonceOf"] = errRPC
	_, err = f.svc.CourierNonce(context.Background(), courierWallet)
	require.True(t, ledger.IsFailure(err))
	require.ErrorIs(t, err, errRPC)

	disabled := newFixture(t, false)
	_, err = disabled.svc.CourierNonce(context.Background(), courierWallet)
	require.ErrorIs(t, err, apperr.ErrPrecondition)
}

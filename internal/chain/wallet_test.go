package chain

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKeystore(t *testing.T, key *ecdsa.PrivateKey, pass string) string {
	t.Helper()
	k := &keystore.Key{
		Id:         uuid.New(),
		Address:    crypto.PubkeyToAddress(key.PublicKey),
		PrivateKey: key,
	}
	data, err := keystore.EncryptKey(k, pass, keystore.LightScryptN, keystore.LightScryptP)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func staticPassphrase(p string, err error) PassphraseFunc {
	return func(ctx context.Context, prompt string) (string, error) { return p, err }
}

func TestKeystoreWallet_Unlock(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	path := writeKeystore(t, key, "correct horse")

	t.Run("right passphrase", func(t *testing.T) {
		got, err := NewKeystoreWallet(path, staticPassphrase("correct horse", nil)).Unlock(context.Background())
		require.NoError(t, err)
		assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), crypto.PubkeyToAddress(got.PublicKey))
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		_, err := NewKeystoreWallet(path, staticPassphrase("battery", nil)).Unlock(context.Background())
		require.ErrorIs(t, err, ErrWalletLocked)
	})

	t.Run("declined", func(t *testing.T) {
		_, err := NewKeystoreWallet(path, staticPassphrase("", nil)).Unlock(context.Background())
		require.ErrorIs(t, err, ErrUserRejected)

		_, err = NewKeystoreWallet(path, staticPassphrase("", errors.New("eof"))).Unlock(context.Background())
		require.ErrorIs(t, err, ErrUserRejected)

		_, err = NewKeystoreWallet(path, nil).Unlock(context.Background())
		require.ErrorIs(t, err, ErrUserRejected)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewKeystoreWallet(filepath.Join(t.TempDir(), "nope.json"), staticPassphrase("x", nil)).Unlock(context.Background())
		require.ErrorIs(t, err, ErrNoWallet)
	})
}

func TestPrivateKeyWallet_Unlock(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	raw := hex.EncodeToString(crypto.FromECDSA(key))

	for _, in := range []string{raw, "0x" + raw, " " + raw + "\n"} {
		got, err := NewPrivateKeyWallet(in).Unlock(context.Background())
		require.NoError(t, err)
		assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), crypto.PubkeyToAddress(got.PublicKey))
	}

	_, err = NewPrivateKeyWallet("zz").Unlock(context.Background())
	require.ErrorIs(t, err, ErrWalletLocked)
}

func TestNewWallet_Selection(t *testing.T) {
	assert.Nil(t, NewWallet("", "", nil))
	assert.IsType(t, &KeystoreWallet{}, NewWallet("k.json", "abcd", nil))
	assert.IsType(t, &PrivateKeyWallet{}, NewWallet("", "abcd", nil))
}

func TestSignText_RecoverText(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	other, err := crypto.GenerateKey()
	require.NoError(t, err)

	msg := []byte("nftmarket login: 00ff")
	sig, err := SignText(key, msg)
	require.NoError(t, err)

	addr, err := RecoverText(msg, sig)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey).Hex(), addr)
	assert.NotEqual(t, crypto.PubkeyToAddress(other.PublicKey).Hex(), addr)

	// wallets commonly return v as 27/28
	sig[64] += 27
	addr2, err := RecoverText(msg, sig)
	require.NoError(t, err)
	assert.Equal(t, addr, addr2)

	_, err = RecoverText(msg, sig[:10])
	require.Error(t, err)
}

package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
)

// Wallet yields the signing key for a session.
type Wallet interface {
	Unlock(ctx context.Context) (*ecdsa.PrivateKey, error)
}

// PassphraseFunc asks the user for the keystore passphrase. Returning an
// empty passphrase or an error means the user declined.
type PassphraseFunc func(ctx context.Context, prompt string) (string, error)

// NewWallet picks the wallet from configuration. A keystore file wins over a
// raw private key. It returns nil when neither is configured.
func NewWallet(keystorePath, privateKey string, passphrase PassphraseFunc) Wallet {
	switch {
	case keystorePath != "":
		return &KeystoreWallet{path: keystorePath, passphrase: passphrase}
	case privateKey != "":
		return &PrivateKeyWallet{hex: privateKey}
	default:
		return nil
	}
}

// KeystoreWallet is an encrypted JSON key file (Web3 Secret Storage).
type KeystoreWallet struct {
	path       string
	passphrase PassphraseFunc
}

func NewKeystoreWallet(path string, passphrase PassphraseFunc) *KeystoreWallet {
	return &KeystoreWallet{path: path, passphrase: passphrase}
}

func (w *KeystoreWallet) Unlock(ctx context.Context) (*ecdsa.PrivateKey, error) {
	data, err := os.ReadFile(w.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: keystore %s not found", ErrNoWallet, w.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read keystore: %w", err)
	}

	if w.passphrase == nil {
		return nil, ErrUserRejected
	}

	pass, err := w.passphrase(ctx, "Passphrase for "+filepath.Base(w.path)+": ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUserRejected, err)
	}
	if pass == "" {
		return nil, ErrUserRejected
	}

	key, err := keystore.DecryptKey(data, pass)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWalletLocked, err)
	}

	return key.PrivateKey, nil
}

// PrivateKeyWallet holds a hex-encoded secp256k1 key, usually PRIVATE_KEY.
type PrivateKeyWallet struct {
	hex string
}

func NewPrivateKeyWallet(hex string) *PrivateKeyWallet {
	return &PrivateKeyWallet{hex: hex}
}

func (w *PrivateKeyWallet) Unlock(ctx context.Context) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(w.hex), "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid private key: %w", ErrWalletLocked, err)
	}
	return key, nil
}

// SignText produces an EIP-191 personal signature of msg.
func SignText(key *ecdsa.PrivateKey, msg []byte) ([]byte, error) {
	return crypto.Sign(accounts.TextHash(msg), key)
}

// RecoverText returns the address that produced sig over msg with SignText.
func RecoverText(msg, sig []byte) (string, error) {
	if len(sig) != crypto.SignatureLength {
		return "", fmt.Errorf("signature must be %d bytes", crypto.SignatureLength)
	}
	s := make([]byte, len(sig))
	copy(s, sig)
	if s[crypto.RecoveryIDOffset] >= 27 {
		s[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.SigToPub(accounts.TextHash(msg), s)
	if err != nil {
		return "", fmt.Errorf("recover signer: %w", err)
	}
	return crypto.PubkeyToAddress(*pub).Hex(), nil
}

package crypto

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/iov-one/multivault/errors"
	"github.com/stellar/go/exp/crypto/derivation"
)

// DefaultDerivationPath is the SLIP-10 path used when deriving keys from a
// seed without an explicit path.
const DefaultDerivationPath = "m/44'/234'/0'"

// DeriveEd25519 derives a private key from the master seed following
// SLIP-10 with given hardened derivation path.
func DeriveEd25519(seed []byte, path string) (*PrivateKey, error) {
	if len(seed) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "seed")
	}
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive path %q: %s", path, err)
	}
	pub, err := k.PublicKey()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive public key: %s", err)
	}
	priv := PrivKeyEd25519FromSeed(k.Key)
	if !priv.PublicKey().Equals(&PublicKey{Ed25519: pub}) {
		return nil, errors.Wrap(errors.ErrState, "derived public key mismatch")
	}
	return priv, nil
}

// Equals returns true if both keys are the same.
func (p *PublicKey) Equals(o *PublicKey) bool {
	return bytes.Equal(p.Ed25519, o.Ed25519)
}

type keyFile struct {
	PrivateKey string `json:"private_key"`
}

// SaveKey writes the private key in hex encoded form into a JSON file readable
// only by the owner.
func SaveKey(path string, key *PrivateKey) error {
	raw, err := json.MarshalIndent(keyFile{PrivateKey: hex.EncodeToString(key.Ed25519)}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "serialize key")
	}
	if err := ioutil.WriteFile(path, raw, 0600); err != nil {
		return errors.Wrap(err, "write key file")
	}
	return nil
}

// LoadKey reads a private key written by SaveKey.
func LoadKey(path string) (*PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "key file %q", path)
		}
		return nil, errors.Wrap(err, "read key file")
	}
	var kf keyFile
	if err := json.Unmarshal(raw, &kf); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "decode key file: %s", err)
	}
	priv, err := hex.DecodeString(kf.PrivateKey)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "decode private key: %s", err)
	}
	key := &PrivateKey{Ed25519: priv}
	if _, err := key.Sign(nil); err != nil {
		return nil, err
	}
	return key, nil
}

package vault

import (
	"regexp"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/orm"
)

// isAssetKind accepts the ticker format native asset registries use.
var isAssetKind = regexp.MustCompile(`^[A-Z][A-Z0-9]{2,15}$`).MatchString

func validateAssetKind(kind string) error {
	if !isAssetKind(kind) {
		return errors.Wrapf(ErrInvalidAssetKind, "%q", kind)
	}
	return nil
}

// PendingTransfer is the amount and recipient a withdrawal proposal
// declared for an asset kind.
type PendingTransfer struct {
	Recipient weave.Address `json:"recipient"`
	Amount    uint64        `json:"amount"`
}

var _ orm.Model = (*PendingTransfer)(nil)

func (t *PendingTransfer) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(t)
}

func (t *PendingTransfer) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, t)
}

func (t *PendingTransfer) Validate() error {
	return validateTransfer(t.Amount, t.Recipient)
}

// Ledger records transfers that are declared first and committed later,
// keyed by the asset kind, the vault and the request within the vault.
// Every asset kind has its own key space.
type Ledger struct {
	bucket orm.ModelBucket
}

// NewLedger returns a ledger stored in the "ledger" bucket.
func NewLedger() Ledger {
	return Ledger{bucket: orm.NewModelBucket("ledger", &PendingTransfer{})}
}

func ledgerKey(kind string, vaultID, requestID uint64) []byte {
	key := make([]byte, 0, len(kind)+17)
	key = append(key, kind...)
	key = append(key, '/')
	key = append(key, orm.EncodeSequence(vaultID)...)
	return append(key, orm.EncodeSequence(requestID)...)
}

// Declare records the transfer, replacing any previous declaration for
// the same request.
func (l Ledger) Declare(db weave.KVStore, kind string, vaultID, requestID uint64, t PendingTransfer) error {
	if err := validateAssetKind(kind); err != nil {
		return err
	}
	_, err := l.bucket.Put(db, ledgerKey(kind, vaultID, requestID), &t)
	return err
}

// Lookup returns the declared transfer or ErrNoPendingTransfer.
func (l Ledger) Lookup(db weave.ReadOnlyKVStore, kind string, vaultID, requestID uint64) (*PendingTransfer, error) {
	var t PendingTransfer
	switch err := l.bucket.One(db, ledgerKey(kind, vaultID, requestID), &t); {
	case err == nil:
		return &t, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrNoPendingTransfer, "%s for vault %d request %d", kind, vaultID, requestID)
	default:
		return nil, err
	}
}

// Has returns true if a transfer is declared.
func (l Ledger) Has(db weave.ReadOnlyKVStore, kind string, vaultID, requestID uint64) (bool, error) {
	switch err := l.bucket.Has(db, ledgerKey(kind, vaultID, requestID)); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// Commit removes the declaration once the transfer is done.
func (l Ledger) Commit(db weave.KVStore, kind string, vaultID, requestID uint64) error {
	if err := l.bucket.Delete(db, ledgerKey(kind, vaultID, requestID)); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrapf(ErrNoPendingTransfer, "%s for vault %d request %d", kind, vaultID, requestID)
		}
		return err
	}
	return nil
}

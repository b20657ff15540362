package cash

import (
	"regexp"

	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/orm"
)

// BucketName is where we store the wallets
const BucketName = "cash"

var isKind = regexp.MustCompile(`^[A-Z][A-Z0-9]{2,15}$`).MatchString

// ValidateKind returns an error if the asset kind name is not valid.
func ValidateKind(kind string) error {
	if !isKind(kind) {
		return errors.Wrapf(ErrInvalidKind, "%q", kind)
	}
	return nil
}

// Balance is the amount of a single asset kind held by a wallet.
type Balance struct {
	Kind   string `json:"kind"`
	Amount uint64 `json:"amount"`
}

// Wallet holds the balances of a single address. A kind is registered
// when the wallet has a balance entry for it, even with a zero amount.
// Balances are kept sorted by kind.
type Wallet struct {
	Balances []Balance `json:"balances"`
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(w)
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, w)
}

// Validate requires that all balances are sorted by kind and unique.
func (w *Wallet) Validate() error {
	for i, b := range w.Balances {
		if err := ValidateKind(b.Kind); err != nil {
			return errors.Wrapf(err, "balance %d", i)
		}
		if i > 0 && w.Balances[i-1].Kind >= b.Kind {
			return errors.Wrap(errors.ErrModel, "balances not sorted")
		}
	}
	return nil
}

// find returns the index of the kind balance, or -1.
func (w *Wallet) find(kind string) int {
	for i, b := range w.Balances {
		if b.Kind == kind {
			return i
		}
	}
	return -1
}

// Has returns true if the wallet is registered for the kind.
func (w *Wallet) Has(kind string) bool {
	return w.find(kind) >= 0
}

// Amount returns the balance of the kind, zero if not registered.
func (w *Wallet) Amount(kind string) uint64 {
	if i := w.find(kind); i >= 0 {
		return w.Balances[i].Amount
	}
	return 0
}

// register adds a zero balance entry for the kind, if not present.
func (w *Wallet) register(kind string) {
	if w.Has(kind) {
		return
	}
	i := 0
	for i < len(w.Balances) && w.Balances[i].Kind < kind {
		i++
	}
	w.Balances = append(w.Balances, Balance{})
	copy(w.Balances[i+1:], w.Balances[i:])
	w.Balances[i] = Balance{Kind: kind}
}

// add credits the registered kind.
func (w *Wallet) add(kind string, amount uint64) error {
	i := w.find(kind)
	if i < 0 {
		return errors.Wrap(ErrNotRegistered, kind)
	}
	sum := w.Balances[i].Amount + amount
	if sum < amount {
		return errors.Wrap(errors.ErrOverflow, kind)
	}
	w.Balances[i].Amount = sum
	return nil
}

// subtract debits the kind.
func (w *Wallet) subtract(kind string, amount uint64) error {
	i := w.find(kind)
	if i < 0 || w.Balances[i].Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s: have %d, need %d", kind, w.Amount(kind), amount)
	}
	w.Balances[i].Amount -= amount
	return nil
}

// NewBucket returns a bucket storing wallets by their address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}

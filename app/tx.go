package app

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	amino "github.com/tendermint/go-amino"
)

// Tx is the transaction format processed by the engine. It carries a single
// message, the signers are provided by the caller of the engine.
type Tx struct {
	Msg weave.Msg
}

var _ weave.Tx = (*Tx)(nil)

// GetMsg returns the message carried by this transaction.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "transaction message")
	}
	return tx.Msg, nil
}

// TxCodec serializes transactions. All messages must be registered before
// a transaction carrying them can be encoded or decoded.
type TxCodec struct {
	cdc   *amino.Codec
	paths map[string]reflect.Type
}

// NewTxCodec returns a codec with no messages registered.
func NewTxCodec() *TxCodec {
	cdc := amino.NewCodec()
	cdc.RegisterInterface((*weave.Msg)(nil), nil)
	return &TxCodec{
		cdc:   cdc,
		paths: make(map[string]reflect.Type),
	}
}

// Register adds given messages to the codec. Each message is registered
// under its path. Messages must be pointers.
func (c *TxCodec) Register(msgs ...weave.Msg) {
	for _, m := range msgs {
		t := reflect.TypeOf(m)
		if t.Kind() != reflect.Ptr {
			panic(fmt.Sprintf("message %T must be a pointer", m))
		}
		if _, ok := c.paths[m.Path()]; ok {
			panic(fmt.Sprintf("message path %q already registered", m.Path()))
		}
		c.cdc.RegisterConcrete(m, m.Path(), nil)
		c.paths[m.Path()] = t.Elem()
	}
}

// Encode returns the binary representation of the transaction.
func (c *TxCodec) Encode(tx *Tx) ([]byte, error) {
	raw, err := c.cdc.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// Decode reads a transaction from its binary representation.
func (c *TxCodec) Decode(raw []byte) (weave.Tx, error) {
	var tx Tx
	if err := c.cdc.UnmarshalBinaryBare(raw, &tx); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &tx, nil
}

// jsonTx is the human friendly transaction format:
//
//   {"path": "vault/vote", "msg": {...}}
type jsonTx struct {
	Path string          `json:"path"`
	Msg  json.RawMessage `json:"msg"`
}

// DecodeJSON decodes a transaction from its JSON representation. The message
// is validated.
func (c *TxCodec) DecodeJSON(raw []byte) (*Tx, error) {
	var envelope jsonTx
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode transaction: %s", err)
	}
	t, ok := c.paths[envelope.Path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "unknown message path %q", envelope.Path)
	}
	msg := reflect.New(t).Interface().(weave.Msg)
	if len(envelope.Msg) != 0 {
		if err := json.Unmarshal(envelope.Msg, msg); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "cannot decode %q message: %s", envelope.Path, err)
		}
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	return &Tx{Msg: msg}, nil
}

// EncodeJSON returns the JSON representation of the transaction.
func (c *TxCodec) EncodeJSON(tx *Tx) ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot encode message: %s", err)
	}
	return json.Marshal(jsonTx{Path: msg.Path(), Msg: raw})
}

package app

import (
	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverTxResponse maps the result of a delivery to the ABCI response
// format. Each event attribute becomes a `<type>.<key>` tag.
func DeliverTxResponse(res *weave.DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseDeliverTx{
			Code: code,
			Log:  log,
		}
	}
	var tags []common.KVPair
	for _, e := range res.Events {
		for _, a := range e.Attributes {
			tags = append(tags, common.KVPair{
				Key:   []byte(e.Type + "." + a.Key),
				Value: []byte(a.Value),
			})
		}
	}
	return abci.ResponseDeliverTx{
		Data: res.Data,
		Log:  res.Log,
		Tags: tags,
	}
}

// CheckTxResponse maps the result of a check to the ABCI response format.
func CheckTxResponse(res *weave.CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseCheckTx{
			Code: code,
			Log:  log,
		}
	}
	return abci.ResponseCheckTx{
		Data: res.Data,
		Log:  res.Log,
	}
}

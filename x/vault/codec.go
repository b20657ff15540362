package vault

import amino "github.com/tendermint/go-amino"

var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*Action)(nil), nil)
	cdc.RegisterConcrete(AddParticipantsAction{}, "vault/AddParticipants", nil)
	cdc.RegisterConcrete(RemoveParticipantsAction{}, "vault/RemoveParticipants", nil)
	cdc.RegisterConcrete(WithdrawNativeAction{}, "vault/WithdrawNative", nil)
	cdc.RegisterConcrete(WithdrawFungibleAction{}, "vault/WithdrawFungible", nil)
	cdc.RegisterConcrete(WithdrawCollectibleAction{}, "vault/WithdrawCollectible", nil)
	cdc.RegisterConcrete(WithdrawObjectAction{}, "vault/WithdrawObject", nil)
}

package spoke

import (
	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/crossdomain"
)

type ReceiveMessageParams struct {
	RemoteDomain uint32
	Sender       solana.PublicKey
	MessageBody  []byte
}

// HandleReceiveMessage applies an admin call sent by the remote admin and delivered by the
// message transmitter. The payer funds storage opened by the call.
func (p *SpokePool) HandleReceiveMessage(caller, payer solana.PublicKey, params ReceiveMessageParams) error {
	if p.transmitter.IsZero() || caller != p.transmitter {
		return spokeErr(InvalidAuthority, "%s is not the message transmitter", caller)
	}

	return p.update(func(c *call) error {
		_, state, err := p.loadState(c.tx)
		if err != nil {
			return err
		}
		if params.RemoteDomain != state.RemoteDomain {
			return spokeErr(InvalidRemoteDomain, "message from domain %d", params.RemoteDomain)
		}
		if params.Sender != state.CrossDomainAdmin {
			return spokeErr(InvalidRemoteSender, "message from %s", params.Sender)
		}

		adminCall, err := crossdomain.Translate(params.MessageBody)
		if err != nil {
			return wrapErr(InvalidCalldata, err)
		}
		self, err := p.selfAuthority()
		if err != nil {
			return err
		}

		p.log.Info().Str("call", adminCall.Method()).Uint32("remoteDomain", params.RemoteDomain).Msg("Received remote admin call")
		return p.applyAdminCall(c, self, payer, adminCall)
	})
}

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/protocol/across"
)

type RelayBody struct {
	Depositor           string `json:"depositor"`
	Recipient           string `json:"recipient"`
	ExclusiveRelayer    string `json:"exclusiveRelayer"`
	InputToken          string `json:"inputToken"`
	OutputToken         string `json:"outputToken"`
	InputAmount         uint64 `json:"inputAmount"`
	OutputAmount        uint64 `json:"outputAmount"`
	OriginChainId       uint64 `json:"originChainId"`
	DepositId           string `json:"depositId"`
	FillDeadline        uint32 `json:"fillDeadline"`
	ExclusivityDeadline uint32 `json:"exclusivityDeadline"`
	Message             string `json:"message"`
}

type RelayHashResponse struct {
	RelayHash   string `json:"relayHash"`
	MessageHash string `json:"messageHash"`
}

type RefundLeafBody struct {
	Leaf string `json:"leaf"`
}

type RefundLeafResponse struct {
	LeafHash        string   `json:"leafHash"`
	LeafId          uint32   `json:"leafId"`
	ChainId         uint64   `json:"chainId"`
	Mint            string   `json:"mint"`
	AmountToReturn  uint64   `json:"amountToReturn"`
	RefundAmounts   []uint64 `json:"refundAmounts"`
	RefundAddresses []string `json:"refundAddresses"`
}

// RelayHashHandler computes the identity of a relay on this chain.
type RelayHashHandler struct {
	chainID uint64
}

func NewRelayHashHandler(chainID uint64) *RelayHashHandler {
	return &RelayHashHandler{
		chainID: chainID,
	}
}

func (h *RelayHashHandler) HandleRelayHash(w http.ResponseWriter, r *http.Request) {
	b := &RelayBody{}
	d := json.NewDecoder(r.Body)
	err := d.Decode(b)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}

	data, err := b.relayData()
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}

	relayHash := across.RelayHash(data, h.chainID)
	messageHash := across.MessageHash(data.Message)
	JSONResponse(w, RelayHashResponse{
		RelayHash:   hexutil.Encode(relayHash[:]),
		MessageHash: hexutil.Encode(messageHash[:]),
	})
}

func (b *RelayBody) relayData() (across.RelayData, error) {
	data := across.RelayData{
		InputAmount:         b.InputAmount,
		OutputAmount:        b.OutputAmount,
		OriginChainId:       b.OriginChainId,
		FillDeadline:        b.FillDeadline,
		ExclusivityDeadline: b.ExclusivityDeadline,
	}

	var err error
	for _, f := range []struct {
		name  string
		value string
		key   *solana.PublicKey
	}{
		{"depositor", b.Depositor, &data.Depositor},
		{"recipient", b.Recipient, &data.Recipient},
		{"exclusiveRelayer", b.ExclusiveRelayer, &data.ExclusiveRelayer},
		{"inputToken", b.InputToken, &data.InputToken},
		{"outputToken", b.OutputToken, &data.OutputToken},
	} {
		*f.key, err = parseKey(f.name, f.value)
		if err != nil {
			return data, err
		}
	}

	if b.DepositId != "" {
		data.DepositId, err = parseBytes32("depositId", b.DepositId)
		if err != nil {
			return data, err
		}
	}
	if b.Message != "" {
		data.Message, err = hexutil.Decode(b.Message)
		if err != nil {
			return data, fmt.Errorf("invalid message: %s", err)
		}
	}
	return data, nil
}

// HandleRefundLeafHash decodes a Borsh encoded refund leaf and returns the hash its merkle
// proof commits to.
func (h *RelayHashHandler) HandleRefundLeafHash(w http.ResponseWriter, r *http.Request) {
	b := &RefundLeafBody{}
	err := json.NewDecoder(r.Body).Decode(b)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}
	encoded, err := hexutil.Decode(b.Leaf)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid leaf: %s", err), http.StatusBadRequest)
		return
	}

	leaf, err := across.DecodeRelayerRefundLeaf(encoded)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid leaf: %s", err), http.StatusBadRequest)
		return
	}
	if err := leaf.Validate(); err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}
	leafHash, err := leaf.Hash()
	if err != nil {
		JSONError(w, err, http.StatusInternalServerError)
		return
	}

	addresses := make([]string, len(leaf.RefundAddresses))
	for i, address := range leaf.RefundAddresses {
		addresses[i] = address.String()
	}
	JSONResponse(w, RefundLeafResponse{
		LeafHash:        hexutil.Encode(leafHash[:]),
		LeafId:          leaf.LeafId,
		ChainId:         leaf.ChainId,
		Mint:            leaf.MintPublicKey.String(),
		AmountToReturn:  leaf.AmountToReturn,
		RefundAmounts:   leaf.RefundAmounts,
		RefundAddresses: addresses,
	})
}

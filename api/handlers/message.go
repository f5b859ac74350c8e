package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/sprintertech/svm-spoke/store"
)

type BurnMessageQuerier interface {
	BurnMessage(nonce uint64) (*store.BurnMessage, error)
}

type BurnMessageResponse struct {
	Nonce                uint64 `json:"nonce"`
	SourceDomain         uint32 `json:"sourceDomain"`
	DestinationDomain    uint32 `json:"destinationDomain"`
	Sender               string `json:"sender"`
	BurnToken            string `json:"burnToken"`
	MintRecipient        string `json:"mintRecipient"`
	DestinationCaller    string `json:"destinationCaller"`
	Amount               uint64 `json:"amount"`
	MaxFee               uint64 `json:"maxFee"`
	MinFinalityThreshold uint32 `json:"minFinalityThreshold"`
	HookData             string `json:"hookData"`
}

// BurnMessageHandler serves the burn messages recorded by the token messenger.
type BurnMessageHandler struct {
	messages BurnMessageQuerier
}

func NewBurnMessageHandler(messages BurnMessageQuerier) *BurnMessageHandler {
	return &BurnMessageHandler{
		messages: messages,
	}
}

// HandleBurnMessage returns status code 404 for nonces the messenger never assigned
func (h *BurnMessageHandler) HandleBurnMessage(w http.ResponseWriter, r *http.Request) {
	nonce, err := strconv.ParseUint(mux.Vars(r)["nonce"], 10, 64)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid nonce"), http.StatusBadRequest)
		return
	}

	msg, err := h.messages.BurnMessage(nonce)
	if errors.Is(err, store.ErrNotFound) {
		JSONError(w, fmt.Errorf("no burn message with nonce %d", nonce), http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, err, http.StatusInternalServerError)
		return
	}

	JSONResponse(w, BurnMessageResponse{
		Nonce:                msg.Nonce,
		SourceDomain:         msg.SourceDomain,
		DestinationDomain:    msg.DestinationDomain,
		Sender:               msg.Sender.String(),
		BurnToken:            msg.BurnToken.String(),
		MintRecipient:        msg.MintRecipient.String(),
		DestinationCaller:    msg.DestinationCaller.String(),
		Amount:               msg.Amount,
		MaxFee:               msg.MaxFee,
		MinFinalityThreshold: msg.MinFinalityThreshold,
		HookData:             hexutil.Encode(msg.HookData),
	})
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
	"github.com/gorilla/mux"
	"github.com/sprintertech/svm-spoke/bitmap"
	"github.com/sprintertech/svm-spoke/store"
)

type SpokeQuerier interface {
	FillStatus(relayHash [32]byte) (*store.FillStatusAccount, bool, error)
	RootBundle(rootBundleID uint32) (*store.RootBundle, error)
	ClaimAccount(mint, refundAddress solana.PublicKey) (*store.ClaimAccount, bool, error)
	PendingToHubPool(mint solana.PublicKey) (uint64, error)
	VaultBalance(mint solana.PublicKey) (uint64, error)
}

type TokenResolver interface {
	Mint(symbolOrMint string) (solana.PublicKey, error)
}

type FillStatusResponse struct {
	Status       string `json:"status"`
	Relayer      string `json:"relayer,omitempty"`
	FillDeadline uint32 `json:"fillDeadline,omitempty"`
}

type RootBundleResponse struct {
	RelayerRefundRoot string   `json:"relayerRefundRoot"`
	SlowRelayRoot     string   `json:"slowRelayRoot"`
	ClaimedBitmap     string   `json:"claimedBitmap"`
	ClaimedLeafIds    []uint32 `json:"claimedLeafIds"`
}

type ClaimResponse struct {
	Amount      uint64 `json:"amount"`
	Initializer string `json:"initializer"`
}

type TokenResponse struct {
	Mint             string `json:"mint"`
	VaultBalance     uint64 `json:"vaultBalance"`
	PendingToHubPool uint64 `json:"pendingToHubPool"`
}

// PoolHandler serves read only views of the spoke pool accounts.
type PoolHandler struct {
	pool   SpokeQuerier
	tokens TokenResolver
}

func NewPoolHandler(pool SpokeQuerier, tokens TokenResolver) *PoolHandler {
	return &PoolHandler{
		pool:   pool,
		tokens: tokens,
	}
}

// HandleFillStatus returns the fill record of the relay hash
func (h *PoolHandler) HandleFillStatus(w http.ResponseWriter, r *http.Request) {
	relayHash, err := parseBytes32("relayHash", mux.Vars(r)["relayHash"])
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	record, ok, err := h.pool.FillStatus(relayHash)
	if err != nil {
		JSONError(w, err, http.StatusInternalServerError)
		return
	}
	if !ok {
		JSONResponse(w, FillStatusResponse{Status: store.Unfilled.String()})
		return
	}

	resp := FillStatusResponse{
		Status:       record.Status.String(),
		FillDeadline: record.FillDeadline,
	}
	// slow fills record no relayer
	if !record.Relayer.IsZero() {
		resp.Relayer = record.Relayer.String()
	}
	JSONResponse(w, resp)
}

// HandleRootBundle returns the roots and the claimed leaves of a relayed root bundle
func (h *PoolHandler) HandleRootBundle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["rootBundleId"], 10, 32)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid rootBundleId"), http.StatusBadRequest)
		return
	}

	// nolint:gosec
	bundle, err := h.pool.RootBundle(uint32(id))
	if errors.Is(err, store.ErrNotFound) {
		JSONError(w, fmt.Errorf("no root bundle with id %d", id), http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, err, http.StatusInternalServerError)
		return
	}

	JSONResponse(w, RootBundleResponse{
		RelayerRefundRoot: hexutil.Encode(bundle.RelayerRefundRoot[:]),
		SlowRelayRoot:     hexutil.Encode(bundle.SlowRelayRoot[:]),
		ClaimedBitmap:     hexutil.Encode(bundle.ClaimedBitmap),
		ClaimedLeafIds:    bitmap.Bitmap(bundle.ClaimedBitmap).Claimed(),
	})
}

// HandleClaim returns the deferred refund of a refund address
func (h *PoolHandler) HandleClaim(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mint, err := h.tokens.Mint(vars["token"])
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}
	refundAddress, err := parseKey("refundAddress", vars["refundAddress"])
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	claim, ok, err := h.pool.ClaimAccount(mint, refundAddress)
	if err != nil {
		JSONError(w, err, http.StatusInternalServerError)
		return
	}
	if !ok {
		JSONError(w, fmt.Errorf("no claim account for %s", refundAddress), http.StatusNotFound)
		return
	}

	JSONResponse(w, ClaimResponse{
		Amount:      claim.Amount,
		Initializer: claim.Initializer.String(),
	})
}

// HandleToken returns the custody balance and the amount owed to the hub pool of a token
func (h *PoolHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	mint, err := h.tokens.Mint(mux.Vars(r)["token"])
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	balance, err := h.pool.VaultBalance(mint)
	if err != nil {
		JSONError(w, err, http.StatusInternalServerError)
		return
	}
	pending, err := h.pool.PendingToHubPool(mint)
	if err != nil {
		JSONError(w, err, http.StatusInternalServerError)
		return
	}

	JSONResponse(w, TokenResponse{
		Mint:             mint.String(),
		VaultBalance:     balance,
		PendingToHubPool: pending,
	})
}

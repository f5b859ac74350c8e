package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sprintertech/svm-spoke/periphery"
	"github.com/sprintertech/svm-spoke/store"
)

type NonceQuerier interface {
	UsedNonceCloseInfo(nonce [32]byte) (periphery.UsedNonceCloseInfo, error)
}

type UsedNonceResponse struct {
	CanCloseAfter uint64 `json:"canCloseAfter"`
	CanCloseNow   bool   `json:"canCloseNow"`
}

// NonceHandler reports used sponsored quote nonces.
type NonceHandler struct {
	periphery NonceQuerier
}

func NewNonceHandler(periphery NonceQuerier) *NonceHandler {
	return &NonceHandler{
		periphery: periphery,
	}
}

// HandleUsedNonce returns status code 404 for nonces never used by a sponsored deposit
func (h *NonceHandler) HandleUsedNonce(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	nonce, err := parseBytes32("nonce", vars["nonce"])
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	info, err := h.periphery.UsedNonceCloseInfo(nonce)
	if errors.Is(err, store.ErrNotFound) {
		JSONError(w, fmt.Errorf("nonce %s not used", vars["nonce"]), http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, err, http.StatusInternalServerError)
		return
	}

	JSONResponse(w, UsedNonceResponse{
		CanCloseAfter: info.CanCloseAfter,
		CanCloseNow:   info.CanCloseNow,
	})
}

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
)

func JSONError(w http.ResponseWriter, err error, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	type errorResponse struct {
		Code   int    `json:"code"`
		Reason string `json:"reason"`
	}
	resp := errorResponse{
		Reason: err.Error(),
		Code:   code,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func JSONResponse(w http.ResponseWriter, v interface{}) {
	data, _ := json.Marshal(v)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func parseKey(field, value string) (solana.PublicKey, error) {
	if value == "" {
		return solana.PublicKey{}, nil
	}
	key, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return key, fmt.Errorf("invalid %s: %s", field, err)
	}
	return key, nil
}

func parseBytes32(field, value string) ([32]byte, error) {
	var out [32]byte
	b, err := hexutil.Decode(value)
	if err != nil {
		return out, fmt.Errorf("invalid %s: %s", field, err)
	}
	if len(b) != 32 {
		return out, fmt.Errorf("invalid %s: expected 32 bytes, got %d", field, len(b))
	}
	copy(out[:], b)
	return out, nil
}

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/protocol/sponsored"
)

type QuoteVerifier interface {
	VerifyQuote(expectedSigner solana.PublicKey, quote *sponsored.Quote, signature []byte) error
}

type QuoteBody struct {
	Quote     string `json:"quote"`
	Signature string `json:"signature"`
}

type QuoteResponse struct {
	Valid     bool   `json:"valid"`
	TypedHash string `json:"typedHash"`
	Nonce     string `json:"nonce"`
	Deadline  uint64 `json:"deadline"`
	Reason    string `json:"reason,omitempty"`
}

// QuoteHandler checks sponsored quotes against the configured quote signer before they are
// submitted.
type QuoteHandler struct {
	verifier    QuoteVerifier
	quoteSigner solana.PublicKey
}

func NewQuoteHandler(verifier QuoteVerifier, quoteSigner solana.PublicKey) *QuoteHandler {
	return &QuoteHandler{
		verifier:    verifier,
		quoteSigner: quoteSigner,
	}
}

// HandleVerify returns status code 200 with the verification result for decodable quotes
func (h *QuoteHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	b := &QuoteBody{}
	d := json.NewDecoder(r.Body)
	err := d.Decode(b)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}

	data, err := hexutil.Decode(b.Quote)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid quote: %s", err), http.StatusBadRequest)
		return
	}
	sig, err := hexutil.Decode(b.Signature)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid signature: %s", err), http.StatusBadRequest)
		return
	}
	quote, err := sponsored.Decode(data)
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}
	digest, err := quote.TypedHash()
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	resp := QuoteResponse{
		Valid:     true,
		TypedHash: hexutil.Encode(digest[:]),
		Nonce:     hexutil.Encode(quote.Nonce[:]),
		Deadline:  quote.Deadline,
	}
	if err := h.verifier.VerifyQuote(h.quoteSigner, quote, sig); err != nil {
		resp.Valid = false
		resp.Reason = err.Error()
	}
	JSONResponse(w, resp)
}

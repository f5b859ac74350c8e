package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/api/handlers"
	mock_handlers "github.com/sprintertech/svm-spoke/api/handlers/mock"
	"github.com/sprintertech/svm-spoke/protocol/sponsored"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type QuoteHandlerTestSuite struct {
	suite.Suite

	handler     *handlers.QuoteHandler
	verifier    *mock_handlers.MockQuoteVerifier
	quoteSigner solana.PublicKey
	quote       *sponsored.Quote
}

func TestRunQuoteHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(QuoteHandlerTestSuite))
}

func (s *QuoteHandlerTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.verifier = mock_handlers.NewMockQuoteVerifier(ctrl)
	copy(s.quoteSigner[12:], []byte("quote-signer-address"))
	s.handler = handlers.NewQuoteHandler(s.verifier, s.quoteSigner)
	s.quote = &sponsored.Quote{
		SourceDomain: 5,
		Amount:       100,
		Nonce:        [32]byte{9},
		Deadline:     2_000_000_000,
	}
}

func (s *QuoteHandlerTestSuite) post(quote []byte, sig []byte) *httptest.ResponseRecorder {
	body, _ := json.Marshal(handlers.QuoteBody{
		Quote:     hexutil.Encode(quote),
		Signature: hexutil.Encode(sig),
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/quotes/verify", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	s.handler.HandleVerify(recorder, req)
	return recorder
}

func (s *QuoteHandlerTestSuite) Test_HandleVerify_InvalidHex() {
	req := httptest.NewRequest(http.MethodPost, "/v1/quotes/verify", bytes.NewReader([]byte(`{"quote": "zz"}`)))
	recorder := httptest.NewRecorder()

	s.handler.HandleVerify(recorder, req)

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *QuoteHandlerTestSuite) Test_HandleVerify_UndecodableQuote() {
	recorder := s.post([]byte{1, 2, 3}, make([]byte, 65))

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *QuoteHandlerTestSuite) Test_HandleVerify_Valid() {
	data, err := s.quote.Encode()
	s.Nil(err)
	sig := make([]byte, 65)
	s.verifier.EXPECT().VerifyQuote(s.quoteSigner, gomock.Any(), sig).Return(nil)

	recorder := s.post(data, sig)

	s.Equal(http.StatusOK, recorder.Code)
	resp := handlers.QuoteResponse{}
	s.Nil(json.Unmarshal(recorder.Body.Bytes(), &resp))
	digest, _ := s.quote.TypedHash()
	s.True(resp.Valid)
	s.Equal(hexutil.Encode(digest[:]), resp.TypedHash)
	s.Equal(hexutil.Encode(s.quote.Nonce[:]), resp.Nonce)
	s.Equal(s.quote.Deadline, resp.Deadline)
}

func (s *QuoteHandlerTestSuite) Test_HandleVerify_Rejected() {
	data, err := s.quote.Encode()
	s.Nil(err)
	s.verifier.EXPECT().VerifyQuote(gomock.Any(), gomock.Any(), gomock.Any()).Return(fmt.Errorf("invalid signature"))

	recorder := s.post(data, make([]byte, 65))

	s.Equal(http.StatusOK, recorder.Code)
	resp := handlers.QuoteResponse{}
	s.Nil(json.Unmarshal(recorder.Body.Bytes(), &resp))
	s.False(resp.Valid)
	s.Equal("invalid signature", resp.Reason)
}

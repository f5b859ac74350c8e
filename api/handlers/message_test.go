package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gorilla/mux"
	"github.com/sprintertech/svm-spoke/api/handlers"
	mock_handlers "github.com/sprintertech/svm-spoke/api/handlers/mock"
	"github.com/sprintertech/svm-spoke/store"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BurnMessageHandlerTestSuite struct {
	suite.Suite

	handler  *handlers.BurnMessageHandler
	messages *mock_handlers.MockBurnMessageQuerier
}

func TestRunBurnMessageHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BurnMessageHandlerTestSuite))
}

func (s *BurnMessageHandlerTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.messages = mock_handlers.NewMockBurnMessageQuerier(ctrl)
	s.handler = handlers.NewBurnMessageHandler(s.messages)
}

func (s *BurnMessageHandlerTestSuite) get(nonce string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/messages/"+nonce, nil)
	req = mux.SetURLVars(req, map[string]string{"nonce": nonce})
	recorder := httptest.NewRecorder()
	s.handler.HandleBurnMessage(recorder, req)
	return recorder
}

func (s *BurnMessageHandlerTestSuite) Test_HandleBurnMessage_InvalidNonce() {
	recorder := s.get("invalid")

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *BurnMessageHandlerTestSuite) Test_HandleBurnMessage_NotFound() {
	s.messages.EXPECT().BurnMessage(uint64(7)).Return(nil, fmt.Errorf("%w: burn_messages", store.ErrNotFound))

	recorder := s.get("7")

	s.Equal(http.StatusNotFound, recorder.Code)
}

func (s *BurnMessageHandlerTestSuite) Test_HandleBurnMessage_StoreError() {
	s.messages.EXPECT().BurnMessage(uint64(7)).Return(nil, fmt.Errorf("error"))

	recorder := s.get("7")

	s.Equal(http.StatusInternalServerError, recorder.Code)
}

func (s *BurnMessageHandlerTestSuite) Test_HandleBurnMessage_Valid() {
	sender := solana.NewWallet().PublicKey()
	s.messages.EXPECT().BurnMessage(uint64(7)).Return(&store.BurnMessage{
		Nonce:        7,
		SourceDomain: 5,
		Sender:       sender,
		Amount:       1000,
		HookData:     []byte{1, 2},
	}, nil)

	recorder := s.get("7")

	s.Equal(http.StatusOK, recorder.Code)
	resp := handlers.BurnMessageResponse{}
	s.Nil(json.Unmarshal(recorder.Body.Bytes(), &resp))
	s.Equal(uint64(7), resp.Nonce)
	s.Equal(uint32(5), resp.SourceDomain)
	s.Equal(sender.String(), resp.Sender)
	s.Equal(uint64(1000), resp.Amount)
	s.Equal("0x0102", resp.HookData)
}

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/svm-spoke/api/handlers"
)

func Serve(
	ctx context.Context,
	addr string,
	poolHandler *handlers.PoolHandler,
	relayHashHandler *handlers.RelayHashHandler,
	quoteHandler *handlers.QuoteHandler,
	nonceHandler *handlers.NonceHandler,
	burnMessageHandler *handlers.BurnMessageHandler,
) {
	r := mux.NewRouter()
	r.HandleFunc("/v1/fills/{relayHash}", poolHandler.HandleFillStatus).Methods("GET")
	r.HandleFunc("/v1/bundles/{rootBundleId:[0-9]+}", poolHandler.HandleRootBundle).Methods("GET")
	r.HandleFunc("/v1/tokens/{token}", poolHandler.HandleToken).Methods("GET")
	r.HandleFunc("/v1/tokens/{token}/claims/{refundAddress}", poolHandler.HandleClaim).Methods("GET")
	r.HandleFunc("/v1/relay-hash", relayHashHandler.HandleRelayHash).Methods("POST")
	r.HandleFunc("/v1/refund-leaf-hash", relayHashHandler.HandleRefundLeafHash).Methods("POST")
	r.HandleFunc("/v1/messages/{nonce:[0-9]+}", burnMessageHandler.HandleBurnMessage).Methods("GET")
	if quoteHandler != nil {
		r.HandleFunc("/v1/quotes/verify", quoteHandler.HandleVerify).Methods("POST")
	}
	if nonceHandler != nil {
		r.HandleFunc("/v1/quotes/nonces/{nonce}", nonceHandler.HandleUsedNonce).Methods("GET")
	}

	server := &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: time.Second * 10,
	}
	go func() {
		log.Info().Msgf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		log.Err(err).Msgf("Error shutting down server")
	} else {
		log.Info().Msgf("Server shut down gracefully.")
	}
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/pprof"
	"strconv"
	"time"

	"github.com/orbs-network/knowledge-directory/config"
	"github.com/orbs-network/knowledge-directory/instrumentation/metric"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/publicapi"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"golang.org/x/net/netutil"
)

var LogTag = log.String("adapter", "http-server")

const MAX_REQUEST_BODY_SIZE_BYTES = 64 * 1024

type httpErr struct {
	code     int
	logField *log.Field
	message  string
}

type HttpServer interface {
	GracefulShutdown(timeout time.Duration)
	Port() int
}

type server struct {
	httpServer     *http.Server
	logger         log.Logger
	publicApi      publicapi.PublicApi
	metricRegistry metric.Registry
	config         config.HttpServerConfig
	cors           *cors.Cors

	port      int
	startTime time.Time
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	err = tc.SetKeepAlive(true)
	if err != nil {
		return nil, err
	}
	err = tc.SetKeepAlivePeriod(35 * time.Second)
	if err != nil {
		return nil, err
	}
	return tc, nil
}

// NewHttpServer returns once the socket is listening, so Port is valid immediately
func NewHttpServer(cfg config.HttpServerConfig, logger log.Logger, publicApi publicapi.PublicApi, metricRegistry metric.Registry) (HttpServer, error) {
	s := newServer(cfg, logger, publicApi, metricRegistry)

	listener, err := net.Listen("tcp", cfg.HttpAddress())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to start http server on %s", cfg.HttpAddress())
	}

	s.port = listener.Addr().(*net.TCPAddr).Port
	s.httpServer = &http.Server{
		Handler:           s.createRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	limited := netutil.LimitListener(tcpKeepAliveListener{listener.(*net.TCPListener)}, int(cfg.HttpMaxConnections()))
	go func() {
		if err := s.httpServer.Serve(limited); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server stopped serving", log.Error(err))
		}
	}()

	s.logger.Info("started http server", log.String("address", cfg.HttpAddress()), log.Int("port", s.port))

	return s, nil
}

func newServer(cfg config.HttpServerConfig, logger log.Logger, publicApi publicapi.PublicApi, metricRegistry metric.Registry) *server {
	return &server{
		logger:         logger.WithTags(LogTag),
		publicApi:      publicApi,
		metricRegistry: metricRegistry,
		config:         cfg,
		cors:           cors.AllowAll(),
		startTime:      time.Now(),
	}
}

func (s *server) Port() int {
	return s.port
}

func (s *server) GracefulShutdown(timeout time.Duration) {
	ctx := context.Background()
	if timeout > 0 {
		var cancel func()
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("failed to stop http server gracefully", log.Error(err))
	}
}

func (s *server) createRouter() http.Handler {
	router := http.NewServeMux()
	router.Handle("/api/v1/send-transaction", s.withCORS(s.sendTransactionHandler))
	router.Handle("/api/v1/get-account", s.withCORS(s.getAccountHandler))
	router.Handle("/api/v1/get-contribution", s.withCORS(s.getContributionHandler))
	router.Handle("/api/v1/request-airdrop", s.withCORS(s.requestAirdropHandler))
	router.Handle("/metrics", s.withCORS(s.dumpMetrics))
	router.Handle("/status", s.withCORS(s.getStatus))
	router.Handle("/robots.txt", http.HandlerFunc(s.robots))
	router.Handle("/debug/logs/filter-on", http.HandlerFunc(s.filterOn))
	router.Handle("/debug/logs/filter-off", http.HandlerFunc(s.filterOff))

	if s.config.Profiling() {
		registerPprof(router)
	}

	return router
}

// allows handlers to be called via XHR requests from any host
func (s *server) withCORS(f http.HandlerFunc) http.Handler {
	return s.cors.Handler(f)
}

func readInput(w http.ResponseWriter, r *http.Request) ([]byte, *httpErr) {
	if r.Body == nil {
		return nil, &httpErr{http.StatusBadRequest, nil, "http request body is empty"}
	}

	bytes, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MAX_REQUEST_BODY_SIZE_BYTES))
	if err != nil {
		return nil, &httpErr{http.StatusBadRequest, log.Error(err), "http request body could not be read"}
	}
	if len(bytes) == 0 {
		return nil, &httpErr{http.StatusBadRequest, nil, "http request body is empty"}
	}
	return bytes, nil
}

func decodeJson(bytes []byte, into interface{}) *httpErr {
	if err := json.Unmarshal(bytes, into); err != nil {
		return &httpErr{http.StatusBadRequest, log.Error(err), "http request is not valid json"}
	}
	return nil
}

func requireMethod(r *http.Request, method string) *httpErr {
	if r.Method != method {
		return &httpErr{http.StatusMethodNotAllowed, log.String("method", r.Method), "http method not allowed, use " + method}
	}
	return nil
}

func addressFromQuery(r *http.Request) (protocol.Address, *httpErr) {
	value := r.URL.Query().Get("address")
	if value == "" {
		return protocol.Address{}, &httpErr{http.StatusBadRequest, nil, "address query parameter is missing"}
	}
	address, err := protocol.AddressFromString(value)
	if err != nil {
		return protocol.Address{}, &httpErr{http.StatusBadRequest, log.Error(err), "address query parameter is malformed"}
	}
	return address, nil
}

func translateToHttpCode(status publicapi.RequestStatus, result protocol.ExecutionResult) int {
	switch status {
	case publicapi.REQUEST_STATUS_COMPLETED:
		return http.StatusOK
	case publicapi.REQUEST_STATUS_REJECTED:
		switch result {
		case protocol.EXECUTION_RESULT_ERROR_AUTHORIZATION:
			return http.StatusUnauthorized
		case protocol.EXECUTION_RESULT_ERROR_ALLOCATION:
			return http.StatusPaymentRequired
		default:
			return http.StatusBadRequest
		}
	case publicapi.REQUEST_STATUS_NOT_FOUND:
		return http.StatusNotFound
	case publicapi.REQUEST_STATUS_CONGESTION:
		return http.StatusTooManyRequests
	case publicapi.REQUEST_STATUS_SYSTEM_ERROR:
		return http.StatusInternalServerError
	}
	return http.StatusNotImplemented
}

func (s *server) writeJsonResponse(w http.ResponseWriter, body interface{}, status publicapi.RequestStatus, result protocol.ExecutionResult, height primitives.BlockHeight, errorForVerbosity error) {
	bytes, err := json.Marshal(body)
	if err != nil {
		s.writeErrorResponseAndLog(w, &httpErr{http.StatusInternalServerError, log.Error(err), "failed to encode response"})
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-REQUEST-RESULT", string(status))
	w.Header().Set("X-BLOCK-HEIGHT", strconv.FormatUint(uint64(height), 10))
	if result != protocol.EXECUTION_RESULT_RESERVED {
		w.Header().Set("X-EXECUTION-RESULT", result.String())
	}
	if errorForVerbosity != nil {
		w.Header().Set("X-ERROR-DETAILS", errorForVerbosity.Error())
	}
	w.WriteHeader(translateToHttpCode(status, result))
	if _, err := w.Write(bytes); err != nil {
		s.logger.Info("error writing response", log.Error(err))
	}
}

func (s *server) writeErrorResponseAndLog(w http.ResponseWriter, m *httpErr) {
	if m.logField == nil {
		s.logger.Info(m.message)
	} else {
		s.logger.Info(m.message, m.logField)
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(m.code)
	_, err := w.Write([]byte(m.message))
	if err != nil {
		s.logger.Info("error writing response", log.Error(err))
	}
}

func registerPprof(router *http.ServeMux) {
	router.HandleFunc("/debug/pprof/", pprof.Index)
	router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("/debug/pprof/profile", pprof.Profile)
	router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("/debug/pprof/trace", pprof.Trace)
}

/*
Package api serves the predictions of a tree over HTTP.

	POST /predict  {"values": ["x", "s", "n"]}  ->  {"probability": 0.93}
	GET  /tree     the tree as JSON
	GET  /healthz  liveness
	GET  /metrics  Prometheus metrics

The served tree is immutable, so requests predict with it concurrently
without any locking.
*/
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pbanos/sprout/tree"
	treejson "github.com/pbanos/sprout/tree/json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	outcomeOK                  = "ok"
	outcomeInvalidRequest      = "invalid_request"
	outcomeUnseenCategory      = "unseen_category"
	outcomeAttributeOutOfRange = "attribute_out_of_range"
	outcomePredictionFailure   = "prediction_failure"
	shutdownTimeout            = 5 * time.Second
)

// PredictRequest is the body of a prediction request
type PredictRequest struct {
	Values []string `json:"values" binding:"required"`
}

// PredictResponse is the body of a successful prediction
type PredictResponse struct {
	Probability float64 `json:"probability"`
}

// ErrorResponse is the body of a failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Server serves the predictions of a tree
type Server struct {
	tree        *tree.Tree
	logger      *zap.Logger
	registry    *prometheus.Registry
	predictions *prometheus.CounterVec
	latency     prometheus.Histogram
	engine      *gin.Engine
}

/*
New takes a tree and a logger and returns a Server for the tree with its
own Prometheus registry.
*/
func New(t *tree.Tree, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	s := &Server{
		tree:     t,
		logger:   logger,
		registry: reg,
		predictions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sprout_predictions_total",
			Help: "Number of prediction requests by outcome",
		}, []string{"outcome"}),
		latency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sprout_prediction_duration_seconds",
			Help:    "Time spent predicting a record",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 12),
		}),
	}
	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), s.logRequests)
	s.engine.POST("/predict", s.predict)
	s.engine.GET("/tree", s.showTree)
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	return s
}

// Handler returns the http.Handler of the server
func (s *Server) Handler() http.Handler {
	return s.engine
}

/*
Run takes a context and an address and serves on the address until the
context is done, then shuts the server down gracefully.
*/
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}
	errs := make(chan error, 1)
	go func() {
		s.logger.Info("serving predictions", zap.String("addr", addr))
		errs <- srv.ListenAndServe()
	}()
	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}

func (s *Server) predict(c *gin.Context) {
	req := &PredictRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		s.fail(c, http.StatusBadRequest, outcomeInvalidRequest, err)
		return
	}
	start := time.Now()
	p, err := s.tree.Predict(req.Values)
	s.latency.Observe(time.Since(start).Seconds())
	switch {
	case err == nil:
		s.predictions.WithLabelValues(outcomeOK).Inc()
		c.JSON(http.StatusOK, &PredictResponse{p})
	case errors.Is(err, tree.ErrUnseenCategory):
		s.fail(c, http.StatusUnprocessableEntity, outcomeUnseenCategory, err)
	case errors.Is(err, tree.ErrAttributeIndexOutOfRange):
		s.fail(c, http.StatusUnprocessableEntity, outcomeAttributeOutOfRange, err)
	default:
		s.fail(c, http.StatusInternalServerError, outcomePredictionFailure, err)
	}
}

func (s *Server) showTree(c *gin.Context) {
	data, err := treejson.Marshal(s.tree)
	if err != nil {
		s.logger.Error("marshalling tree", zap.Error(err))
		c.JSON(http.StatusInternalServerError, &ErrorResponse{err.Error(), "tree_unavailable"})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

func (s *Server) fail(c *gin.Context, status int, kind string, err error) {
	s.predictions.WithLabelValues(kind).Inc()
	c.JSON(status, &ErrorResponse{err.Error(), kind})
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("latency", time.Since(start)),
	)
}

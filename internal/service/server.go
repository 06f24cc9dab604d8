// Package service exposes the ledger's operation surface over HTTP.
package service

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/protectedpay/ledger/internal/auth"
	"github.com/protectedpay/ledger/internal/ledger"
	"github.com/protectedpay/ledger/internal/metrics"
	"github.com/protectedpay/ledger/internal/middleware"
	"github.com/protectedpay/ledger/internal/registry"
	"github.com/protectedpay/ledger/internal/storage"
)

// Server holds the engines and collaborators behind the HTTP API.
type Server struct {
	payments *ledger.PaymentEngine
	pots     *ledger.PotEngine
	names    *registry.Registry
	store    storage.Store
	authn    auth.Authenticator
	jwt      *auth.JWTManager
	metrics  *metrics.Metrics
}

// New creates a server over the given engines and collaborators.
func New(
	payments *ledger.PaymentEngine,
	pots *ledger.PotEngine,
	names *registry.Registry,
	store storage.Store,
	authn auth.Authenticator,
	jwtManager *auth.JWTManager,
	m *metrics.Metrics,
) *Server {
	return &Server{
		payments: payments,
		pots:     pots,
		names:    names,
		store:    store,
		authn:    authn,
		jwt:      jwtManager,
		metrics:  m,
	}
}

// RegisterRoutes wires the operation surface onto the gin engine.
// Reads are public (the dashboard renders without a session); every
// mutation requires an authenticated caller address.
func (s *Server) RegisterRoutes(r *gin.Engine, gatherer prometheus.Gatherer) {
	r.Use(middleware.RequestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	r.POST("/auth/register", s.register)
	r.POST("/auth/login", s.login)

	r.GET("/payments/:id", s.getPayment)
	r.GET("/pots/:id", s.getPot)
	r.GET("/usernames/:name", s.resolveUsername)
	r.GET("/addresses/:address/username", s.reverseResolveUsername)

	authed := r.Group("/", middleware.RequireAuth(s.jwt))
	authed.POST("/payments", s.createPayment)
	authed.POST("/payments/:id/contribute", s.contributeToPayment)
	authed.POST("/payments/:id/refund", s.refundPayment)
	authed.GET("/payments", s.listPayments)
	authed.POST("/pots", s.createPot)
	authed.POST("/pots/:id/contribute", s.contributeToPot)
	authed.POST("/pots/:id/break", s.breakPot)
	authed.GET("/pots", s.listPots)
	authed.POST("/usernames", s.registerUsername)
	authed.GET("/transfers", s.listTransfers)
}

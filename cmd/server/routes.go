package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/internal/interfaces/http/handlers"
	"careconnect.backend/internal/interfaces/http/middleware"
	"careconnect.backend/internal/interfaces/http/router"
)

const apiV1 = "/api/v1"

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	clientHandler       *handlers.ClientHandler
	providerHandler     *handlers.ProviderHandler
	verificationHandler *handlers.VerificationHandler
	bookingHandler      *handlers.BookingHandler
	walletHandler       *handlers.WalletHandler
	serviceHandler      *handlers.ServiceHandler
	adminHandler        *handlers.AdminHandler
	realtimeHandler     *handlers.RealtimeHandler

	authMiddleware        gin.HandlerFunc
	rateLimitMiddleware   gin.HandlerFunc
	idempotencyMiddleware gin.HandlerFunc
}

func newEngine(d routeDeps) (*gin.Engine, error) {
	if err := middleware.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(gin.Recovery())
	applyCORSMiddleware(r)

	table := router.NewTable()
	if err := table.Add(r, "",
		router.R(http.MethodGet, "/health", healthHandler),
		router.R(http.MethodGet, "/metrics", gin.WrapH(promhttp.Handler())),
		router.R(http.MethodGet, "/ws/verification", d.realtimeHandler.VerificationSocket),
	); err != nil {
		return nil, err
	}
	if err := registerAPIV1Routes(r, table, d); err != nil {
		return nil, err
	}
	table.Mount()
	return r, nil
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(middleware.CORSMiddleware())
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "careconnect-backend",
		"version": "1.0.0",
	})
}

func registerAPIV1Routes(r *gin.Engine, table *router.Table, d routeDeps) error {
	v1 := r.Group(apiV1)
	authed := v1.Group("", d.authMiddleware)
	client := authed.Group("", middleware.RequireRole(entities.UserRoleClient))
	provider := authed.Group("", middleware.RequireRole(entities.UserRoleProvider))
	admin := authed.Group("", middleware.RequireAdmin())

	// Public
	if err := table.Add(v1, apiV1,
		router.R(http.MethodPost, "/auth/signup/client", d.rateLimitMiddleware, d.authHandler.SignupClient),
		router.R(http.MethodPost, "/auth/signup/provider", d.rateLimitMiddleware, d.authHandler.SignupProvider),
		router.R(http.MethodPost, "/auth/login", d.rateLimitMiddleware, d.authHandler.Login),
		router.R(http.MethodPost, "/auth/refresh", d.authHandler.Refresh),

		router.R(http.MethodGet, "/services", d.serviceHandler.List),
		router.R(http.MethodGet, "/services/:id", d.serviceHandler.Get),
		router.R(http.MethodGet, "/services/:id/quote", d.serviceHandler.Quote),
	); err != nil {
		return err
	}

	// Any authenticated role
	if err := table.Add(authed, apiV1,
		router.R(http.MethodGet, "/providers", d.providerHandler.List),
		router.R(http.MethodGet, "/providers/:id", d.providerHandler.Get),
		router.R(http.MethodGet, "/verification/:providerId",
			middleware.RequireRole(entities.UserRoleProvider, entities.UserRoleAdmin), d.verificationHandler.Get),
	); err != nil {
		return err
	}

	if err := table.Add(client, apiV1,
		router.R(http.MethodGet, "/client/profile", d.clientHandler.GetProfile),
		router.R(http.MethodPut, "/client/profile", d.clientHandler.UpdateProfile),
		router.R(http.MethodGet, "/client/locations", d.clientHandler.ListLocations),
		router.R(http.MethodPost, "/client/locations", d.clientHandler.AddLocation),
		router.R(http.MethodPut, "/client/locations/:id/default", d.clientHandler.SetDefaultLocation),
		router.R(http.MethodDelete, "/client/locations/:id", d.clientHandler.DeleteLocation),
		router.R(http.MethodGet, "/client/family-members", d.clientHandler.ListFamilyMembers),
		router.R(http.MethodPost, "/client/family-members", d.clientHandler.AddFamilyMember),
		router.R(http.MethodPut, "/client/family-members/:id", d.clientHandler.UpdateFamilyMember),
		router.R(http.MethodDelete, "/client/family-members/:id", d.clientHandler.DeleteFamilyMember),
		router.R(http.MethodGet, "/client/favorites", d.clientHandler.ListFavorites),
		router.R(http.MethodPost, "/client/favorites", d.clientHandler.AddFavorite),
		router.R(http.MethodDelete, "/client/favorites/:providerId", d.clientHandler.RemoveFavorite),

		router.R(http.MethodPost, "/requests/create", d.idempotencyMiddleware, d.bookingHandler.Create),
		router.R(http.MethodGet, "/bookings/client", d.bookingHandler.ListClient),
		router.R(http.MethodPost, "/bookings/cancel", d.bookingHandler.Cancel),
		router.R(http.MethodPost, "/bookings/rate", d.bookingHandler.Rate),
		router.R(http.MethodPost, "/bookings/pay", d.bookingHandler.Pay),

		router.R(http.MethodGet, "/wallet", d.walletHandler.Get),
		router.R(http.MethodGet, "/wallet/transactions", d.walletHandler.Transactions),
		router.R(http.MethodPost, "/wallet/add", d.idempotencyMiddleware, d.walletHandler.Add),
		router.R(http.MethodPost, "/wallet/withdraw", d.idempotencyMiddleware, d.walletHandler.Withdraw),
		router.R(http.MethodPost, "/wallet/verify-payment", d.walletHandler.VerifyPayment),
	); err != nil {
		return err
	}

	if err := table.Add(provider, apiV1,
		router.R(http.MethodGet, "/provider/profile", d.providerHandler.GetProfile),
		router.R(http.MethodPut, "/provider/profile", d.providerHandler.UpdateProfile),
		router.R(http.MethodPut, "/provider/availability", d.providerHandler.SetAvailability),
		router.R(http.MethodGet, "/provider/earnings", d.providerHandler.Earnings),
		router.R(http.MethodGet, "/provider/verification", d.verificationHandler.GetOwn),
		router.R(http.MethodPost, "/verification/submit-stage", d.verificationHandler.SubmitStage),

		router.R(http.MethodGet, "/bookings/provider", d.bookingHandler.ListProvider),
		router.R(http.MethodGet, "/jobs/open", d.bookingHandler.OpenJobs),
		router.R(http.MethodPost, "/jobs/accept", d.bookingHandler.Accept),
		router.R(http.MethodPost, "/jobs/update-status", d.bookingHandler.UpdateStatus),
	); err != nil {
		return err
	}

	return table.Add(admin, apiV1,
		router.R(http.MethodGet, "/admin/services", d.serviceHandler.AdminList),
		router.R(http.MethodPost, "/admin/services", d.serviceHandler.Create),
		router.R(http.MethodPut, "/admin/services/:id", d.serviceHandler.Update),
		router.R(http.MethodDelete, "/admin/services/:id", d.serviceHandler.Delete),

		router.R(http.MethodGet, "/admin/verifications", d.verificationHandler.ListForReview),
		router.R(http.MethodPost, "/admin/verifications/review", d.verificationHandler.Review),
		router.R(http.MethodPost, "/admin/providers/:id/approve", d.verificationHandler.Approve),
		router.R(http.MethodPost, "/admin/providers/:id/reject", d.verificationHandler.Reject),
		router.R(http.MethodPost, "/admin/providers/:id/blacklist", d.verificationHandler.Blacklist),
		router.R(http.MethodPost, "/admin/providers/:id/unapprove", d.verificationHandler.Unapprove),

		router.R(http.MethodGet, "/admin/providers", d.adminHandler.ListProviders),
		router.R(http.MethodGet, "/admin/clients", d.adminHandler.ListClients),
		router.R(http.MethodGet, "/admin/bookings", d.adminHandler.ListBookings),
		router.R(http.MethodGet, "/admin/stats", d.adminHandler.Stats),
	)
}

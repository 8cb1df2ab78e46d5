package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"cupcake-backend/application/ports"
	"cupcake-backend/application/services"
	"cupcake-backend/infrastructure/config"
	"cupcake-backend/interfaces/http/rest/handlers"
	"cupcake-backend/interfaces/http/rest/middleware"
	"cupcake-backend/pkg/common"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg      *config.Config
	cart     *services.CartService
	checkout *services.CheckoutService
	orders   *services.OrderService
	identity *services.IdentityService
	catalog  *services.CatalogService
	sessions ports.SessionStore
	logger   *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	cart *services.CartService,
	checkout *services.CheckoutService,
	orders *services.OrderService,
	identity *services.IdentityService,
	catalog *services.CatalogService,
	sessions ports.SessionStore,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:      cfg,
		cart:     cart,
		checkout: checkout,
		orders:   orders,
		identity: identity,
		catalog:  catalog,
		sessions: sessions,
		logger:   logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(rt.sessions, rt.cfg.SessionTTL, rt.cfg.IsProduction(), rt.logger))

		authHandler := handlers.NewAuthHandler(rt.identity, rt.sessions, rt.logger)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Post("/register", authHandler.Register)
			r.Get("/me", authHandler.Me)
		})

		catalogHandler := handlers.NewCatalogHandler(rt.catalog, rt.logger)
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/bottoms", catalogHandler.ListBottoms)
			r.Get("/toppings", catalogHandler.ListToppings)
		})

		cartHandler := handlers.NewCartHandler(rt.cart, rt.logger)
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.Clear)
			r.Post("/lines", cartHandler.AddLine)
			r.Delete("/lines/{index}", cartHandler.RemoveLine)
			r.Post("/lines/{index}/increment", cartHandler.IncrementLine)
			r.Post("/lines/{index}/decrement", cartHandler.DecrementLine)
		})

		checkoutHandler := handlers.NewCheckoutHandler(rt.checkout, rt.logger)
		r.Route("/checkout", func(r chi.Router) {
			r.Post("/delivery", checkoutHandler.SubmitDelivery)
			r.Post("/contact", checkoutHandler.SubmitContact)
			r.Get("/payment", checkoutHandler.GetPayment)
			r.Post("/payment", checkoutHandler.SubmitPayment)
			r.Get("/confirmation", checkoutHandler.GetConfirmation)
			r.Post("/restart", checkoutHandler.Restart)
		})

		orderHandler := handlers.NewOrderHandler(rt.orders, rt.logger)
		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/", orderHandler.ListMine)
			r.Get("/{id}", orderHandler.Get)
		})

		customerHandler := handlers.NewCustomerHandler(rt.identity, rt.logger)
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", orderHandler.ListAll)
				r.Patch("/{id}/paid", orderHandler.SetPaid)
				r.Delete("/{id}", orderHandler.Delete)
			})
			r.Get("/revenue", orderHandler.Revenue)

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", customerHandler.List)
				r.Post("/{id}/balance", customerHandler.AddBalance)
			})

			r.Route("/catalog", func(r chi.Router) {
				r.Post("/bottoms", catalogHandler.CreateBottom)
				r.Put("/bottoms/{id}", catalogHandler.UpdateBottom)
				r.Delete("/bottoms/{id}", catalogHandler.DeleteBottom)
				r.Post("/toppings", catalogHandler.CreateTopping)
				r.Put("/toppings/{id}", catalogHandler.UpdateTopping)
				r.Delete("/toppings/{id}", catalogHandler.DeleteTopping)
			})
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{
		"status":      "healthy",
		"environment": rt.cfg.Environment,
	})
}

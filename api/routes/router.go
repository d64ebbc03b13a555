package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bhumi-studio/bhumi-backend/api/controllers"
	"github.com/bhumi-studio/bhumi-backend/api/middleware"
	"github.com/bhumi-studio/bhumi-backend/internal/auth"
	cartsvc "github.com/bhumi-studio/bhumi-backend/internal/cart"
	"github.com/bhumi-studio/bhumi-backend/internal/catalog"
	notificationsvc "github.com/bhumi-studio/bhumi-backend/internal/notifications"
	ordersvc "github.com/bhumi-studio/bhumi-backend/internal/orders"
	reviewsvc "github.com/bhumi-studio/bhumi-backend/internal/reviews"
	usersvc "github.com/bhumi-studio/bhumi-backend/internal/users"
	wishlistsvc "github.com/bhumi-studio/bhumi-backend/internal/wishlist"
	"github.com/bhumi-studio/bhumi-backend/pkg/auth/session"
	"github.com/bhumi-studio/bhumi-backend/pkg/config"
	"github.com/bhumi-studio/bhumi-backend/pkg/db"
	"github.com/bhumi-studio/bhumi-backend/pkg/enums"
	"github.com/bhumi-studio/bhumi-backend/pkg/logger"
	"github.com/bhumi-studio/bhumi-backend/pkg/metrics"
	"github.com/bhumi-studio/bhumi-backend/pkg/redis"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth          auth.Service
	Accounts      usersvc.Service
	Catalog       catalog.Service
	Cart          cartsvc.Service
	Orders        ordersvc.Service
	Reviews       reviewsvc.Service
	Wishlist      wishlistsvc.Service
	Notifications notificationsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	sessionChecker session.AccessSessionChecker,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		r.Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, sessionChecker, logg)).Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(svcs.Catalog, logg))
		r.Get("/{productId}", controllers.ProductDetail(svcs.Catalog, logg))
		r.Get("/{productId}/reviews", controllers.ProductReviews(svcs.Reviews, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(svcs.Cart, logg))
			r.Post("/items", controllers.CartAddItem(svcs.Cart, logg))
			r.Put("/items", controllers.CartUpdateItem(svcs.Cart, logg))
			r.Post("/items/remove", controllers.CartRemoveItem(svcs.Cart, logg))
			r.Delete("/", controllers.CartClear(svcs.Cart, logg))
			r.Put("/open", controllers.CartSetOpen(svcs.Cart, logg))
		})

		r.Post("/checkout", controllers.Checkout(svcs.Orders, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(svcs.Orders, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistList(svcs.Wishlist, logg))
			r.Get("/{productId}", controllers.WishlistContains(svcs.Wishlist, logg))
			r.Put("/{productId}", controllers.WishlistAdd(svcs.Wishlist, logg))
			r.Delete("/{productId}", controllers.WishlistRemove(svcs.Wishlist, logg))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", controllers.ReviewCreate(svcs.Reviews, logg))
			r.Delete("/{productId}", controllers.ReviewDelete(svcs.Reviews, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(svcs.Notifications, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(svcs.Notifications, logg))
		})

		r.Route("/account", func(r chi.Router) {
			r.Get("/", controllers.AccountProfile(svcs.Accounts, logg))
			r.Put("/", controllers.AccountUpdateProfile(svcs.Accounts, logg))
			r.Put("/password", controllers.AccountChangePassword(svcs.Accounts, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProductList(svcs.Catalog, logg))
			r.Post("/", controllers.AdminProductCreate(svcs.Catalog, logg))
			r.Patch("/{productId}", controllers.AdminProductUpdate(svcs.Catalog, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(svcs.Catalog, logg))
			r.Put("/{productId}/active", controllers.AdminProductSetActive(svcs.Catalog, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(svcs.Orders, logg))
			r.Put("/{orderId}/status", controllers.AdminOrderUpdateStatus(svcs.Orders, logg))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", controllers.AdminReviewList(svcs.Reviews, logg))
			r.Delete("/{reviewId}", controllers.AdminReviewDelete(svcs.Reviews, logg))
		})
	})

	return r
}

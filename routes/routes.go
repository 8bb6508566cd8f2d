// routes/routes.go
package routes

import (
	"net/http"

	"go-foodorder/controllers"
	"go-foodorder/middleware"
	"go-foodorder/utils"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Controllers groups the handlers mounted by RegisterRoutes
type Controllers struct {
	Users    *controllers.UserController
	Menu     *controllers.MenuController
	Cart     *controllers.CartController
	Orders   *controllers.OrderController
	Admin    *controllers.AdminController
	Payments *controllers.PaymentController
	Health   *controllers.HealthController
}

// RegisterRoutes sets up all the routes for the application under /api
func RegisterRoutes(router *mux.Router, c Controllers, guard middleware.Authenticator) {
	router.HandleFunc("/healthz", c.Health.Healthz).Methods("GET")
	router.Handle("/metrics", utils.MetricsHandler()).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/users/register", c.Users.Register).Methods("POST")
	api.HandleFunc("/users/login", c.Users.Login).Methods("POST")
	api.HandleFunc("/menu", c.Menu.GetMenu).Methods("GET")
	api.HandleFunc("/menu/{id}", c.Menu.GetMenuItem).Methods("GET")

	// Protected routes
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(guard))
	protected.HandleFunc("/users/me", c.Users.GetProfile).Methods("GET")
	protected.HandleFunc("/users/me", c.Users.UpdateProfile).Methods("PUT")

	// Cart routes
	protected.HandleFunc("/cart", c.Cart.GetCart).Methods("GET")
	protected.HandleFunc("/cart", c.Cart.AddToCart).Methods("POST")
	protected.HandleFunc("/cart/{id}", c.Cart.UpdateCartItem).Methods("PUT")
	protected.HandleFunc("/cart/{id}", c.Cart.RemoveFromCart).Methods("DELETE")

	// Payment and order routes
	protected.HandleFunc("/payments", c.Payments.ConfirmPayment).Methods("POST")
	protected.HandleFunc("/orders", c.Orders.CreateOrder).Methods("POST")
	protected.HandleFunc("/orders", c.Orders.GetOrders).Methods("GET")
	protected.HandleFunc("/orders/{id}", c.Orders.CancelOrder).Methods("DELETE")

	// Admin routes
	admin := api.NewRoute().Subrouter()
	admin.Use(middleware.AdminMiddleware(guard))
	admin.HandleFunc("/menu", c.Menu.CreateMenuItem).Methods("POST")
	admin.HandleFunc("/menu/{id}", c.Menu.UpdateMenuItem).Methods("PUT")
	admin.HandleFunc("/menu/{id}", c.Menu.DeleteMenuItem).Methods("DELETE")
	admin.HandleFunc("/admin/orders", c.Admin.ListOrders).Methods("GET")
	admin.HandleFunc("/admin/orders/{id}", c.Admin.UpdateOrderStatus).Methods("PUT")
	admin.HandleFunc("/admin/orders/{id}", c.Admin.DeleteOrder).Methods("DELETE")
}

// NewRouter builds the full handler: request id, logging, recovery and metrics
// around every route, and CORS for the browser client
func NewRouter(c Controllers, guard middleware.Authenticator, corsOrigins []string) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.RequestID, middleware.Logger, middleware.Recovery, middleware.Metrics)
	RegisterRoutes(router, c, guard)

	// mux skips Use middleware when nothing matches
	router.NotFoundHandler = chain(http.HandlerFunc(notFound))
	router.MethodNotAllowedHandler = chain(http.HandlerFunc(methodNotAllowed))

	cors := handlers.CORS(
		handlers.AllowedOrigins(corsOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", controllers.IdempotencyKeyHeader, middleware.RequestIDHeader}),
		handlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
	)
	return cors(router)
}

func chain(h http.Handler) http.Handler {
	return middleware.RequestID(middleware.Logger(middleware.Recovery(middleware.Metrics(h))))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteMessage(w, http.StatusNotFound, "route not found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.WriteMessage(w, http.StatusMethodNotAllowed, "method not allowed")
}

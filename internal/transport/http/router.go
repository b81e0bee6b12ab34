package http

import (
	"net/http"

	"github.com/go-openapi/runtime/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	websocketTransport "github.com/shopkart/commerce-api/internal/transport/websocket"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Products  *ProductHandler
	Orders    *OrderHandler
	Carts     *CartHandler
	Users     *UserHandler
	Uploads   *UploadsHandler
	WebSocket *websocketTransport.Handler
}

// NewRouter assembles the route table. Identifier path segments are left
// unconstrained so malformed ids reach the services and come back as
// BadRequest rather than a bare 404.
func NewRouter(h Handlers, mw *Middleware) http.Handler {
	router := mux.NewRouter()

	router.Use(mw.Logging)

	// public routes
	router.HandleFunc("/register", h.Users.Register).Methods("POST")
	router.HandleFunc("/login", h.Users.Login).Methods("POST")

	router.HandleFunc("/products", h.Products.Create).Methods("POST")
	router.HandleFunc("/products", h.Products.List).Methods("GET")
	router.HandleFunc("/products/{productId}", h.Products.Get).Methods("GET")
	router.HandleFunc("/products/{productId}", h.Products.Update).Methods("PUT")
	router.HandleFunc("/products/{productId}", h.Products.Delete).Methods("DELETE")

	router.PathPrefix("/uploads/").HandlerFunc(h.Uploads.Get).Methods("GET")
	router.HandleFunc("/ws", h.WebSocket.HandleWebSocket).Methods("GET")

	// protected routes: the caller must present a token for the user in
	// the path
	protected := router.PathPrefix("/users/{userId}").Subrouter()
	protected.Use(mw.Authenticate, mw.AuthorizeSelf)
	protected.HandleFunc("/profile", h.Users.Profile).Methods("GET")
	protected.HandleFunc("/profile", h.Users.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/cart", h.Carts.AddItem).Methods("POST")
	protected.HandleFunc("/cart", h.Carts.Get).Methods("GET")
	protected.HandleFunc("/cart", h.Carts.Clear).Methods("DELETE")
	protected.HandleFunc("/orders", h.Orders.Create).Methods("POST")
	protected.HandleFunc("/orders", h.Orders.Complete).Methods("PUT")

	// API documentation
	router.HandleFunc("/swagger.yaml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "swagger.yaml")
	}).Methods("GET")
	swaggerOpts := middleware.RedocOpts{SpecURL: "/swagger.yaml"}
	router.Handle("/docs", middleware.Redoc(swaggerOpts, nil)).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	return cors(router)
}

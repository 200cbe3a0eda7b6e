package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Route descreve um endpoint HTTP e os middlewares exclusivos dele.
// Middlewares globais ficam na cadeia do servidor, não aqui.
type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler
}

// Option configura o Router durante a construção.
type Option func(*Router)

// WithRoutes registra um grupo de rotas de um handler.
func WithRoutes(routes ...Route) Option {
	return func(r *Router) {
		for _, route := range routes {
			r.register(route)
		}
	}
}

// Router envolve o httprouter com registro de rotas em grupos.
type Router struct {
	mux *httprouter.Router
}

// New monta o Router aplicando as opções na ordem recebida.
func New(opts ...Option) Router {
	r := Router{mux: httprouter.New()}

	for _, opt := range opts {
		opt(&r)
	}

	return r
}

func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// register encadeia os middlewares da rota do último para o primeiro,
// de modo que o primeiro da lista seja o mais externo.
func (r Router) register(route Route) {
	handler := route.Handler
	for i := len(route.Middlewares) - 1; i >= 0; i-- {
		handler = route.Middlewares[i](handler)
	}

	r.mux.Handler(route.Method, route.Path, handler)
}

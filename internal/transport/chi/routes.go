package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists the HTTP operations of the API.
type ServerInterface interface {
	// Search runs a product search (POST /search).
	Search(w http.ResponseWriter, r *http.Request)
	// ListHistory lists saved searches (GET /history).
	ListHistory(w http.ResponseWriter, r *http.Request, params ListHistoryParams)
	// SaveSearch stores a search result (POST /history).
	SaveSearch(w http.ResponseWriter, r *http.Request)
	// GetSearch returns one saved search (GET /history/{id}).
	GetSearch(w http.ResponseWriter, r *http.Request, id string, params GetSearchParams)
	// GetProduct returns a listing with display fields (GET /products/{id}).
	GetProduct(w http.ResponseWriter, r *http.Request, id string)
	// ListPlatforms lists the enabled marketplaces (GET /platforms).
	ListPlatforms(w http.ResponseWriter, r *http.Request)
	// HealthCheck reports component health (GET /health).
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// Metrics exposes Prometheus metrics (GET /metrics).
	Metrics(w http.ResponseWriter, r *http.Request)
}

// ListHistoryParams defines parameters for ListHistory.
type ListHistoryParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// GetSearchParams defines the product filters for GetSearch.
type GetSearchParams struct {
	MinPrice      *float64  `form:"minPrice,omitempty" json:"minPrice,omitempty"`
	MaxPrice      *float64  `form:"maxPrice,omitempty" json:"maxPrice,omitempty"`
	MinSimilarity *float64  `form:"minSimilarity,omitempty" json:"minSimilarity,omitempty"`
	Platform      *[]string `form:"platform,omitempty" json:"platform,omitempty"`
	Condition     *[]string `form:"condition,omitempty" json:"condition,omitempty"`
}

// InvalidParamFormatError reports a parameter that could not be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// ServerInterfaceWrapper binds request parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler          ServerInterface
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Search operation middleware.
func (siw *ServerInterfaceWrapper) Search(w http.ResponseWriter, r *http.Request) {
	siw.Handler.Search(w, r)
}

// ListHistory operation middleware.
func (siw *ServerInterfaceWrapper) ListHistory(w http.ResponseWriter, r *http.Request) {
	var params ListHistoryParams

	err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}

	siw.Handler.ListHistory(w, r, params)
}

// SaveSearch operation middleware.
func (siw *ServerInterfaceWrapper) SaveSearch(w http.ResponseWriter, r *http.Request) {
	siw.Handler.SaveSearch(w, r)
}

// GetSearch operation middleware.
func (siw *ServerInterfaceWrapper) GetSearch(w http.ResponseWriter, r *http.Request) {
	id, ok := siw.bindID(w, r)
	if !ok {
		return
	}

	var params GetSearchParams
	q := r.URL.Query()
	bindings := []struct {
		name string
		dest any
	}{
		{"minPrice", &params.MinPrice},
		{"maxPrice", &params.MaxPrice},
		{"minSimilarity", &params.MinSimilarity},
		{"platform", &params.Platform},
		{"condition", &params.Condition},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: b.name, Err: err})
			return
		}
	}

	siw.Handler.GetSearch(w, r, id, params)
}

// GetProduct operation middleware.
func (siw *ServerInterfaceWrapper) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := siw.bindID(w, r)
	if !ok {
		return
	}
	siw.Handler.GetProduct(w, r, id)
}

// ListPlatforms operation middleware.
func (siw *ServerInterfaceWrapper) ListPlatforms(w http.ResponseWriter, r *http.Request) {
	siw.Handler.ListPlatforms(w, r)
}

// HealthCheck operation middleware.
func (siw *ServerInterfaceWrapper) HealthCheck(w http.ResponseWriter, r *http.Request) {
	siw.Handler.HealthCheck(w, r)
}

// Metrics operation middleware.
func (siw *ServerInterfaceWrapper) Metrics(w http.ResponseWriter, r *http.Request) {
	siw.Handler.Metrics(w, r)
}

func (siw *ServerInterfaceWrapper) bindID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return "", false
	}
	return id, true
}

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseRouter       chi.Router
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler creates an http.Handler with routing matching the API.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerWithOptions mounts every operation on the base router.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:          si,
		ErrorHandlerFunc: options.ErrorHandlerFunc,
	}

	r.Post("/search", wrapper.Search)
	r.Get("/history", wrapper.ListHistory)
	r.Post("/history", wrapper.SaveSearch)
	r.Get("/history/{id}", wrapper.GetSearch)
	r.Get("/products/{id}", wrapper.GetProduct)
	r.Get("/platforms", wrapper.ListPlatforms)
	r.Get("/health", wrapper.HealthCheck)
	r.Get("/metrics", wrapper.Metrics)

	return r
}

// InvalidParamsHandler answers binding failures with the API error body.
func InvalidParamsHandler(w http.ResponseWriter, _ *http.Request, _ error) {
	writeError(w, http.StatusBadRequest, msgInvalidParams)
}

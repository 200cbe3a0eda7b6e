package handler

import (
	"net/http"

	"github.com/adlens/marketing-insights-api/internal/api/handler/router"
	"github.com/adlens/marketing-insights-api/internal/usecases/aggregating"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(services AuthServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/auth/meta/login",
			Method:  http.MethodGet,
			Handler: MetaLogin(services),
		},
		{
			Path:    "/v1/auth/meta/callback",
			Method:  http.MethodGet,
			Handler: MetaCallback(services),
		},
		{
			Path:    "/v1/auth/meta/disconnect",
			Method:  http.MethodPost,
			Handler: MetaDisconnect(services),
		},
	}
}

func Hierarchy(service aggregating.Aggregator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/meta/hierarchy",
			Method:  http.MethodGet,
			Handler: GetHierarchy(service),
		},
	}
}

func Insights(service aggregating.Aggregator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/adAccounts/:id/performance",
			Method:  http.MethodGet,
			Handler: GetAccountPerformance(service),
		},
		{
			Path:    "/v1/adAccounts/:id/top-ads",
			Method:  http.MethodGet,
			Handler: GetTopAds(service),
		},
		{
			Path:    "/v1/adAccounts/:id/ad-copy",
			Method:  http.MethodGet,
			Handler: GetAdCopy(service),
		},
		{
			Path:    "/v1/adAccounts/:id/landing-pages",
			Method:  http.MethodGet,
			Handler: GetLandingPages(service),
		},
	}
}

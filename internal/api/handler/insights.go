package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	jsoniter "github.com/json-iterator/go"

	"github.com/adlens/marketing-insights-api/internal/domain"
	"github.com/adlens/marketing-insights-api/internal/usecases/aggregating"
	"github.com/adlens/marketing-insights-api/pkg/apiErrors"
	"github.com/adlens/marketing-insights-api/pkg/log"
	"github.com/adlens/marketing-insights-api/pkg/middleware"
	"github.com/adlens/marketing-insights-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// parseFilters valida o período vindo da query string.
func parseFilters(r *http.Request) (domain.InsightFilters, error) {
	startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
	if err != nil {
		return domain.InsightFilters{}, errors.New("start_date inválido, use o formato YYYY-MM-DD")
	}

	endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
	if err != nil {
		return domain.InsightFilters{}, errors.New("end_date inválido, use o formato YYYY-MM-DD")
	}

	if endDate.Before(startDate) {
		return domain.InsightFilters{}, errors.New("end_date anterior a start_date")
	}

	return domain.InsightFilters{StartDate: startDate, EndDate: endDate}, nil
}

// writeAggregationError converte a taxonomia de erros do agregador nos
// códigos expostos ao front-end.
func writeAggregationError(w http.ResponseWriter, logger log.Logger, err error) {
	switch {
	case errors.Is(err, aggregating.ErrRateLimitExceeded):
		apiErrors.WriteError(w, apiErrors.ErrRateLimited, "Limite de requisições do Meta atingido, tente novamente em alguns minutos", nil)
	case errors.Is(err, aggregating.ErrNoDataFound):
		apiErrors.WriteEmptyCollection(w, apiErrors.ErrNoData, "Sem dados para o período selecionado")
	case errors.Is(err, aggregating.ErrNoAccountsFound):
		apiErrors.WriteEmptyCollection(w, apiErrors.ErrNoAccounts, "Nenhuma conta de anúncio encontrada para esta conexão")
	case errors.Is(err, aggregating.ErrAuthExchangeFailed):
		apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Conexão com o Meta expirou, reconecte sua conta", nil)
	case errors.Is(err, aggregating.ErrMalformedResponse):
		apiErrors.WriteError(w, apiErrors.ErrVendorResponse, "Resposta inesperada do Meta", nil)
	default:
		logger.WithError(err).Error("insights: unexpected aggregation failure")
		apiErrors.WriteError(w, apiErrors.ErrVendorUnavailable, "Falha de comunicação com o Meta", nil)
	}
}

func writeJSON(w http.ResponseWriter, logger log.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Error("insights: failed to encode response")
	}
}

// insightHandler concentra o esqueleto comum dos quatro endpoints de
// métricas por conta: sessão, :id, período e mapeamento de erros.
func insightHandler(
	name string,
	fetch func(r *http.Request, cred domain.Credential, id string, filters domain.InsightFilters) (any, error),
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		cred, ok := middleware.CredentialFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrSessionRequired, "Sessão não encontrada", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		filters, err := parseFilters(r)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"error":      err.Error(),
			}).Warn("insights: invalid date range parameters")

			apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, err.Error(), nil)
			return
		}

		logger.WithFields(log.Fields{
			"account_id": id,
			"start_date": filters.StartDate.Format(time.DateOnly),
			"end_date":   filters.EndDate.Format(time.DateOnly),
		}).Info("insights: fetching " + name)

		payload, err := fetch(r, cred, id, filters)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"error":      err.Error(),
			}).Warn("insights: failed to fetch " + name)

			writeAggregationError(w, logger, err)
			return
		}

		writeJSON(w, logger, payload)
	})
}

func GetAccountPerformance(service aggregating.Aggregator) http.Handler {
	return insightHandler("performance", func(r *http.Request, cred domain.Credential, id string, filters domain.InsightFilters) (any, error) {
		return service.FetchPerformance(r.Context(), cred, id, filters)
	})
}

func GetTopAds(service aggregating.Aggregator) http.Handler {
	return insightHandler("top ads", func(r *http.Request, cred domain.Credential, id string, filters domain.InsightFilters) (any, error) {
		return service.FetchTopAds(r.Context(), cred, id, filters)
	})
}

func GetAdCopy(service aggregating.Aggregator) http.Handler {
	return insightHandler("ad copy", func(r *http.Request, cred domain.Credential, id string, filters domain.InsightFilters) (any, error) {
		return service.FetchAdCopy(r.Context(), cred, id, filters)
	})
}

func GetLandingPages(service aggregating.Aggregator) http.Handler {
	return insightHandler("landing pages", func(r *http.Request, cred domain.Credential, id string, filters domain.InsightFilters) (any, error) {
		return service.FetchLandingPages(r.Context(), cred, id, filters)
	})
}

// GetHierarchy devolve os Business Managers e contas da conexão atual.
func GetHierarchy(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		cred, ok := middleware.CredentialFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrSessionRequired, "Sessão não encontrada", nil)
			return
		}

		logger.Info("insights: fetching business hierarchy")

		managers, err := service.FetchBusinessHierarchy(r.Context(), cred)
		if err != nil {
			logger.WithError(err).Warn("insights: failed to fetch business hierarchy")
			writeAggregationError(w, logger, err)
			return
		}

		writeJSON(w, logger, managers)
	})
}

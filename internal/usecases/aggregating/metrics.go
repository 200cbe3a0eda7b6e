package aggregating

import (
	metadomain "github.com/adlens/marketing-insights-api/infrastructure/integrator/meta/domain"
	"github.com/adlens/marketing-insights-api/pkg/utils"
)

// rowMetrics é o resultado da derivação de uma linha crua de insights.
// Todas as razões são recalculadas a cada busca; divisões por zero
// resultam em zero, nunca em NaN ou infinito.
type rowMetrics struct {
	Spend             float64
	Impressions       int
	LinkClicks        int
	Conversions       int
	ConversionValue   float64
	CTR               float64
	CPC               float64
	CPM               float64
	CostPerConversion float64
	ROAS              float64
}

// deriveMetrics extrai e deriva as métricas de uma linha de insights.
func deriveMetrics(in *metadomain.Insight) rowMetrics {
	m := rowMetrics{
		Spend:       metadomain.ParseFloat(in.Spend),
		Impressions: metadomain.ParseInt(in.Impressions),
	}

	// Cliques no link: tenta os aliases de action_type na ordem de
	// preferência; na ausência de todos, usa o total de cliques.
	m.LinkClicks = int(metadomain.ActionValue(in.Actions, metadomain.LinkClickActionTypes...))
	if m.LinkClicks == 0 {
		m.LinkClicks = metadomain.ParseInt(in.Clicks)
	}

	m.Conversions = int(metadomain.ActionValue(in.Actions, metadomain.PurchaseActionTypes...))
	m.ConversionValue = metadomain.ActionValue(in.ActionValues, metadomain.PurchaseActionTypes...)

	m.CTR = metadomain.ParseFloat(in.CTR)
	if m.CTR == 0 {
		m.CTR = utils.SafeDivide(float64(m.LinkClicks), float64(m.Impressions)) * 100
	}

	m.CPC = metadomain.ParseFloat(in.CPC)
	if m.CPC == 0 {
		m.CPC = utils.SafeDivide(m.Spend, float64(m.LinkClicks))
	}

	// O vendor nem sempre reporta CPM; quando ausente, deriva do gasto
	m.CPM = metadomain.ParseFloat(in.CPM)
	if m.CPM == 0 {
		m.CPM = utils.SafeDivide(m.Spend, float64(m.Impressions)) * 1000
	}

	m.CostPerConversion = utils.SafeDivide(m.Spend, float64(m.Conversions))
	m.ROAS = utils.SafeDivide(m.ConversionValue, m.Spend)

	return m
}

// conversionRate é a taxa de conversão sobre cliques, em percentual.
func (m rowMetrics) conversionRate() float64 {
	return utils.SafeDivide(float64(m.Conversions), float64(m.LinkClicks)) * 100
}

func round(f float64) float64 {
	return utils.RoundWithTwoDecimalPlace(f)
}

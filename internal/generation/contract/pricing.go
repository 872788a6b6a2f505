package contract

import "github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"

// KRWPerUSD is the fixed rate used for the won estimate shown to users.
const KRWPerUSD = 1300

// Rate is a per-million-token price in USD.
type Rate struct {
	Input  float64
	Output float64
}

var rates = map[string]Rate{
	"gpt-4o-mini":           {Input: 0.15, Output: 0.60},
	"gpt-4o":                {Input: 2.50, Output: 10.00},
	"gemini-2.5-flash-lite": {Input: 0.10, Output: 0.40},
	"gemini-2.5-flash":      {Input: 0.30, Output: 2.50},
}

// RateFor returns the price of a model; unknown models are priced as gpt-4o-mini.
func RateFor(model string) Rate {
	if r, ok := rates[model]; ok {
		return r
	}
	return rates["gpt-4o-mini"]
}

// Estimate fills in the cost fields of u from its token counts.
// It is diagnostic only.
func Estimate(u domain.Usage) domain.Usage {
	r := RateFor(u.Model)
	u.InputCostUSD = float64(u.PromptTokens) / 1_000_000 * r.Input
	u.OutputCostUSD = float64(u.CompletionTokens) / 1_000_000 * r.Output
	u.TotalCostUSD = u.InputCostUSD + u.OutputCostUSD
	u.TotalCostKRW = u.TotalCostUSD * KRWPerUSD
	if u.TotalTokens == 0 {
		u.TotalTokens = u.PromptTokens + u.CompletionTokens
	}
	return u
}

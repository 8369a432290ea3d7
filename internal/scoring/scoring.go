// Package scoring computes a 0-100 risk score from the merged token view.
// Pure computation only, no I/O.
//
// Categories and caps:
//
//	holder concentration 0-30, liquidity depth 0-20, token age 0-10,
//	verification 0-10, admin control 0-20, trade risk 0-30.
//
// The six caps sum to 120; the total is clamped to 0-100.
package scoring

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/markandeyay/rugpullcheck/internal/models"
)

// Label thresholds on the final clamped score.
const (
	highThreshold   = 67
	mediumThreshold = 34
)

type flagScore struct {
	points int
	reason string
}

// flagScores assigns points and a reason to known admin flags. Flags outside
// this table contribute nothing.
var flagScores = map[string]flagScore{
	"mint_function_detected":      {6, "Owner can mint new tokens."},
	"blacklist_function_detected": {4, "Contract has blacklist capability."},
	"blacklist_terms_detected":    {4, "Contract source mentions blacklist."},
	"proxy_contract_detected":     {5, "Upgradeable proxy pattern detected — contract logic can be changed."},
	"transfer_pausable":           {4, "Token transfers can be paused."},
	"slippage_modifiable":         {5, "Tax/slippage can be modified by owner."},
	"personal_tax_modifiable":     {5, "Per-address tax manipulation possible."},
	"hidden_owner_detected":       {6, "Hidden owner detected — ownership may be disguised."},
	"can_reclaim_ownership":       {5, "Ownership can be reclaimed after renouncing."},
	"self_destruct_function":      {5, "Self-destruct function found."},
	"trading_toggle_detected":     {4, "Trading can be toggled on/off."},
	"fee_modification_detected":   {3, "Fee modification functions detected."},
	"tax_modification_detected":   {3, "Tax modification functions detected."},
}

// Engine is the risk scoring engine. The clock is only consulted when token
// age has to be derived from the pair-creation timestamp.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// Compute scores the merged token view. Total over all input combinations,
// including every optional section absent.
func (e *Engine) Compute(token models.Token, market *models.Market, holders *models.Holders, admin models.Admin, tradeRisk *models.TradeRisk) models.Score {
	score := 0
	reasons := []string{}

	score += scoreHolders(holders, &reasons)
	score += scoreLiquidity(market, &reasons)
	score += e.scoreAge(token, market, &reasons)
	score += scoreVerification(token, &reasons)
	score += scoreAdmin(admin, &reasons)
	score += scoreTradeRisk(tradeRisk, &reasons)

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	label := models.LabelLow
	switch {
	case score >= highThreshold:
		label = models.LabelHigh
	case score >= mediumThreshold:
		label = models.LabelMedium
	}

	if market == nil && holders == nil && tradeRisk == nil {
		reasons = append(reasons, "Limited data available — score may not reflect true risk.")
	}

	return models.Score{
		RiskScore: score,
		Label:     label,
		Reasons:   reasons,
	}
}

func scoreHolders(holders *models.Holders, reasons *[]string) int {
	if holders == nil {
		return 0
	}

	points := 0

	if holders.Top1Pct > 20 {
		points += 10
		*reasons = append(*reasons, fmt.Sprintf("Top holder controls %s%% of supply.", formatPct(holders.Top1Pct)))
	} else if holders.Top1Pct > 10 {
		points += 5
	}

	if holders.Top5Pct > 70 {
		points += 20
		*reasons = append(*reasons, fmt.Sprintf("Top 5 holders control %s%% of supply — extreme concentration.", formatPct(holders.Top5Pct)))
	} else if holders.Top5Pct > 50 {
		points += 12
		*reasons = append(*reasons, fmt.Sprintf("Top 5 holders control %s%% of supply — high concentration.", formatPct(holders.Top5Pct)))
	} else if holders.Top5Pct > 30 {
		points += 5
	}

	if holders.HolderCount != nil {
		if count, err := strconv.Atoi(strings.TrimSpace(*holders.HolderCount)); err == nil {
			if count < 50 {
				points += 5
				*reasons = append(*reasons, fmt.Sprintf("Only %d holders — very low distribution.", count))
			} else if count < 200 {
				points += 2
			}
		}
	}

	return capAt(points, 30)
}

func scoreLiquidity(market *models.Market, reasons *[]string) int {
	if market == nil || market.LiquidityUSD == nil {
		*reasons = append(*reasons, "No DEX liquidity data found.")
		return 10
	}

	liq := *market.LiquidityUSD
	points := 0

	switch {
	case liq < 5_000:
		points = 20
		*reasons = append(*reasons, fmt.Sprintf("Extremely low liquidity ($%s).", formatUSD(liq)))
	case liq < 20_000:
		points = 15
		*reasons = append(*reasons, fmt.Sprintf("Very low liquidity ($%s).", formatUSD(liq)))
	case liq < 50_000:
		points = 10
		*reasons = append(*reasons, fmt.Sprintf("Low liquidity ($%s).", formatUSD(liq)))
	case liq < 100_000:
		points = 5
	}

	return capAt(points, 20)
}

func (e *Engine) scoreAge(token models.Token, market *models.Market, reasons *[]string) int {
	var age *int

	if token.AgeDays != nil {
		age = token.AgeDays
	} else if market != nil && market.PairCreatedAt != nil {
		created := time.UnixMilli(*market.PairCreatedAt).UTC()
		days := int(e.now().UTC().Sub(created).Hours() / 24)
		age = &days
	}

	if age == nil {
		return 0
	}

	switch {
	case *age < 3:
		*reasons = append(*reasons, fmt.Sprintf("Token is only %d day(s) old — very new.", *age))
		return 10
	case *age < 7:
		*reasons = append(*reasons, fmt.Sprintf("Token is %d days old.", *age))
		return 8
	case *age < 30:
		return 5
	case *age < 90:
		return 2
	}
	return 0
}

func scoreVerification(token models.Token, reasons *[]string) int {
	if token.Verified == nil {
		return 3
	}
	if !*token.Verified {
		*reasons = append(*reasons, "Contract source code is not verified.")
		return 10
	}
	return 0
}

func scoreAdmin(admin models.Admin, reasons *[]string) int {
	points := 0

	activeOwner := admin.HasOwner != nil && *admin.HasOwner &&
		(admin.OwnerRenounced == nil || !*admin.OwnerRenounced)
	if activeOwner {
		points += 6
		*reasons = append(*reasons, "Contract has an active owner (not renounced).")
	}

	for _, flag := range admin.Flags {
		if fs, ok := flagScores[flag]; ok {
			points += fs.points
			*reasons = append(*reasons, fs.reason)
		}
	}

	return capAt(points, 20)
}

func scoreTradeRisk(tradeRisk *models.TradeRisk, reasons *[]string) int {
	if tradeRisk == nil {
		return 0
	}

	// Honeypot dominates: the rest of the category adds nothing on top.
	if tradeRisk.Honeypot {
		*reasons = append(*reasons, "HONEYPOT DETECTED — you likely cannot sell this token.")
		return 30
	}

	points := 0

	if tradeRisk.CannotSell {
		points += 25
		*reasons = append(*reasons, "Token cannot be sold (sell restriction detected).")
	}
	if tradeRisk.CannotBuy {
		points += 10
		*reasons = append(*reasons, "Token cannot be bought (buy restriction detected).")
	}

	if tradeRisk.SellTaxPct != nil {
		tax := *tradeRisk.SellTaxPct
		switch {
		case tax > 50:
			points += 20
			*reasons = append(*reasons, fmt.Sprintf("Extremely high sell tax: %s%%.", formatPct(tax)))
		case tax > 20:
			points += 12
			*reasons = append(*reasons, fmt.Sprintf("High sell tax: %s%%.", formatPct(tax)))
		case tax > 10:
			points += 6
			*reasons = append(*reasons, fmt.Sprintf("Moderate sell tax: %s%%.", formatPct(tax)))
		case tax > 5:
			points += 3
		}
	}

	if tradeRisk.BuyTaxPct != nil {
		tax := *tradeRisk.BuyTaxPct
		switch {
		case tax > 20:
			points += 8
			*reasons = append(*reasons, fmt.Sprintf("High buy tax: %s%%.", formatPct(tax)))
		case tax > 10:
			points += 5
			*reasons = append(*reasons, fmt.Sprintf("Moderate buy tax: %s%%.", formatPct(tax)))
		}
	}

	return capAt(points, 30)
}

func capAt(points, limit int) int {
	if points > limit {
		return limit
	}
	return points
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatUSD renders a dollar amount with thousands separators and no cents.
func formatUSD(v float64) string {
	whole := fmt.Sprintf("%.0f", v)

	neg := strings.HasPrefix(whole, "-")
	if neg {
		whole = whole[1:]
	}

	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

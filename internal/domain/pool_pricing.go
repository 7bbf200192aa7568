package domain

import "math"

// Стандартные работы, которые добавляются к любой смете
const (
	ExcavationRate  = 0.15 // 15% от стоимости самого бассейна
	BasicElectrical = 2500.0
	Permits         = 1500.0
	BasicPlumbing   = 3000.0

	// вилка оценки ±10%
	EstimateLowFactor  = 0.9
	EstimateHighFactor = 1.1
)

// Selections — выбранные опции по группам: groupID -> []optionID.
// Для single-групп в списке не больше одного элемента.
type Selections map[string][]string

// Clone — копия, чтобы переходы мастера не мутировали чужое состояние
func (s Selections) Clone() Selections {
	out := make(Selections, len(s))
	for k, v := range s {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// First — первая выбранная опция группы
func (s Selections) First(group string) (string, bool) {
	ids := s[group]
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// Has — выбрана ли опция
func (s Selections) Has(group, option string) bool {
	for _, id := range s[group] {
		if id == option {
			return true
		}
	}
	return false
}

// PricingSnapshot — цены, собранные из текущего выбора.
// Всегда пересчитывается целиком, инкрементально не обновляется.
type PricingSnapshot struct {
	BasePrice      float64 `json:"basePrice"`
	SizeMultiplier float64 `json:"sizeMultiplier"`
	Features       float64 `json:"features"`
	SiteConditions float64 `json:"siteConditions"`
	Services       float64 `json:"services"`
}

// ComputeSnapshot собирает снапшот из выбора. Неизвестные опции и
// нечитаемые цены дают 0 (коэффициент размера — 1).
func (c *PoolCatalog) ComputeSnapshot(sel Selections) PricingSnapshot {
	var snap PricingSnapshot
	snap.BasePrice = c.singlePrice(sel, GroupPoolModel, 0)
	snap.SizeMultiplier = c.singlePrice(sel, GroupPoolSize, 1)
	snap.Features = c.sumPrices(sel, GroupFeatures)
	snap.SiteConditions = c.singlePrice(sel, GroupAccess, 0) +
		c.singlePrice(sel, GroupSoil, 0) +
		c.singlePrice(sel, GroupSlope, 0)
	snap.Services = c.sumPrices(sel, GroupServices)

	return snap
}

func (c *PoolCatalog) singlePrice(sel Selections, group string, fallback float64) float64 {
	id, ok := sel.First(group)
	if !ok {
		return fallback
	}
	opt := c.Group(group).Option(id)
	if opt == nil {
		return fallback
	}
	return opt.Price.Float(fallback)
}

// sumPrices — сумма по отмеченным опциям; повтор ID считается один раз
func (c *PoolCatalog) sumPrices(sel Selections, group string) float64 {
	g := c.Group(group)
	seen := make(map[string]bool, len(sel[group]))
	var sum float64
	for _, id := range sel[group] {
		if seen[id] {
			continue
		}
		seen[id] = true
		if opt := g.Option(id); opt != nil {
			sum += opt.Price.Float(0)
		}
	}
	return sum
}

// Normalize приводит чужой выбор к виду, который даёт Select:
// только известные группы и опции, без повторов, в single-группе одна опция.
func (c *PoolCatalog) Normalize(sel Selections) Selections {
	out := make(Selections, len(sel))
	for group, ids := range sel {
		g := c.Group(group)
		if g == nil {
			continue
		}
		var kept []string
		for _, id := range ids {
			if g.Option(id) == nil || contains(kept, id) {
				continue
			}
			kept = append(kept, id)
		}
		if len(kept) == 0 {
			continue
		}
		if g.Kind == GroupKindSingle && len(kept) > 1 {
			// для радио действует последний выбор, как при Select
			kept = kept[len(kept)-1:]
		}
		out[group] = kept
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// StandardServices — обязательные работы
type StandardServices struct {
	Excavation      float64 `json:"excavation"`
	BasicElectrical float64 `json:"basicElectrical"`
	Permits         float64 `json:"permits"`
	BasicPlumbing   float64 `json:"basicPlumbing"`
}

func (s StandardServices) Total() float64 {
	return s.Excavation + s.BasicElectrical + s.Permits + s.BasicPlumbing
}

// Breakdown — разбивка сметы, каждое значение округлено отдельно,
// поэтому сумма строк может на пару единиц расходиться с Total.
type Breakdown struct {
	BasePool         int64 `json:"basePool"`
	Features         int64 `json:"features"`
	SiteConditions   int64 `json:"siteConditions"`
	Services         int64 `json:"services"`
	StandardServices int64 `json:"standardServices"`
	Total            int64 `json:"total"`
}

// EstimateResult — итог мастера
type EstimateResult struct {
	LowEstimate      int64            `json:"lowEstimate"`
	HighEstimate     int64            `json:"highEstimate"`
	Breakdown        Breakdown        `json:"breakdown"`
	StandardServices StandardServices `json:"standardServices"`
}

// Finalize считает итоговую вилку по снапшоту. Отрицательные суммы
// считаются нулём, неположительный коэффициент — единицей: low <= high всегда.
func Finalize(snap PricingSnapshot) EstimateResult {
	snap.BasePrice = max(snap.BasePrice, 0)
	snap.Features = max(snap.Features, 0)
	snap.SiteConditions = max(snap.SiteConditions, 0)
	snap.Services = max(snap.Services, 0)
	if !(snap.SizeMultiplier > 0) {
		snap.SizeMultiplier = 1
	}

	baseCost := snap.BasePrice * snap.SizeMultiplier
	subtotal := baseCost + snap.Features + snap.SiteConditions + snap.Services

	std := StandardServices{
		Excavation:      baseCost * ExcavationRate,
		BasicElectrical: BasicElectrical,
		Permits:         Permits,
		BasicPlumbing:   BasicPlumbing,
	}
	stdTotal := std.Total()
	finalTotal := subtotal + stdTotal

	return EstimateResult{
		LowEstimate:  RoundHalfUp(finalTotal * EstimateLowFactor),
		HighEstimate: RoundHalfUp(finalTotal * EstimateHighFactor),
		Breakdown: Breakdown{
			BasePool:         RoundHalfUp(baseCost),
			Features:         RoundHalfUp(snap.Features),
			SiteConditions:   RoundHalfUp(snap.SiteConditions),
			Services:         RoundHalfUp(snap.Services),
			StandardServices: RoundHalfUp(stdTotal),
			Total:            RoundHalfUp(finalTotal),
		},
		StandardServices: std,
	}
}

// BreakdownItem — строка разбивки для показа
type BreakdownItem struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// Подписи строк разбивки, порядок фиксированный
const (
	LabelBasePool         = "Base Pool"
	LabelFeatures         = "Pool Features"
	LabelSiteConditions   = "Site Preparation"
	LabelServices         = "Upgrades & Services"
	LabelStandardServices = "Standard Services (Excavation, Electrical, Permits)"
)

// Items — строки разбивки для показа; нулевые не выводим.
func (r EstimateResult) Items() []BreakdownItem {
	all := []BreakdownItem{
		{Label: LabelBasePool, Amount: r.Breakdown.BasePool},
		{Label: LabelFeatures, Amount: r.Breakdown.Features},
		{Label: LabelSiteConditions, Amount: r.Breakdown.SiteConditions},
		{Label: LabelServices, Amount: r.Breakdown.Services},
		{Label: LabelStandardServices, Amount: r.Breakdown.StandardServices},
	}
	out := make([]BreakdownItem, 0, len(all))
	for _, it := range all {
		if it.Amount > 0 {
			out = append(out, it)
		}
	}
	return out
}

// RoundHalfUp — округление .5 вверх (к +∞), как в браузерном калькуляторе
func RoundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

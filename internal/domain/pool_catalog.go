package domain

import (
	"github.com/go-playground/validator/v10"
)

// Группы опций калькулятора бассейна. Набор фиксированный:
// именно по этим ID считается PricingSnapshot.
const (
	GroupPoolModel = "poolModel"
	GroupPoolSize  = "poolSize"
	GroupFeatures  = "features"
	GroupAccess    = "access"
	GroupSoil      = "soil"
	GroupSlope     = "slope"
	GroupServices  = "services"
)

type GroupKind string

const (
	GroupKindSingle GroupKind = "single" // радио: выбирается ровно одна опция
	GroupKindMulti  GroupKind = "multi"  // чекбоксы: ноль или больше
)

// PoolOption описывает одну опцию внутри группы.
// Price для poolModel — базовая цена, для poolSize — коэффициент размера.
type PoolOption struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Label       string `json:"label" yaml:"label" validate:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Price       Amount `json:"price" yaml:"price" validate:"nonnegative_amount"`
}

// OptionGroup — именованная категория опций, привязанная к шагу мастера
type OptionGroup struct {
	ID       string       `json:"id" yaml:"id" validate:"required"`
	Label    string       `json:"label" yaml:"label" validate:"required"`
	Kind     GroupKind    `json:"kind" yaml:"kind" validate:"oneof=single multi"`
	Step     int          `json:"step" yaml:"step" validate:"min=1,max=5"`
	Required bool         `json:"required" yaml:"required"`
	Options  []PoolOption `json:"options" yaml:"options" validate:"required,min=1,unique=ID,dive"`
}

// WizardStep — подпись шага, используется в сообщениях валидации
type WizardStep struct {
	Number int    `json:"number" yaml:"number" validate:"min=1,max=5"`
	Name   string `json:"name" yaml:"name" validate:"required"`
}

// PoolCatalog — конфигурация мастера: шаги и группы опций с ценами
type PoolCatalog struct {
	Steps  []WizardStep  `json:"steps" yaml:"steps" validate:"unique=Number,dive"`
	Groups []OptionGroup `json:"groups" yaml:"groups" validate:"required,min=1,unique=ID,dive"`
}

var catalogValidator = newCatalogValidator()

func newCatalogValidator() *validator.Validate {
	v := validator.New()
	// цены не бывают отрицательными; нечитаемые пропускаем, они считаются нулём
	_ = v.RegisterValidation("nonnegative_amount", func(fl validator.FieldLevel) bool {
		return !Amount(fl.Field().String()).Negative()
	})
	return v
}

// Check проверяет структуру каталога (не цены: цены разбираются мягко).
func (c *PoolCatalog) Check() error {
	return catalogValidator.Struct(c)
}

// Group ищет группу по ID
func (c *PoolCatalog) Group(id string) *OptionGroup {
	for i := range c.Groups {
		if c.Groups[i].ID == id {
			return &c.Groups[i]
		}
	}
	return nil
}

// Option ищет опцию в группе по ID
func (g *OptionGroup) Option(id string) *PoolOption {
	if g == nil {
		return nil
	}
	for i := range g.Options {
		if g.Options[i].ID == id {
			return &g.Options[i]
		}
	}
	return nil
}

// GroupsForStep возвращает группы шага в порядке каталога
func (c *PoolCatalog) GroupsForStep(step int) []OptionGroup {
	var out []OptionGroup
	for _, g := range c.Groups {
		if g.Step == step {
			out = append(out, g)
		}
	}
	return out
}

// StepName — подпись шага; если шага нет в таблице — "option".
func (c *PoolCatalog) StepName(step int) string {
	for _, s := range c.Steps {
		if s.Number == step {
			return s.Name
		}
	}
	return "option"
}

// DefaultWizardSteps — стандартная таблица подписей шагов
func DefaultWizardSteps() []WizardStep {
	return []WizardStep{
		{Number: 1, Name: "pool model"},
		{Number: 2, Name: "pool size"},
		{Number: 3, Name: "pool features"},
		{Number: 4, Name: "site condition"},
		{Number: 5, Name: "service"},
	}
}

// NewDefaultPoolCatalog возвращает стартовый каталог для демо
func NewDefaultPoolCatalog() *PoolCatalog {
	return &PoolCatalog{
		Steps: DefaultWizardSteps(),
		Groups: []OptionGroup{
			{
				ID:       GroupPoolModel,
				Label:    "Pool Model",
				Kind:     GroupKindSingle,
				Step:     1,
				Required: true,
				Options: []PoolOption{
					{ID: "classic", Label: "Classic Rectangle", Description: "Timeless straight-edge design", Price: "30000"},
					{ID: "freeform", Label: "Freeform", Description: "Natural curves for landscaped yards", Price: "35000"},
					{ID: "lap", Label: "Lap Pool", Description: "Long and narrow for swimming laps", Price: "38000"},
					{ID: "plunge", Label: "Plunge Pool", Description: "Compact pool for small backyards", Price: "22000"},
					{ID: "infinity", Label: "Infinity Edge", Description: "Vanishing edge for sloped views", Price: "55000"},
				},
			},
			{
				ID:       GroupPoolSize,
				Label:    "Pool Size",
				Kind:     GroupKindSingle,
				Step:     2,
				Required: true,
				Options: []PoolOption{
					{ID: "small", Label: "Small (10' x 20')", Price: "0.8"},
					{ID: "medium", Label: "Medium (15' x 30')", Price: "1"},
					{ID: "large", Label: "Large (18' x 36')", Price: "1.2"},
					{ID: "xlarge", Label: "Extra Large (20' x 40')", Price: "1.5"},
				},
			},
			{
				ID:    GroupFeatures,
				Label: "Pool Features",
				Kind:  GroupKindMulti,
				Step:  3,
				Options: []PoolOption{
					{ID: "led-lighting", Label: "LED Lighting", Price: "2500"},
					{ID: "heater", Label: "Pool Heater", Price: "5000"},
					{ID: "waterfall", Label: "Waterfall", Price: "3500"},
					{ID: "spa", Label: "Attached Spa", Price: "12000"},
					{ID: "tanning-ledge", Label: "Tanning Ledge", Price: "4000"},
					{ID: "auto-cover", Label: "Automatic Cover", Price: "8000"},
					{ID: "salt-system", Label: "Saltwater System", Price: "2000"},
				},
			},
			{
				ID:       GroupAccess,
				Label:    "Yard Access",
				Kind:     GroupKindSingle,
				Step:     4,
				Required: true,
				Options: []PoolOption{
					{ID: "easy", Label: "Easy (wide gate, open yard)", Price: "0"},
					{ID: "moderate", Label: "Moderate (narrow side access)", Price: "1500"},
					{ID: "difficult", Label: "Difficult (crane required)", Price: "4000"},
				},
			},
			{
				ID:       GroupSoil,
				Label:    "Soil Type",
				Kind:     GroupKindSingle,
				Step:     4,
				Required: true,
				Options: []PoolOption{
					{ID: "normal", Label: "Normal / sandy", Price: "0"},
					{ID: "clay", Label: "Clay", Price: "2000"},
					{ID: "rocky", Label: "Rocky", Price: "5000"},
				},
			},
			{
				ID:       GroupSlope,
				Label:    "Yard Slope",
				Kind:     GroupKindSingle,
				Step:     4,
				Required: true,
				Options: []PoolOption{
					{ID: "flat", Label: "Flat", Price: "0"},
					{ID: "gentle", Label: "Gentle slope", Price: "1500"},
					{ID: "steep", Label: "Steep slope (retaining wall)", Price: "4500"},
				},
			},
			{
				ID:    GroupServices,
				Label: "Upgrades & Services",
				Kind:  GroupKindMulti,
				Step:  5,
				Options: []PoolOption{
					{ID: "decking", Label: "Pool Decking", Price: "8000"},
					{ID: "fencing", Label: "Safety Fencing", Price: "4500"},
					{ID: "landscaping", Label: "Landscaping", Price: "6000"},
					{ID: "maintenance", Label: "First-Year Maintenance", Price: "1200"},
					{ID: "warranty", Label: "Extended Warranty", Price: "1500"},
				},
			},
		},
	}
}

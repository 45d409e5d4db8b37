package simulate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Registry creates modifications from string parameters, which is how the
// CLI turns "sell_asset:amount=50000,basis=10000" into a typed variant.
type Registry struct {
	factories map[string]Factory
}

// Factory builds a modification from string parameters.
type Factory func(params map[string]string) (Modification, error)

// NewRegistry creates a registry with every built-in variant registered.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}

	r.Register("sell_asset", createSellAsset)
	r.Register("retirement_contribution", createRetirementContribution)
	r.Register("relocate_state", createRelocateState)
	r.Register("entity_conversion", createEntityConversion)
	r.Register("equipment_purchase", createEquipmentPurchase)
	r.Register("hire_contractor", createHireContractor)
	r.Register("additional_income", createAdditionalIncome)
	r.Register("charitable_donation", createCharitableDonation)
	r.Register("roth_conversion", createRothConversion)
	r.Register("take_distribution", createTakeDistribution)

	return r
}

// Register adds a factory to the registry.
func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
}

// Create builds a modification by name.
func (r *Registry) Create(name string, params map[string]string) (Modification, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown modification: %s", name)
	}
	return factory(params)
}

// List returns the names of all registered modifications.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

// ParseSpec parses a modification specification string.
// Format: "name:param1=value1,param2=value2"
// Example: "sell_asset:asset=stock,amount=50000,basis=10000,long_term=true"
func (r *Registry) ParseSpec(spec string) (Modification, error) {
	parts := strings.SplitN(spec, ":", 2)
	name := strings.TrimSpace(parts[0])

	params := make(map[string]string)
	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		for _, pair := range strings.Split(parts[1], ",") {
			kv := strings.SplitN(pair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", pair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func requireParam(params map[string]string, factory, key string) (string, error) {
	value, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%s requires '%s' parameter", factory, key)
	}
	return value, nil
}

func requireDecimal(params map[string]string, factory, key string) (decimal.Decimal, error) {
	raw, err := requireParam(params, factory, key)
	if err != nil {
		return decimal.Zero, err
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func boolParam(params map[string]string, key string) bool {
	raw, ok := params[key]
	if !ok {
		return false
	}
	return raw == "true" || raw == "yes" || raw == "1"
}

func createSellAsset(params map[string]string) (Modification, error) {
	asset, err := requireParam(params, "sell_asset", "asset")
	if err != nil {
		return nil, err
	}
	amount, err := requireDecimal(params, "sell_asset", "amount")
	if err != nil {
		return nil, err
	}
	basis, err := requireDecimal(params, "sell_asset", "basis")
	if err != nil {
		return nil, err
	}
	return SellAsset{
		Asset:     AssetClass(asset),
		Amount:    amount,
		CostBasis: basis,
		LongTerm:  boolParam(params, "long_term"),
	}, nil
}

func createRetirementContribution(params map[string]string) (Modification, error) {
	amount, err := requireDecimal(params, "retirement_contribution", "amount")
	if err != nil {
		return nil, err
	}
	return RetirementContribution{Amount: amount}, nil
}

func createRelocateState(params map[string]string) (Modification, error) {
	state, err := requireParam(params, "relocate_state", "state")
	if err != nil {
		return nil, err
	}
	return RelocateState{NewState: state}, nil
}

func createEntityConversion(params map[string]string) (Modification, error) {
	salary, err := requireDecimal(params, "entity_conversion", "salary")
	if err != nil {
		return nil, err
	}
	return EntityConversion{Salary: salary}, nil
}

func createEquipmentPurchase(params map[string]string) (Modification, error) {
	amount, err := requireDecimal(params, "equipment_purchase", "amount")
	if err != nil {
		return nil, err
	}
	method, ok := params["method"]
	if !ok {
		method = string(DepreciationSection179)
	}
	return EquipmentPurchase{Amount: amount, Method: DepreciationMethod(method)}, nil
}

func createHireContractor(params map[string]string) (Modification, error) {
	cost, err := requireDecimal(params, "hire_contractor", "cost")
	if err != nil {
		return nil, err
	}
	return HireContractor{AnnualCost: cost}, nil
}

func createAdditionalIncome(params map[string]string) (Modification, error) {
	amount, err := requireDecimal(params, "additional_income", "amount")
	if err != nil {
		return nil, err
	}
	incomeType, ok := params["type"]
	if !ok {
		incomeType = string(IncomeOrdinary)
	}
	return AdditionalIncome{Amount: amount, Type: IncomeType(incomeType)}, nil
}

func createCharitableDonation(params map[string]string) (Modification, error) {
	amount, err := requireDecimal(params, "charitable_donation", "amount")
	if err != nil {
		return nil, err
	}
	return CharitableDonation{Amount: amount, Appreciated: boolParam(params, "appreciated")}, nil
}

func createRothConversion(params map[string]string) (Modification, error) {
	amount, err := requireDecimal(params, "roth_conversion", "amount")
	if err != nil {
		return nil, err
	}
	return RothConversion{Amount: amount}, nil
}

func createTakeDistribution(params map[string]string) (Modification, error) {
	amount, err := requireDecimal(params, "take_distribution", "amount")
	if err != nil {
		return nil, err
	}
	entity, ok := params["entity"]
	if !ok {
		entity = string(EntitySCorp)
	}
	return TakeDistribution{Amount: amount, Entity: EntityType(entity)}, nil
}

package shopping

import (
	"math"
	"strconv"
	"strings"
)

// Group is the aggregation group of a unit. Amounts in the same group can be
// summed after normalization; GroupNone marks an unrecognized unit.
type Group string

const (
	GroupNone   Group = ""
	GroupWeight Group = "weight"
	GroupVolume Group = "volume"
	GroupCount  Group = "count"
)

type unitDef struct {
	base   string
	factor float64
	group  Group
}

var unitTable = map[string]unitDef{
	"g":         {base: "g", factor: 1, group: GroupWeight},
	"gramm":     {base: "g", factor: 1, group: GroupWeight},
	"kg":        {base: "g", factor: 1000, group: GroupWeight},
	"kilogramm": {base: "g", factor: 1000, group: GroupWeight},

	"ml":         {base: "ml", factor: 1, group: GroupVolume},
	"milliliter": {base: "ml", factor: 1, group: GroupVolume},
	"l":          {base: "ml", factor: 1000, group: GroupVolume},
	"liter":      {base: "ml", factor: 1000, group: GroupVolume},

	"stück": {base: "stück", factor: 1, group: GroupCount},
	"stk":   {base: "stück", factor: 1, group: GroupCount},
	"st":    {base: "stück", factor: 1, group: GroupCount},
}

// Quantity is an amount in a unit.
type Quantity struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Normalized is a quantity converted to its group's base unit.
type Normalized struct {
	Amount float64
	Unit   string
	Group  Group
}

func lookupUnit(unit string) (unitDef, bool) {
	def, ok := unitTable[strings.ToLower(strings.TrimSpace(unit))]
	return def, ok
}

// Normalize converts amount to the base unit of its group. Unrecognized units
// are returned unchanged with GroupNone.
func Normalize(amount float64, unit string) Normalized {
	def, ok := lookupUnit(unit)
	if !ok {
		return Normalized{Amount: amount, Unit: unit, Group: GroupNone}
	}
	return Normalized{Amount: amount * def.factor, Unit: def.base, Group: def.group}
}

// Formatted is a display-ready quantity.
type Formatted struct {
	Amount  float64
	Unit    string
	Display string
}

// FormatAmount renders amount for display. A zero amount renders as an empty
// string (ingredients "to taste"). Grams and milliliters of 1000 or more are
// shown as kg and l.
func FormatAmount(amount float64, unit string) Formatted {
	if amount == 0 {
		return Formatted{Amount: 0, Unit: unit}
	}

	switch {
	case unit == "g" && amount >= 1000:
		return Formatted{Amount: amount / 1000, Unit: "kg", Display: oneDecimal(amount/1000) + " kg"}
	case unit == "ml" && amount >= 1000:
		return Formatted{Amount: amount / 1000, Unit: "l", Display: oneDecimal(amount/1000) + " l"}
	}

	var num string
	if amount == math.Trunc(amount) {
		num = strconv.FormatFloat(amount, 'f', -1, 64)
	} else {
		num = oneDecimal(amount)
	}
	display := num
	if unit != "" {
		display = num + " " + unit
	}
	return Formatted{Amount: amount, Unit: unit, Display: display}
}

func oneDecimal(v float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(v, 'f', 1, 64), ".0")
}

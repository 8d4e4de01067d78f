package domain

const (
	MaxHourlyRate        = 3000
	HourlyRateStep       = 50
	DefaultMinHourlyRate = 250
	DefaultHoursPerMonth = 20
	DefaultQuickBudget   = 5000
)

var (
	HoursSlider       = Slider{Min: 8, Max: 60, Step: 2}
	QuickBudgetSlider = Slider{Min: 2000, Max: 20000, Step: 500}
)

// Slider is a bounded integer range with a fixed step, anchored at Min.
type Slider struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Step int `json:"step"`
}

// Clamp bounds v to the slider range and rounds it to the nearest step.
func (s Slider) Clamp(v int) int {
	if v <= s.Min {
		return s.Min
	}
	if v >= s.Max {
		return s.Max
	}
	if s.Step > 1 {
		steps := (v - s.Min + s.Step/2) / s.Step
		v = s.Min + steps*s.Step
		if v > s.Max {
			v = s.Max
		}
	}
	return v
}

func (s Slider) Contains(v int) bool {
	return v >= s.Min && v <= s.Max
}

// MinRate is the hourly rate floor for a class/grade code.
func MinRate(classGrade string) int {
	code := normalizeGrade(classGrade)
	if n := schoolGradeNumber(code); n > 0 {
		switch {
		case n <= 6:
			return 250
		case n <= 10:
			return 300
		default:
			return 350
		}
	}
	if _, ok := gradeCategories[code]; ok {
		return 400
	}
	return DefaultMinHourlyRate
}

func RateSlider(classGrade string) Slider {
	return Slider{Min: MinRate(classGrade), Max: MaxHourlyRate, Step: HourlyRateStep}
}

// Pricing is the rate × hours estimate. The monthly fee is always derived.
type Pricing struct {
	HourlyRate    int `json:"hourly_rate"`
	HoursPerMonth int `json:"hours_per_month"`
}

func NewPricing(classGrade string) Pricing {
	return Pricing{HourlyRate: MinRate(classGrade), HoursPerMonth: DefaultHoursPerMonth}
}

func (p Pricing) MonthlyFee() int {
	return p.HourlyRate * p.HoursPerMonth
}

func (p *Pricing) SetHourlyRate(classGrade string, rate int) {
	p.HourlyRate = RateSlider(classGrade).Clamp(rate)
}

func (p *Pricing) SetHoursPerMonth(hours int) {
	p.HoursPerMonth = HoursSlider.Clamp(hours)
}

// RaiseToFloor lifts the hourly rate to the grade's floor when it sits
// below it. The rate is never lowered.
func (p *Pricing) RaiseToFloor(classGrade string) {
	if floor := MinRate(classGrade); p.HourlyRate < floor {
		p.HourlyRate = floor
	}
}

func (p Pricing) Valid(classGrade string) bool {
	return RateSlider(classGrade).Contains(p.HourlyRate) && HoursSlider.Contains(p.HoursPerMonth)
}

package models

// Category classifies an Expense. The set is closed.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryShopping      Category = "Shopping"
	CategoryBills         Category = "Bills"
	CategoryHealth        Category = "Health"
	CategoryEducation     Category = "Education"
	CategoryOthers        Category = "Others"
)

var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryShopping,
	CategoryBills,
	CategoryHealth,
	CategoryEducation,
	CategoryOthers,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Source classifies an Income. The set is closed.
type Source string

const (
	SourceSalary      Source = "Salary"
	SourcePocketMoney Source = "Pocket Money"
	SourceBonus       Source = "Bonus"
	SourcePartTime    Source = "Part Time"
	SourceFreelance   Source = "Freelance"
	SourceBusiness    Source = "Business"
	SourceInvestment  Source = "Investment"
	SourceOthers      Source = "Others"
)

var Sources = []Source{
	SourceSalary,
	SourcePocketMoney,
	SourceBonus,
	SourcePartTime,
	SourceFreelance,
	SourceBusiness,
	SourceInvestment,
	SourceOthers,
}

func (s Source) Valid() bool {
	for _, known := range Sources {
		if s == known {
			return true
		}
	}
	return false
}

// Package categorypkg provides the fixed transaction category set.
package categorypkg

import "github.com/go-playground/validator/v10"

// Constants for all supported categories.
const (
	Income        = "Дохід"
	Groceries     = "Продукти"
	Transport     = "Транспорт"
	Utilities     = "Комунальні послуги"
	Entertainment = "Розваги"
	Rent          = "Оренда"
	Health        = "Здоров'я"
	Clothes       = "Одяг"
	Other         = "Інше"
)

// SupportedCategories holds all the supported categories.
var SupportedCategories = []string{
	Income,
	Groceries,
	Transport,
	Utilities,
	Entertainment,
	Rent,
	Health,
	Clothes,
	Other,
}

// IsSupportedCategory returns true if the category is in the fixed set.
func IsSupportedCategory(category string) bool {
	for _, c := range SupportedCategories {
		if c == category {
			return true
		}
	}

	return false
}

// ValidCategory validates whether the category is supported.
var ValidCategory validator.Func = func(fl validator.FieldLevel) bool {
	if c, ok := fl.Field().Interface().(string); ok {
		return IsSupportedCategory(c)
	}

	return false
}

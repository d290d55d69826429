// Package validation регистрирует собственные правила go-playground/validator в gin.
package validation

import (
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const TagAcademicYear = "academic_year"

var academicYearRe = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// AcademicYear проверяет формат "2024-2025": два года подряд через дефис.
func AcademicYear(value string) bool {
	m := academicYearRe.FindStringSubmatch(value)
	if m == nil {
		return false
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	return end == start+1
}

func academicYear(fl validator.FieldLevel) bool {
	return AcademicYear(fl.Field().String())
}

// Register добавляет правила в валидатор, которым gin проверяет тела запросов.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	return v.RegisterValidation(TagAcademicYear, academicYear)
}

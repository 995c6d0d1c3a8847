package analysis

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidResult is returned when a candidate result breaks the range contract.
var ErrInvalidResult = errors.New("invalid analysis result")

// CareerMatch pairs a role with a 0-100 fit percentage.
type CareerMatch struct {
	Role  string `json:"role" validate:"required"`
	Match int    `json:"match" validate:"gte=0,lte=100"`
}

// Result is the analysis contract shared by every provider. Build values with
// NewResult so the ranges below always hold.
type Result struct {
	Skills          []string       `json:"skills" validate:"required,min=1,dive,required"`
	ExperienceYears float64        `json:"experienceYears" validate:"gte=0"`
	EducationLevel  string         `json:"educationLevel" validate:"required"`
	Recommendations []string       `json:"recommendations" validate:"required,min=1,dive,required"`
	CareerMatches   []CareerMatch  `json:"careerMatches" validate:"required,min=1,dive"`
	SkillCategories map[string]int `json:"skillCategories" validate:"required,min=1,dive,keys,required,endkeys,gte=0,lte=100"`
	ResumeScore     int            `json:"resumeScore" validate:"gte=0,lte=100"`
}

var validate = validator.New()

// NewResult validates draft and returns an independent copy of it.
func NewResult(draft Result) (Result, error) {
	if err := validate.Struct(draft); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return Result{}, fmt.Errorf("%w: %s", ErrInvalidResult, describe(fieldErrs))
		}
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidResult, err)
	}
	return draft.clone(), nil
}

func describe(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

func (r Result) clone() Result {
	out := r
	out.Skills = append([]string(nil), r.Skills...)
	out.Recommendations = append([]string(nil), r.Recommendations...)
	out.CareerMatches = append([]CareerMatch(nil), r.CareerMatches...)
	out.SkillCategories = maps.Clone(r.SkillCategories)
	return out
}

func mustResult(draft Result) Result {
	r, err := NewResult(draft)
	if err != nil {
		panic(err)
	}
	return r
}

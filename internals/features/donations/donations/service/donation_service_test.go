package service

import (
	"testing"

	"github.com/google/uuid"

	productModel "flowaid_backend/internals/features/products/model"
	schoolModel "flowaid_backend/internals/features/schools/model"
)

func TestResolveSchoolID(t *testing.T) {
	productSchool := uuid.MustParse("11111111-1111-4111-8111-111111111111")
	requestSchool := uuid.MustParse("22222222-2222-4222-8222-222222222222")
	rawSchool := uuid.MustParse("33333333-3333-4333-8333-333333333333")

	t.Run("Given product with school association When resolved Then association wins", func(t *testing.T) {
		product := &productModel.Product{
			ProductSchoolID: &rawSchool,
			School:          &schoolModel.School{SchoolID: productSchool},
		}

		got := ResolveSchoolID(product, &requestSchool)

		if got == nil || *got != productSchool {
			t.Errorf("expected product association school, got %v", got)
		}
	})

	t.Run("Given no association When request supplies schoolId Then request wins over raw column", func(t *testing.T) {
		product := &productModel.Product{ProductSchoolID: &rawSchool}

		got := ResolveSchoolID(product, &requestSchool)

		if got == nil || *got != requestSchool {
			t.Errorf("expected request school, got %v", got)
		}
	})

	t.Run("Given neither association nor request When resolved Then raw column used", func(t *testing.T) {
		product := &productModel.Product{ProductSchoolID: &rawSchool}

		got := ResolveSchoolID(product, nil)

		if got == nil || *got != rawSchool {
			t.Errorf("expected raw product school, got %v", got)
		}
	})

	t.Run("Given a product without any school When resolved Then nil", func(t *testing.T) {
		if got := ResolveSchoolID(&productModel.Product{}, nil); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})
}

func TestBuildPurpose(t *testing.T) {
	t.Run("Given a registered donor When built Then plain donation purpose", func(t *testing.T) {
		got := BuildPurpose("Hygiene Kit", false, "")
		if got != "Donation for Hygiene Kit" {
			t.Errorf("unexpected purpose: %q", got)
		}
	})

	t.Run("Given an anonymous donor with a name When built Then name included", func(t *testing.T) {
		got := BuildPurpose("Hygiene Kit", true, "Ayu")
		if got != "Donation for Hygiene Kit (from Ayu)" {
			t.Errorf("unexpected purpose: %q", got)
		}
	})

	t.Run("Given an anonymous donor without a name When built Then marked anonymous", func(t *testing.T) {
		got := BuildPurpose("Hygiene Kit", true, "")
		if got != "Anonymous donation for Hygiene Kit" {
			t.Errorf("unexpected purpose: %q", got)
		}
	})
}

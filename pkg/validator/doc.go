// Package validator provides small composable validation rules.
//
// Rules are built eagerly and evaluated by [Apply], which returns
// [ValidationErrors] for every failing rule:
//
//	err := validator.Apply(
//		validator.RequiredString("email", in.Email),
//		validator.Email("email", in.Email),
//		validator.MinLenString("password", in.Password, 6),
//	)
//	if ve := validator.ExtractValidationErrors(err); ve != nil {
//		ve.Translate(tr)
//		fmt.Println(ve.First())
//	}
//
// Each error carries a TranslationKey ("validation.required",
// "validation.min_length", ...) and TranslationValues ("field", "min", ...)
// so messages can be re-rendered through pkg/i18n.
package validator

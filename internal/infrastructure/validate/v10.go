package validate

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// MobilePattern local mobile number, eg.09123456789
var MobilePattern = regexp.MustCompile(`^09\d{9}$`)

// PlaygroundV10 Validator implementation using go-playground
type PlaygroundV10 struct {
	core  *validator.Validate
	uni   *ut.UniversalTranslator
	trans ut.Translator
}

var _ Validator = &PlaygroundV10{}

var customTranslations = map[string]map[string]string{
	"en": {"mobile": "{0} must be a valid mobile number starting with 09"},
	"zh": {"mobile": "{0}必须是以09开头的有效手机号码"},
}

// NewValidator create a new Validator, messages default to english
func NewValidator() *PlaygroundV10 {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, zh.New())
	enTrans, _ := uni.GetTranslator("en")
	zhTrans, _ := uni.GetTranslator("zh")

	validate := validator.New()
	validate.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return MobilePattern.MatchString(fl.Field().String())
	})
	en_translations.RegisterDefaultTranslations(validate, enTrans)
	zh_translations.RegisterDefaultTranslations(validate, zhTrans)
	registerCustomTranslations(validate, "en", enTrans)
	registerCustomTranslations(validate, "zh", zhTrans)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			name = fld.Tag.Get("yaml")
			if name == "-" || name == "" {
				return ""
			}
		}
		return name
	})
	return &PlaygroundV10{
		core:  validate,
		uni:   uni,
		trans: enTrans,
	}
}

func registerCustomTranslations(validate *validator.Validate, locale string, trans ut.Translator) {
	for tag, text := range customTranslations[locale] {
		tag, text := tag, text
		validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field())
			return msg
		})
	}
}

// WithLocale validator sharing the rules, falls back to english
func (v *PlaygroundV10) WithLocale(acceptLanguage string) Validator {
	var locales []string
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" || tag == "*" {
			continue
		}
		locales = append(locales, strings.ToLower(strings.SplitN(tag, "-", 2)[0]))
	}
	if len(locales) == 0 {
		return v
	}
	trans, found := v.uni.FindTranslator(locales...)
	if !found {
		return v
	}
	return &PlaygroundV10{core: v.core, uni: v.uni, trans: trans}
}

// Struct validate struct
func (v *PlaygroundV10) Struct(s interface{}) []*FieldError {
	err := v.core.Struct(s)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*FieldError{NewFieldError("", err.Error())}
	}

	result := make([]*FieldError, 0, len(errs))
	for _, item := range errs {
		result = append(result, NewFieldError(item.Field(), item.Translate(v.trans)))
	}
	return result
}

// Var validate single variable
func (v *PlaygroundV10) Var(name string, value interface{}, tag string) []*FieldError {
	err := v.core.Var(value, tag)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*FieldError{NewFieldError(name, err.Error())}
	}

	result := make([]*FieldError, 0, len(errs))
	for _, item := range errs {
		// variables carry no field name, the translation starts with the placeholder
		msg := strings.TrimSpace(item.Translate(v.trans))
		result = append(result, NewFieldError(name, name+" "+msg))
	}
	return result
}
